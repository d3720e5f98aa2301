package garland

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
)

// CloudConfig tunes a PointCloud's staggered blend. Zero values take the
// documented defaults.
type CloudConfig struct {
	// Spread is the stagger window: each point's local progress is the
	// global progress offset by its phase so the cloud transitions over a
	// spread interval instead of snapping as one. Zero means 0.6.
	Spread float32
	// WobbleAmplitude is the world-unit amplitude of the time-driven
	// drift applied to fully-scattered points. Zero means 0.4.
	WobbleAmplitude float32
	// WobbleFrequency scales the drift speed. Zero means 1.
	WobbleFrequency float32
}

func (c *CloudConfig) applyDefaults() {
	if c.Spread == 0 {
		c.Spread = 0.6
	}
	if c.WobbleAmplitude == 0 {
		c.WobbleAmplitude = 0.4
	}
	if c.WobbleFrequency == 0 {
		c.WobbleFrequency = 1
	}
}

// CloudUniforms are the only per-tick inputs to a PointCloud: elapsed time
// and the smoothed progress. Everything else a point needs is baked into
// the static attribute buffers at construction.
type CloudUniforms struct {
	Time     float32
	Progress float32
}

// PointCloud is the bulk particle tier. Counts here run to the tens of
// thousands, so per-point state never passes through the per-entity
// transition engine: the three attribute buffers are built once, and each
// tick varies only the two uniforms. Backends with a programmable vertex
// stage upload Formation/Chaos/Phase as vertex attributes and evaluate
// LocalProgress in the shader; Resolve is the reference evaluation for
// backends without one (and for tests).
type PointCloud struct {
	// Formation and Chaos are packed xyz triplets, 3*Count() long.
	Formation []float32
	Chaos     []float32
	// Phase holds one stagger scalar in [0, 1) per point.
	Phase []float32

	cfg CloudConfig
}

// NewPointCloud packs the destination pairs into attribute buffers and
// draws each point's phase. formation and chaos must be the same length.
func NewPointCloud(cfg CloudConfig, formation, chaos []Vec3, rng *rand.Rand) *PointCloud {
	cfg.applyDefaults()
	n := len(formation)
	c := &PointCloud{
		Formation: make([]float32, 3*n),
		Chaos:     make([]float32, 3*n),
		Phase:     make([]float32, n),
		cfg:       cfg,
	}
	for i := 0; i < n; i++ {
		c.Formation[3*i] = float32(formation[i].X)
		c.Formation[3*i+1] = float32(formation[i].Y)
		c.Formation[3*i+2] = float32(formation[i].Z)
		c.Chaos[3*i] = float32(chaos[i].X)
		c.Chaos[3*i+1] = float32(chaos[i].Y)
		c.Chaos[3*i+2] = float32(chaos[i].Z)
		c.Phase[i] = float32(rng.Float64())
	}
	return c
}

// Count returns the number of points.
func (c *PointCloud) Count() int {
	return len(c.Phase)
}

// LocalProgress maps the global progress to one point's effective blend
// value: a clamped ramp offset by phase over the spread window, shaped by
// a smootherstep so points ease in and out of motion. Always in [0, 1];
// at progress 0 every point sits on formation, at 1 every point on chaos,
// regardless of phase.
func (c *PointCloud) LocalProgress(progress, phase float32) float32 {
	s := c.cfg.Spread
	t := progress*(1+s) - phase*s
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * t * (t*(t*6-15) + 10)
}

// Resolve evaluates the blend for every point into a packed xyz buffer and
// returns it. out is reused when large enough (high-water-mark growth);
// pass nil to allocate. Fully-blended points additionally drift on
// time-driven sine terms keyed by their phase, so a settled scattered
// cloud stays alive.
func (c *PointCloud) Resolve(u CloudUniforms, out []float32) []float32 {
	need := len(c.Formation)
	if cap(out) < need {
		out = make([]float32, need)
	}
	out = out[:need]

	amp := c.cfg.WobbleAmplitude
	w := u.Time * c.cfg.WobbleFrequency

	for i := 0; i < len(c.Phase); i++ {
		t := c.LocalProgress(u.Progress, c.Phase[i])

		fx, fy, fz := c.Formation[3*i], c.Formation[3*i+1], c.Formation[3*i+2]
		cx, cy, cz := c.Chaos[3*i], c.Chaos[3*i+1], c.Chaos[3*i+2]

		x := fx + (cx-fx)*t
		y := fy + (cy-fy)*t
		z := fz + (cz-fz)*t

		// Drift scales with t: zero in formation, full once scattered.
		if t > 0 {
			p := c.Phase[i] * 2 * math32.Pi
			x += math32.Sin(w+p) * amp * t
			y += math32.Cos(w*0.7+p) * amp * 0.5 * t
			z += math32.Sin(w*1.3+p*2) * amp * t
		}

		out[3*i] = x
		out[3*i+1] = y
		out[3*i+2] = z
	}
	return out
}
