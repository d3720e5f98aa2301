package garland

import "math"

// TransitionConfig tunes the per-entity transition behavior. Zero values
// take the documented defaults.
type TransitionConfig struct {
	// ApproachRate is the exponential rate at which entities close on
	// their destination. Default 3.
	ApproachRate float64
	// HysteresisBand is the half-width of the destination switch band
	// around progress 0.5. Zero keeps the hard threshold: destinations
	// flip exactly at 0.5, which can oscillate under a jittering driver.
	// A band of 0.05 switches at 0.55 going out and 0.45 coming back.
	HysteresisBand float64
	// FloatThreshold is the progress above which scattered entities gain
	// secondary float motion instead of orientation targeting. Default 0.95.
	FloatThreshold float64
	// FloatAmplitude is the world-unit amplitude of the float wobble.
	// Keep it small relative to the chaos radius. Default 0.5.
	FloatAmplitude float64
	// FloatFrequency scales the wobble speed. Default 1.
	FloatFrequency float64
	// SpinRate is the continuous rotation speed, radians/second, applied
	// while floating. Default 0.6.
	SpinRate float64
	// RotationRate is the damped-approach rate toward the discrete target
	// orientation below the float threshold. Default 3.
	RotationRate float64
	// ScatterScaleBoost is the fractional scale gain at full scatter:
	// Scale = BaseScale * (1 + boost*progress). Default 0.25.
	ScatterScaleBoost float64
}

func (c *TransitionConfig) applyDefaults() {
	if c.ApproachRate == 0 {
		c.ApproachRate = 3
	}
	if c.FloatThreshold == 0 {
		c.FloatThreshold = 0.95
	}
	if c.FloatAmplitude == 0 {
		c.FloatAmplitude = 0.5
	}
	if c.FloatFrequency == 0 {
		c.FloatFrequency = 1
	}
	if c.SpinRate == 0 {
		c.SpinRate = 0.6
	}
	if c.RotationRate == 0 {
		c.RotationRate = 3
	}
	if c.ScatterScaleBoost == 0 {
		c.ScatterScaleBoost = 0.25
	}
}

// TransitionEngine advances every coarse registry entity toward its
// progress-selected destination each tick. Positions use a critically
// damped approach: they never overshoot and never quite arrive, which
// keeps motion continuous when the destination flips mid-flight.
//
// Bulk particle tiers do not pass through here; see PointCloud.
type TransitionEngine struct {
	cfg       TransitionConfig
	elapsed   float64
	scattered bool
}

// NewTransitionEngine creates an engine with defaults applied.
func NewTransitionEngine(cfg TransitionConfig) *TransitionEngine {
	cfg.applyDefaults()
	return &TransitionEngine{cfg: cfg}
}

// Elapsed returns the accumulated animation time in seconds.
func (t *TransitionEngine) Elapsed() float64 {
	return t.elapsed
}

// destinationScattered updates and returns the destination side for this
// tick. With a zero band this is a hard threshold at 0.5.
func (t *TransitionEngine) destinationScattered(progress float64) bool {
	if progress > 0.5+t.cfg.HysteresisBand {
		t.scattered = true
	} else if progress < 0.5-t.cfg.HysteresisBand {
		t.scattered = false
	}
	return t.scattered
}

// wobble returns the float-motion offset for phase at time now. Bounded by
// FloatAmplitude per axis for all inputs.
func (t *TransitionEngine) wobble(now, phase float64) Vec3 {
	amp := t.cfg.FloatAmplitude
	w := now * t.cfg.FloatFrequency
	p := phase * 2 * math.Pi
	return Vec3{
		X: math.Sin(w+p) * amp,
		Y: math.Cos(w*0.8+p) * amp * 0.6,
		Z: math.Sin(w*1.3+p*2) * amp,
	}
}

// Update advances all entities in reg by dt seconds at the given progress.
// Focused entities are skipped; FocusController owns their transform while
// focused. Robust to dt = 0 (no-op) and arbitrarily large dt (damping
// factors clamp to 1, wobble deltas stay bounded).
func (t *TransitionEngine) Update(reg *Registry, progress, dt float64) {
	prev := t.elapsed
	t.elapsed += dt

	toChaos := t.destinationScattered(progress)
	floating := progress >= t.cfg.FloatThreshold

	posF := dampFactor(t.cfg.ApproachRate, dt)
	rotF := dampFactor(t.cfg.RotationRate, dt)
	scale := 1 + t.cfg.ScatterScaleBoost*progress

	for i := 0; i < reg.Len(); i++ {
		e := reg.At(i)
		if e.Focused {
			continue
		}

		dest := e.Formation
		destRot := e.FormationRot
		if toChaos {
			dest = e.Chaos
			destRot = e.ChaosRot
		}

		e.Current = e.Current.Lerp(dest, posF)

		if floating {
			// Layer the wobble as the delta between its value now and
			// last tick, so the offset telescopes instead of drifting.
			delta := t.wobble(t.elapsed, e.Phase).Sub(t.wobble(prev, e.Phase))
			e.Current = e.Current.Add(delta)

			spin := t.cfg.SpinRate * dt
			e.Rotation.Y += spin
			e.Rotation.X += spin * (e.Phase - 0.5)
		} else {
			e.Rotation = e.Rotation.Lerp(destRot, rotF)
		}

		e.Scale = e.BaseScale * scale
	}
}
