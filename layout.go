package garland

import (
	"math"
	"math/rand/v2"
)

// ConeLayout generates the packed "formation" coordinates: a phyllotactic
// spiral wound around the lateral surface of a cone, apex up. Index 0 sits
// nearest the apex; the last index sits on the base rim.
type ConeLayout struct {
	// Height is the cone height. Positions span [-Height/2, Height/2] on Y.
	Height float64
	// Width is the base radius.
	Width float64
	// AngleMultiplier scales the golden-angle step. Categories sharing one
	// cone use different multipliers so their spirals do not align.
	// Zero means 1.
	AngleMultiplier float64
	// Jitter is the magnitude of uniform per-axis noise added to each
	// position. Keep it well below the inter-point spacing; zero disables.
	Jitter float64
}

// Position returns the formation position for entity index i of n.
//
// The height parameter t uses 1-sqrt((i+1)/(n+1)) rather than a uniform
// ramp: lateral surface area per unit height shrinks toward the apex, and
// the sqrt weighting keeps point density uniform over the surface instead
// of crowding the tip.
func (c ConeLayout) Position(i, n int, rng *rand.Rand) Vec3 {
	mult := c.AngleMultiplier
	if mult == 0 {
		mult = 1
	}

	t := 1 - math.Sqrt(float64(i+1)/float64(n+1))
	theta := float64(i) * GoldenAngle * mult

	radius := c.Width * (1 - t)
	p := Vec3{
		X: radius * math.Cos(theta),
		Y: c.Height*t - c.Height/2,
		Z: radius * math.Sin(theta),
	}

	if c.Jitter > 0 {
		p.X += (rng.Float64()*2 - 1) * c.Jitter
		p.Y += (rng.Float64()*2 - 1) * c.Jitter
		p.Z += (rng.Float64()*2 - 1) * c.Jitter
	}
	return p
}

// Radius returns the spiral radius at index i of n, without jitter.
// Exposed for layout tuning; grows monotonically from apex to base.
func (c ConeLayout) Radius(i, n int) float64 {
	t := 1 - math.Sqrt(float64(i+1)/float64(n+1))
	return c.Width * (1 - t)
}

// SphereLayout generates the dispersed "chaos" coordinates: points with
// uniform volumetric density inside a sphere, optionally excluding a
// central void so scattered entities never crowd the camera's orbit center.
type SphereLayout struct {
	// Scale is the outer radius of the chaos volume.
	Scale float64
	// MinRatio is the inner void radius as a fraction of Scale, in [0, 1).
	// Zero samples the full ball.
	MinRatio float64
}

// Position returns one chaos position drawn from rng.
//
// Direction uses the inverse-CDF construction (uniform theta, acos-mapped
// phi); sampling phi uniformly instead would pile points at the poles.
// Radius uses a cube-root map so expected count in any shell [r, r+dr]
// grows with r², i.e. uniform density rather than a dense core.
func (s SphereLayout) Position(rng *rand.Rand) Vec3 {
	theta := rng.Float64() * 2 * math.Pi
	phi := math.Acos(2*rng.Float64() - 1)

	minVol := s.MinRatio * s.MinRatio * s.MinRatio
	r := s.Scale * math.Cbrt(rng.Float64()*(1-minVol)+minVol)

	sinPhi := math.Sin(phi)
	return Vec3{
		X: r * sinPhi * math.Cos(theta),
		Y: r * math.Cos(phi),
		Z: r * sinPhi * math.Sin(theta),
	}
}

// randomUnit returns a direction uniformly distributed on the unit sphere.
func randomUnit(rng *rand.Rand) Vec3 {
	theta := rng.Float64() * 2 * math.Pi
	phi := math.Acos(2*rng.Float64() - 1)
	sinPhi := math.Sin(phi)
	return Vec3{
		X: sinPhi * math.Cos(theta),
		Y: math.Cos(phi),
		Z: sinPhi * math.Sin(theta),
	}
}
