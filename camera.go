package garland

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// CameraPose is the camera position plus the point it looks at. Written by
// GestureCameraMapper while gesture tracking is active; left alone
// otherwise so an external manual-orbit collaborator can take over.
type CameraPose struct {
	Position Vec3
	Target   Vec3
}

// homeGlide holds the active return-to-home tweens for the camera position.
type homeGlide struct {
	x, y, z *gween.Tween
	done    bool
}

// GestureMapperConfig tunes the gesture-to-camera mapping. Zero values take
// the documented defaults.
type GestureMapperConfig struct {
	// AzimuthSpan is the total horizontal swing in radians as HandX moves
	// 0 to 1, centered on HandX = 0.5. Default π.
	AzimuthSpan float64
	// ElevationMin and ElevationMax bound the vertical angle in radians;
	// HandY interpolates between them. Defaults -0.15 and 0.85.
	ElevationMin, ElevationMax float64
	// DistanceNear and DistanceFar bound the orbit distance. A hand close
	// to the camera (high HandZ) pulls the view in. Defaults 18 and 55.
	DistanceNear, DistanceFar float64
	// HandZNear and HandZFar are the expected operating range of the
	// HandZ proxy; samples are clamped into it before interpolation.
	// Defaults 0.05 and 0.35.
	HandZNear, HandZFar float64
	// LookAt is the fixed point the camera always re-aims at.
	LookAt Vec3
	// Rate is the damped-approach rate toward the target pose. Default 5.
	Rate float64
	// Home, when GlideHome is true, is the position glided back to over
	// GlideDuration seconds after tracking is lost, before control is
	// relinquished.
	Home          Vec3
	GlideHome     bool
	GlideDuration float32
}

func (c *GestureMapperConfig) applyDefaults() {
	if c.AzimuthSpan == 0 {
		c.AzimuthSpan = math.Pi
	}
	if c.ElevationMin == 0 && c.ElevationMax == 0 {
		c.ElevationMin = -0.15
		c.ElevationMax = 0.85
	}
	if c.DistanceNear == 0 {
		c.DistanceNear = 18
	}
	if c.DistanceFar == 0 {
		c.DistanceFar = 55
	}
	if c.HandZNear == 0 {
		c.HandZNear = 0.05
	}
	if c.HandZFar == 0 {
		c.HandZFar = 0.35
	}
	if c.Rate == 0 {
		c.Rate = 5
	}
	if c.GlideDuration == 0 {
		c.GlideDuration = 1.2
	}
}

// GestureCameraMapper converts the normalized gesture signal into a
// smoothed orbit around a fixed look-at point.
type GestureCameraMapper struct {
	cfg         GestureMapperConfig
	glide       *homeGlide
	wasTracking bool
}

// NewGestureCameraMapper creates a mapper with defaults applied.
func NewGestureCameraMapper(cfg GestureMapperConfig) *GestureCameraMapper {
	cfg.applyDefaults()
	return &GestureCameraMapper{cfg: cfg}
}

// TargetFor returns the undamped orbit position for a gesture sample.
// All inputs are clamped into their documented ranges first; one malformed
// sample shifts the target, never teleports the camera.
func (m *GestureCameraMapper) TargetFor(snap DriverSnapshot) Vec3 {
	cfg := &m.cfg

	azimuth := (clamp(snap.HandX, 0, 1) - 0.5) * cfg.AzimuthSpan
	elevation := lerp(cfg.ElevationMin, cfg.ElevationMax, clamp(snap.HandY, 0, 1))

	z := clamp(snap.HandZ, cfg.HandZNear, cfg.HandZFar)
	depth := (z - cfg.HandZNear) / (cfg.HandZFar - cfg.HandZNear)
	distance := lerp(cfg.DistanceFar, cfg.DistanceNear, depth)

	cosEl := math.Cos(elevation)
	return Vec3{
		X: cfg.LookAt.X + distance*cosEl*math.Sin(azimuth),
		Y: cfg.LookAt.Y + distance*math.Sin(elevation),
		Z: cfg.LookAt.Z + distance*cosEl*math.Cos(azimuth),
	}
}

// Update advances the camera for one tick and reports whether it wrote
// pose. While tracking, the position damps toward the gesture target and
// the camera re-aims at LookAt. On tracking loss the mapper either glides
// home first (when configured) or relinquishes immediately; once it has
// returned false it writes nothing until tracking resumes, so a manual
// orbit collaborator is never fought with stale state.
func (m *GestureCameraMapper) Update(pose *CameraPose, snap DriverSnapshot, dt float64) bool {
	if snap.Tracking {
		m.wasTracking = true
		m.glide = nil

		target := m.TargetFor(snap)
		f := dampFactor(m.cfg.Rate, dt)
		pose.Position = pose.Position.Lerp(target, f)
		pose.Target = m.cfg.LookAt
		return true
	}

	if m.wasTracking {
		m.wasTracking = false
		if m.cfg.GlideHome {
			d := m.cfg.GlideDuration
			m.glide = &homeGlide{
				x: gween.New(float32(pose.Position.X), float32(m.cfg.Home.X), d, ease.OutQuad),
				y: gween.New(float32(pose.Position.Y), float32(m.cfg.Home.Y), d, ease.OutQuad),
				z: gween.New(float32(pose.Position.Z), float32(m.cfg.Home.Z), d, ease.OutQuad),
			}
		}
	}

	if m.glide != nil && !m.glide.done {
		fdt := float32(dt)
		x, _ := m.glide.x.Update(fdt)
		y, _ := m.glide.y.Update(fdt)
		z, finished := m.glide.z.Update(fdt)
		pose.Position = Vec3{X: float64(x), Y: float64(y), Z: float64(z)}
		pose.Target = m.cfg.LookAt
		if finished {
			m.glide.done = true
		}
		return true
	}

	return false
}
