package garland

// DriverSnapshot is the immutable per-tick input from the external gesture
// collaborator. The hosting loop fills one in each frame (from camera
// tracking, scripted playback, or synthetic input) and passes it to
// Scene.Update; the animation core holds no reference to any live gesture
// state.
type DriverSnapshot struct {
	// HandX and HandY are the normalized hand position in [0, 1].
	HandX, HandY float64
	// HandZ is a proxy for hand distance from the camera, typically in
	// [0.05, 0.35]. Out-of-range samples are clamped, never rejected.
	HandZ float64
	// Tracking reports whether a hand is currently detected.
	Tracking bool
	// HandOpen reports the open-palm (scatter) vs fist (gather) gesture.
	HandOpen bool
}

// ProgressConfig tunes the scatter/gather response. The asymmetry is
// deliberate and explicit: scattering defaults snappier than re-gathering.
type ProgressConfig struct {
	// ScatterRate is the exponential-approach rate toward 1. Zero means 4.
	ScatterRate float64
	// GatherRate is the exponential-approach rate toward 0. Zero means 2.5.
	GatherRate float64
}

// ProgressController owns the single scalar progress value in [0, 1] that
// every entity reads each tick. The boolean driver sets the target; the
// value is damped toward it and never leaves [0, 1].
type ProgressController struct {
	cfg    ProgressConfig
	value  float64
	driver float64
}

// NewProgressController creates a controller at rest in formation.
func NewProgressController(cfg ProgressConfig) *ProgressController {
	if cfg.ScatterRate == 0 {
		cfg.ScatterRate = 4
	}
	if cfg.GatherRate == 0 {
		cfg.GatherRate = 2.5
	}
	return &ProgressController{cfg: cfg}
}

// SetDriver sets the transition target: true scatters, false gathers.
func (p *ProgressController) SetDriver(scatter bool) {
	if scatter {
		p.driver = 1
	} else {
		p.driver = 0
	}
}

// ScatterActive reports whether the driver currently requests the
// scattered state. Focus selection is gated on this.
func (p *ProgressController) ScatterActive() bool {
	return p.driver == 1
}

// Value returns the current smoothed progress.
func (p *ProgressController) Value() float64 {
	return p.value
}

// SetValue overrides the progress directly (clamped). Used by autopilot
// tweening; normal operation goes through SetDriver + Update.
func (p *ProgressController) SetValue(v float64) {
	p.value = clamp(v, 0, 1)
	if p.value > 0.5 {
		p.driver = 1
	} else {
		p.driver = 0
	}
}

// Update advances the value toward the driver by one damped step. The
// blend factor is clamped to [0, 1], so a dt spike after a stall cannot
// overshoot either endpoint.
func (p *ProgressController) Update(dt float64) {
	rate := p.cfg.GatherRate
	if p.driver > p.value {
		rate = p.cfg.ScatterRate
	}
	p.value += (p.driver - p.value) * dampFactor(rate, dt)
	p.value = clamp(p.value, 0, 1)
}
