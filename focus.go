package garland

import "math"

// FocusConfig tunes the focused-card presentation. Zero values take the
// documented defaults.
type FocusConfig struct {
	// Distance is how far in front of the camera, along its view
	// direction, the focused card is held. Default 8.
	Distance float64
	// Rate is the damped-approach rate for position, orientation, and
	// scale while focused. Default 6.
	Rate float64
	// ScaleBoost multiplies the card's BaseScale while focused. Default 1.8.
	ScaleBoost float64
}

func (c *FocusConfig) applyDefaults() {
	if c.Distance == 0 {
		c.Distance = 8
	}
	if c.Rate == 0 {
		c.Rate = 6
	}
	if c.ScaleBoost == 0 {
		c.ScaleBoost = 1.8
	}
}

// FocusEvent carries a focus change for the optional ECS bridge.
type FocusEvent struct {
	Entity  int
	Focused bool
}

// EventSink is the interface for optional ECS integration. When set on a
// Scene, focus changes are forwarded to it.
type EventSink interface {
	EmitFocus(event FocusEvent)
}

// FocusController manages the at-most-one focused interactive card. While
// an entity is focused the transition engine leaves it alone and this
// controller pulls it toward the viewer with the same damped approach, so
// entering and leaving focus never snaps.
type FocusController struct {
	cfg     FocusConfig
	focused int
	sink    EventSink
}

// NewFocusController creates a controller with nothing focused.
func NewFocusController(cfg FocusConfig) *FocusController {
	cfg.applyDefaults()
	return &FocusController{cfg: cfg, focused: -1}
}

// Focused returns the focused entity index, or -1.
func (f *FocusController) Focused() int {
	return f.focused
}

// Toggle requests focus on entity idx and reports whether the request took
// effect. It is a no-op unless the scatter driver is active and the entity
// is a card; cards must be out of formation before they can be inspected.
// Toggling the focused card clears it; toggling another card moves focus.
func (f *FocusController) Toggle(reg *Registry, idx int, scatterActive bool) bool {
	if !scatterActive {
		return false
	}
	if idx < 0 || idx >= reg.Len() || reg.At(idx).Kind != KindCard {
		return false
	}

	if f.focused == idx {
		f.Clear(reg)
		return true
	}
	if f.focused >= 0 {
		reg.At(f.focused).Focused = false
		f.emit(FocusEvent{Entity: f.focused, Focused: false})
	}
	f.focused = idx
	reg.At(idx).Focused = true
	f.emit(FocusEvent{Entity: idx, Focused: true})
	return true
}

// SetSink installs an optional focus-event listener.
func (f *FocusController) SetSink(sink EventSink) {
	f.sink = sink
}

func (f *FocusController) emit(event FocusEvent) {
	if f.sink != nil {
		f.sink.EmitFocus(event)
	}
}

// Clear drops focus, if any. The entity rejoins the transition pass and
// damps back toward its progress-selected destination.
func (f *FocusController) Clear(reg *Registry) {
	if f.focused >= 0 {
		reg.At(f.focused).Focused = false
		f.emit(FocusEvent{Entity: f.focused, Focused: false})
		f.focused = -1
	}
}

// Update advances the focused entity for one tick. When the driver has
// returned to the gather state, focus is forcibly cleared first: nothing
// stays focused in formation mode.
func (f *FocusController) Update(reg *Registry, pose CameraPose, scatterActive bool, dt float64) {
	if !scatterActive {
		f.Clear(reg)
		return
	}
	if f.focused < 0 {
		return
	}
	e := reg.At(f.focused)

	view := pose.Target.Sub(pose.Position).Normalized()
	hold := pose.Position.Add(view.Scale(f.cfg.Distance))

	k := dampFactor(f.cfg.Rate, dt)
	e.Current = e.Current.Lerp(hold, k)

	// Face the camera.
	facing := Vec3{Y: math.Atan2(pose.Position.X-e.Current.X, pose.Position.Z-e.Current.Z)}
	e.Rotation = e.Rotation.Lerp(facing, k)

	e.Scale += (e.BaseScale*f.cfg.ScaleBoost - e.Scale) * k
}
