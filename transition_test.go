package garland

import (
	"math"
	"testing"
)

// singleEntityRegistry builds a registry with one entity at controlled
// destinations.
func singleEntityRegistry(kind Kind) *Registry {
	reg := NewRegistry(1)
	reg.Spawn(SpawnConfig{
		Count:  1,
		Kind:   kind,
		Cone:   ConeLayout{Height: 2, Width: 1},
		Sphere: SphereLayout{Scale: 10},
	}, testRNG())
	e := reg.At(0)
	e.Formation = Vec3{X: 1}
	e.Chaos = Vec3{X: 20}
	e.Current = e.Formation
	e.FormationRot = Vec3{}
	e.ChaosRot = Vec3{Y: 2}
	e.Rotation = Vec3{}
	return reg
}

func TestTransitionApproachesSelectedDestination(t *testing.T) {
	engine := NewTransitionEngine(TransitionConfig{FloatThreshold: 1.5})
	reg := singleEntityRegistry(KindOrnament)
	e := reg.At(0)

	// Below the threshold the destination is formation; the entity is
	// already there and must stay.
	engine.Update(reg, 0.4, 1.0/60)
	if d := e.Current.DistanceTo(e.Formation); d > 1e-9 {
		t.Errorf("moved off formation at progress 0.4: distance %v", d)
	}

	// Above the threshold it closes on chaos, monotonically.
	prev := e.Current.DistanceTo(e.Chaos)
	for i := 0; i < 120; i++ {
		engine.Update(reg, 0.9, 1.0/60)
		d := e.Current.DistanceTo(e.Chaos)
		if d > prev+1e-12 {
			t.Fatalf("tick %d: distance to chaos grew %v -> %v", i, prev, d)
		}
		prev = d
	}
	if prev > 2 {
		t.Errorf("distance to chaos after 2s = %v, want well under 2", prev)
	}
}

func TestTransitionHardThresholdAtMidpoint(t *testing.T) {
	engine := NewTransitionEngine(TransitionConfig{FloatThreshold: 1.5})
	reg := singleEntityRegistry(KindOrnament)
	e := reg.At(0)

	engine.Update(reg, 0.51, 1.0/60)
	if e.Current.X <= 1 {
		t.Error("progress 0.51 did not select chaos")
	}

	// With no hysteresis the destination flips straight back at 0.49.
	x := e.Current.X
	engine.Update(reg, 0.49, 1.0/60)
	if e.Current.X >= x {
		t.Error("progress 0.49 did not select formation")
	}
}

func TestTransitionHysteresisBand(t *testing.T) {
	engine := NewTransitionEngine(TransitionConfig{HysteresisBand: 0.05, FloatThreshold: 1.5})
	reg := singleEntityRegistry(KindOrnament)
	e := reg.At(0)

	// Inside the band nothing switches: still formation.
	engine.Update(reg, 0.53, 1.0/60)
	if d := e.Current.DistanceTo(e.Formation); d > 1e-9 {
		t.Errorf("switched inside the band: distance %v", d)
	}

	// Crossing 0.55 switches out.
	engine.Update(reg, 0.56, 1.0/60)
	if e.Current.X <= 1 {
		t.Error("did not switch above 0.55")
	}

	// Dropping back into the band keeps chaos selected.
	x := e.Current.X
	engine.Update(reg, 0.5, 1.0/60)
	if e.Current.X <= x {
		t.Error("band re-entry flipped the destination back")
	}

	// Only crossing 0.45 gathers again.
	x = e.Current.X
	engine.Update(reg, 0.44, 1.0/60)
	if e.Current.X >= x {
		t.Error("did not switch below 0.45")
	}
}

func TestTransitionZeroDtIsNoOp(t *testing.T) {
	engine := NewTransitionEngine(TransitionConfig{})
	reg := singleEntityRegistry(KindOrnament)
	e := reg.At(0)
	e.Current = Vec3{X: 5}

	before := *e
	engine.Update(reg, 1.0, 0)
	if e.Current != before.Current || e.Rotation != before.Rotation {
		t.Errorf("dt=0 mutated entity: %+v -> %+v", before, *e)
	}
}

func TestTransitionLargeDtNeverOvershoots(t *testing.T) {
	engine := NewTransitionEngine(TransitionConfig{FloatThreshold: 1.5})
	reg := singleEntityRegistry(KindOrnament)
	e := reg.At(0)

	engine.Update(reg, 1.0, 100)
	if e.Current != e.Chaos {
		t.Errorf("huge dt: Current = %+v, want exactly chaos %+v", e.Current, e.Chaos)
	}
	if math.IsNaN(e.Current.X) || math.IsNaN(e.Rotation.Y) {
		t.Error("huge dt produced NaN")
	}
}

func TestTransitionFloatMotionBounded(t *testing.T) {
	engine := NewTransitionEngine(TransitionConfig{FloatAmplitude: 0.5})
	reg := singleEntityRegistry(KindOrnament)
	e := reg.At(0)
	e.Current = e.Chaos

	// Fully scattered: the wobble must stay within its amplitude bound
	// around the settled destination on every axis.
	for i := 0; i < 600; i++ {
		engine.Update(reg, 1.0, 1.0/60)
		off := e.Current.Sub(e.Chaos)
		if math.Abs(off.X) > 1.01 || math.Abs(off.Y) > 1.01 || math.Abs(off.Z) > 1.01 {
			t.Fatalf("tick %d: float offset %+v exceeded 2x amplitude", i, off)
		}
	}
}

func TestTransitionSpinsWhileFloating(t *testing.T) {
	engine := NewTransitionEngine(TransitionConfig{SpinRate: 1})
	reg := singleEntityRegistry(KindOrnament)
	e := reg.At(0)

	before := e.Rotation.Y
	for i := 0; i < 60; i++ {
		engine.Update(reg, 1.0, 1.0/60)
	}
	if got := e.Rotation.Y - before; math.Abs(got-1) > 1e-9 {
		t.Errorf("spin after 1s = %v, want 1", got)
	}
}

func TestTransitionOrientationTargetsBelowFloatThreshold(t *testing.T) {
	engine := NewTransitionEngine(TransitionConfig{FloatThreshold: 1.5})
	reg := singleEntityRegistry(KindOrnament)
	e := reg.At(0)

	for i := 0; i < 300; i++ {
		engine.Update(reg, 0.9, 1.0/60)
	}
	if d := math.Abs(e.Rotation.Y - e.ChaosRot.Y); d > 0.05 {
		t.Errorf("rotation %v not near chaos target %v", e.Rotation.Y, e.ChaosRot.Y)
	}
}

func TestTransitionScaleCurve(t *testing.T) {
	engine := NewTransitionEngine(TransitionConfig{ScatterScaleBoost: 0.25})
	reg := singleEntityRegistry(KindOrnament)
	e := reg.At(0)
	e.BaseScale = 2

	engine.Update(reg, 1.0, 1.0/60)
	if want := 2 * 1.25; math.Abs(e.Scale-want) > 1e-9 {
		t.Errorf("scale at progress 1 = %v, want %v", e.Scale, want)
	}

	engine.Update(reg, 0.0, 1.0/60)
	if math.Abs(e.Scale-2) > 1e-9 {
		t.Errorf("scale at progress 0 = %v, want 2", e.Scale)
	}
}

func TestTransitionSkipsFocusedEntities(t *testing.T) {
	engine := NewTransitionEngine(TransitionConfig{})
	reg := singleEntityRegistry(KindCard)
	e := reg.At(0)
	e.Focused = true
	e.Current = Vec3{X: 5}

	engine.Update(reg, 1.0, 1.0/60)
	if e.Current != (Vec3{X: 5}) {
		t.Errorf("focused entity moved to %+v", e.Current)
	}
}
