package garland

import (
	"math"
	"testing"
)

func TestProgressConvergence(t *testing.T) {
	p := NewProgressController(ProgressConfig{ScatterRate: 4, GatherRate: 4})
	p.SetDriver(true)

	// 2 simulated seconds at 60 ticks/second.
	const dt = 1.0 / 60.0
	prev := p.Value()
	for i := 0; i < 120; i++ {
		p.Update(dt)
		v := p.Value()
		if v < prev {
			t.Fatalf("tick %d: value decreased %v -> %v while driver=1", i, prev, v)
		}
		if v > 1 {
			t.Fatalf("tick %d: value %v overshot 1", i, v)
		}
		prev = v
	}

	want := 1 - math.Exp(-8)
	if got := p.Value(); math.Abs(got-want) > 1e-3 {
		t.Errorf("value after 2s = %v, want %v ± 1e-3", got, want)
	}
}

func TestProgressNeverLeavesUnitInterval(t *testing.T) {
	p := NewProgressController(ProgressConfig{ScatterRate: 50})
	p.SetDriver(true)

	// A dt spike (tab stall) must clamp, not overshoot.
	p.Update(10)
	if v := p.Value(); v != 1 {
		t.Errorf("value after spike = %v, want 1", v)
	}

	p.SetDriver(false)
	p.Update(10)
	if v := p.Value(); v != 0 {
		t.Errorf("value after reverse spike = %v, want 0", v)
	}
}

func TestProgressZeroDtNoOp(t *testing.T) {
	p := NewProgressController(ProgressConfig{})
	p.SetDriver(true)
	p.Update(1.0 / 60)
	before := p.Value()
	p.Update(0)
	if p.Value() != before {
		t.Errorf("value changed on dt=0: %v -> %v", before, p.Value())
	}
}

func TestProgressAsymmetricRates(t *testing.T) {
	p := NewProgressController(ProgressConfig{ScatterRate: 8, GatherRate: 2})

	p.SetDriver(true)
	p.Update(0.1)
	scatterStep := p.Value()

	p = NewProgressController(ProgressConfig{ScatterRate: 8, GatherRate: 2})
	p.SetValue(1)
	p.SetDriver(false)
	p.Update(0.1)
	gatherStep := 1 - p.Value()

	if scatterStep <= gatherStep {
		t.Errorf("scatter step %v not larger than gather step %v", scatterStep, gatherStep)
	}
}

func TestProgressScatterActiveTracksDriver(t *testing.T) {
	p := NewProgressController(ProgressConfig{})
	if p.ScatterActive() {
		t.Error("scatter active at rest")
	}
	p.SetDriver(true)
	if !p.ScatterActive() {
		t.Error("scatter not active after SetDriver(true)")
	}
	p.SetDriver(false)
	if p.ScatterActive() {
		t.Error("scatter still active after SetDriver(false)")
	}
}

func TestProgressSetValueClamps(t *testing.T) {
	p := NewProgressController(ProgressConfig{})
	p.SetValue(1.7)
	if v := p.Value(); v != 1 {
		t.Errorf("value = %v, want 1", v)
	}
	p.SetValue(-0.3)
	if v := p.Value(); v != 0 {
		t.Errorf("value = %v, want 0", v)
	}
}
