package garland

import (
	"strconv"
	"testing"
)

func TestLoadGestureScriptRejectsBadJSON(t *testing.T) {
	if _, err := LoadGestureScript([]byte("{")); err == nil {
		t.Error("malformed JSON accepted")
	}
}

func TestLoadGestureScriptRejectsUnknownAction(t *testing.T) {
	script := []byte(`{"steps":[{"action":"teleport"}]}`)
	if _, err := LoadGestureScript(script); err == nil {
		t.Error("unknown action accepted")
	}
}

func TestScriptRunnerHoldsGesture(t *testing.T) {
	script := []byte(`{"steps":[
		{"action":"gesture","handX":0.5,"handY":0.5,"handZ":0.2,"open":true,"frames":5},
		{"action":"untrack"}
	]}`)
	r, err := LoadGestureScript(script)
	if err != nil {
		t.Fatal(err)
	}
	s := NewScene(testSceneConfig())

	for i := 0; i < 5; i++ {
		r.Step(s, 1.0/60)
		snap := r.Snapshot()
		if !snap.Tracking || !snap.HandOpen {
			t.Fatalf("frame %d: snapshot = %+v, want open tracked hand", i, snap)
		}
	}

	r.Step(s, 1.0/60)
	if r.Snapshot().Tracking {
		t.Error("tracking survived the untrack step")
	}

	// The step after the last action exhausts the script.
	r.Step(s, 1.0/60)
	if !r.Done() {
		t.Error("runner not done after the last step")
	}
}

func TestScriptRunnerTogglesFocus(t *testing.T) {
	cfg := testSceneConfig()
	s := NewScene(cfg)
	cardIdx := cfg.Ornaments.Count

	script := []byte(`{"steps":[
		{"action":"gesture","handX":0.5,"handY":0.5,"handZ":0.2,"open":true,"frames":120},
		{"action":"toggleFocus","entity":` + strconv.Itoa(cardIdx) + `},
		{"action":"wait","frames":10}
	]}`)
	r, err := LoadGestureScript(script)
	if err != nil {
		t.Fatal(err)
	}

	for !r.Done() {
		r.Step(s, 1.0/60)
	}
	if s.Focused() != cardIdx {
		t.Errorf("focused = %d, want %d", s.Focused(), cardIdx)
	}
}

func TestScriptRunnerKeepsFinalSample(t *testing.T) {
	script := []byte(`{"steps":[{"action":"gesture","handX":0.1,"open":true}]}`)
	r, err := LoadGestureScript(script)
	if err != nil {
		t.Fatal(err)
	}
	s := NewScene(testSceneConfig())

	// Past the end of the script the last sample keeps feeding the scene
	// so trailing animation can settle.
	for i := 0; i < 10; i++ {
		r.Step(s, 1.0/60)
	}
	if !r.Done() {
		t.Error("runner not done")
	}
	if !r.Snapshot().HandOpen {
		t.Error("final sample dropped after script end")
	}
}
