package garland

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a gesture script.
type scriptStep struct {
	Action string  `json:"action"`
	HandX  float64 `json:"handX,omitempty"`
	HandY  float64 `json:"handY,omitempty"`
	HandZ  float64 `json:"handZ,omitempty"`
	Open   bool    `json:"open,omitempty"`
	Entity int     `json:"entity,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// gestureScript is the top-level JSON structure for a gesture script.
type gestureScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays a scripted sequence of gesture samples into a Scene
// frame by frame, standing in for the live hand-tracking collaborator in
// automated tests and demo recordings.
//
// Supported actions:
//
//	gesture     - set a tracked sample (handX/handY/handZ/open), hold for
//	              "frames" frames (default 1)
//	untrack     - report tracking lost, hold for "frames" frames
//	toggleFocus - request focus on "entity"
//	wait        - hold the current sample for "frames" frames
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	current   DriverSnapshot
	done      bool
}

// LoadGestureScript parses a JSON gesture script.
func LoadGestureScript(jsonData []byte) (*ScriptRunner, error) {
	var script gestureScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	for i, step := range script.Steps {
		switch step.Action {
		case "gesture", "untrack", "toggleFocus", "wait":
		default:
			return nil, fmt.Errorf("gesture script step %d: unknown action %q", i, step.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// Done reports whether the script has been fully consumed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Snapshot returns the gesture sample the script currently holds.
func (r *ScriptRunner) Snapshot() DriverSnapshot {
	return r.current
}

// Step consumes script actions for one frame and advances the scene by dt.
// After the script ends, Step keeps updating the scene with the final
// sample so trailing animation can settle.
func (r *ScriptRunner) Step(s *Scene, dt float64) {
	if r.waitCount > 0 {
		r.waitCount--
	} else {
		r.advance(s)
	}
	s.Update(r.current, dt)
}

// advance applies steps until one that consumes a frame is reached.
func (r *ScriptRunner) advance(s *Scene) {
	for r.cursor < len(r.steps) {
		step := r.steps[r.cursor]
		r.cursor++

		frames := step.Frames
		if frames < 1 {
			frames = 1
		}

		switch step.Action {
		case "gesture":
			r.current = DriverSnapshot{
				HandX:    step.HandX,
				HandY:    step.HandY,
				HandZ:    step.HandZ,
				Tracking: true,
				HandOpen: step.Open,
			}
			r.waitCount = frames - 1
			return
		case "untrack":
			r.current = DriverSnapshot{}
			r.waitCount = frames - 1
			return
		case "toggleFocus":
			// Instantaneous; does not consume a frame.
			s.ToggleFocus(step.Entity)
		case "wait":
			r.waitCount = frames - 1
			return
		}
	}
	r.done = true
}
