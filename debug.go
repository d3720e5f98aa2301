package garland

import (
	"fmt"
	"os"
	"time"
)

// frameStats holds per-tick stage timings and counts.
// Only populated when Scene.debug is true.
type frameStats struct {
	progressTime   time.Duration
	transitionTime time.Duration
	focusTime      time.Duration
	cameraTime     time.Duration
	entityCount    int
}

// now returns the current time, or the zero time when timing is disabled.
func (s *Scene) now() time.Time {
	if !s.debug {
		return time.Time{}
	}
	return time.Now()
}

// debugLog prints stage timings to stderr.
func (s *Scene) debugLog() {
	st := &s.stats
	total := st.progressTime + st.transitionTime + st.focusTime + st.cameraTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[garland] progress: %v | transition: %v | focus: %v | camera: %v | total: %v\n",
		st.progressTime, st.transitionTime, st.focusTime, st.cameraTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[garland] entities: %d | focused: %d | progress: %.3f\n",
		st.entityCount, s.focus.Focused(), s.progress.Value())
}
