package timeline

import (
	"math"
	"time"
)

// DragMode is the per-bar interaction state. Only one mode may be active
// at a time; starting a new session while one is active is rejected.
type DragMode int

const (
	DragIdle DragMode = iota
	DragMove
	DragResizeLeft
	DragResizeRight
)

// DateChange is an accepted reschedule proposal, emitted live on every
// move so the bar tracks the pointer. Downstream persistence waits for
// the end-of-gesture signal.
type DateChange struct {
	TaskID string
	Start  time.Time
	End    time.Time
}

// DragSession converts pointer movement into day deltas for one bar.
// The session snapshots the task's original dates on start; every move
// proposes new dates relative to that snapshot, so accumulated rounding
// never drifts.
type DragSession struct {
	mode   DragMode
	taskID string

	origStart time.Time
	origEnd   time.Time
	originX   float64
	pxPerDay  float64

	curStart time.Time
	curEnd   time.Time
}

func NewDragSession() *DragSession {
	return &DragSession{mode: DragIdle}
}

func (s *DragSession) Active() bool   { return s.mode != DragIdle }
func (s *DragSession) Mode() DragMode { return s.mode }
func (s *DragSession) TaskID() string {
	if s.mode == DragIdle {
		return ""
	}
	return s.taskID
}

// Start begins a drag/resize gesture. It reports false when another
// session is already active or the geometry gives no usable scale.
func (s *DragSession) Start(mode DragMode, taskID string, start, end time.Time, pointerX, containerWidth float64, w Window) bool {
	if s.mode != DragIdle || mode == DragIdle {
		return false
	}
	if containerWidth <= 0 || w.TotalDays <= 0 {
		return false
	}
	s.mode = mode
	s.taskID = taskID
	s.origStart = start
	s.origEnd = end
	s.originX = pointerX
	s.pxPerDay = containerWidth / float64(w.TotalDays)
	s.curStart = start
	s.curEnd = end
	return true
}

// Move handles a pointer-move event. It returns the accepted proposal
// and true, or false when the proposal was rejected (a resize crossing
// the 1-day-minimum span) or no session is active. Rejections are
// silent: the previous proposal simply stays in effect.
func (s *DragSession) Move(pointerX float64) (DateChange, bool) {
	if s.mode == DragIdle {
		return DateChange{}, false
	}
	deltaDays := int(math.Round((pointerX - s.originX) / s.pxPerDay))

	newStart, newEnd := s.origStart, s.origEnd
	switch s.mode {
	case DragMove:
		newStart = s.origStart.AddDate(0, 0, deltaDays)
		newEnd = s.origEnd.AddDate(0, 0, deltaDays)
	case DragResizeLeft:
		newStart = s.origStart.AddDate(0, 0, deltaDays)
		if !newStart.Before(s.origEnd.AddDate(0, 0, -1)) {
			return DateChange{}, false
		}
	case DragResizeRight:
		newEnd = s.origEnd.AddDate(0, 0, deltaDays)
		if !newEnd.After(s.origStart.AddDate(0, 0, 1)) {
			return DateChange{}, false
		}
	}

	s.curStart = newStart
	s.curEnd = newEnd
	return DateChange{TaskID: s.taskID, Start: newStart, End: newEnd}, true
}

// End closes the gesture and returns the final dates. The second result
// reports whether the dates differ from the pre-drag snapshot; callers
// commit to history (one entry per gesture) only when it is true.
func (s *DragSession) End() (DateChange, bool) {
	if s.mode == DragIdle {
		return DateChange{}, false
	}
	out := DateChange{TaskID: s.taskID, Start: s.curStart, End: s.curEnd}
	changed := !s.curStart.Equal(s.origStart) || !s.curEnd.Equal(s.origEnd)
	s.reset()
	return out, changed
}

// Cancel abandons the gesture without emitting anything. The caller is
// responsible for restoring the pre-drag dates it still holds.
func (s *DragSession) Cancel() {
	s.reset()
}

func (s *DragSession) reset() {
	*s = DragSession{mode: DragIdle}
}
