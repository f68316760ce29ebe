package timeline

import (
	"testing"

	"ganttly/internal/history"
	"ganttly/internal/model"
)

func TestDragMoveWholeBar(t *testing.T) {
	w := NewWindow(day(0), day(70))
	s := NewDragSession()

	if !s.Start(DragMove, "t1", day(0), day(7), 100, 700, w) {
		t.Fatalf("expected session to start")
	}

	// 700px / 70 days = 10px per day; +30px = +3 days.
	ch, ok := s.Move(130)
	if !ok {
		t.Fatalf("expected accepted proposal")
	}
	if !ch.Start.Equal(day(3)) || !ch.End.Equal(day(10)) {
		t.Fatalf("expected Day3..Day10; got %v..%v", ch.Start, ch.End)
	}

	final, changed := s.End()
	if !changed {
		t.Fatalf("expected end-of-gesture change")
	}
	if !final.Start.Equal(day(3)) || !final.End.Equal(day(10)) {
		t.Fatalf("expected final Day3..Day10; got %v..%v", final.Start, final.End)
	}
	if s.Active() {
		t.Fatalf("expected session idle after End")
	}
}

func TestDragRoundsToNearestDay(t *testing.T) {
	w := NewWindow(day(0), day(70))
	s := NewDragSession()
	s.Start(DragMove, "t1", day(0), day(7), 0, 700, w)

	// 4px at 10px/day rounds to 0 days.
	ch, ok := s.Move(4)
	if !ok || !ch.Start.Equal(day(0)) {
		t.Fatalf("expected no day shift for 4px; got %v", ch.Start)
	}
	// 6px rounds to 1 day.
	ch, ok = s.Move(6)
	if !ok || !ch.Start.Equal(day(1)) {
		t.Fatalf("expected +1 day for 6px; got %v", ch.Start)
	}
}

func TestResizeLeftRejectsBelowMinSpan(t *testing.T) {
	w := NewWindow(day(0), day(10))
	s := NewDragSession()
	s.Start(DragResizeLeft, "t1", day(5), day(6), 0, 1000, w) // 100px/day

	// Proposing newStart=Day6 crosses within 1 day of the end date.
	if _, ok := s.Move(100); ok {
		t.Fatalf("expected left-resize proposal to be rejected")
	}

	// The gesture ends without any date change.
	if _, changed := s.End(); changed {
		t.Fatalf("expected no change after only rejected proposals")
	}
}

func TestResizeRightRejectsBelowMinSpan(t *testing.T) {
	w := NewWindow(day(0), day(10))
	s := NewDragSession()
	s.Start(DragResizeRight, "t1", day(5), day(8), 0, 1000, w)

	// newEnd=Day6 <= start+1 is rejected; newEnd=Day7 is fine.
	if _, ok := s.Move(-200); ok {
		t.Fatalf("expected right-resize to Day6 to be rejected")
	}
	ch, ok := s.Move(-100)
	if !ok || !ch.End.Equal(day(7)) {
		t.Fatalf("expected accepted resize to Day7; got %v ok=%v", ch.End, ok)
	}
}

func TestOnlyOneActiveSessionPerBar(t *testing.T) {
	w := NewWindow(day(0), day(10))
	s := NewDragSession()
	if !s.Start(DragMove, "t1", day(1), day(3), 0, 500, w) {
		t.Fatalf("first start should succeed")
	}
	if s.Start(DragResizeLeft, "t1", day(1), day(3), 0, 500, w) {
		t.Fatalf("second start while active should be rejected")
	}
	s.Cancel()
	if !s.Start(DragResizeLeft, "t1", day(1), day(3), 0, 500, w) {
		t.Fatalf("start after cancel should succeed")
	}
}

// Simulates the full gesture: live proposals on every move, one history
// entry for the whole gesture, undo restoring the pre-drag dates.
func TestDragGestureCommitsOnceToHistory(t *testing.T) {
	tasks := []model.Task{{ID: "x", Name: "X", Start: day(0), End: day(7)}}
	h := history.New(tasks, 0)

	w := NewWindow(day(0), day(70))
	s := NewDragSession()
	s.Start(DragMove, "x", day(0), day(7), 100, 700, w)

	// Pointer wanders through several intermediate positions.
	var live []DateChange
	for _, x := range []float64{110, 118, 125, 130} {
		if ch, ok := s.Move(x); ok {
			live = append(live, ch)
		}
	}
	if len(live) == 0 {
		t.Fatalf("expected live proposals during the drag")
	}

	final, changed := s.End()
	if !changed {
		t.Fatalf("expected a net change")
	}
	if !final.Start.Equal(day(3)) || !final.End.Equal(day(10)) {
		t.Fatalf("expected Day3..Day10; got %v..%v", final.Start, final.End)
	}

	// One commit for the gesture, not one per move event.
	next := append([]model.Task(nil), h.Current()...)
	next[0].Start, next[0].End = final.Start, final.End
	h.Set(next)

	if h.Len() != 2 {
		t.Fatalf("expected exactly one new history entry; len=%d", h.Len())
	}
	restored, ok := h.Undo()
	if !ok {
		t.Fatalf("undo failed")
	}
	if !restored[0].Start.Equal(day(0)) || !restored[0].End.Equal(day(7)) {
		t.Fatalf("undo did not restore Day0..Day7; got %v..%v", restored[0].Start, restored[0].End)
	}
}
