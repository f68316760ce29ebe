package timeline

import (
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestBarBasicProjection(t *testing.T) {
	w := NewWindow(day(0), day(10))
	if w.TotalDays != 10 {
		t.Fatalf("expected 10 total days; got %d", w.TotalDays)
	}

	g := Bar(day(2), day(4), w)
	if g.LeftPercent != 20 {
		t.Fatalf("expected left 20; got %v", g.LeftPercent)
	}
	if g.WidthPercent != 20 {
		t.Fatalf("expected width 20; got %v", g.WidthPercent)
	}
}

func TestBarClampsBeforeWindow(t *testing.T) {
	w := NewWindow(day(0), day(10))
	g := Bar(day(-5), day(-3), w)
	if g.LeftPercent != 0 {
		t.Fatalf("expected left clamped to 0; got %v", g.LeftPercent)
	}
}

func TestBarWidthFloor(t *testing.T) {
	// One day out of 100 would be 1%; the floor keeps it visible.
	w := NewWindow(day(0), day(100))
	g := Bar(day(10), day(11), w)
	if g.WidthPercent != MinWidthPercent {
		t.Fatalf("expected width floored to %v; got %v", MinWidthPercent, g.WidthPercent)
	}
}

func TestBarWidthNeverOverflowsRow(t *testing.T) {
	w := NewWindow(day(0), day(10))
	g := Bar(day(9), day(30), w)
	if g.LeftPercent+g.WidthPercent > 100 {
		t.Fatalf("bar overflows row: left=%v width=%v", g.LeftPercent, g.WidthPercent)
	}
}

func TestDateXClamped(t *testing.T) {
	w := NewWindow(day(0), day(10))
	if got := DateX(day(5), w); got != 50 {
		t.Fatalf("expected 50; got %v", got)
	}
	if got := DateX(day(-3), w); got != 0 {
		t.Fatalf("expected 0; got %v", got)
	}
	if got := DateX(day(30), w); got != 100 {
		t.Fatalf("expected 100; got %v", got)
	}
}

func TestProgressFromClickSnaps(t *testing.T) {
	cases := []struct {
		clickX, barWidth float64
		want             int
	}{
		{0, 200, 0},
		{74, 200, 40},   // 37% -> 40
		{66, 200, 30},   // 33% -> 30
		{200, 200, 100}, // right edge
		{300, 200, 100}, // past the edge clamps
		{-10, 200, 0},
		{50, 0, 0}, // degenerate bar
	}
	for _, c := range cases {
		if got := ProgressFromClick(c.clickX, c.barWidth); got != c.want {
			t.Fatalf("ProgressFromClick(%v, %v) = %d; want %d", c.clickX, c.barWidth, got, c.want)
		}
	}
}

func TestWindowForEmptyTaskList(t *testing.T) {
	w := WindowFor(nil, "week", day(0))
	if w.TotalDays < 1 {
		t.Fatalf("expected a non-degenerate window; got %d days", w.TotalDays)
	}
	if !w.Start.Before(day(0)) || !w.End.After(day(0)) {
		t.Fatalf("expected window around today; got %v..%v", w.Start, w.End)
	}
}
