package depline

import (
	"testing"
	"time"

	"ganttly/internal/model"
	"ganttly/internal/timeline"
)

func day(n int) time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestLayoutOneLinePerVisiblePair(t *testing.T) {
	w := timeline.NewWindow(day(0), day(10))
	a := model.Task{ID: "a", Name: "A", Start: day(1), End: day(3)}
	b := model.Task{ID: "b", Name: "B", Start: day(5), End: day(8), Dependencies: []string{"a"}}

	lines := Layout([]model.Task{a, b}, w, model.DensityDefault)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line; got %d", len(lines))
	}
	l := lines[0]
	if l.FromTaskID != "a" || l.ToTaskID != "b" {
		t.Fatalf("expected a->b; got %s->%s", l.FromTaskID, l.ToTaskID)
	}
	if l.X1 != 30 { // A ends Day3 in a 10-day window
		t.Fatalf("expected X1=30; got %v", l.X1)
	}
	if l.X2 != 50 { // B starts Day5
		t.Fatalf("expected X2=50; got %v", l.X2)
	}
	if l.Y1 != RowHeightDefault/2 || l.Y2 != RowHeightDefault+RowHeightDefault/2 {
		t.Fatalf("unexpected row centers: y1=%v y2=%v", l.Y1, l.Y2)
	}
}

func TestLayoutDropsFilteredOutPrerequisites(t *testing.T) {
	w := timeline.NewWindow(day(0), day(10))
	b := model.Task{ID: "b", Name: "B", Start: day(5), End: day(8), Dependencies: []string{"a"}}

	// A is filtered out of the visible set: no line may reference it.
	lines := Layout([]model.Task{b}, w, model.DensityDefault)
	if len(lines) != 0 {
		t.Fatalf("expected 0 lines; got %d", len(lines))
	}
}

func TestLayoutDropsMissingIDs(t *testing.T) {
	w := timeline.NewWindow(day(0), day(10))
	b := model.Task{ID: "b", Name: "B", Start: day(5), End: day(8), Dependencies: []string{"ghost"}}
	if lines := Layout([]model.Task{b}, w, model.DensityDefault); len(lines) != 0 {
		t.Fatalf("expected dangling dependency to be dropped; got %d lines", len(lines))
	}
}

func TestSameRowLineStillCurves(t *testing.T) {
	// Degenerate but possible under filtering: both endpoints on row 0.
	w := timeline.NewWindow(day(0), day(10))
	a := model.Task{ID: "a", Name: "A", Start: day(1), End: day(3), Dependencies: []string{"a"}}

	lines := Layout([]model.Task{a}, w, model.DensityCompact)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line; got %d", len(lines))
	}
	l := lines[0]
	if l.CX1-l.X1 != MinCurveOffset || l.X2-l.CX2 != MinCurveOffset {
		t.Fatalf("expected control offset floored at %v; got %v and %v", MinCurveOffset, l.CX1-l.X1, l.X2-l.CX2)
	}
}

func TestRowHeightByDensity(t *testing.T) {
	cases := []struct {
		d    model.Density
		want float64
	}{
		{model.DensityCompact, RowHeightCompact},
		{model.DensityDefault, RowHeightDefault},
		{model.DensityComfortable, RowHeightComfortable},
		{"bogus", RowHeightDefault},
	}
	for _, c := range cases {
		if got := RowHeight(c.d); got != c.want {
			t.Fatalf("RowHeight(%q) = %v; want %v", c.d, got, c.want)
		}
	}
}
