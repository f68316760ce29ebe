// Package depline computes connector geometry between dependent tasks.
//
// The layout is stateless: it is recomputed from scratch on every change
// to the task list, filter, window, or density. O(tasks x dependencies)
// per pass is acceptable at the task counts this tool handles.
package depline

import (
	"math"

	"ganttly/internal/model"
	"ganttly/internal/timeline"
)

// Row heights in pixels per density setting.
const (
	RowHeightCompact     = 28
	RowHeightDefault     = 40
	RowHeightComfortable = 52
)

// MinCurveOffset keeps same-row connectors visibly curved instead of
// collapsing into a straight overlap with the bars.
const MinCurveOffset = 24.0

// Line connects a prerequisite task to its dependent. X coordinates are
// percentages of the row width ([0,100]); Y coordinates are pixels.
type Line struct {
	FromTaskID string
	ToTaskID   string

	X1, Y1 float64 // prerequisite end-date, row center
	X2, Y2 float64 // dependent start-date, row center

	// CX1/CX2 are the horizontal control points of the cubic segment
	// (control Ys equal the endpoint Ys).
	CX1, CX2 float64
}

// RowHeight maps a density setting to its fixed pixel row height.
func RowHeight(d model.Density) float64 {
	switch d {
	case model.DensityCompact:
		return RowHeightCompact
	case model.DensityComfortable:
		return RowHeightComfortable
	default:
		return RowHeightDefault
	}
}

// Layout produces one line per (dependency -> dependent) pair where both
// tasks are in the visible list. Pairs referencing filtered-out or
// missing tasks are dropped silently; that is the contract, not an
// error. visible must already be in display order.
func Layout(visible []model.Task, w timeline.Window, density model.Density) []Line {
	rowByID := make(map[string]int, len(visible))
	for i, t := range visible {
		rowByID[t.ID] = i
	}
	rh := RowHeight(density)

	var lines []Line
	for _, to := range visible {
		toRow := rowByID[to.ID]
		for _, fromID := range to.Dependencies {
			fromRow, ok := rowByID[fromID]
			if !ok {
				continue
			}
			from := visible[fromRow]

			x1 := timeline.DateX(from.End, w)
			x2 := timeline.DateX(to.Start, w)
			y1 := float64(fromRow)*rh + rh/2
			y2 := float64(toRow)*rh + rh/2

			// Control offset grows with vertical distance so long hops
			// sweep wide, floored so same-row lines still curve.
			offset := math.Abs(y2-y1) / 2
			if offset < MinCurveOffset {
				offset = MinCurveOffset
			}

			lines = append(lines, Line{
				FromTaskID: from.ID,
				ToTaskID:   to.ID,
				X1:         x1,
				Y1:         y1,
				X2:         x2,
				Y2:         y2,
				CX1:        x1 + offset,
				CX2:        x2 - offset,
			})
		}
	}
	return lines
}
