// Package timeline converts task dates to bar geometry and pointer drags
// to calendar-day deltas. It owns no state beyond an in-flight drag
// session; geometry is a pure function of (task dates, window).
package timeline

import (
	"time"

	"ganttly/internal/model"
)

// Window is the visible date range. Start and End are inclusive calendar
// dates (UTC midnight); TotalDays is derived and the window is never
// persisted.
type Window struct {
	Start     time.Time
	End       time.Time
	TotalDays int
}

// NewWindow normalizes both endpoints to calendar dates and derives the
// day count. A degenerate range still spans one day so later divisions
// are safe.
func NewWindow(start, end time.Time) Window {
	start = model.Day(start)
	end = model.Day(end)
	if end.Before(start) {
		start, end = end, start
	}
	days := ceilDays(start, end)
	if days < 1 {
		days = 1
	}
	return Window{Start: start, End: end, TotalDays: days}
}

// WindowFor derives the visible window from the task set and zoom level:
// the span of all tasks padded per view mode, or a default span around
// today when there are no tasks.
func WindowFor(tasks []model.Task, mode model.ViewMode, today time.Time) Window {
	today = model.Day(today)

	var pad int
	switch mode {
	case model.ViewModeDay:
		pad = 3
	case model.ViewModeMonth:
		pad = 30
	default:
		pad = 7
	}

	if len(tasks) == 0 {
		return NewWindow(today.AddDate(0, 0, -pad), today.AddDate(0, 0, 4*pad))
	}

	min, max := model.Day(tasks[0].Start), model.Day(tasks[0].End)
	for _, t := range tasks[1:] {
		if s := model.Day(t.Start); s.Before(min) {
			min = s
		}
		if e := model.Day(t.End); e.After(max) {
			max = e
		}
	}
	return NewWindow(min.AddDate(0, 0, -pad), max.AddDate(0, 0, pad))
}

// ceilDays counts whole days from a to b, rounding partial days up.
func ceilDays(a, b time.Time) int {
	d := b.Sub(a)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}
