package timeline

import (
	"time"

	"ganttly/internal/model"
)

// MinWidthPercent keeps very short tasks visible: no bar renders
// narrower than this share of the row.
const MinWidthPercent = 2.0

// BarGeometry is a bar's horizontal placement as percentages of the row
// width. Left is clamped to [0,100]; Width has a floor of
// MinWidthPercent and never extends past the right edge.
type BarGeometry struct {
	LeftPercent  float64
	WidthPercent float64
}

// Bar projects a task's date span into the window.
func Bar(start, end time.Time, w Window) BarGeometry {
	startDays := ceilDays(w.Start, model.Day(start))
	spanDays := ceilDays(model.Day(start), model.Day(end))

	left := clamp(0, 100, float64(startDays)/float64(w.TotalDays)*100)
	width := clamp(MinWidthPercent, 100-left, float64(spanDays)/float64(w.TotalDays)*100)
	return BarGeometry{LeftPercent: left, WidthPercent: width}
}

// DateX projects a single date to its horizontal position in the window,
// clamped to [0,100]. Dependency line endpoints use this directly.
func DateX(d time.Time, w Window) float64 {
	days := ceilDays(w.Start, model.Day(d))
	return clamp(0, 100, float64(days)/float64(w.TotalDays)*100)
}

// ProgressFromClick maps a click inside a bar to a progress percentage,
// snapped to the nearest 10 and clamped to [0,100].
func ProgressFromClick(clickX, barWidth float64) int {
	if barWidth <= 0 {
		return 0
	}
	pct := clickX / barWidth * 100
	snapped := int((pct+5)/10) * 10
	if snapped < 0 {
		return 0
	}
	if snapped > 100 {
		return 100
	}
	return snapped
}

func clamp(lo, hi, v float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
