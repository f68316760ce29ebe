// Package svgexport renders a task snapshot as a standalone SVG Gantt
// chart. It is a pure function of (tasks, window, options): bar
// placement comes from the timeline geometry and connectors from the
// depline layout, so the exported chart matches what the TUI shows.
package svgexport

import (
	"fmt"
	"html"
	"strings"

	"ganttly/internal/depline"
	"ganttly/internal/model"
	"ganttly/internal/timeline"
)

type Options struct {
	Width    int // total canvas width in pixels
	Density  model.Density
	LabelCol int // reserved label column width in pixels
}

func DefaultOptions() Options {
	return Options{Width: 1200, Density: model.DensityDefault, LabelCol: 220}
}

const (
	defaultBarColor = "#4f46e5"
	headerHeight    = 36
	barInset        = 6
)

// Render draws the visible tasks in display order. Dependency pairs
// referencing tasks outside the list are dropped by the layout, exactly
// as in the interactive view.
func Render(tasks []model.Task, w timeline.Window, opts Options) string {
	if opts.Width <= 0 {
		opts.Width = DefaultOptions().Width
	}
	if opts.LabelCol <= 0 || opts.LabelCol >= opts.Width {
		opts.LabelCol = DefaultOptions().LabelCol
	}

	rowH := depline.RowHeight(opts.Density)
	chartW := float64(opts.Width - opts.LabelCol)
	height := headerHeight + int(rowH)*len(tasks) + 1

	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<defs>
<style>
.task-label { font-family: sans-serif; font-size: 12px; fill: #111827; }
.axis-label { font-family: sans-serif; font-size: 11px; fill: #6b7280; }
</style>
</defs>
`, opts.Width, height))

	writeAxis(&svg, w, opts, chartW)

	// Row grid.
	for i := 0; i <= len(tasks); i++ {
		y := headerHeight + float64(i)*rowH
		svg.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#e5e7eb" stroke-width="1"/>`,
			y, opts.Width, y))
		svg.WriteString("\n")
	}

	// Dependency connectors go under the bars.
	for _, l := range depline.Layout(tasks, w, opts.Density) {
		x1 := float64(opts.LabelCol) + l.X1/100*chartW
		x2 := float64(opts.LabelCol) + l.X2/100*chartW
		cx1 := float64(opts.LabelCol) + l.CX1/100*chartW
		cx2 := float64(opts.LabelCol) + l.CX2/100*chartW
		y1 := headerHeight + l.Y1
		y2 := headerHeight + l.Y2
		svg.WriteString(fmt.Sprintf(`<path d="M%.1f,%.1f C%.1f,%.1f %.1f,%.1f %.1f,%.1f" stroke="#9ca3af" stroke-width="1.5" fill="none"/>`,
			x1, y1, cx1, y1, cx2, y2, x2, y2))
		svg.WriteString("\n")
	}

	for i, t := range tasks {
		g := timeline.Bar(t.Start, t.End, w)
		x := float64(opts.LabelCol) + g.LeftPercent/100*chartW
		bw := g.WidthPercent / 100 * chartW
		y := headerHeight + float64(i)*rowH + barInset
		bh := rowH - 2*barInset

		color := t.Color
		if color == "" {
			color = defaultBarColor
		}

		svg.WriteString(fmt.Sprintf(`<text x="8" y="%.1f" class="task-label">%s</text>`,
			headerHeight+float64(i)*rowH+rowH/2+4, html.EscapeString(t.Name)))
		svg.WriteString("\n")
		svg.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="3" fill="%s" fill-opacity="0.35"/>`,
			x, y, bw, bh, color))
		svg.WriteString("\n")
		if t.Progress > 0 {
			svg.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="3" fill="%s"/>`,
				x, y, bw*float64(t.Progress)/100, bh, color))
			svg.WriteString("\n")
		}
	}

	svg.WriteString("</svg>\n")
	return svg.String()
}

// writeAxis labels the window at weekly ticks (or daily for short
// windows).
func writeAxis(svg *strings.Builder, w timeline.Window, opts Options, chartW float64) {
	step := 7
	if w.TotalDays <= 14 {
		step = 1
	}
	for d := 0; d <= w.TotalDays; d += step {
		date := w.Start.AddDate(0, 0, d)
		x := float64(opts.LabelCol) + timeline.DateX(date, w)/100*chartW
		svg.WriteString(fmt.Sprintf(`<text x="%.1f" y="22" class="axis-label" text-anchor="middle">%s</text>`,
			x, date.Format("Jan 2")))
		svg.WriteString("\n")
		svg.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%d" x2="%.1f" y2="%d" stroke="#d1d5db" stroke-width="1"/>`,
			x, headerHeight-6, x, headerHeight))
		svg.WriteString("\n")
	}
}
