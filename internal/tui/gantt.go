package tui

import (
	"strings"
	"time"

	"ganttly/internal/model"
	"ganttly/internal/timeline"

	"github.com/charmbracelet/x/ansi"
)

func (m appModel) viewGanttBody() string {
	var b strings.Builder
	b.WriteString(m.axisRow())
	b.WriteString("\n")

	if len(m.tasks) == 0 {
		b.WriteString(styleMuted().Render("No tasks. Press n to create one."))
		return padBody(b.String(), m.visibleRows()+1)
	}

	rows := m.visibleRows()
	for i := m.scroll; i < len(m.tasks) && i < m.scroll+rows; i++ {
		b.WriteString(m.taskRow(i))
		if i < len(m.tasks)-1 && i < m.scroll+rows-1 {
			b.WriteString("\n")
		}
	}
	return padBody(b.String(), m.visibleRows()+1)
}

// axisRow draws tick labels across the chart: weekly for wide windows,
// daily for short ones.
func (m appModel) axisRow() string {
	chartW := m.chartWidth()
	cells := make([]rune, chartW)
	for i := range cells {
		cells[i] = ' '
	}

	step := 7
	if m.win.TotalDays <= 14 {
		step = 1
	}
	for d := 0; d <= m.win.TotalDays; d += step {
		date := m.win.Start.AddDate(0, 0, d)
		x := int(timeline.DateX(date, m.win) / 100 * float64(chartW))
		label := []rune(date.Format("Jan 2"))
		if step == 1 {
			label = []rune(date.Format("2"))
		}
		for j, r := range label {
			if x+j >= chartW {
				break
			}
			cells[x+j] = r
		}
	}

	return strings.Repeat(" ", labelColWidth+1) + styleMuted().Render(string(cells))
}

func (m appModel) taskRow(i int) string {
	t := m.tasks[i]

	label := t.Name
	if t.Kind == model.KindIssue {
		label = "  " + label
	}
	if len(t.Dependencies) > 0 {
		label += " ⇠"
	}
	label = ansi.Truncate(label, labelColWidth, "…")
	if pad := labelColWidth - ansi.StringWidth(label); pad > 0 {
		label += strings.Repeat(" ", pad)
	}
	switch {
	case i == m.selected:
		label = styleSelected().Render(label)
	case overdue(t):
		label = styleDanger().Render(label)
	}

	return label + " " + m.barCells(t)
}

// barCells renders the chart portion of a row. Column math matches
// barCols in update_mouse.go exactly.
func (m appModel) barCells(t model.Task) string {
	chartW := m.chartWidth()
	bs, be := m.barCols(t)
	left := bs - chartOriginCol
	width := be - bs

	if t.IsMilestone() {
		cells := strings.Repeat(" ", left) + "◆"
		if rest := chartW - left - 1; rest > 0 {
			cells += strings.Repeat(" ", rest)
		}
		return barStyle(t.Color).Render(cells)
	}

	filled := width * t.Progress / 100

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", left))
	sb.WriteString(barStyle(t.Color).Render(strings.Repeat("█", filled)))
	sb.WriteString(styleBarTrack().Render(strings.Repeat("▒", width-filled)))
	if rest := chartW - left - width; rest > 0 {
		sb.WriteString(strings.Repeat(" ", rest))
	}
	return sb.String()
}

// overdue marks open tasks whose end date has passed.
func overdue(t model.Task) bool {
	if t.Status == model.StatusDone || t.Status == model.StatusCanceled {
		return false
	}
	return t.End.Before(model.Day(time.Now()))
}

// padBody grows the body to a fixed height so the footer stays put.
func padBody(s string, lines int) string {
	n := strings.Count(s, "\n") + 1
	if n >= lines {
		return s
	}
	return s + strings.Repeat("\n", lines-n)
}
