package tui

import (
	"ganttly/internal/model"
	"ganttly/internal/mutate"
	"ganttly/internal/store"
	"ganttly/internal/timeline"

	tea "github.com/charmbracelet/bubbletea"
)

// chartOriginCol is the first chart column: label column plus one
// separator space.
const chartOriginCol = labelColWidth + 1

func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.view != viewGantt {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.scroll > 0 {
			m.scroll--
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if m.scroll+m.visibleRows() < len(m.tasks) {
			m.scroll++
		}
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.mousePress(msg)
	case tea.MouseActionMotion:
		return m.mouseMotion(msg)
	case tea.MouseActionRelease:
		return m.mouseRelease()
	}
	return m, nil
}

func (m appModel) mousePress(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	row := msg.Y - ganttTopRows + m.scroll
	if row < 0 || row >= len(m.tasks) {
		return m, nil
	}
	m.selected = row
	m.clampSelection()

	if msg.X < chartOriginCol {
		return m, nil
	}

	t := m.tasks[row]
	bs, be := m.barCols(t)

	// Alt+click inside the bar sets progress at the click point.
	if msg.Alt && msg.X >= bs && msg.X < be {
		pct := timeline.ProgressFromClick(float64(msg.X-bs), float64(be-bs))
		next := store.CloneTasks(m.tasks)
		res, err := mutate.SetProgress(next, t.ID, pct)
		if err != nil || !res.Changed {
			return m, nil
		}
		m.commit(next)
		return m, m.pushCmd(*res.Task)
	}

	if msg.X < bs || msg.X >= be {
		return m, nil
	}

	mode := timeline.DragMove
	if be-bs >= 3 {
		switch msg.X {
		case bs:
			mode = timeline.DragResizeLeft
		case be - 1:
			mode = timeline.DragResizeRight
		}
	}

	// Start is rejected if a previous session somehow survived; the old
	// session must be fully torn down before a new one may begin.
	m.drag.Start(mode, t.ID, t.Start, t.End, float64(msg.X), float64(m.chartWidth()), m.win)
	return m, nil
}

// mouseMotion feeds the active drag session. Accepted proposals update
// the working copy immediately (live feedback); nothing is committed to
// history until release.
func (m appModel) mouseMotion(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.drag.Active() {
		return m, nil
	}
	ch, ok := m.drag.Move(float64(msg.X))
	if !ok {
		return m, nil
	}
	if t, found := store.FindTask(m.tasks, ch.TaskID); found {
		t.Start = ch.Start
		t.End = ch.End
	}
	return m, nil
}

// mouseRelease ends the gesture: the whole drag becomes one history
// entry (not one per move event), and the downstream push fires once.
func (m appModel) mouseRelease() (tea.Model, tea.Cmd) {
	if !m.drag.Active() {
		return m, nil
	}
	final, changed := m.drag.End()
	if !changed {
		m.tasks = store.CloneTasks(m.hist.Current())
		return m, nil
	}

	next := store.CloneTasks(m.hist.Current())
	res, err := mutate.SetDates(next, final.TaskID, final.Start, final.End)
	if err != nil || !res.Changed {
		// Validation rejects silently: restore the pre-drag state.
		m.tasks = store.CloneTasks(m.hist.Current())
		return m, nil
	}
	m.commit(next)
	return m, m.pushCmd(*res.Task)
}

// barCols returns the selected task's bar as absolute terminal columns
// [start, end). Rendering in gantt.go uses the same mapping so hit
// testing and drawing agree cell for cell.
func (m *appModel) barCols(t model.Task) (int, int) {
	chartW := m.chartWidth()
	g := timeline.Bar(t.Start, t.End, m.win)
	left := int(g.LeftPercent/100*float64(chartW) + 0.5)
	width := int(g.WidthPercent/100*float64(chartW) + 0.5)
	if width < 1 {
		width = 1
	}
	if left > chartW-1 {
		left = chartW - 1
	}
	if left+width > chartW {
		width = chartW - left
		if width < 1 {
			width = 1
		}
	}
	return chartOriginCol + left, chartOriginCol + left + width
}
