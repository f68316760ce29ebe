package tui

import (
	"context"

	"ganttly/internal/model"
	"ganttly/internal/mutate"
	"ganttly/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.boardList.SetSize(msg.Width, m.visibleRows())
		m.clampSelection()
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case storeTickMsg:
		if m.watcher.Changed() && !m.drag.Active() {
			if snap, err := m.st.Load(context.Background()); err == nil {
				m.watcher.Mark()
				m.replaceFromExternal(snap, "Reloaded store written by another process")
				return m, tea.Batch(m.storeTick(), m.minibufferCmd())
			}
		}
		return m, m.storeTick()

	case syncTickMsg:
		// Poll the tracker. Racing a local edit is accepted:
		// last-write-wins, per design.
		return m, tea.Batch(m.pullCmd(), m.syncTick())

	case syncDoneMsg:
		if msg.err != nil {
			m.showMinibuffer("Tracker sync failed: " + msg.err.Error())
			return m, m.minibufferCmd()
		}
		snap := store.Snapshot{Tasks: msg.tasks, Settings: m.settings}
		store.Normalize(&snap)
		m.replaceFromExternal(snap, "Synced from tracker")
		m.persist()
		return m, m.minibufferCmd()

	case pushDoneMsg:
		if msg.err != nil {
			m.showMinibuffer("Push to tracker failed for " + msg.taskID + " (kept local edit)")
			return m, m.minibufferCmd()
		}
		return m, nil

	case minibufferMsg:
		if msg.seq == m.flashSeq {
			m.minibuffer = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.view == viewDetail {
			m.view = viewGantt
			return m, nil
		}
		return m, tea.Quit

	case "esc":
		if m.view == viewDetail {
			m.view = viewGantt
		}
		return m, nil

	case "tab":
		if m.view == viewGantt {
			m.view = viewBoard
			m.refreshBoard()
		} else {
			m.view = viewGantt
		}
		return m, nil
	}

	switch m.view {
	case viewGantt:
		return m.updateGanttKey(msg)
	case viewBoard:
		return m.updateBoardKey(msg)
	}
	return m, nil
}

func (m appModel) updateGanttKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.selected++
		m.clampSelection()
	case "k", "up":
		m.selected--
		m.clampSelection()

	case "enter":
		if len(m.tasks) > 0 {
			m.view = viewDetail
		}

	case "u":
		if tasks, ok := m.hist.Undo(); ok {
			m.restore(tasks)
			m.showMinibuffer("Undid")
			return m, m.minibufferCmd()
		}
	case "U", "ctrl+r":
		if tasks, ok := m.hist.Redo(); ok {
			m.restore(tasks)
			m.showMinibuffer("Redid")
			return m, m.minibufferCmd()
		}

	case "h", "l":
		return m.shiftSelected(keyDelta(msg.String(), -1, 1), keyDelta(msg.String(), -1, 1))
	case "H":
		return m.shiftSelected(-1, 0) // grow left
	case "L":
		return m.shiftSelected(0, 1) // grow right

	case "+", "=":
		return m.nudgeProgress(10)
	case "-":
		return m.nudgeProgress(-10)

	case "n":
		next := store.CloneTasks(m.tasks)
		next, created, err := mutate.Create(next, "New task", m.win.Start.AddDate(0, 0, m.win.TotalDays/2), m.win.Start.AddDate(0, 0, m.win.TotalDays/2+3), nil)
		if err != nil {
			m.showMinibuffer(err.Error())
			return m, m.minibufferCmd()
		}
		m.commit(next)
		m.selected = len(next) - 1
		m.clampSelection()
		m.showMinibuffer("Created " + created.ID)
		return m, m.minibufferCmd()

	case "x":
		if len(m.tasks) == 0 {
			return m, nil
		}
		next := store.CloneTasks(m.tasks)
		next, _, err := mutate.Delete(next, m.tasks[m.selected].ID)
		if err != nil {
			m.showMinibuffer(err.Error())
			return m, m.minibufferCmd()
		}
		m.commit(next)
		m.clampSelection()
		m.showMinibuffer("Deleted (cascaded to children)")
		return m, m.minibufferCmd()

	case "v":
		m.settings.ViewMode = nextViewMode(m.settings.ViewMode)
		m.recomputeWindow()
		m.persist()
	case "D":
		m.settings.Density = nextDensity(m.settings.Density)
		m.persist()

	case "s":
		if m.client == nil {
			m.showMinibuffer("No tracker configured")
			return m, m.minibufferCmd()
		}
		m.showMinibuffer("Syncing…")
		return m, tea.Batch(m.pullCmd(), m.minibufferCmd())

	case "r":
		if snap, err := m.st.Load(context.Background()); err == nil {
			m.watcher.Mark()
			m.replaceFromExternal(snap, "Reloaded from store")
			return m, m.minibufferCmd()
		}
	}
	return m, nil
}

// shiftSelected applies a keyboard reschedule: dStart/dEnd in days.
// Rejections (min-span violations) are silent, matching drag semantics.
func (m appModel) shiftSelected(dStart, dEnd int) (tea.Model, tea.Cmd) {
	if len(m.tasks) == 0 {
		return m, nil
	}
	t := m.tasks[m.selected]
	next := store.CloneTasks(m.tasks)
	res, err := mutate.SetDates(next, t.ID, t.Start.AddDate(0, 0, dStart), t.End.AddDate(0, 0, dEnd))
	if err != nil || !res.Changed {
		return m, nil
	}
	m.commit(next)
	return m, m.pushCmd(*res.Task)
}

func (m appModel) nudgeProgress(delta int) (tea.Model, tea.Cmd) {
	if len(m.tasks) == 0 {
		return m, nil
	}
	t := m.tasks[m.selected]
	next := store.CloneTasks(m.tasks)
	res, err := mutate.SetProgress(next, t.ID, t.Progress+delta)
	if err != nil || !res.Changed {
		return m, nil
	}
	m.commit(next)
	return m, m.pushCmd(*res.Task)
}

func keyDelta(key string, left, right int) int {
	if key == "h" {
		return left
	}
	return right
}

func nextViewMode(v model.ViewMode) model.ViewMode {
	switch v {
	case model.ViewModeDay:
		return model.ViewModeWeek
	case model.ViewModeWeek:
		return model.ViewModeMonth
	default:
		return model.ViewModeDay
	}
}

func nextDensity(d model.Density) model.Density {
	switch d {
	case model.DensityCompact:
		return model.DensityDefault
	case model.DensityDefault:
		return model.DensityComfortable
	default:
		return model.DensityCompact
	}
}
