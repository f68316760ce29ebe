package tui

import (
	"fmt"

	"ganttly/internal/model"
	"ganttly/internal/mutate"
	"ganttly/internal/store"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type taskItem struct {
	task model.Task
}

func (i taskItem) Title() string { return i.task.Name }

func (i taskItem) Description() string {
	desc := fmt.Sprintf("%s → %s  %d%%", i.task.Start.Format("Jan 2"), i.task.End.Format("Jan 2"), i.task.Progress)
	if i.task.Priority != model.PriorityNone {
		desc += "  !" + string(i.task.Priority)
	}
	return desc
}

func (i taskItem) FilterValue() string { return i.task.Name }

func newBoardList() list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	return l
}

func (m *appModel) refreshBoard() {
	lane := boardLanes[m.boardLane]

	curID := ""
	if it, ok := m.boardList.SelectedItem().(taskItem); ok {
		curID = it.task.ID
	}

	var items []list.Item
	for _, t := range m.tasks {
		if t.Status == lane {
			items = append(items, taskItem{task: t})
		}
	}
	m.boardList.Title = fmt.Sprintf("%s (%d)", laneTitle(lane), len(items))
	m.boardList.SetItems(items)

	if curID != "" {
		for i, it := range m.boardList.Items() {
			if ti, ok := it.(taskItem); ok && ti.task.ID == curID {
				m.boardList.Select(i)
				break
			}
		}
	}
}

func laneTitle(s model.Status) string {
	switch s {
	case model.StatusBacklog:
		return "Backlog"
	case model.StatusTodo:
		return "Todo"
	case model.StatusInProgress:
		return "In progress"
	case model.StatusDone:
		return "Done"
	case model.StatusCanceled:
		return "Canceled"
	}
	return string(s)
}

func (m appModel) updateBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "]", "right":
		m.boardLane = (m.boardLane + 1) % len(boardLanes)
		m.refreshBoard()
		return m, nil
	case "[", "left":
		m.boardLane = (m.boardLane + len(boardLanes) - 1) % len(boardLanes)
		m.refreshBoard()
		return m, nil

	case " ":
		// Advance the selected task to the next lane.
		it, ok := m.boardList.SelectedItem().(taskItem)
		if !ok {
			return m, nil
		}
		nextStatus := boardLanes[(laneIndex(it.task.Status)+1)%len(boardLanes)]
		next := store.CloneTasks(m.tasks)
		res, err := mutate.SetStatus(next, it.task.ID, nextStatus)
		if err != nil || !res.Changed {
			return m, nil
		}
		m.commit(next)
		return m, m.pushCmd(*res.Task)

	case "enter":
		if it, ok := m.boardList.SelectedItem().(taskItem); ok {
			for i, t := range m.tasks {
				if t.ID == it.task.ID {
					m.selected = i
					break
				}
			}
			m.clampSelection()
			m.view = viewDetail
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.boardList, cmd = m.boardList.Update(msg)
	return m, cmd
}

func (m appModel) viewBoardBody() string {
	hint := styleMuted().Render(fmt.Sprintf("lane %d/%d", m.boardLane+1, len(boardLanes)))
	return padBody(hint+"\n"+m.boardList.View(), m.visibleRows()+1)
}

func laneIndex(s model.Status) int {
	for i, lane := range boardLanes {
		if lane == s {
			return i
		}
	}
	return 0
}
