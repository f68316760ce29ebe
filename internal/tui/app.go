package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ganttly/internal/config"
	"ganttly/internal/history"
	"ganttly/internal/model"
	"ganttly/internal/store"
	"ganttly/internal/timeline"
	"ganttly/internal/trackersync"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type view int

const (
	viewGantt view = iota
	viewBoard
	viewDetail
)

// Fixed layout: header line + axis line above the rows, minibuffer +
// footer below. Hit testing in update_mouse.go must match these.
const (
	labelColWidth = 28
	ganttTopRows  = 2
	bottomRows    = 2
)

type (
	storeTickMsg  struct{}
	syncTickMsg   struct{}
	minibufferMsg struct{ seq int }
)

type syncDoneMsg struct {
	tasks []model.Task
	err   error
}

type pushDoneMsg struct {
	taskID string
	err    error
}

type appModel struct {
	dir     string
	st      store.Store
	watcher *store.Watcher
	cfg     config.Config
	client  *trackersync.Client

	hist     *history.History[[]model.Task]
	tasks    []model.Task
	settings model.Settings
	win      timeline.Window

	view     view
	width    int
	height   int
	selected int
	scroll   int

	drag *timeline.DragSession

	boardLane int
	boardList list.Model

	minibuffer string
	flashSeq   int
}

var boardLanes = []model.Status{
	model.StatusBacklog,
	model.StatusTodo,
	model.StatusInProgress,
	model.StatusDone,
	model.StatusCanceled,
}

func newAppModel(dir string, snap store.Snapshot, cfg config.Config, client *trackersync.Client) appModel {
	s := store.Store{Dir: dir}
	m := appModel{
		dir:      dir,
		st:       s,
		watcher:  store.NewWatcher(s),
		cfg:      cfg,
		client:   client,
		hist:     history.New(store.CloneTasks(snap.Tasks), snap.Settings.HistoryLimit),
		tasks:    snap.Tasks,
		settings: snap.Settings,
		drag:     timeline.NewDragSession(),
		view:     viewGantt,
	}
	m.recomputeWindow()

	m.boardList = newBoardList()
	m.refreshBoard()
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.storeTick(), m.syncTick())
}

func (m *appModel) recomputeWindow() {
	m.win = timeline.WindowFor(m.tasks, m.settings.ViewMode, time.Now())
}

func (m *appModel) chartWidth() int {
	w := m.width - labelColWidth - 1
	if w < 10 {
		w = 10
	}
	return w
}

func (m *appModel) visibleRows() int {
	h := m.height - ganttTopRows - bottomRows
	if h < 3 {
		h = 3
	}
	return h
}

func (m *appModel) clampSelection() {
	if m.selected >= len(m.tasks) {
		m.selected = len(m.tasks) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	if m.selected < m.scroll {
		m.scroll = m.selected
	}
	if m.selected >= m.scroll+m.visibleRows() {
		m.scroll = m.selected - m.visibleRows() + 1
	}
}

// commit records a user edit: one history entry, then persist. The
// store stays best-effort; a failed save leaves memory authoritative
// and surfaces a notification.
func (m *appModel) commit(next []model.Task) {
	m.tasks = next
	m.hist.Set(store.CloneTasks(next))
	m.recomputeWindow()
	m.refreshBoard()
	m.persist()
}

func (m *appModel) persist() {
	snap := store.Snapshot{Tasks: m.tasks, Settings: m.settings}
	if err := m.st.Save(context.Background(), snap); err != nil {
		m.showMinibuffer("Save failed (state kept in memory): " + err.Error())
	}
	m.watcher.Mark()
}

// restore applies a history snapshot (undo/redo): no new history entry,
// but the store is updated so other processes see the restored state.
func (m *appModel) restore(tasks []model.Task) {
	m.tasks = store.CloneTasks(tasks)
	m.recomputeWindow()
	m.refreshBoard()
	m.persist()
}

// replaceFromExternal swaps in state that did not originate from this
// process (store watcher, tracker poll). Undoing across it would
// resurrect stale data, so the history is cleared rather than
// reconciled.
func (m *appModel) replaceFromExternal(snap store.Snapshot, reason string) {
	m.tasks = snap.Tasks
	m.settings = snap.Settings
	m.hist.Clear(store.CloneTasks(snap.Tasks))
	m.recomputeWindow()
	m.refreshBoard()
	m.clampSelection()
	m.showMinibuffer(reason + " (undo history cleared)")
}

func (m *appModel) showMinibuffer(s string) {
	m.minibuffer = s
	m.flashSeq++
}

func (m *appModel) minibufferCmd() tea.Cmd {
	seq := m.flashSeq
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg { return minibufferMsg{seq: seq} })
}

func (m *appModel) storeTick() tea.Cmd {
	return tea.Tick(m.cfg.StorePollInterval.Std(), func(time.Time) tea.Msg { return storeTickMsg{} })
}

func (m *appModel) syncTick() tea.Cmd {
	if m.client == nil {
		return nil
	}
	return tea.Tick(m.cfg.SyncPollInterval.Std(), func(time.Time) tea.Msg { return syncTickMsg{} })
}

func (m *appModel) pullCmd() tea.Cmd {
	client := m.client
	local := store.CloneTasks(m.tasks)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		tasks, err := trackersync.Pull(ctx, client, local)
		return syncDoneMsg{tasks: tasks, err: err}
	}
}

// pushCmd fires a best-effort update for one linked task. Failures come
// back as a notification only; local state is never rolled back.
func (m *appModel) pushCmd(t model.Task) tea.Cmd {
	if m.client == nil || t.TrackerID == "" {
		return nil
	}
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_, _, err := trackersync.PushTask(ctx, client, t)
		return pushDoneMsg{taskID: t.ID, err: err}
	}
}

func (m appModel) View() string {
	header := styleHeader().Render(fmt.Sprintf("ganttly  %s  [%s]  mode=%s density=%s",
		m.dir, m.viewName(), m.settings.ViewMode, m.settings.Density))

	var body string
	switch m.view {
	case viewGantt:
		body = m.viewGanttBody()
	case viewBoard:
		body = m.viewBoardBody()
	case viewDetail:
		body = m.viewDetailBody()
	}

	mini := m.minibuffer
	if mini != "" {
		mini = lipgloss.NewStyle().Foreground(colorAccent).Render(mini)
	}
	footer := styleMuted().Render(m.footerHints())

	return strings.Join([]string{header, body, mini, footer}, "\n")
}

func (m appModel) viewName() string {
	switch m.view {
	case viewBoard:
		return "board"
	case viewDetail:
		return "detail"
	default:
		return "gantt"
	}
}

func (m appModel) footerHints() string {
	switch m.view {
	case viewBoard:
		return "tab: gantt  [/]: lane  space: advance status  enter: detail  q: quit"
	case viewDetail:
		return "esc: back  q: quit"
	default:
		return "drag bars with the mouse  h/l: move  H/L: resize  u/U: undo/redo  n: new  x: delete  tab: board  v: zoom  D: density  s: sync  q: quit"
	}
}
