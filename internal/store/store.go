package store

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"ganttly/internal/model"
)

const (
	dirName    = ".ganttly"
	sqliteName = "state.sqlite"
)

// Snapshot is the persisted application state: the canonical task list
// plus the settings object. The undo history is deliberately NOT part of
// the snapshot; it is process-local.
type Snapshot struct {
	Tasks    []model.Task   `json:"tasks"`
	Settings model.Settings `json:"settings"`
}

// Port is the persistence boundary the core calls into. The TUI and CLI
// only ever see this interface; SQLite is an implementation detail.
type Port interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
}

// Store is the SQLite-backed Port.
type Store struct {
	Dir string
}

var _ Port = Store{}

// DiscoverDir walks up from start looking for an existing workspace dir.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, dirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, dirName), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteName)
}

// Load reads and validates the snapshot. Validation happens here, at the
// persistence boundary, so the core can assume well-formed data.
func (s Store) Load(ctx context.Context) (Snapshot, error) {
	snap, err := s.loadSQLite(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	Normalize(&snap)
	return snap, nil
}

func (s Store) Save(ctx context.Context, snap Snapshot) error {
	return s.saveSQLite(ctx, snap)
}

// Normalize repairs a loaded snapshot in place: date order, progress
// clamp, enum fallbacks, kind/parent consistency, dangling references
// and dependency cycles. Records from older versions of the file or
// hand-edited imports must never crash the core.
func Normalize(snap *Snapshot) {
	if snap.Settings.HistoryLimit <= 0 {
		snap.Settings.HistoryLimit = model.DefaultSettings().HistoryLimit
	}
	if !model.ValidViewMode(snap.Settings.ViewMode) {
		snap.Settings.ViewMode = model.DefaultSettings().ViewMode
	}
	if !model.ValidDensity(snap.Settings.Density) {
		snap.Settings.Density = model.DefaultSettings().Density
	}

	byID := make(map[string]bool, len(snap.Tasks))
	for _, t := range snap.Tasks {
		byID[t.ID] = true
	}

	for i := range snap.Tasks {
		t := &snap.Tasks[i]
		t.Start = model.Day(t.Start)
		t.End = model.Day(t.End)
		if t.End.Before(t.Start) {
			t.Start, t.End = t.End, t.Start
		}
		if t.Progress < 0 {
			t.Progress = 0
		}
		if t.Progress > 100 {
			t.Progress = 100
		}
		if !model.ValidStatus(t.Status) {
			t.Status = model.StatusBacklog
		}
		if !model.ValidPriority(t.Priority) {
			t.Priority = model.PriorityNone
		}

		// Kind/parent consistency: the sum variant is decided at
		// creation, but imported data may disagree with itself.
		if t.ParentID != nil && (*t.ParentID == "" || *t.ParentID == t.ID || !byID[*t.ParentID]) {
			t.ParentID = nil
		}
		if t.ParentID == nil {
			t.Kind = model.KindProject
		} else {
			t.Kind = model.KindIssue
		}

		// Drop dangling/self/duplicate dependency references.
		if len(t.Dependencies) > 0 {
			seen := map[string]bool{}
			deps := t.Dependencies[:0]
			for _, id := range t.Dependencies {
				if id == t.ID || !byID[id] || seen[id] {
					continue
				}
				seen[id] = true
				deps = append(deps, id)
			}
			if len(deps) == 0 {
				deps = nil
			}
			t.Dependencies = deps
		}
	}

	breakParentCycles(snap.Tasks)
	breakDependencyCycles(snap.Tasks)
}

// breakParentCycles clears ParentID on any task participating in a
// parent loop (a hand-edited store can contain one).
func breakParentCycles(tasks []model.Task) {
	parent := make(map[string]string, len(tasks))
	for _, t := range tasks {
		if t.ParentID != nil {
			parent[t.ID] = *t.ParentID
		}
	}
	for i := range tasks {
		t := &tasks[i]
		if t.ParentID == nil {
			continue
		}
		seen := map[string]bool{t.ID: true}
		cur := *t.ParentID
		for cur != "" {
			if seen[cur] {
				t.ParentID = nil
				t.Kind = model.KindProject
				break
			}
			seen[cur] = true
			cur = parent[cur]
		}
	}
}

// breakDependencyCycles removes the dependency edges that close a cycle,
// keeping the rest of the graph intact. Deterministic: tasks are
// processed in ID order.
func breakDependencyCycles(tasks []model.Task) {
	idx := make(map[string]int, len(tasks))
	order := make([]int, 0, len(tasks))
	for i, t := range tasks {
		idx[t.ID] = i
		order = append(order, i)
	}
	sort.Slice(order, func(a, b int) bool { return tasks[order[a]].ID < tasks[order[b]].ID })

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]int, len(tasks))

	var visit func(i int)
	visit = func(i int) {
		color[i] = gray
		t := &tasks[i]
		deps := t.Dependencies[:0]
		for _, depID := range t.Dependencies {
			j, ok := idx[depID]
			if !ok {
				continue
			}
			if color[j] == gray {
				continue // back edge: drop it
			}
			if color[j] == white {
				visit(j)
			}
			deps = append(deps, depID)
		}
		if len(deps) == 0 {
			deps = nil
		}
		t.Dependencies = deps
		color[i] = black
	}

	for _, i := range order {
		if color[i] == white {
			visit(i)
		}
	}
}

// FindTask returns a pointer into tasks for in-place mutation.
func FindTask(tasks []model.Task, id string) (*model.Task, bool) {
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i], true
		}
	}
	return nil, false
}

// CloneTasks deep-copies the task list so history snapshots never alias
// live slices.
func CloneTasks(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		if t.Dependencies != nil {
			t.Dependencies = append([]string(nil), t.Dependencies...)
		}
		if t.Labels != nil {
			t.Labels = append([]string(nil), t.Labels...)
		}
		if t.ParentID != nil {
			p := *t.ParentID
			t.ParentID = &p
		}
		if t.Assignee != nil {
			a := *t.Assignee
			t.Assignee = &a
		}
		if t.Estimate != nil {
			e := *t.Estimate
			t.Estimate = &e
		}
		out[i] = t
	}
	return out
}
