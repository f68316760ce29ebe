// Package mutate holds the edit operations over a task snapshot.
//
// Every function takes the task list by value-of-slice and mutates it in
// place, returning a Changed flag plus an event payload for callers that
// log or sync. Functions never perform I/O; saving and history commits
// are the caller's job.
package mutate

import (
	"fmt"
	"strings"
	"time"

	"ganttly/internal/model"
	"ganttly/internal/store"
)

type Result struct {
	Task         *model.Task
	Changed      bool
	EventPayload map[string]any
}

// Create appends a new task. The project/issue variant is decided here,
// once, by whether parentID is given; it is never re-derived later.
func Create(tasks []model.Task, name string, start, end time.Time, parentID *string) ([]model.Task, *model.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return tasks, nil, ErrEmptyName
	}
	start = model.Day(start)
	end = model.Day(end)
	if end.Before(start) {
		return tasks, nil, ErrInvalidSpan
	}

	kind := model.KindProject
	if parentID != nil {
		pid := strings.TrimSpace(*parentID)
		if pid == "" {
			parentID = nil
		} else {
			if _, ok := store.FindTask(tasks, pid); !ok {
				return tasks, nil, NotFoundError{Kind: "task", ID: pid}
			}
			kind = model.KindIssue
			parentID = &pid
		}
	}

	now := time.Now().UTC()
	t := model.Task{
		ID:        newTaskID(tasks, now),
		Kind:      kind,
		Name:      name,
		ParentID:  parentID,
		Start:     start,
		End:       end,
		Status:    model.StatusBacklog,
		Priority:  model.PriorityNone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	tasks = append(tasks, t)
	return tasks, &tasks[len(tasks)-1], nil
}

// Rename sets the task name.
func Rename(tasks []model.Task, id, name string) (Result, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Result{}, ErrEmptyName
	}
	t, ok := store.FindTask(tasks, id)
	if !ok {
		return Result{}, NotFoundError{Kind: "task", ID: id}
	}
	if t.Name == name {
		return Result{Task: t}, nil
	}
	prev := t.Name
	t.Name = name
	touch(t)
	return Result{Task: t, Changed: true, EventPayload: map[string]any{"from": prev, "to": name}}, nil
}

// SetDates reschedules a task. Non-milestones must keep at least a 1-day
// span; a milestone (End == Start on entry AND on the proposal) is
// exempt.
func SetDates(tasks []model.Task, id string, start, end time.Time) (Result, error) {
	t, ok := store.FindTask(tasks, id)
	if !ok {
		return Result{}, NotFoundError{Kind: "task", ID: id}
	}
	start = model.Day(start)
	end = model.Day(end)
	if end.Before(start) {
		return Result{}, ErrInvalidSpan
	}
	if end.Equal(start) && !t.IsMilestone() {
		return Result{}, ErrBelowMinSpan
	}
	if t.Start.Equal(start) && t.End.Equal(end) {
		return Result{Task: t}, nil
	}
	payload := map[string]any{
		"fromStart": t.Start.Format("2006-01-02"),
		"fromEnd":   t.End.Format("2006-01-02"),
		"toStart":   start.Format("2006-01-02"),
		"toEnd":     end.Format("2006-01-02"),
	}
	t.Start = start
	t.End = end
	touch(t)
	return Result{Task: t, Changed: true, EventPayload: payload}, nil
}

// SetProgress clamps to [0,100].
func SetProgress(tasks []model.Task, id string, progress int) (Result, error) {
	t, ok := store.FindTask(tasks, id)
	if !ok {
		return Result{}, NotFoundError{Kind: "task", ID: id}
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	if t.Progress == progress {
		return Result{Task: t}, nil
	}
	prev := t.Progress
	t.Progress = progress
	touch(t)
	return Result{Task: t, Changed: true, EventPayload: map[string]any{"from": prev, "to": progress}}, nil
}

func SetStatus(tasks []model.Task, id string, status model.Status) (Result, error) {
	if !model.ValidStatus(status) {
		return Result{}, ErrInvalidStatus
	}
	t, ok := store.FindTask(tasks, id)
	if !ok {
		return Result{}, NotFoundError{Kind: "task", ID: id}
	}
	if t.Status == status {
		return Result{Task: t}, nil
	}
	prev := t.Status
	t.Status = status
	touch(t)
	return Result{Task: t, Changed: true, EventPayload: map[string]any{"from": string(prev), "to": string(status)}}, nil
}

func SetPriority(tasks []model.Task, id string, p model.Priority) (Result, error) {
	if !model.ValidPriority(p) {
		return Result{}, ErrInvalidPriority
	}
	t, ok := store.FindTask(tasks, id)
	if !ok {
		return Result{}, NotFoundError{Kind: "task", ID: id}
	}
	if t.Priority == p {
		return Result{Task: t}, nil
	}
	prev := t.Priority
	t.Priority = p
	touch(t)
	return Result{Task: t, Changed: true, EventPayload: map[string]any{"from": string(prev), "to": string(p)}}, nil
}

func touch(t *model.Task) {
	t.UpdatedAt = time.Now().UTC()
}

// newTaskID generates a readable unique id. A timestamp plus a
// uniqueness suffix keeps ids stable under concurrent CLI use without
// coordinating a counter.
func newTaskID(tasks []model.Task, now time.Time) string {
	base := fmt.Sprintf("t-%s", now.Format("20060102-150405"))
	id := base
	for n := 2; ; n++ {
		if _, exists := store.FindTask(tasks, id); !exists {
			return id
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
}
