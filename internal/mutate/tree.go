package mutate

import (
	"strings"

	"ganttly/internal/model"
	"ganttly/internal/store"
)

// Move reparents a task. An empty parentID promotes it to a project;
// otherwise it becomes (stays) an issue under the new parent. Moving a
// task under itself or one of its descendants is rejected.
func Move(tasks []model.Task, id string, parentID string) (Result, error) {
	t, ok := store.FindTask(tasks, id)
	if !ok {
		return Result{}, NotFoundError{Kind: "task", ID: id}
	}
	parentID = strings.TrimSpace(parentID)

	if parentID == "" {
		if t.ParentID == nil {
			return Result{Task: t}, nil
		}
		prev := *t.ParentID
		t.ParentID = nil
		t.Kind = model.KindProject
		touch(t)
		return Result{Task: t, Changed: true, EventPayload: map[string]any{"from": prev, "to": ""}}, nil
	}

	if parentID == id {
		return Result{}, ErrParentCycle
	}
	if _, ok := store.FindTask(tasks, parentID); !ok {
		return Result{}, NotFoundError{Kind: "task", ID: parentID}
	}
	for _, did := range Descendants(tasks, id) {
		if did == parentID {
			return Result{}, ErrParentCycle
		}
	}

	prev := ""
	if t.ParentID != nil {
		prev = *t.ParentID
	}
	if prev == parentID {
		return Result{Task: t}, nil
	}
	t.ParentID = &parentID
	t.Kind = model.KindIssue
	touch(t)
	return Result{Task: t, Changed: true, EventPayload: map[string]any{"from": prev, "to": parentID}}, nil
}

// Delete removes a task and, by parent links, all of its descendants.
// Dependency references to any removed task are pruned from survivors.
func Delete(tasks []model.Task, id string) ([]model.Task, Result, error) {
	if _, ok := store.FindTask(tasks, id); !ok {
		return tasks, Result{}, NotFoundError{Kind: "task", ID: id}
	}

	doomed := map[string]bool{id: true}
	for _, did := range Descendants(tasks, id) {
		doomed[did] = true
	}

	out := tasks[:0]
	for _, t := range tasks {
		if doomed[t.ID] {
			continue
		}
		if len(t.Dependencies) > 0 {
			deps := t.Dependencies[:0]
			for _, dep := range t.Dependencies {
				if !doomed[dep] {
					deps = append(deps, dep)
				}
			}
			if len(deps) == 0 {
				deps = nil
			}
			t.Dependencies = deps
		}
		out = append(out, t)
	}

	removed := make([]string, 0, len(doomed))
	for did := range doomed {
		removed = append(removed, did)
	}
	return out, Result{Changed: true, EventPayload: map[string]any{"removed": removed}}, nil
}

// Descendants returns the transitive children of id in no particular
// order.
func Descendants(tasks []model.Task, id string) []string {
	children := map[string][]string{}
	for _, t := range tasks {
		if t.ParentID != nil {
			children[*t.ParentID] = append(children[*t.ParentID], t.ID)
		}
	}
	var out []string
	queue := append([]string(nil), children[id]...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		out = append(out, cur)
		queue = append(queue, children[cur]...)
	}
	return out
}
