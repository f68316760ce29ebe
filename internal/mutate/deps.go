package mutate

import (
	"ganttly/internal/model"
	"ganttly/internal/store"
)

// AddDependency records that prereqID must precede id. Self-references,
// duplicates, and edges that would close a cycle are rejected.
func AddDependency(tasks []model.Task, id, prereqID string) (Result, error) {
	if id == prereqID {
		return Result{}, ErrSelfDependency
	}
	t, ok := store.FindTask(tasks, id)
	if !ok {
		return Result{}, NotFoundError{Kind: "task", ID: id}
	}
	if _, ok := store.FindTask(tasks, prereqID); !ok {
		return Result{}, NotFoundError{Kind: "task", ID: prereqID}
	}
	for _, dep := range t.Dependencies {
		if dep == prereqID {
			return Result{}, ErrDuplicateDep
		}
	}
	if dependsOn(tasks, prereqID, id) {
		return Result{}, ErrDependencyCycle
	}

	t.Dependencies = append(t.Dependencies, prereqID)
	touch(t)
	return Result{Task: t, Changed: true, EventPayload: map[string]any{"prereq": prereqID}}, nil
}

// RemoveDependency deletes the edge if present; removing a non-existent
// edge reports Changed=false rather than an error.
func RemoveDependency(tasks []model.Task, id, prereqID string) (Result, error) {
	t, ok := store.FindTask(tasks, id)
	if !ok {
		return Result{}, NotFoundError{Kind: "task", ID: id}
	}
	for i, dep := range t.Dependencies {
		if dep == prereqID {
			t.Dependencies = append(t.Dependencies[:i], t.Dependencies[i+1:]...)
			if len(t.Dependencies) == 0 {
				t.Dependencies = nil
			}
			touch(t)
			return Result{Task: t, Changed: true, EventPayload: map[string]any{"prereq": prereqID}}, nil
		}
	}
	return Result{Task: t}, nil
}

// dependsOn reports whether from transitively depends on to.
func dependsOn(tasks []model.Task, from, to string) bool {
	seen := map[string]bool{}
	var walk func(id string) bool
	walk = func(id string) bool {
		if id == to {
			return true
		}
		if seen[id] {
			return false
		}
		seen[id] = true
		t, ok := store.FindTask(tasks, id)
		if !ok {
			return false
		}
		for _, dep := range t.Dependencies {
			if walk(dep) {
				return true
			}
		}
		return false
	}
	return walk(from)
}
