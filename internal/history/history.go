// Package history implements a bounded linear undo/redo container.
//
// The container is generic over the application state it snapshots; it
// never inspects the value beyond structural equality. History is
// process-local: it is not persisted and not shared across processes.
package history

import "reflect"

// DefaultLimit bounds the snapshot list when no explicit limit is given.
const DefaultLimit = 50

// MinLimit is the smallest usable bound: the seed entry plus one edit.
const MinLimit = 2

type History[T any] struct {
	entries []T
	cursor  int
	limit   int
}

// New seeds the history with a single entry at cursor 0. A zero or
// negative limit means DefaultLimit; an explicit limit is clamped up to
// MinLimit rather than replaced.
func New[T any](seed T, limit int) *History[T] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit < MinLimit {
		limit = MinLimit
	}
	return &History[T]{
		entries: []T{seed},
		cursor:  0,
		limit:   limit,
	}
}

// Current returns the snapshot at the cursor.
func (h *History[T]) Current() T {
	return h.entries[h.cursor]
}

// Set commits a new state. A value structurally equal to the current one
// is applied but not recorded, so no-op edits never consume an undo step.
// Otherwise any redo entries past the cursor are discarded (linear
// history, no branching), the value is appended, and the oldest entry is
// evicted if the list would exceed the limit.
func (h *History[T]) Set(next T) {
	if reflect.DeepEqual(next, h.entries[h.cursor]) {
		h.entries[h.cursor] = next
		return
	}
	h.entries = append(h.entries[:h.cursor+1], next)
	h.cursor++
	if len(h.entries) > h.limit {
		over := len(h.entries) - h.limit
		h.entries = append([]T(nil), h.entries[over:]...)
		h.cursor -= over
	}
}

// SetFunc commits the result of applying fn to the current state.
func (h *History[T]) SetFunc(fn func(prev T) T) {
	h.Set(fn(h.Current()))
}

// Undo moves the cursor back one entry. At the oldest entry it is a
// no-op: the current state is returned with changed=false, never an
// error. Undo does not record anything, so redo availability survives.
func (h *History[T]) Undo() (T, bool) {
	if !h.CanUndo() {
		return h.Current(), false
	}
	h.cursor--
	return h.Current(), true
}

// Redo moves the cursor forward one entry; a no-op at the tail.
func (h *History[T]) Redo() (T, bool) {
	if !h.CanRedo() {
		return h.Current(), false
	}
	h.cursor++
	return h.Current(), true
}

func (h *History[T]) CanUndo() bool { return h.cursor > 0 }

func (h *History[T]) CanRedo() bool { return h.cursor < len(h.entries)-1 }

// Clear resets the history to a single seed entry. Callers use this when
// the state is replaced from an external source (another process wrote
// the store, or a tracker poll re-imported tasks): undoing across such a
// replacement would resurrect stale data, so the stack is dropped
// instead.
func (h *History[T]) Clear(seed T) {
	h.entries = []T{seed}
	h.cursor = 0
}

// Len reports how many snapshots are currently held.
func (h *History[T]) Len() int { return len(h.entries) }
