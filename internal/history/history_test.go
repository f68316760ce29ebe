package history

import (
	"fmt"
	"testing"
)

func TestSetUndoRoundTrip(t *testing.T) {
	h := New("seed", 0)
	for i := 0; i < 10; i++ {
		h.Set(fmt.Sprintf("state-%d", i))
	}
	for i := 0; i < 10; i++ {
		if _, ok := h.Undo(); !ok {
			t.Fatalf("undo %d: expected changed=true", i)
		}
	}
	if got := h.Current(); got != "seed" {
		t.Fatalf("expected seed after full undo; got %q", got)
	}
	if h.CanUndo() {
		t.Fatalf("expected CanUndo=false at oldest entry")
	}
}

func TestUndoAtOldestIsNoOp(t *testing.T) {
	h := New(1, 0)
	got, ok := h.Undo()
	if ok {
		t.Fatalf("expected changed=false")
	}
	if got != 1 {
		t.Fatalf("expected unchanged state; got %d", got)
	}
}

func TestNoOpSetNotRecorded(t *testing.T) {
	type state struct {
		Names []string
	}
	h := New(state{Names: []string{"a"}}, 0)
	before := h.CanUndo()

	// Structurally equal but a distinct value.
	h.Set(state{Names: []string{"a"}})

	if h.CanUndo() != before {
		t.Fatalf("no-op set changed CanUndo from %v", before)
	}
	if h.Len() != 1 {
		t.Fatalf("expected 1 entry; got %d", h.Len())
	}
}

func TestRedoBranchPruned(t *testing.T) {
	h := New("a", 0)
	h.Set("b")
	h.Set("c")

	if _, ok := h.Undo(); !ok {
		t.Fatalf("undo failed")
	}
	if !h.CanRedo() {
		t.Fatalf("expected CanRedo=true after undo")
	}

	h.Set("d")
	if h.CanRedo() {
		t.Fatalf("expected CanRedo=false after set pruned the redo branch")
	}
	if got := h.Current(); got != "d" {
		t.Fatalf("expected d; got %q", got)
	}
}

func TestRedoRestoresUndoneState(t *testing.T) {
	h := New("a", 0)
	h.Set("b")
	h.Undo()
	got, ok := h.Redo()
	if !ok || got != "b" {
		t.Fatalf("expected redo to b; got %q ok=%v", got, ok)
	}
	if _, ok := h.Redo(); ok {
		t.Fatalf("expected redo at tail to be a no-op")
	}
}

func TestBoundedLengthEvictsOldest(t *testing.T) {
	const limit = 5
	h := New(0, limit)
	for i := 1; i <= 20; i++ {
		h.Set(i)
	}
	if h.Len() != limit {
		t.Fatalf("expected len %d; got %d", limit, h.Len())
	}

	// Walk all the way back: the oldest reachable state is the eviction
	// boundary, not the original seed.
	for h.CanUndo() {
		h.Undo()
	}
	if got := h.Current(); got != 20-(limit-1) {
		t.Fatalf("expected oldest reachable %d; got %d", 20-(limit-1), got)
	}
}

func TestTinyLimitClampedNotReplaced(t *testing.T) {
	h := New(0, 1)
	h.Set(1)
	h.Set(2)

	// A limit of 1 behaves as MinLimit, not DefaultLimit: the list stays
	// at two entries and one undo step survives.
	if h.Len() != MinLimit {
		t.Fatalf("expected len %d; got %d", MinLimit, h.Len())
	}
	got, ok := h.Undo()
	if !ok || got != 1 {
		t.Fatalf("expected undo to 1; got %d ok=%v", got, ok)
	}
	if h.CanUndo() {
		t.Fatalf("expected a single undo step at limit %d", MinLimit)
	}
}

func TestSetFunc(t *testing.T) {
	h := New(10, 0)
	h.SetFunc(func(prev int) int { return prev + 5 })
	if got := h.Current(); got != 15 {
		t.Fatalf("expected 15; got %d", got)
	}
}

func TestClearDropsStack(t *testing.T) {
	h := New("a", 0)
	h.Set("b")
	h.Set("c")
	h.Clear("external")
	if h.CanUndo() || h.CanRedo() {
		t.Fatalf("expected empty stack after clear")
	}
	if got := h.Current(); got != "external" {
		t.Fatalf("expected seed external; got %q", got)
	}
}
