package history

import (
	"fmt"
	"testing"
)

type namedEntry string

func (n namedEntry) Name() string { return string(n) }

func TestStack_PushPop(t *testing.T) {
	s := NewStack(10)

	if s.CanUndo() {
		t.Error("new stack should not be undoable")
	}
	if _, ok := s.PopUndo(); ok {
		t.Error("PopUndo on empty stack should report false")
	}

	s.Push(namedEntry("a"))
	s.Push(namedEntry("b"))

	if got := s.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
	if got := s.LastName(); got != "b" {
		t.Errorf("LastName() = %q, want %q", got, "b")
	}

	e, ok := s.PopUndo()
	if !ok || e.Name() != "b" {
		t.Errorf("PopUndo() = %v, %v, want b, true", e, ok)
	}
	e, ok = s.PopUndo()
	if !ok || e.Name() != "a" {
		t.Errorf("PopUndo() = %v, %v, want a, true", e, ok)
	}
	if s.CanUndo() {
		t.Error("stack should be empty after popping everything")
	}
}

func TestStack_CapacityDropsOldest(t *testing.T) {
	s := NewStack(3)
	for i := range 5 {
		s.Push(namedEntry(fmt.Sprintf("e%d", i)))
	}

	if got := s.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}

	// Newest survive; e0 and e1 were dropped.
	for _, want := range []string{"e4", "e3", "e2"} {
		e, ok := s.PopUndo()
		if !ok || e.Name() != want {
			t.Errorf("PopUndo() = %v, %v, want %s", e, ok, want)
		}
	}
}

func TestStack_PushClearsRedo(t *testing.T) {
	s := NewStack(10)
	s.Push(namedEntry("a"))

	e, _ := s.PopUndo()
	s.PushRedo(e)
	if !s.CanRedo() {
		t.Fatal("expected redo available after PushRedo")
	}

	s.Push(namedEntry("b"))
	if s.CanRedo() {
		t.Error("a fresh push must clear the redo stack")
	}
}

func TestStack_PushExecutedKeepsRedo(t *testing.T) {
	s := NewStack(10)
	s.Push(namedEntry("a"))
	s.Push(namedEntry("b"))

	// Undo both.
	e2, _ := s.PopUndo()
	s.PushRedo(e2)
	e1, _ := s.PopUndo()
	s.PushRedo(e1)

	// Redo the first: re-recording must not clear the remaining redo.
	r, ok := s.PopRedo()
	if !ok || r.Name() != "a" {
		t.Fatalf("PopRedo() = %v, %v, want a", r, ok)
	}
	s.PushExecuted(r)

	if !s.CanRedo() {
		t.Error("remaining redo entry should survive PushExecuted")
	}
	if got := s.RedoLen(); got != 1 {
		t.Errorf("RedoLen() = %d, want 1", got)
	}
}

func TestStack_DefaultCapacity(t *testing.T) {
	s := NewStack(0)
	for i := range DefaultCapacity + 10 {
		s.Push(namedEntry(fmt.Sprintf("e%d", i)))
	}
	if got := s.Len(); got != DefaultCapacity {
		t.Errorf("Len() = %d, want %d", got, DefaultCapacity)
	}
}

func TestStack_NegativeCapacityDisables(t *testing.T) {
	s := NewStack(-1)
	s.Push(namedEntry("a"))
	s.PushExecuted(namedEntry("b"))

	if s.CanUndo() {
		t.Error("CanUndo() = true on a disabled stack")
	}
	if got := s.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}
	if _, ok := s.PopUndo(); ok {
		t.Error("PopUndo() on a disabled stack returned an entry")
	}
}

func TestStack_Clear(t *testing.T) {
	s := NewStack(10)
	s.Push(namedEntry("a"))
	e, _ := s.PopUndo()
	s.PushRedo(e)
	s.Push(namedEntry("b"))

	s.Clear()
	if s.CanUndo() || s.CanRedo() {
		t.Error("Clear should empty both stacks")
	}
}
