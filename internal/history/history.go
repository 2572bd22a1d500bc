// Package history provides the bounded undo/redo stack backing reversible
// actions. Each session owns its own Stack; stacks are never shared.
package history

// Entry is an executed reversible operation recorded in the stack.
// The action layer defines what an entry can do; the stack only orders
// and bounds them.
type Entry interface {
	Name() string
}

// Stack holds executed entries for undo and undone entries for redo.
// Capacity is fixed at construction; pushing past it drops the oldest
// entry. Not safe for concurrent use: callers serialize through the
// owning session.
type Stack struct {
	entries []Entry
	redo    []Entry
	cap     int
}

// DefaultCapacity is the stack size used when none is configured.
const DefaultCapacity = 50

// disabled is the internal capacity of a stack that records nothing.
const disabled = 0

// NewStack creates a stack with the given capacity. Zero falls back to
// DefaultCapacity; a negative capacity disables recording entirely, so
// every push is dropped and nothing is ever undoable.
func NewStack(capacity int) *Stack {
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	if capacity < 0 {
		capacity = disabled
	}
	return &Stack{cap: capacity}
}

// Push records an executed entry and invalidates the redo stack. On a
// disabled stack the entry is dropped.
func (s *Stack) Push(e Entry) {
	if s.cap == disabled {
		return
	}
	s.entries = append(s.entries, e)
	if len(s.entries) > s.cap {
		excess := len(s.entries) - s.cap
		s.entries = s.entries[excess:]
	}
	s.redo = s.redo[:0]
}

// PopUndo removes and returns the most recent entry.
func (s *Stack) PopUndo() (Entry, bool) {
	if len(s.entries) == 0 {
		return nil, false
	}
	e := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return e, true
}

// PushRedo places an undone entry on the redo stack.
func (s *Stack) PushRedo(e Entry) {
	s.redo = append(s.redo, e)
}

// PopRedo removes and returns the most recently undone entry.
func (s *Stack) PopRedo() (Entry, bool) {
	if len(s.redo) == 0 {
		return nil, false
	}
	e := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	return e, true
}

// PushExecuted re-records an entry after a redo, without clearing the
// redo stack.
func (s *Stack) PushExecuted(e Entry) {
	if s.cap == disabled {
		return
	}
	s.entries = append(s.entries, e)
	if len(s.entries) > s.cap {
		excess := len(s.entries) - s.cap
		s.entries = s.entries[excess:]
	}
}

// CanUndo returns true if there is an entry to undo.
func (s *Stack) CanUndo() bool {
	return len(s.entries) > 0
}

// CanRedo returns true if there is an entry to redo.
func (s *Stack) CanRedo() bool {
	return len(s.redo) > 0
}

// Len returns the number of recorded entries.
func (s *Stack) Len() int {
	return len(s.entries)
}

// RedoLen returns the number of undone entries available for redo.
func (s *Stack) RedoLen() int {
	return len(s.redo)
}

// LastName returns the name of the most recent entry, or "" if empty.
func (s *Stack) LastName() string {
	if len(s.entries) == 0 {
		return ""
	}
	return s.entries[len(s.entries)-1].Name()
}

// Clear drops all entries and redo state.
func (s *Stack) Clear() {
	s.entries = nil
	s.redo = nil
}
