package action

import (
	"errors"
	"fmt"

	"github.com/llehouerou/qss/internal/session"
)

// ErrNothingToUndo and ErrNothingToRedo are ordinary empty-stack
// conditions, not faults.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// UndoAction reverses the most recent reversible execution and moves its
// record to the redo stack.
func UndoAction() Action {
	return &basic{
		name: "undo",
		desc: "Undo last action",
		ctx:  Both,
		run: func(s *session.Session, _ Params) (Result, error) {
			entry, ok := s.History().PopUndo()
			if !ok {
				return nil, ErrNothingToUndo
			}
			rec, ok := entry.(*Record)
			if !ok {
				return nil, fmt.Errorf("history entry %q is not reversible", entry.Name())
			}
			res, err := rec.Undo(s)
			if err != nil {
				// The operation was not reversed; keep it undoable.
				s.History().PushExecuted(rec)
				return nil, err
			}
			s.History().PushRedo(rec)
			out := Result{"undone": rec.Action}
			for k, v := range res {
				out[k] = v
			}
			return out, nil
		},
	}
}

// RedoAction re-applies the most recently undone execution.
func RedoAction() Action {
	return &basic{
		name: "redo",
		desc: "Redo last undone action",
		ctx:  Both,
		run: func(s *session.Session, _ Params) (Result, error) {
			entry, ok := s.History().PopRedo()
			if !ok {
				return nil, ErrNothingToRedo
			}
			rec, ok := entry.(*Record)
			if !ok {
				return nil, fmt.Errorf("history entry %q is not reversible", entry.Name())
			}
			res, err := rec.Redo(s)
			if err != nil {
				s.History().PushRedo(rec)
				return nil, err
			}
			// Re-recording after redo must not clear the remaining redo
			// stack, unlike a fresh execution.
			s.History().PushExecuted(rec)
			out := Result{"redone": rec.Action}
			for k, v := range res {
				out[k] = v
			}
			return out, nil
		},
	}
}
