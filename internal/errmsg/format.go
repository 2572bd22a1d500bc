// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Image discovery
	OpImageCollect Op = "collect images"
	OpImageLoad    Op = "load image"

	// Action dispatch
	OpActionExecute Op = "execute action"
	OpActionUndo    Op = "undo action"
	OpActionRedo    Op = "redo action"

	// File operations
	OpFileDelete  Op = "delete image"
	OpFileRestore Op = "restore image from trash"
	OpFileOpen    Op = "open file location"
	OpRemember    Op = "save remembered image"
	OpNote        Op = "save note"

	// Trash maintenance
	OpTrashCleanup Op = "clean up trash"
	OpTrashEmpty   Op = "empty trash"

	// External tools
	OpToolDiscover Op = "discover external tools"
	OpToolRun      Op = "run external tool"

	// Server
	OpServerStart Op = "start web server"

	// Configuration
	OpConfigLoad  Op = "load configuration"
	OpConfigWrite Op = "write configuration file"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// wrapped pairs an operation with its cause, keeping the chain intact.
type wrapped struct {
	op  Op
	err error
}

func (w *wrapped) Error() string { return Format(w.op, w.err) }
func (w *wrapped) Unwrap() error { return w.err }

// Wrap returns an error that renders through Format while leaving the
// cause reachable with errors.Is and errors.As.
func Wrap(op Op, err error) error {
	if err == nil {
		return nil
	}
	return &wrapped{op: op, err: err}
}
