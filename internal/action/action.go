// Package action defines the catalog of named operations over session
// state and the dispatch path that executes them with undo recording and
// per-session serialization.
package action

import (
	"errors"
	"slices"

	"github.com/llehouerou/qss/internal/session"
)

// Context tags where an action may execute.
type Context int

const (
	GUI Context = iota
	Web
	Both
)

// String returns the context name.
func (c Context) String() string {
	switch c {
	case GUI:
		return "gui"
	case Web:
		return "web"
	case Both:
		return "both"
	default:
		return "unknown"
	}
}

// Includes reports whether an action tagged c may run in target.
func (c Context) Includes(target Context) bool {
	return c == Both || c == target
}

// Params carries optional per-invocation arguments.
type Params map[string]any

// Text returns a string parameter, or "" if absent.
func (p Params) Text(key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}

// Bool returns a boolean parameter, or false if absent.
func (p Params) Bool(key string) bool {
	v, _ := p[key].(bool)
	return v
}

// Result is the flat key/value map every execution returns. Values are
// booleans, numbers, or strings; transports pass it through unchanged.
type Result map[string]any

// Action is an immutable named operation over session state.
type Action interface {
	Name() string
	Description() string
	Context() Context
	Execute(s *session.Session, p Params) (Result, error)
}

// Record is one executed reversible operation, bound to the state it
// captured at execution time. Records live in a session's history stack.
type Record struct {
	Action string
	Undo   func(s *session.Session) (Result, error)
	Redo   func(s *session.Session) (Result, error)
}

// Name implements history.Entry.
func (r *Record) Name() string { return r.Action }

// Reversible is an action that computes an inverse for each execution.
type Reversible interface {
	Action
	// ExecuteReversible runs the action and returns the inverse bound to
	// this invocation, for the history stack.
	ExecuteReversible(s *session.Session, p Params) (Result, *Record, error)
}

// Registry is the action catalog. It is populated once at startup and
// read-only afterwards; construct one explicitly and hand it to the
// components that need lookup.
type Registry struct {
	actions map[string]Action
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{actions: make(map[string]Action)}
}

// Register adds an action, overwriting any previous action with the
// same name.
func (r *Registry) Register(a Action) {
	r.actions[a.Name()] = a
}

// Get returns the action registered under name.
func (r *Registry) Get(name string) (Action, bool) {
	a, ok := r.actions[name]
	return a, ok
}

// List returns the actions executable in ctx, sorted by name.
func (r *Registry) List(ctx Context) []Action {
	var out []Action
	for _, a := range r.actions {
		if a.Context().Includes(ctx) {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b Action) int {
		switch {
		case a.Name() < b.Name():
			return -1
		case a.Name() > b.Name():
			return 1
		default:
			return 0
		}
	})
	return out
}

// Dispatch errors. Not-found and inapplicable are ordinary conditions,
// never faults.
var (
	ErrUnknownAction = errors.New("unknown action")
	ErrNotApplicable = errors.New("action not applicable in this context")
)

// Dispatcher executes registered actions against sessions, recording
// reversible executions in the session's history.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher creates a dispatcher over the registry.
func NewDispatcher(reg *Registry) *Dispatcher {
	return &Dispatcher{registry: reg}
}

// Registry returns the underlying action catalog.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Execute looks up name, checks applicability in ctx, and runs the
// action under the session's execution lock. Reversible executions push
// their record onto the session history, clearing the redo stack.
func (d *Dispatcher) Execute(name string, ctx Context, s *session.Session, p Params) (Result, error) {
	a, ok := d.registry.Get(name)
	if !ok {
		return nil, ErrUnknownAction
	}
	if !a.Context().Includes(ctx) {
		return nil, ErrNotApplicable
	}

	var result Result
	err := s.Exec(func() error {
		if rev, ok := a.(Reversible); ok {
			res, rec, err := rev.ExecuteReversible(s, p)
			if err != nil {
				return err
			}
			s.History().Push(rec)
			result = res
			return nil
		}
		res, err := a.Execute(s, p)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
