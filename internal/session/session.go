// Package session holds per-client slideshow state. Every session
// references the shared item sequence through a private index
// permutation; sessions never interfere with each other.
package session

import (
	"errors"
	"math/rand/v2"
	"sync"

	"github.com/llehouerou/qss/internal/gesture"
	"github.com/llehouerou/qss/internal/history"
	"github.com/llehouerou/qss/internal/sequence"
)

// Speed bounds in seconds between slides.
const (
	MinSpeed = 0.5
	MaxSpeed = 60.0
)

// ErrNoItems is returned by operations that need at least one item.
var ErrNoItems = errors.New("no items in slideshow")

// Options configure a new session.
type Options struct {
	Speed        float64
	Repeat       bool
	Shuffle      bool // start with a fresh random permutation
	Paused       bool
	AlwaysOnTop  bool
	StatusFormat string
	HistorySize  int // 0 uses the default capacity, negative disables undo
	Thresholds   gesture.Thresholds
}

// Session is one client's view of the shared sequence plus its playback
// parameters. Field access is guarded by mu; whole-action execution is
// serialized separately through Exec.
type Session struct {
	execMu sync.Mutex // serializes complete action executions
	mu     sync.Mutex // guards the fields below

	seq          *sequence.Sequence
	order        []int // session-private permutation into seq
	current      int
	speed        float64
	paused       bool
	repeat       bool
	shuffle      bool
	alwaysOnTop  bool
	repeatCount  int
	statusFormat string

	history  *history.Stack
	detector *gesture.Detector
}

// New creates a session over the shared sequence. The order starts as the
// identity permutation, or as a fresh random permutation when
// opts.Shuffle is set; each session shuffles independently.
func New(seq *sequence.Sequence, opts Options) *Session {
	order := make([]int, seq.Len())
	for i := range order {
		order[i] = i
	}
	if opts.Shuffle {
		rand.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}

	th := opts.Thresholds
	if th == (gesture.Thresholds{}) {
		th = gesture.DefaultThresholds()
	}

	return &Session{
		seq:          seq,
		order:        order,
		speed:        clampSpeed(opts.Speed),
		paused:       opts.Paused,
		repeat:       opts.Repeat,
		shuffle:      opts.Shuffle,
		alwaysOnTop:  opts.AlwaysOnTop,
		statusFormat: opts.StatusFormat,
		history:      history.NewStack(opts.HistorySize),
		detector:     gesture.NewDetector(th),
	}
}

// Exec runs fn with this session's execution lock held. All action
// dispatch for a session goes through here, so no two actions interleave
// their reads and writes on the same session.
func (s *Session) Exec(fn func() error) error {
	s.execMu.Lock()
	defer s.execMu.Unlock()
	return fn()
}

// History returns the session's undo/redo stack. Callers must hold the
// execution lock (run inside Exec).
func (s *Session) History() *history.Stack {
	return s.history
}

// Detector returns the session's gesture detector. Callers must hold the
// execution lock (run inside Exec); detectors are sequential by contract.
func (s *Session) Detector() *gesture.Detector {
	return s.detector
}

// Len returns the number of items currently in this session's order.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// CurrentIndex returns the current position within the session order.
func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// RealIndex returns the shared-sequence index of the current item.
func (s *Session) RealIndex() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.order) == 0 {
		return 0, false
	}
	return s.order[s.current], true
}

// CurrentPath returns the path of the current item.
func (s *Session) CurrentPath() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.order) == 0 {
		return "", false
	}
	return s.seq.Path(s.order[s.current]), true
}

// Order returns a copy of the session's current permutation.
func (s *Session) Order() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.order))
	copy(out, s.order)
	return out
}

// Advance moves to the next item. At the end it wraps to 0 and counts a
// completed cycle when repeat is on, or saturates at the last index when
// off. Returns the new current index.
func (s *Session) Advance() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.order) == 0 {
		return 0, ErrNoItems
	}
	s.current++
	if s.current >= len(s.order) {
		if s.repeat {
			s.current = 0
			s.repeatCount++
		} else {
			s.current = len(s.order) - 1
		}
	}
	return s.current, nil
}

// Retreat moves to the previous item. At the start it wraps to the last
// index when repeat is on (without counting a cycle), or saturates at 0.
func (s *Session) Retreat() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.order) == 0 {
		return 0, ErrNoItems
	}
	s.current--
	if s.current < 0 {
		if s.repeat {
			s.current = len(s.order) - 1
		} else {
			s.current = 0
		}
	}
	return s.current, nil
}

// TogglePause flips the paused flag and returns the new value.
func (s *Session) TogglePause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = !s.paused
	return s.paused
}

// ToggleRepeat flips the repeat flag and returns the new value.
func (s *Session) ToggleRepeat() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repeat = !s.repeat
	return s.repeat
}

// ToggleAlwaysOnTop flips the always-on-top flag and returns the new value.
func (s *Session) ToggleAlwaysOnTop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alwaysOnTop = !s.alwaysOnTop
	return s.alwaysOnTop
}

// ToggleShuffle switches between a random permutation and the identity
// order. Turning shuffle on relocates the current index so the same item
// stays visible; turning it off resets to the identity permutation with
// the current index at the item's real position.
func (s *Session) ToggleShuffle() (bool, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shuffle = !s.shuffle

	if len(s.order) == 0 {
		// Toggling on an empty sequence only flips the flag, but an
		// identity reset still restores any removed items below.
		if !s.shuffle {
			s.resetOrderLocked()
		}
		return s.shuffle, s.current
	}

	if s.shuffle {
		real := s.order[s.current]
		rand.Shuffle(len(s.order), func(i, j int) {
			s.order[i], s.order[j] = s.order[j], s.order[i]
		})
		s.current = 0
		for i, v := range s.order {
			if v == real {
				s.current = i
				break
			}
		}
	} else {
		real := s.order[s.current]
		s.resetOrderLocked()
		s.current = real
	}
	return s.shuffle, s.current
}

// resetOrderLocked restores the identity permutation over the full
// sequence, which also brings back items removed from this session.
func (s *Session) resetOrderLocked() {
	s.order = make([]int, s.seq.Len())
	for i := range s.order {
		s.order[i] = i
	}
}

// IncreaseSpeed adds one second, clamped to MaxSpeed.
func (s *Session) IncreaseSpeed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speed = clampSpeed(s.speed + 1.0)
	return s.speed
}

// DecreaseSpeed subtracts one second, clamped to MinSpeed.
func (s *Session) DecreaseSpeed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speed = clampSpeed(s.speed - 1.0)
	return s.speed
}

// Removed records an item taken out of a session's order, with enough
// information to put it back.
type Removed struct {
	Real int    // index into the shared sequence
	Pos  int    // position the item held in the session order
	Path string // item path at removal time
}

// RemoveCurrent takes the current item out of this session's order and
// adjusts the current index if it now exceeds the new length. The shared
// sequence is untouched.
func (s *Session) RemoveCurrent() (Removed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.order) == 0 {
		return Removed{}, ErrNoItems
	}
	rem := Removed{
		Real: s.order[s.current],
		Pos:  s.current,
		Path: s.seq.Path(s.order[s.current]),
	}
	s.order = append(s.order[:s.current], s.order[s.current+1:]...)
	if s.current >= len(s.order) {
		s.current = len(s.order) - 1
		if s.current < 0 {
			s.current = 0
		}
	}
	return rem, nil
}

// Restore reinserts a previously removed item at its old position and
// makes it current again.
func (s *Session) Restore(rem Removed) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos := rem.Pos
	if pos > len(s.order) {
		pos = len(s.order)
	}
	s.order = append(s.order[:pos], append([]int{rem.Real}, s.order[pos:]...)...)
	s.current = pos
}

// Status is a consistent snapshot of session state for transports.
type Status struct {
	CurrentIndex int     `json:"current_index"`
	TotalItems   int     `json:"total_images"`
	Paused       bool    `json:"is_paused"`
	Speed        float64 `json:"speed"`
	Repeat       bool    `json:"repeat"`
	Shuffle      bool    `json:"shuffle"`
	AlwaysOnTop  bool    `json:"always_on_top"`
	RepeatCount  int     `json:"repeat_count"`
	StatusText   string  `json:"status_text,omitempty"`
}

// Snapshot returns the session state under a single lock acquisition.
func (s *Session) Snapshot() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Status{
		CurrentIndex: s.current,
		TotalItems:   len(s.order),
		Paused:       s.paused,
		Speed:        s.speed,
		Repeat:       s.repeat,
		Shuffle:      s.shuffle,
		AlwaysOnTop:  s.alwaysOnTop,
		RepeatCount:  s.repeatCount,
	}
	if s.statusFormat != "" {
		st.StatusText = s.formatTemplateLocked(s.statusFormat)
	}
	return st
}

// Paused reports whether auto-advance is suspended. The timer collaborator
// must check this before invoking navigation.
func (s *Session) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// Speed returns the current seconds-per-slide value.
func (s *Session) Speed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speed
}

// RepeatCount returns how many forward wrap-arounds have happened.
func (s *Session) RepeatCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repeatCount
}

func clampSpeed(v float64) float64 {
	if v < MinSpeed {
		return MinSpeed
	}
	if v > MaxSpeed {
		return MaxSpeed
	}
	return v
}
