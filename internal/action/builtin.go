package action

import (
	"github.com/llehouerou/qss/internal/session"
)

// basic is a stateless action backed by a function.
type basic struct {
	name string
	desc string
	ctx  Context
	run  func(s *session.Session, p Params) (Result, error)
}

func (b *basic) Name() string        { return b.name }
func (b *basic) Description() string { return b.desc }
func (b *basic) Context() Context    { return b.ctx }
func (b *basic) Execute(s *session.Session, p Params) (Result, error) {
	return b.run(s, p)
}

// NavigateNext advances to the next item, wrapping when repeat is on.
func NavigateNext() Action {
	return &basic{
		name: "navigate_next",
		desc: "Go to next image",
		ctx:  Both,
		run: func(s *session.Session, _ Params) (Result, error) {
			idx, err := s.Advance()
			if err != nil {
				return nil, err
			}
			return Result{"current_index": idx}, nil
		},
	}
}

// NavigatePrevious steps back to the previous item.
func NavigatePrevious() Action {
	return &basic{
		name: "navigate_previous",
		desc: "Go to previous image",
		ctx:  Both,
		run: func(s *session.Session, _ Params) (Result, error) {
			idx, err := s.Retreat()
			if err != nil {
				return nil, err
			}
			return Result{"current_index": idx}, nil
		},
	}
}

// TogglePause flips auto-advance suspension.
func TogglePause() Action {
	return &basic{
		name: "toggle_pause",
		desc: "Pause/resume slideshow",
		ctx:  Both,
		run: func(s *session.Session, _ Params) (Result, error) {
			return Result{"is_paused": s.TogglePause()}, nil
		},
	}
}

// ToggleRepeat flips loop mode.
func ToggleRepeat() Action {
	return &basic{
		name: "toggle_repeat",
		desc: "Toggle loop mode",
		ctx:  Both,
		run: func(s *session.Session, _ Params) (Result, error) {
			return Result{"repeat": s.ToggleRepeat()}, nil
		},
	}
}

// ToggleShuffle switches between random and sequential order, keeping
// the visible item stable across the transition.
func ToggleShuffle() Action {
	return &basic{
		name: "toggle_shuffle",
		desc: "Toggle shuffle mode",
		ctx:  Both,
		run: func(s *session.Session, _ Params) (Result, error) {
			on, idx := s.ToggleShuffle()
			return Result{"shuffle": on, "current_index": idx}, nil
		},
	}
}

// ToggleAlwaysOnTop flips the always-on-top window flag.
func ToggleAlwaysOnTop() Action {
	return &basic{
		name: "toggle_always_on_top",
		desc: "Toggle window always on top",
		ctx:  GUI,
		run: func(s *session.Session, _ Params) (Result, error) {
			return Result{"always_on_top": s.ToggleAlwaysOnTop()}, nil
		},
	}
}

// ToggleFullscreen only echoes the flipped state; the frontend owning
// the window performs the actual switch.
func ToggleFullscreen() Action {
	return &basic{
		name: "toggle_fullscreen",
		desc: "Enter/exit fullscreen",
		ctx:  Both,
		run: func(_ *session.Session, p Params) (Result, error) {
			return Result{
				"is_fullscreen": !p.Bool("is_fullscreen"),
				"action":        "toggle_fullscreen",
			}, nil
		},
	}
}

// IncreaseSpeed slows transitions by one second, up to the maximum.
func IncreaseSpeed() Action {
	return &basic{
		name: "increase_speed",
		desc: "Slower transitions (add 1s)",
		ctx:  Both,
		run: func(s *session.Session, _ Params) (Result, error) {
			return Result{"speed": s.IncreaseSpeed()}, nil
		},
	}
}

// DecreaseSpeed speeds up transitions by one second, down to the minimum.
func DecreaseSpeed() Action {
	return &basic{
		name: "decrease_speed",
		desc: "Faster transitions (subtract 1s)",
		ctx:  Both,
		run: func(s *session.Session, _ Params) (Result, error) {
			return Result{"speed": s.DecreaseSpeed()}, nil
		},
	}
}

// Quit signals the frontend to exit. State is untouched.
func Quit() Action {
	return &basic{
		name: "quit",
		desc: "Exit application",
		ctx:  GUI,
		run: func(_ *session.Session, _ Params) (Result, error) {
			return Result{"action": "quit"}, nil
		},
	}
}
