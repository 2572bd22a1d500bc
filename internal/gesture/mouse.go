package gesture

import "time"

// MouseEventType identifies mouse event phases adapted into the detector.
type MouseEventType int

const (
	MouseDown MouseEventType = iota
	MouseMove
	MouseUp
)

// ProcessMouse adapts a mouse event into the touch machinery by treating
// button-down/move/up as a single synthetic contact point.
func (d *Detector) ProcessMouse(typ MouseEventType, x, y float64, now time.Time) Gesture {
	switch typ {
	case MouseDown:
		return d.Process(Event{Type: Start, Points: []Point{{X: x, Y: y}}, Time: now})
	case MouseMove:
		return d.Process(Event{Type: Move, Points: []Point{{X: x, Y: y}}, Time: now})
	case MouseUp:
		return d.Process(Event{Type: End, Points: []Point{{X: x, Y: y}}, Time: now})
	}
	return None
}
