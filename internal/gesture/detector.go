// Package gesture classifies raw pointer/touch event streams into named
// gestures. A Detector tracks exactly one input episode at a time and is
// sequential by contract: events must arrive in temporal order, and
// concurrent input streams need separate detectors.
package gesture

import (
	"math"
	"time"
)

// Gesture is a classified input gesture, used as a binding token.
type Gesture string

const (
	None Gesture = ""

	SwipeLeft  Gesture = "swipe_left"
	SwipeRight Gesture = "swipe_right"
	SwipeUp    Gesture = "swipe_up"
	SwipeDown  Gesture = "swipe_down"

	DoubleTap Gesture = "double_tap"
	LongPress Gesture = "long_press"

	PinchIn  Gesture = "pinch_in"
	PinchOut Gesture = "pinch_out"

	TwoFingerSwipeLeft  Gesture = "two_finger_swipe_left"
	TwoFingerSwipeRight Gesture = "two_finger_swipe_right"
	TwoFingerSwipeUp    Gesture = "two_finger_swipe_up"
	TwoFingerSwipeDown  Gesture = "two_finger_swipe_down"

	ThreeFingerTap Gesture = "three_finger_tap"
)

// EventType identifies the phase of a touch event.
type EventType int

const (
	Start EventType = iota
	Move
	End
)

// Point is a single contact point.
type Point struct {
	X, Y float64
	ID   int
}

// Event is one sample from an input stream.
type Event struct {
	Type   EventType
	Points []Point
	Time   time.Time
}

// Thresholds configure gesture classification.
type Thresholds struct {
	Swipe     float64       // minimum displacement for a swipe
	Pinch     float64       // minimum change in inter-point distance
	LongPress time.Duration // minimum hold for a long press
	DoubleTap time.Duration // maximum gap between taps
}

// DefaultThresholds returns the standard classification thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Swipe:     50,
		Pinch:     30,
		LongPress: 500 * time.Millisecond,
		DoubleTap: 300 * time.Millisecond,
	}
}

// Detector is the gesture state machine. It emits at most one gesture
// per input episode (from first contact to release).
type Detector struct {
	th Thresholds

	active      bool
	consumed    bool // a gesture was already emitted for this episode
	startTime   time.Time
	startPoints []Point
	lastPoints  []Point
	lastEvent   time.Time

	tapPending bool
	lastTap    time.Time
}

// NewDetector creates a detector with the given thresholds.
func NewDetector(th Thresholds) *Detector {
	return &Detector{th: th}
}

// Process consumes one event and returns the classified gesture, or None.
func (d *Detector) Process(ev Event) Gesture {
	d.lastEvent = ev.Time

	switch ev.Type {
	case Start:
		d.active = true
		d.consumed = false
		d.startTime = ev.Time
		d.startPoints = clonePoints(ev.Points)
		d.lastPoints = clonePoints(ev.Points)

		if len(ev.Points) == 3 {
			return d.emit(ThreeFingerTap)
		}

	case Move:
		if !d.active || d.consumed {
			return None
		}
		if len(d.startPoints) == 2 && len(ev.Points) == 2 {
			return d.classifyTwoPoint(ev.Points)
		}
		if len(ev.Points) > 0 {
			d.lastPoints = clonePoints(ev.Points)
		}

	case End:
		if !d.active || d.consumed {
			d.active = false
			return None
		}
		d.active = false
		if len(d.startPoints) == 1 {
			return d.classifyRelease(ev)
		}
	}

	return None
}

// classifyTwoPoint checks pinch first, then two-finger swipes, comparing
// the current point set against the points recorded at episode start.
func (d *Detector) classifyTwoPoint(points []Point) Gesture {
	startDist := distance(d.startPoints[0], d.startPoints[1])
	curDist := distance(points[0], points[1])

	if math.Abs(curDist-startDist) > d.th.Pinch {
		if curDist > startDist {
			return d.emit(PinchOut)
		}
		return d.emit(PinchIn)
	}

	// Average displacement of both points since episode start.
	dx := ((points[0].X - d.startPoints[0].X) + (points[1].X - d.startPoints[1].X)) / 2
	dy := ((points[0].Y - d.startPoints[0].Y) + (points[1].Y - d.startPoints[1].Y)) / 2

	switch {
	case math.Abs(dx) > d.th.Swipe && math.Abs(dx) >= math.Abs(dy):
		if dx > 0 {
			return d.emit(TwoFingerSwipeRight)
		}
		return d.emit(TwoFingerSwipeLeft)
	case math.Abs(dy) > d.th.Swipe:
		if dy > 0 {
			return d.emit(TwoFingerSwipeDown)
		}
		return d.emit(TwoFingerSwipeUp)
	}
	return None
}

// classifyRelease handles the end of a one-point episode: long press,
// then directional swipe, then tap bookkeeping.
func (d *Detector) classifyRelease(ev Event) Gesture {
	end := d.startPoints[0]
	if len(ev.Points) > 0 {
		end = ev.Points[0]
	} else if len(d.lastPoints) > 0 {
		end = d.lastPoints[0]
	}

	dx := end.X - d.startPoints[0].X
	dy := end.Y - d.startPoints[0].Y
	displacement := math.Max(math.Abs(dx), math.Abs(dy))

	if ev.Time.Sub(d.startTime) > d.th.LongPress && displacement < d.th.Swipe {
		return d.emit(LongPress)
	}

	switch {
	case math.Abs(dx) > d.th.Swipe && math.Abs(dx) >= math.Abs(dy):
		if dx > 0 {
			return d.emit(SwipeRight)
		}
		return d.emit(SwipeLeft)
	case math.Abs(dy) > d.th.Swipe:
		if dy > 0 {
			return d.emit(SwipeDown)
		}
		return d.emit(SwipeUp)
	}

	// Tap candidate. A lone tap emits nothing so a double tap can follow.
	if d.tapPending && ev.Time.Sub(d.lastTap) < d.th.DoubleTap {
		d.tapPending = false
		return d.emit(DoubleTap)
	}
	d.tapPending = true
	d.lastTap = ev.Time
	return None
}

func (d *Detector) emit(g Gesture) Gesture {
	d.consumed = true
	return g
}

// ExpireIfIdle discards a stale episode (and any pending tap) if no event
// has arrived within timeout. Returns true if state was discarded. This
// bounds memory for episodes that never see a terminating event and keeps
// them from leaking into a later episode's classification.
func (d *Detector) ExpireIfIdle(now time.Time, timeout time.Duration) bool {
	if !d.active && !d.tapPending {
		return false
	}
	if now.Sub(d.lastEvent) < timeout {
		return false
	}
	d.Reset()
	return true
}

// Reset discards all episode and tap state.
func (d *Detector) Reset() {
	d.active = false
	d.consumed = false
	d.startPoints = nil
	d.lastPoints = nil
	d.tapPending = false
}

func distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func clonePoints(p []Point) []Point {
	out := make([]Point, len(p))
	copy(out, p)
	return out
}
