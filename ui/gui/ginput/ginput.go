// Package ginput turns polled pointer state into pointer events.
package ginput

import "jigsaw/src/puzzle"

// Tracker remembers the pointer state between frames
type Tracker struct {
	down     bool
	lastX    int
	lastY    int
	lastSeen bool
}

// Update takes this frame's pointer position and button state and returns
// the event it produced, if any. Moves are reported only while pressed.
func (t *Tracker) Update(x, y int, pressed bool) (puzzle.PointerEvent, bool) {
	moved := !t.lastSeen || x != t.lastX || y != t.lastY
	t.lastX, t.lastY, t.lastSeen = x, y, true
	dev := puzzle.Point{X: float64(x), Y: float64(y)}

	switch {
	case pressed && !t.down:
		t.down = true
		return puzzle.PointerEvent{Phase: puzzle.PhaseDown, Device: dev}, true
	case !pressed && t.down:
		t.down = false
		return puzzle.PointerEvent{Phase: puzzle.PhaseUp, Device: dev}, true
	case pressed && moved:
		return puzzle.PointerEvent{Phase: puzzle.PhaseMove, Device: dev}, true
	default:
	}
	return puzzle.PointerEvent{}, false
}

// Cancel ends a press without a release (focus lost, touch stolen)
func (t *Tracker) Cancel() (puzzle.PointerEvent, bool) {
	if !t.down {
		return puzzle.PointerEvent{}, false
	}
	t.down = false
	return puzzle.PointerEvent{
		Phase:  puzzle.PhaseCancel,
		Device: puzzle.Point{X: float64(t.lastX), Y: float64(t.lastY)},
	}, true
}

func (t *Tracker) Pressed() bool {
	return t.down
}
