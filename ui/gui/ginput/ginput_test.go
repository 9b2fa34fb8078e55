package ginput

import (
	"testing"

	"jigsaw/src/puzzle"
)

func TestTrackerSequence(t *testing.T) {
	type frame struct {
		x, y    int
		pressed bool
		want    puzzle.Phase
		emit    bool
	}
	frames := []frame{
		{10, 10, false, 0, false},
		{12, 10, false, 0, false},
		{12, 10, true, puzzle.PhaseDown, true},
		{12, 10, true, 0, false},
		{20, 15, true, puzzle.PhaseMove, true},
		{25, 15, false, puzzle.PhaseUp, true},
		{30, 30, false, 0, false},
	}

	var tr Tracker
	for i, f := range frames {
		ev, ok := tr.Update(f.x, f.y, f.pressed)
		if ok != f.emit {
			t.Fatalf("frame %d: emitted = %v, want %v", i, ok, f.emit)
		}
		if !ok {
			continue
		}
		if ev.Phase != f.want {
			t.Errorf("frame %d: phase = %v, want %v", i, ev.Phase, f.want)
		}
		if ev.Device != (puzzle.Point{X: float64(f.x), Y: float64(f.y)}) {
			t.Errorf("frame %d: device = %v", i, ev.Device)
		}
	}
}

func TestTrackerCancel(t *testing.T) {
	var tr Tracker
	if _, ok := tr.Cancel(); ok {
		t.Fatal("cancel without press emitted")
	}
	tr.Update(5, 6, true)
	ev, ok := tr.Cancel()
	if !ok || ev.Phase != puzzle.PhaseCancel || ev.Device != (puzzle.Point{X: 5, Y: 6}) {
		t.Fatalf("Cancel = %+v, %v", ev, ok)
	}
	if tr.Pressed() {
		t.Error("still pressed after cancel")
	}
	if _, ok := tr.Update(5, 6, false); ok {
		t.Error("release after cancel emitted")
	}
}
