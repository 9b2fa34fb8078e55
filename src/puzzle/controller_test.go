package puzzle

import (
	"math/rand/v2"
	"testing"

	"jigsaw/src/logx"
)

type fakeHost struct {
	redraws int
	solved  int
	snapped []int
}

func (h *fakeHost) RequestRedraw()      { h.redraws++ }
func (h *fakeHost) PuzzleSolved()       { h.solved++ }
func (h *fakeHost) PieceSnapped(id int) { h.snapped = append(h.snapped, id) }

var testLayout = NewLayout(1000, 800, ScaleInView)

func newTestController(t *testing.T, b *Board) (*Controller, *fakeHost) {
	t.Helper()
	h := &fakeHost{}
	return NewController(b, h, DefaultSnapDistance, logx.NewNopLogx()), h
}

func at(ph Phase, p Point) PointerEvent {
	return PointerEvent{Phase: ph, Device: testLayout.ToDevice(p)}
}

// dragTo presses on the piece position and drags it to dst, then releases
func dragTo(t *testing.T, c *Controller, id int, dst Point, release Phase) {
	t.Helper()
	c.Board().BringToFront(id)
	p, _ := c.Board().Piece(id)
	if !c.Handle(at(PhaseDown, p.Position), testLayout) {
		t.Fatalf("press on piece %d not consumed", id)
	}
	if active, ok := c.Active(); !ok || active != id {
		t.Fatalf("Active = %d,%v want %d", active, ok, id)
	}
	mid := p.Position.Add(dst).Scale(0.5)
	for _, step := range []Point{mid, dst} {
		if !c.Handle(at(PhaseMove, step), testLayout) {
			t.Fatal("move while dragging not consumed")
		}
	}
	if !c.Handle(at(release, dst), testLayout) {
		t.Fatal("release while dragging not consumed")
	}
	if c.State() != StateIdle {
		t.Fatalf("State = %v after release", c.State())
	}
}

func TestDragSnapsPieceNearTarget(t *testing.T) {
	c, h := newTestController(t, Classic())
	c.Shuffle(rand.New(rand.NewPCG(5, 5)))

	p3, _ := c.Board().Piece(3)
	if p3.Target != (Point{0.751, 0.522}) {
		t.Fatalf("piece 3 target = %v", p3.Target)
	}
	dragTo(t, c, 3, p3.Target.Add(Point{0.02, -0.01}), PhaseUp)

	p3, _ = c.Board().Piece(3)
	if !p3.IsSnapped() || p3.Position != p3.Target {
		t.Fatalf("piece 3 = %+v, want snapped on target", p3)
	}
	if order := c.Board().Order(); order[0] != 3 {
		t.Errorf("snapped piece not at the bottom: %v", order)
	}
	if c.Board().IsSolved() || h.solved != 0 {
		t.Errorf("solved = %v, signals = %d", c.Board().IsSolved(), h.solved)
	}
	if len(h.snapped) != 1 || h.snapped[0] != 3 {
		t.Errorf("snapped signals = %v", h.snapped)
	}
	if h.redraws == 0 {
		t.Error("no redraw requested")
	}
}

func TestDragFollowsPointer(t *testing.T) {
	c, _ := newTestController(t, Classic())
	c.Shuffle(rand.New(rand.NewPCG(1, 1)))
	c.Board().BringToFront(1)
	start, _ := c.Board().Piece(1)

	c.Handle(at(PhaseDown, start.Position), testLayout)
	c.Handle(at(PhaseMove, start.Position.Add(Point{0.1, 0.05})), testLayout)

	moved, _ := c.Board().Piece(1)
	if d := moved.Position.Dist(start.Position.Add(Point{0.1, 0.05})); d > 1e-9 {
		t.Errorf("piece at %v, off by %g", moved.Position, d)
	}
}

func TestReleaseFarFromTargetKeepsPieceLoose(t *testing.T) {
	c, h := newTestController(t, Classic())
	c.Shuffle(rand.New(rand.NewPCG(2, 8)))
	p, _ := c.Board().Piece(4)
	away := Point{X: 1 - p.Target.X, Y: 1 - p.Target.Y}

	dragTo(t, c, 4, away, PhaseCancel)

	p, _ = c.Board().Piece(4)
	if p.IsSnapped() {
		t.Error("piece snapped far from target")
	}
	if order := c.Board().Order(); order[len(order)-1] != 4 {
		t.Errorf("dragged piece not on top: %v", order)
	}
	if len(h.snapped) != 0 || h.solved != 0 {
		t.Errorf("unexpected signals: %+v", h)
	}
}

func TestLastSnapSignalsSolvedOnce(t *testing.T) {
	c, h := newTestController(t, Classic())
	c.Shuffle(rand.New(rand.NewPCG(4, 2)))

	for id := 1; id <= 6; id++ {
		p, _ := c.Board().Piece(id)
		dragTo(t, c, id, p.Target, PhaseUp)
		want := 0
		if id == 6 {
			want = 1
		}
		if h.solved != want {
			t.Fatalf("after piece %d solved signals = %d, want %d", id, h.solved, want)
		}
	}

	// locked pieces can not be picked up again
	p, _ := c.Board().Piece(6)
	if c.Handle(at(PhaseDown, p.Position), testLayout) {
		t.Error("press on solved picture consumed")
	}
	if c.Handle(at(PhaseUp, p.Position), testLayout) {
		t.Error("release while idle consumed")
	}
	if h.solved != 1 {
		t.Errorf("solved signals = %d", h.solved)
	}

	c.Shuffle(rand.New(rand.NewPCG(4, 3)))
	if c.Board().IsSolved() {
		t.Error("still solved after shuffle")
	}
}

func TestPressOnEmptyStaysIdle(t *testing.T) {
	b, err := NewBoard(NewPiece(1, "a", Point{0.1, 0.1}, Point{0.2, 0.2}, Point{}))
	if err != nil {
		t.Fatal(err)
	}
	c, h := newTestController(t, b)

	tests := []struct {
		name string
		ev   PointerEvent
	}{
		{"empty board area", at(PhaseDown, Point{0.8, 0.8})},
		{"outside the board", PointerEvent{Phase: PhaseDown, Device: Point{1, 1}}},
		{"move while idle", at(PhaseMove, Point{0.15, 0.15})},
		{"cancel while idle", at(PhaseCancel, Point{0.15, 0.15})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c.Handle(tt.ev, testLayout) {
				t.Error("event consumed")
			}
			if c.State() != StateIdle {
				t.Errorf("State = %v", c.State())
			}
		})
	}
	if h.redraws != 0 {
		t.Errorf("redraws = %d", h.redraws)
	}
}

func TestLayoutMapping(t *testing.T) {
	l := NewLayout(1000, 800, 0.9)
	if l.Edge != 720 || l.Origin != (Point{140, 40}) {
		t.Fatalf("layout = %+v", l)
	}
	got := l.ToBoard(Point{500, 400})
	if got.Dist(Point{0.5, 0.5}) > 1e-12 {
		t.Errorf("ToBoard(center) = %v", got)
	}
	back := l.ToDevice(got)
	if back.Dist(Point{500, 400}) > 1e-9 {
		t.Errorf("ToDevice = %v", back)
	}
}

func TestMoveWithCollapsedLayoutIsIgnored(t *testing.T) {
	c, h := newTestController(t, Classic())
	c.Restore([]Placement{{ID: 1, X: 0.8, Y: 0.8}})
	c.Board().BringToFront(1)

	if !c.Handle(at(PhaseDown, Point{0.8, 0.8}), testLayout) {
		t.Fatal("press on piece 1 not consumed")
	}
	if !c.Handle(PointerEvent{Phase: PhaseMove, Device: Point{10, 10}}, Layout{}) {
		t.Fatal("move while dragging not consumed")
	}
	p, _ := c.Board().Piece(1)
	if p.Position != (Point{0.8, 0.8}) {
		t.Fatalf("piece moved to %v under a collapsed layout", p.Position)
	}

	c.Handle(at(PhaseMove, Point{0.85, 0.8}), testLayout)
	c.Handle(at(PhaseUp, Point{0.85, 0.8}), testLayout)

	p, _ = c.Board().Piece(1)
	if p.IsSnapped() || len(h.snapped) != 0 {
		t.Fatalf("piece far from target snapped: %+v", p)
	}
	if d := p.Position.Dist(Point{0.85, 0.8}); d > 1e-9 {
		t.Errorf("piece at %v, off by %g", p.Position, d)
	}
}

func TestLayoutWithoutRoom(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
	}{
		{"negative height", 100, -20},
		{"zero width", 0, 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLayout(tt.w, tt.h, ScaleInView)
			if l.Edge != 0 {
				t.Fatalf("edge = %v, want 0", l.Edge)
			}
			if l.ToBoard(Point{1, 1}).Finite() {
				t.Error("mapping through an empty layout must not be finite")
			}
		})
	}
}
