package puzzle

import "jigsaw/src/logx"

// ---- Pointer input ----

type Phase int

const (
	PhaseDown Phase = iota
	PhaseMove
	PhaseUp
	PhaseCancel
)

func (ph Phase) String() string {
	switch ph {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	case PhaseCancel:
		return "cancel"
	default:
	}
	return "unknown"
}

type PointerEvent struct {
	Phase  Phase
	Device Point // device pixels (or cells)
}

// Host receives fire-and-forget signals from the controller
type Host interface {
	RequestRedraw()
	PuzzleSolved()
}

// SnapObserver is an optional Host extension told about every locked piece
type SnapObserver interface {
	PieceSnapped(id int)
}

type State int

const (
	StateIdle State = iota
	StateDragging
)

func (s State) String() string {
	if s == StateDragging {
		return "dragging"
	}
	return "idle"
}

// ---- Controller ----

// Controller turns pointer events into board operations.
// It is driven from the host event thread only.
type Controller struct {
	board     *Board
	host      Host
	tolerance float64
	logger    logx.Logger

	state  State
	active int
	last   Point
}

func NewController(b *Board, h Host, tolerance float64, logger logx.Logger) *Controller {
	if tolerance <= 0 {
		tolerance = DefaultSnapDistance
	}
	return &Controller{board: b, host: h, tolerance: tolerance, logger: logger}
}

func (c *Controller) Board() *Board {
	return c.board
}

func (c *Controller) State() State {
	return c.state
}

// Active returns the dragged piece id
func (c *Controller) Active() (int, bool) {
	return c.active, c.state == StateDragging
}

func (c *Controller) Tolerance() float64 {
	return c.tolerance
}

// Handle processes one pointer event with the current board layout and
// reports whether the event was consumed
func (c *Controller) Handle(ev PointerEvent, l Layout) bool {
	p := l.ToBoard(ev.Device)

	switch ev.Phase {
	case PhaseDown:
		if c.state == StateDragging {
			// lost release, finish the previous drag first
			c.release()
		}
		return c.press(p)
	case PhaseMove:
		if c.state != StateDragging {
			return false
		}
		if !p.Finite() {
			// collapsed layout, keep the piece where it is
			return true
		}
		c.board.TranslatePiece(c.active, p.Sub(c.last))
		c.last = p
		c.host.RequestRedraw()
		return true
	case PhaseUp, PhaseCancel:
		if c.state != StateDragging {
			return false
		}
		c.release()
		return true
	default:
	}
	return false
}

func (c *Controller) press(p Point) bool {
	id, ok := c.board.HitTest(p)
	if !ok {
		return false
	}
	c.board.BringToFront(id)
	c.state = StateDragging
	c.active = id
	c.last = p
	c.logger.Debugf("drag piece %d from (%.3f, %.3f)", id, p.X, p.Y)
	c.host.RequestRedraw()
	return true
}

func (c *Controller) release() {
	id := c.active
	c.state = StateIdle
	c.active = 0

	snapped := c.board.TrySnapPiece(id, c.tolerance)
	c.host.RequestRedraw()
	if !snapped {
		return
	}
	c.logger.Infof("piece %d snapped (%d/%d)", id, c.board.SnappedCount(), c.board.Len())
	if so, ok := c.host.(SnapObserver); ok {
		so.PieceSnapped(id)
	}
	if c.board.IsSolved() {
		c.logger.Info("puzzle solved")
		c.host.PuzzleSolved()
	}
}

// Shuffle drops any drag in progress and scatters the pieces
func (c *Controller) Shuffle(rng Rand) {
	c.state = StateIdle
	c.active = 0
	c.board.Shuffle(rng)
	c.logger.Debug("pieces shuffled")
	c.host.RequestRedraw()
}

// Restore drops any drag in progress and applies saved positions
func (c *Controller) Restore(saved []Placement) {
	c.state = StateIdle
	c.active = 0
	c.board.Restore(saved)
	c.logger.Debugf("restored %d placements", len(saved))
	c.host.RequestRedraw()
}
