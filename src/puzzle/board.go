package puzzle

import (
	"errors"
	"fmt"
)

var (
	ErrNoPieces    = errors.New("board needs at least one piece")
	ErrDuplicateID = errors.New("duplicate piece id")
	ErrBadSize     = errors.New("piece size must be positive")
)

// Rand is the random source used by Shuffle. *rand.Rand from math/rand
// and math/rand/v2 both satisfy it.
type Rand interface {
	Float64() float64
}

// Placement is one saved piece position
type Placement struct {
	ID   int
	X, Y float64
}

// Sprite is what a host needs to draw one piece
type Sprite struct {
	PieceID int
	Image   string
	TopLeft Point // device pixels
	Scale   float64
}

// ---- Board ----

// Board owns the pieces. The arena never changes after construction,
// order holds arena slots from bottom (first drawn) to top (last drawn).
type Board struct {
	arena []Piece
	order []int
	byID  map[int]int
}

func NewBoard(pieces ...Piece) (*Board, error) {
	if len(pieces) == 0 {
		return nil, ErrNoPieces
	}
	b := &Board{
		arena: make([]Piece, len(pieces)),
		order: make([]int, len(pieces)),
		byID:  make(map[int]int, len(pieces)),
	}
	for i, p := range pieces {
		if _, exist := b.byID[p.ID]; exist {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, p.ID)
		}
		if p.Size.X <= 0 || p.Size.Y <= 0 {
			return nil, fmt.Errorf("%w: piece %d", ErrBadSize, p.ID)
		}
		b.arena[i] = p
		b.order[i] = i
		b.byID[p.ID] = i
	}
	return b, nil
}

func (b *Board) Len() int {
	return len(b.arena)
}

func (b *Board) piece(id int) *Piece {
	slot, ok := b.byID[id]
	if !ok {
		return nil
	}
	return &b.arena[slot]
}

// Piece returns a copy of the piece with this id
func (b *Board) Piece(id int) (Piece, bool) {
	p := b.piece(id)
	if p == nil {
		return Piece{}, false
	}
	return *p, true
}

// Pieces returns copies of all pieces in draw order
func (b *Board) Pieces() []Piece {
	out := make([]Piece, 0, len(b.order))
	for _, slot := range b.order {
		out = append(out, b.arena[slot])
	}
	return out
}

// Order returns piece ids from bottom to top
func (b *Board) Order() []int {
	ids := make([]int, 0, len(b.order))
	for _, slot := range b.order {
		ids = append(ids, b.arena[slot].ID)
	}
	return ids
}

// HitTest returns the topmost unlocked piece under p.
// Snapped pieces are part of the picture and never picked up again.
func (b *Board) HitTest(p Point) (int, bool) {
	for i := len(b.order) - 1; i >= 0; i-- {
		pc := &b.arena[b.order[i]]
		if pc.IsSnapped() {
			continue
		}
		if pc.Contains(p) {
			return pc.ID, true
		}
	}
	return 0, false
}

func (b *Board) indexInOrder(id int) int {
	slot, ok := b.byID[id]
	if !ok {
		return -1
	}
	for i, s := range b.order {
		if s == slot {
			return i
		}
	}
	return -1
}

func (b *Board) BringToFront(id int) {
	i := b.indexInOrder(id)
	if i < 0 || i == len(b.order)-1 {
		return
	}
	slot := b.order[i]
	copy(b.order[i:], b.order[i+1:])
	b.order[len(b.order)-1] = slot
}

func (b *Board) SendToBack(id int) {
	i := b.indexInOrder(id)
	if i <= 0 {
		return
	}
	slot := b.order[i]
	copy(b.order[1:i+1], b.order[:i])
	b.order[0] = slot
}

func (b *Board) TranslatePiece(id int, delta Point) {
	if p := b.piece(id); p != nil {
		p.Translate(delta)
	}
}

// TrySnapPiece snaps the piece and moves it under all others, so loose
// pieces are always drawn above the solved part of the picture
func (b *Board) TrySnapPiece(id int, tolerance float64) bool {
	p := b.piece(id)
	if p == nil || !p.TrySnap(tolerance) {
		return false
	}
	b.SendToBack(id)
	return true
}

func (b *Board) IsSolved() bool {
	for i := range b.arena {
		if !b.arena[i].IsSnapped() {
			return false
		}
	}
	return true
}

func (b *Board) SnappedCount() int {
	n := 0
	for i := range b.arena {
		if b.arena[i].IsSnapped() {
			n++
		}
	}
	return n
}

// Shuffle scatters every piece so its footprint stays on the board and
// unlocks all of them. Draw order is kept.
func (b *Board) Shuffle(rng Rand) {
	for i := range b.arena {
		p := &b.arena[i]
		p.Position = Point{
			X: p.Anchor.X + rng.Float64()*span(p.Size.X),
			Y: p.Anchor.Y + rng.Float64()*span(p.Size.Y),
		}
		p.snapped = false
	}
}

func span(size float64) float64 {
	if size >= 1 {
		return 0
	}
	return 1 - size
}

// ---- Save / Restore ----

// Serialize returns the piece positions in draw order
func (b *Board) Serialize() []Placement {
	out := make([]Placement, 0, len(b.order))
	for _, slot := range b.order {
		p := &b.arena[slot]
		out = append(out, Placement{ID: p.ID, X: p.Position.X, Y: p.Position.Y})
	}
	return out
}

// Restore applies saved positions by id. Unknown ids are ignored and
// pieces missing from the list keep their position. Referenced pieces are
// stacked in saved order above the others, lock flags are recomputed.
func (b *Board) Restore(saved []Placement) {
	seen := make(map[int]bool, len(saved))
	restored := make([]int, 0, len(saved))
	for _, pl := range saved {
		slot, ok := b.byID[pl.ID]
		if !ok {
			continue
		}
		p := &b.arena[slot]
		p.Position = Point{X: pl.X, Y: pl.Y}
		p.resnap()
		if !seen[pl.ID] {
			seen[pl.ID] = true
			restored = append(restored, slot)
		}
	}
	if len(restored) == 0 {
		return
	}

	order := make([]int, 0, len(b.order))
	for _, slot := range b.order {
		if !seen[b.arena[slot].ID] {
			order = append(order, slot)
		}
	}
	b.order = append(order, restored...)
}

// ---- Render ----

// Sprites returns draw data in draw order. imageEdge is the pixel edge
// of the full picture the piece images were cut from.
func (b *Board) Sprites(l Layout, imageEdge float64) []Sprite {
	scale := 1.0
	if imageEdge > 0 {
		scale = l.Edge / imageEdge
	}
	out := make([]Sprite, 0, len(b.order))
	for _, slot := range b.order {
		p := &b.arena[slot]
		lo, _ := p.Bounds()
		out = append(out, Sprite{
			PieceID: p.ID,
			Image:   p.Image,
			TopLeft: l.ToDevice(lo),
			Scale:   scale,
		})
	}
	return out
}
