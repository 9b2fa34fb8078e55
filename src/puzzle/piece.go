package puzzle

// ---- Piece ----

// Piece is one draggable part of the picture.
// Position is where the piece anchor is now, Target is where it belongs.
// Anchor is the offset of Position from the footprint top-left corner.
type Piece struct {
	ID       int
	Image    string // image handle for the host
	Target   Point
	Position Point
	Size     Point
	Anchor   Point

	snapped bool
}

func NewPiece(id int, image string, target, size, anchor Point) Piece {
	return Piece{
		ID:       id,
		Image:    image,
		Target:   target,
		Position: target,
		Size:     size,
		Anchor:   anchor,
	}
}

// Bounds returns the footprint corners: min inclusive, max exclusive
func (p *Piece) Bounds() (Point, Point) {
	lo := p.Position.Sub(p.Anchor)
	return lo, lo.Add(p.Size)
}

func (p *Piece) Contains(pt Point) bool {
	lo, hi := p.Bounds()
	return pt.X >= lo.X && pt.X < hi.X && pt.Y >= lo.Y && pt.Y < hi.Y
}

func (p *Piece) Translate(delta Point) {
	if p.snapped {
		return
	}
	p.Position = p.Position.Add(delta)
}

// TrySnap locks the piece on its target when it is close enough.
// Reports true only for the transition, a locked piece returns false.
func (p *Piece) TrySnap(tolerance float64) bool {
	// NaN distance must not pass
	if p.snapped || !(p.Position.Dist(p.Target) <= tolerance) {
		return false
	}
	p.Position = p.Target
	p.snapped = true
	return true
}

func (p *Piece) IsSnapped() bool {
	return p.snapped
}

// resnap recomputes the lock flag after the position was set from outside
func (p *Piece) resnap() {
	p.snapped = p.Position == p.Target
}
