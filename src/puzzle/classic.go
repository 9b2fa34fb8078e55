package puzzle

import "fmt"

// DefaultSnapDistance is the snap tolerance in board units
const DefaultSnapDistance = 0.05

// classic piece centers and footprints of the grubby picture
var classicSet = []struct {
	center, size Point
}{
	{Point{0.264, 0.175}, Point{0.50, 0.35}},
	{Point{0.701, 0.239}, Point{0.56, 0.46}},
	{Point{0.751, 0.522}, Point{0.46, 0.42}},
	{Point{0.335, 0.477}, Point{0.60, 0.40}},
	{Point{0.662, 0.792}, Point{0.62, 0.40}},
	{Point{0.254, 0.818}, Point{0.48, 0.36}},
}

// ClassicPieces returns the six piece picture, ids 1..6, centered anchors
func ClassicPieces() []Piece {
	pieces := make([]Piece, 0, len(classicSet))
	for i, c := range classicSet {
		id := i + 1
		pieces = append(pieces, NewPiece(id, fmt.Sprintf("grubby%d", id), c.center, c.size, c.size.Scale(0.5)))
	}
	return pieces
}

func Classic() *Board {
	b, err := NewBoard(ClassicPieces()...)
	if err != nil {
		// static data
		panic(err)
	}
	return b
}
