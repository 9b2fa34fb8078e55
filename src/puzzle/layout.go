package puzzle

import "math"

// ScaleInView is the share of the smaller viewport dimension taken by the board
const ScaleInView = 0.9

// Layout places the board in device space
type Layout struct {
	Origin Point // device position of the board top-left
	Edge   float64
}

// NewLayout centers a square board of min(w, h)*scale in a w x h viewport.
// A viewport with no room gives a zero edge.
func NewLayout(w, h, scale float64) Layout {
	edge := math.Max(0, math.Min(w, h)*scale)
	return Layout{
		Origin: Point{X: (w - edge) / 2, Y: (h - edge) / 2},
		Edge:   edge,
	}
}

func (l Layout) ToBoard(device Point) Point {
	if l.Edge <= 0 {
		return Point{X: math.Inf(-1), Y: math.Inf(-1)}
	}
	return device.Sub(l.Origin).Scale(1 / l.Edge)
}

func (l Layout) ToDevice(p Point) Point {
	return p.Scale(l.Edge).Add(l.Origin)
}
