package cli

import (
	"fmt"
	"io"
	"strings"

	"jigsaw/src/puzzle"
)

// Cell is one rasterized character of the board
type Cell struct {
	PieceID int // 0 for the empty frame
	Snapped bool
}

// Rune is the character a cell is printed with: the piece id, a letter
// once the piece is snapped, a dot for the empty frame
func (c Cell) Rune() rune {
	switch {
	case c.PieceID == 0:
		return '.'
	case c.Snapped:
		return rune('A' + (c.PieceID-1)%26)
	default:
		return rune('0' + c.PieceID%10)
	}
}

// Rasterize samples the board at cell centers. Pieces are painted in draw
// order so the topmost one wins.
func Rasterize(b *puzzle.Board, cols, rows int) [][]Cell {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	grid := make([][]Cell, rows)
	for r := range grid {
		grid[r] = make([]Cell, cols)
	}
	for _, p := range b.Pieces() {
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				at := puzzle.Point{
					X: (float64(c) + 0.5) / float64(cols),
					Y: (float64(r) + 0.5) / float64(rows),
				}
				if p.Contains(at) {
					grid[r][c] = Cell{PieceID: p.ID, Snapped: p.IsSnapped()}
				}
			}
		}
	}
	return grid
}

// PrintBoard writes the rasterized board with a border, colored when ansi is on
func PrintBoard(w io.Writer, b *puzzle.Board, cols, rows int, ansi bool) {
	// ANSI-code
	const (
		reset   = "\033[0m"
		dimF    = "\033[90m"
		snapF   = "\033[32m"
		pieceF  = "\033[97m"
		pieceBg = "\033[44m"
	)

	border := "+" + strings.Repeat("-", cols) + "+"
	fmt.Fprintln(w, border)
	for _, row := range Rasterize(b, cols, rows) {
		var sb strings.Builder
		sb.WriteByte('|')
		for _, cell := range row {
			ch := string(cell.Rune())
			if !ansi {
				sb.WriteString(ch)
				continue
			}
			switch {
			case cell.PieceID == 0:
				sb.WriteString(dimF + ch + reset)
			case cell.Snapped:
				sb.WriteString(snapF + ch + reset)
			default:
				sb.WriteString(pieceBg + pieceF + ch + reset)
			}
		}
		sb.WriteByte('|')
		fmt.Fprintln(w, sb.String())
	}
	fmt.Fprintln(w, border)
	fmt.Fprintf(w, "snapped %d of %d\n", b.SnappedCount(), b.Len())
}
