package cli

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"jigsaw/src/logx"
	"jigsaw/src/puzzle"
	"jigsaw/src/storage"
)

// two squares on the main diagonal, each at its target
func diagonalBoard(t *testing.T) *puzzle.Board {
	t.Helper()
	half := puzzle.Point{X: 0.5, Y: 0.5}
	b, err := puzzle.NewBoard(
		puzzle.NewPiece(1, "a", puzzle.Point{}, half, puzzle.Point{}),
		puzzle.NewPiece(2, "b", half, half, puzzle.Point{}),
	)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	return b
}

func rows(grid [][]Cell) []string {
	out := make([]string, 0, len(grid))
	for _, row := range grid {
		var sb strings.Builder
		for _, c := range row {
			sb.WriteRune(c.Rune())
		}
		out = append(out, sb.String())
	}
	return out
}

func TestRasterize(t *testing.T) {
	b := diagonalBoard(t)
	got := strings.Join(rows(Rasterize(b, 4, 4)), "/")
	if want := "11../11../..22/..22"; got != want {
		t.Fatalf("loose: got %s want %s", got, want)
	}

	if !b.TrySnapPiece(1, 0.05) {
		t.Fatal("piece 1 should snap in place")
	}
	got = strings.Join(rows(Rasterize(b, 4, 4)), "/")
	if want := "AA../AA../..22/..22"; got != want {
		t.Fatalf("snapped: got %s want %s", got, want)
	}
}

func TestPrintBoardPlain(t *testing.T) {
	var buf bytes.Buffer
	PrintBoard(&buf, diagonalBoard(t), 4, 2, false)
	want := "+----+\n|11..|\n|..22|\n+----+\nsnapped 0 of 2\n"
	if buf.String() != want {
		t.Fatalf("got\n%s\nwant\n%s", buf.String(), want)
	}
}

func newTestCLI(t *testing.T) (*CLIProcessing, *bytes.Buffer) {
	t.Helper()
	rng := rand.New(rand.NewPCG(7, 11))
	c := NewCLI(diagonalBoard(t), rng, nil, "test", 0.05, logx.NewNopLogx())
	var out bytes.Buffer
	c.SetIO(strings.NewReader(""), &out)
	return c, &out
}

func TestExecDragToSolve(t *testing.T) {
	c, out := newTestCLI(t)
	ctx := context.Background()

	steps := []string{
		"drag 1 0.25 0.25",
		"drag 1 0.01 0.01",
		"drag 2 0.5 0.5",
	}
	for _, s := range steps {
		if err := c.Exec(ctx, s); err != nil {
			t.Fatalf("%q: %v", s, err)
		}
	}
	text := out.String()
	for _, want := range []string{"piece 1 snapped", "piece 2 snapped", "Puzzle solved!"} {
		if !strings.Contains(text, want) {
			t.Errorf("output misses %q:\n%s", want, text)
		}
	}
	if strings.Count(text, "Puzzle solved!") != 1 {
		t.Errorf("solved reported more than once:\n%s", text)
	}
	if !c.board.IsSolved() {
		t.Error("board should be solved")
	}
}

func TestExecPointerEvents(t *testing.T) {
	c, _ := newTestCLI(t)
	ctx := context.Background()

	for _, s := range []string{"down 0.1 0.1", "move 0.2 0.3"} {
		if err := c.Exec(ctx, s); err != nil {
			t.Fatalf("%q: %v", s, err)
		}
	}
	if id, ok := c.ctrl.Active(); !ok || id != 1 {
		t.Fatalf("active = %d,%v, want 1,true", id, ok)
	}
	if err := c.Exec(ctx, "cancel"); err != nil {
		t.Fatal(err)
	}
	if c.ctrl.State() != puzzle.StateIdle {
		t.Fatal("cancel should end the drag")
	}
	p, _ := c.board.Piece(1)
	if p.IsSnapped() {
		t.Fatal("piece moved away must not snap")
	}
}

func TestExecErrors(t *testing.T) {
	c, _ := newTestCLI(t)
	ctx := context.Background()

	tests := []struct {
		line string
		want string
	}{
		{"bogus", "unknown command"},
		{"down x 1", "bad X"},
		{"move 1", "expected X Y"},
		{"drag 9 0 0", "no piece 9"},
		{"drag one 0 0", "bad piece id"},
		{"drag 1 0", "usage"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			err := c.Exec(ctx, tt.line)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("got %v, want error containing %q", err, tt.want)
			}
		})
	}

	if err := c.Exec(ctx, "save"); !errors.Is(err, storage.ErrNotConfigured) {
		t.Fatalf("save without store: %v", err)
	}
	if err := c.Exec(ctx, "q"); !errors.Is(err, errQuit) {
		t.Fatalf("q: %v", err)
	}
	if err := c.Exec(ctx, "   "); err != nil {
		t.Fatalf("blank line: %v", err)
	}
}

func TestExecSaveLoad(t *testing.T) {
	store, err := storage.Open(t.TempDir() + "/cli.db")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	c, _ := newTestCLI(t)
	c.store = store
	ctx := context.Background()

	if err := c.Exec(ctx, "drag 1 0.25 0.25"); err != nil {
		t.Fatal(err)
	}
	if err := c.Exec(ctx, "save"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := c.Exec(ctx, "drag 1 0.3 0.3"); err != nil {
		t.Fatal(err)
	}
	if err := c.Exec(ctx, "load"); err != nil {
		t.Fatalf("load: %v", err)
	}
	p, _ := c.board.Piece(1)
	if p.Position != (puzzle.Point{X: 0.25, Y: 0.25}) {
		t.Fatalf("restored position = %+v", p.Position)
	}
}

func TestRun(t *testing.T) {
	c, out := newTestCLI(t)
	c.SetIO(strings.NewReader("drag 1 0.25 0.25\nnope\nq\nshow\n"), out)

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, `error: unknown command "nope"`) {
		t.Errorf("missing error line:\n%s", text)
	}
	// initial draw plus the redraw after the drag, nothing after q
	if n := strings.Count(text, "snapped 0 of 2"); n != 2 {
		t.Errorf("board drawn %d times, want 2:\n%s", n, text)
	}
}

func TestRasterizeEmptyGrid(t *testing.T) {
	for _, size := range [][2]int{{0, 4}, {4, 0}, {4, -2}} {
		if got := Rasterize(diagonalBoard(t), size[0], size[1]); len(got) != 0 {
			t.Errorf("Rasterize(%d, %d) = %d rows", size[0], size[1], len(got))
		}
	}
}

func TestShowAfterSolve(t *testing.T) {
	c, out := newTestCLI(t)
	ctx := context.Background()

	for _, s := range []string{"drag 1 0.25 0.25", "show"} {
		if err := c.Exec(ctx, s); err != nil {
			t.Fatal(err)
		}
	}
	if strings.Contains(out.String(), "all pieces in place") {
		t.Fatalf("unsolved board reported solved:\n%s", out)
	}

	for _, s := range []string{"drag 1 0.01 0.01", "drag 2 0.5 0.5", "show"} {
		if err := c.Exec(ctx, s); err != nil {
			t.Fatal(err)
		}
	}
	if !strings.Contains(out.String(), "all pieces in place") {
		t.Fatalf("solved board not reported:\n%s", out)
	}

	out.Reset()
	if err := c.Exec(ctx, "shuffle"); err != nil {
		t.Fatal(err)
	}
	if err := c.Exec(ctx, "show"); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "all pieces in place") {
		t.Fatalf("shuffled board still reported solved:\n%s", out)
	}
}

func TestPiecesListsSnapDistance(t *testing.T) {
	c, out := newTestCLI(t)
	if err := c.Exec(context.Background(), "pieces"); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "snap distance 0.050\n") {
		t.Fatalf("pieces output:\n%s", out)
	}
}

func TestExecDelete(t *testing.T) {
	store, err := storage.Open(t.TempDir() + "/cli.db")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	c, out := newTestCLI(t)
	c.store = store
	ctx := context.Background()

	for _, s := range []string{"save", "delete"} {
		if err := c.Exec(ctx, s); err != nil {
			t.Fatalf("%q: %v", s, err)
		}
	}
	if !strings.Contains(out.String(), `deleted slot "test"`) {
		t.Errorf("output:\n%s", out)
	}
	if err := c.Exec(ctx, "load"); !errors.Is(err, storage.ErrSlotNotFound) {
		t.Errorf("load after delete = %v", err)
	}
	if err := c.Exec(ctx, "delete other"); !errors.Is(err, storage.ErrSlotNotFound) {
		t.Errorf("delete of a missing slot = %v", err)
	}
}
