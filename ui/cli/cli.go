package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"jigsaw/src/logx"
	"jigsaw/src/puzzle"
	"jigsaw/src/storage"

	"golang.org/x/term"
)

const (
	DefaultCols = 48
	DefaultRows = 20
)

// commands take board coordinates, so device space is the unit square
var unitLayout = puzzle.Layout{Edge: 1}

type CLIProcessing struct {
	ctrl   *puzzle.Controller
	board  *puzzle.Board
	rng    puzzle.Rand
	store  *storage.Store
	slot   string
	logger logx.Logger

	in     io.Reader
	out    io.Writer
	prompt bool
	ansi   bool
	cols   int
	rows   int

	dirty  bool
	solved bool
}

// NewCLI reads commands from stdin. store may be nil, then save/load are off.
func NewCLI(b *puzzle.Board, rng puzzle.Rand, store *storage.Store, slot string,
	tolerance float64, logger logx.Logger) *CLIProcessing {
	c := &CLIProcessing{
		board:  b,
		rng:    rng,
		store:  store,
		slot:   slot,
		logger: logger,
		in:     os.Stdin,
		out:    os.Stdout,
		cols:   DefaultCols,
		rows:   DefaultRows,
	}
	c.ctrl = puzzle.NewController(b, c, tolerance, logger)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		c.prompt = true
		c.ansi = true
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w-2 < c.cols && w > 10 {
			c.cols = w - 2
		}
	}
	return c
}

// SetIO redirects the shell, prompt and colors are turned off
func (c *CLIProcessing) SetIO(in io.Reader, out io.Writer) {
	c.in, c.out = in, out
	c.prompt, c.ansi = false, false
}

// ---- puzzle.Host ----

func (c *CLIProcessing) RequestRedraw() {
	c.dirty = true
}

func (c *CLIProcessing) PuzzleSolved() {
	c.solved = true
	fmt.Fprintln(c.out, "Puzzle solved! Type 'shuffle' to play again or 'q' to quit.")
}

func (c *CLIProcessing) PieceSnapped(id int) {
	fmt.Fprintf(c.out, "piece %d snapped\n", id)
}

// ---- shell ----

var errQuit = errors.New("quit")

func (c *CLIProcessing) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(c.in)
	c.draw()
	fmt.Fprintln(c.out, "Type 'help' for commands, 'q' to quit.")
	for {
		if c.prompt {
			fmt.Fprint(c.out, "> ")
		}
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			break
		}
		err := c.Exec(ctx, scanner.Text())
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
		}
		if c.dirty {
			c.draw()
		}
	}
	c.autosave(ctx)
	return scanner.Err()
}

// Exec runs one command line
func (c *CLIProcessing) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "q", "quit", "exit":
		return errQuit
	case "help", "?":
		c.printHelp()
	case "show":
		c.draw()
	case "pieces":
		c.printPieces()
	case "down", "move", "up":
		p, err := parsePoint(args)
		if err != nil {
			return err
		}
		c.ctrl.Handle(puzzle.PointerEvent{Phase: phaseByName[cmd], Device: p}, unitLayout)
	case "cancel":
		c.ctrl.Handle(puzzle.PointerEvent{Phase: puzzle.PhaseCancel}, unitLayout)
	case "drag":
		return c.drag(args)
	case "shuffle":
		c.solved = false
		c.ctrl.Shuffle(c.rng)
	case "save":
		if err := c.save(ctx); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "saved to slot %q\n", c.slot)
	case "load":
		if err := c.load(ctx); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "loaded slot %q\n", c.slot)
	case "slots":
		return c.printSlots(ctx)
	case "delete":
		slot := c.slot
		if len(args) > 0 {
			slot = strings.Join(args, " ")
		}
		if err := c.store.Delete(ctx, slot); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "deleted slot %q\n", slot)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

var phaseByName = map[string]puzzle.Phase{
	"down": puzzle.PhaseDown,
	"move": puzzle.PhaseMove,
	"up":   puzzle.PhaseUp,
}

// drag ID X Y presses on the piece position, moves to X Y and releases
func (c *CLIProcessing) drag(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: drag ID X Y")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("bad piece id %q", args[0])
	}
	to, err := parsePoint(args[1:])
	if err != nil {
		return err
	}
	p, ok := c.board.Piece(id)
	if !ok {
		return fmt.Errorf("no piece %d", id)
	}
	if p.IsSnapped() {
		return fmt.Errorf("piece %d is already in place", id)
	}
	if hit, ok := c.board.HitTest(p.Position); !ok || hit != id {
		return fmt.Errorf("piece %d is covered at its position", id)
	}

	c.ctrl.Handle(puzzle.PointerEvent{Phase: puzzle.PhaseDown, Device: p.Position}, unitLayout)
	c.ctrl.Handle(puzzle.PointerEvent{Phase: puzzle.PhaseMove, Device: to}, unitLayout)
	c.ctrl.Handle(puzzle.PointerEvent{Phase: puzzle.PhaseUp, Device: to}, unitLayout)
	return nil
}

func parsePoint(args []string) (puzzle.Point, error) {
	if len(args) != 2 {
		return puzzle.Point{}, fmt.Errorf("expected X Y")
	}
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return puzzle.Point{}, fmt.Errorf("bad X %q", args[0])
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return puzzle.Point{}, fmt.Errorf("bad Y %q", args[1])
	}
	return puzzle.Point{X: x, Y: y}, nil
}

func (c *CLIProcessing) save(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.store.Save(ctx, c.slot, c.board.Serialize())
}

func (c *CLIProcessing) load(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	saved, err := c.store.Load(ctx, c.slot)
	if err != nil {
		return err
	}
	c.solved = false
	c.ctrl.Restore(saved)
	return nil
}

func (c *CLIProcessing) autosave(ctx context.Context) {
	if c.store == nil {
		return
	}
	if err := c.save(context.WithoutCancel(ctx)); err != nil {
		c.logger.Errorf("error autosave: %v", err)
	}
}

func (c *CLIProcessing) draw() {
	PrintBoard(c.out, c.board, c.cols, c.rows, c.ansi)
	if c.solved {
		fmt.Fprintln(c.out, "all pieces in place")
	}
	c.dirty = false
}

func (c *CLIProcessing) printPieces() {
	fmt.Fprintf(c.out, "snap distance %.3f\n", c.ctrl.Tolerance())
	for _, p := range c.board.Pieces() {
		state := "loose"
		if p.IsSnapped() {
			state = "snapped"
		}
		fmt.Fprintf(c.out, "%d %s at (%.3f, %.3f) %s\n", p.ID, p.Image, p.Position.X, p.Position.Y, state)
	}
}

func (c *CLIProcessing) printSlots(ctx context.Context) error {
	slots, err := c.store.Slots(ctx)
	if err != nil {
		return err
	}
	for _, s := range slots {
		fmt.Fprintf(c.out, "%s\t%d pieces\t%s\n", s.Name, s.Pieces, s.UpdatedAt.Format(time.DateTime))
	}
	return nil
}

func (c *CLIProcessing) printHelp() {
	fmt.Fprint(c.out, `Coordinates are board units, 0..1 from the top-left corner.
  down X Y | move X Y | up X Y   pointer events
  cancel                         abort the current drag
  drag ID X Y                    pick piece ID and drop it at X Y
  pieces                         list piece positions
  show                           redraw the board
  shuffle                        scatter the pieces
  save | load | slots            save slot commands
  delete [SLOT]                  remove a save slot, the current one by default
  q                              quit
`)
}
