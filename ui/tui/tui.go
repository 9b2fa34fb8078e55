// Package tui plays the puzzle in a terminal with mouse support.
package tui

import (
	"context"
	"fmt"
	"time"

	"jigsaw/src/logx"
	"jigsaw/src/puzzle"
	"jigsaw/src/storage"
	"jigsaw/ui/cli"
	"jigsaw/ui/gui/ginput"
	"jigsaw/ui/sound"

	"github.com/gdamore/tcell/v2"
)

// terminal cells are about twice as tall as wide, device y counts half rows
const cellAspect = 2

var pieceColors = []tcell.Color{
	tcell.ColorSteelBlue,
	tcell.ColorIndianRed,
	tcell.ColorSeaGreen,
	tcell.ColorGoldenrod,
	tcell.ColorMediumPurple,
	tcell.ColorDarkCyan,
}

type TUIProcessing struct {
	screen tcell.Screen
	ctrl   *puzzle.Controller
	board  *puzzle.Board
	rng    puzzle.Rand
	store  *storage.Store
	slot   string
	sound  *sound.Player
	logger logx.Logger

	tracker ginput.Tracker
	layout  puzzle.Layout
	status  string
	dirty   bool
}

// NewTUI takes an initialized screen. store and player may be nil.
func NewTUI(screen tcell.Screen, b *puzzle.Board, rng puzzle.Rand, store *storage.Store, slot string,
	tolerance float64, player *sound.Player, logger logx.Logger) *TUIProcessing {
	t := &TUIProcessing{
		screen: screen,
		board:  b,
		rng:    rng,
		store:  store,
		slot:   slot,
		sound:  player,
		logger: logger,
		dirty:  true,
	}
	t.ctrl = puzzle.NewController(b, t, tolerance, logger)
	t.resize()
	return t
}

// ---- puzzle.Host ----

func (t *TUIProcessing) RequestRedraw() {
	t.dirty = true
}

func (t *TUIProcessing) PuzzleSolved() {
	t.status = "Puzzle solved! Press s to shuffle or q to quit."
	t.sound.Solved()
}

func (t *TUIProcessing) PieceSnapped(id int) {
	t.status = fmt.Sprintf("piece %d snapped", id)
	t.sound.Snap()
}

// ---- loop ----

func (t *TUIProcessing) Run(ctx context.Context) error {
	t.screen.EnableMouse()
	defer t.screen.Fini()

	for ctx.Err() == nil {
		if t.dirty {
			t.draw()
		}
		if !t.handle(t.screen.PollEvent()) {
			break
		}
	}
	t.autosave()
	return nil
}

// handle returns false when the loop should stop
func (t *TUIProcessing) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case nil:
		// screen finalized
		return false
	case *tcell.EventResize:
		t.screen.Sync()
		t.resize()
	case *tcell.EventMouse:
		x, y := ev.Position()
		pe, ok := t.tracker.Update(x, y, ev.Buttons()&tcell.Button1 != 0)
		if ok {
			pe.Device = cellToDevice(x, y)
			t.ctrl.Handle(pe, t.layout)
		}
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			return t.key(ev.Rune())
		}
	case *tcell.EventFocus:
		if !ev.Focused {
			if pe, ok := t.tracker.Cancel(); ok {
				t.ctrl.Handle(pe, t.layout)
			}
		}
	}
	return true
}

func (t *TUIProcessing) key(r rune) bool {
	switch r {
	case 'q', 'Q':
		return false
	case 's', 'S':
		t.status = "shuffled"
		t.ctrl.Shuffle(t.rng)
	case 'w', 'W':
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := t.store.Save(ctx, t.slot, t.board.Serialize()); err != nil {
			t.logger.Errorf("error save: %v", err)
			t.status = fmt.Sprintf("save failed: %v", err)
		} else {
			t.status = fmt.Sprintf("saved to slot %q", t.slot)
		}
		t.dirty = true
	}
	return true
}

func (t *TUIProcessing) autosave() {
	if t.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := t.store.Save(ctx, t.slot, t.board.Serialize()); err != nil {
		t.logger.Errorf("error autosave: %v", err)
	}
}

// ---- geometry ----

// the last row is the status line
func (t *TUIProcessing) resize() {
	w, h := t.screen.Size()
	// NewLayout gives a zero edge when there is no board row left
	t.layout = puzzle.NewLayout(float64(w), float64((h-1)*cellAspect), puzzle.ScaleInView)
	t.dirty = true
}

// cell centers in device units
func cellToDevice(x, y int) puzzle.Point {
	return puzzle.Point{X: float64(x) + 0.5, Y: (float64(y) + 0.5) * cellAspect}
}

// ---- draw ----

func (t *TUIProcessing) draw() {
	s := t.screen
	s.Clear()

	l := t.layout
	cols := int(l.Edge)
	rows := int(l.Edge / cellAspect)
	ox := int(l.Origin.X)
	oy := int(l.Origin.Y / cellAspect)

	frame := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for r, row := range cli.Rasterize(t.board, cols, rows) {
		for c, cell := range row {
			style := frame
			if cell.PieceID != 0 {
				bg := pieceColors[(cell.PieceID-1)%len(pieceColors)]
				style = tcell.StyleDefault.Background(bg).Foreground(tcell.ColorWhite)
				if cell.Snapped {
					style = style.Dim(true)
				}
			}
			s.SetContent(ox+c, oy+r, cell.Rune(), nil, style)
		}
	}

	_, h := s.Size()
	line := fmt.Sprintf("snapped %d of %d | s shuffle  w save  q quit", t.board.SnappedCount(), t.board.Len())
	if t.status != "" {
		line += " | " + t.status
	}
	drawText(s, 0, h-1, tcell.StyleDefault.Bold(true), line)
	s.Show()
	t.dirty = false
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
