package gdraw

import (
	"context"
	"fmt"
	"time"

	"jigsaw/src/puzzle"
	"jigsaw/ui/gui/ghelper"
	"jigsaw/ui/gui/ghelper/gdialog"
	"jigsaw/ui/gui/ginput"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
)

const (
	barH          = 72 // bottom bar with buttons and status
	statusTimeout = 2 * time.Second
)

// GUIPlayDrawer is the puzzle view, it is the controller host
type GUIPlayDrawer struct {
	ctx  *ghelper.GUIGameContext
	ctrl *puzzle.Controller

	// layout
	layout puzzle.Layout
	lastW  int
	lastH  int

	// pointer
	tracker    ginput.Tracker
	usingTouch bool
	click      clickState

	// board layer, re-rendered on redraw requests only
	boardLayer *ebiten.Image
	dirty      bool

	// buttons
	buttons    []*ghelper.Button
	idxShuffle int
	idxSave    int
	idxBack    int

	// solved prompt
	msg        *ghelper.MessageBox
	dialogCh   chan bool
	dialogOpen bool

	status      string
	statusUntil time.Time
	lastTick    time.Time
}

func NewGUIPlayDrawer(ctx *ghelper.GUIGameContext) *GUIPlayDrawer {
	pd := &GUIPlayDrawer{
		ctx:      ctx,
		msg:      ghelper.NewMessageBox(),
		dialogCh: make(chan bool, 1),
		dirty:    true,
		lastTick: time.Now(),
	}
	pd.ctrl = puzzle.NewController(ctx.Board, pd, ctx.Config.SnapDistance, ctx.Logx)
	pd.recalcLayout(ctx)
	return pd
}

// ---- puzzle.Host ----

func (pd *GUIPlayDrawer) RequestRedraw() {
	pd.dirty = true
}

func (pd *GUIPlayDrawer) PieceSnapped(id int) {
	pd.ctx.Sound.Snap()
}

func (pd *GUIPlayDrawer) PuzzleSolved() {
	lang := pd.ctx.AssetsWorker.Lang()
	title, body := lang.T("solved.title"), lang.T("solved.body")
	pd.ctx.Sound.Solved()

	if pd.ctx.Config.NativeDialog {
		// the OS dialog blocks, keep the game loop running
		pd.dialogOpen = true
		go func() {
			pd.dialogCh <- gdialog.AskShuffle(title, body)
		}()
		return
	}
	pd.msg.ShowMessage(title, body, []string{lang.T("button.ok"), lang.T("button.shuffle")}, func(idx int) {
		if idx == 1 {
			pd.ctrl.Shuffle(pd.ctx.Rand)
		}
	})
}

// ---- layout ----

func (pd *GUIPlayDrawer) recalcLayout(ctx *ghelper.GUIGameContext) {
	ww, wh := ctx.WindowSize()
	pd.lastW, pd.lastH = ww, wh
	pd.layout = puzzle.NewLayout(float64(ww), float64(wh-barH), puzzle.ScaleInView)
	pd.boardLayer = nil
	pd.dirty = true
	pd.makeLayoutButtons(ctx)
}

func (pd *GUIPlayDrawer) makeLayoutButtons(ctx *ghelper.GUIGameContext) {
	lang := ctx.AssetsWorker.Lang()
	ww, wh := ctx.WindowSize()
	w, h, gap := 140, 44, 14
	x := ww - 3*(w+gap)
	y := wh - barH + (barH-h)/2

	pd.buttons = pd.buttons[:0]
	add := func(label string) int {
		pd.buttons = append(pd.buttons, ghelper.NewButton(label, x, y, w, h, ctx.Theme))
		x += w + gap
		return len(pd.buttons) - 1
	}
	pd.idxShuffle = add(lang.T("play.shuffle"))
	pd.idxSave = add(lang.T("play.save"))
	pd.idxBack = add(lang.T("play.back"))
}

// ---- Update ----

func (pd *GUIPlayDrawer) Update(ctx *ghelper.GUIGameContext) (SceneType, error) {
	if ww, wh := ctx.WindowSize(); ww != pd.lastW || wh != pd.lastH {
		pd.recalcLayout(ctx)
	}
	now := time.Now()
	dt := now.Sub(pd.lastTick).Seconds()
	pd.lastTick = now

	// native dialog answered
	select {
	case again := <-pd.dialogCh:
		pd.dialogOpen = false
		if again {
			pd.ctrl.Shuffle(ctx.Rand)
		}
	default:
	}
	if pd.dialogOpen {
		return SceneNotChanged, nil
	}

	mx, my, _, justClicked, justReleased := pd.click.poll()
	if pd.msg.IsOverlayed() {
		pd.msg.Update(ctx, mx, my, justReleased)
		pd.msg.AnimateMessage(dt)
		return SceneNotChanged, nil
	}

	// board first, a press taken by a piece is not a button click
	if pd.handlePointer(ctx) {
		justClicked = false
	}

	for i, b := range pd.buttons {
		clicked := b.HandleInput(mx, my, justClicked, justReleased)
		b.UpdateAnim(dt)
		if !clicked {
			continue
		}
		switch i {
		case pd.idxShuffle:
			pd.ctrl.Shuffle(ctx.Rand)
		case pd.idxSave:
			if err := pd.save(ctx); err != nil {
				ctx.Logx.Errorf("error save puzzle: %v", err)
				pd.showStatus(ctx.AssetsWorker.Lang().T("play.save_failed"))
			} else {
				pd.showStatus(ctx.AssetsWorker.Lang().T("play.saved"))
			}
		case pd.idxBack:
			return SceneMenu, nil
		}
	}
	return SceneNotChanged, nil
}

// handlePointer feeds mouse or touch into the controller, true if a press was consumed
func (pd *GUIPlayDrawer) handlePointer(ctx *ghelper.GUIGameContext) bool {
	if !ebiten.IsFocused() {
		if ev, ok := pd.tracker.Cancel(); ok {
			pd.ctrl.Handle(ev, pd.layout)
		}
		return false
	}

	var x, y int
	var pressed bool
	if touches := ebiten.AppendTouchIDs(nil); len(touches) > 0 {
		pd.usingTouch = true
		x, y = ebiten.TouchPosition(touches[0])
		pressed = true
	} else if pd.usingTouch && pd.tracker.Pressed() {
		// finger lifted: release where it was
		ev, _ := pd.tracker.Cancel()
		ev.Phase = puzzle.PhaseUp
		pd.ctrl.Handle(ev, pd.layout)
		pd.usingTouch = false
		return false
	} else {
		pd.usingTouch = false
		x, y = ebiten.CursorPosition()
		pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	}

	ev, ok := pd.tracker.Update(x, y, pressed)
	if !ok {
		return false
	}
	consumed := pd.ctrl.Handle(ev, pd.layout)
	return consumed && ev.Phase == puzzle.PhaseDown
}

func (pd *GUIPlayDrawer) save(ctx *ghelper.GUIGameContext) error {
	if ctx.Store == nil {
		return fmt.Errorf("saving is disabled")
	}
	c, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return ctx.Store.Save(c, ctx.Slot, ctx.Board.Serialize())
}

func (pd *GUIPlayDrawer) showStatus(s string) {
	pd.status = s
	pd.statusUntil = time.Now().Add(statusTimeout)
}

// Leave autosaves when the scene is left
func (pd *GUIPlayDrawer) Leave(ctx *ghelper.GUIGameContext) {
	if ctx.Store == nil {
		return
	}
	if err := pd.save(ctx); err != nil {
		ctx.Logx.Errorf("error autosave: %v", err)
		return
	}
	ctx.Logx.Debugf("autosaved slot %q", ctx.Slot)
}

// ---- Draw ----

func (pd *GUIPlayDrawer) renderBoard(ctx *ghelper.GUIGameContext) {
	ww, wh := ctx.WindowSize()
	if ww <= 0 || wh-barH <= 0 || pd.layout.Edge <= 0 {
		// no room for the board, the bar is still drawn
		pd.boardLayer = nil
		pd.dirty = false
		return
	}
	if pd.boardLayer == nil {
		pd.boardLayer = ebiten.NewImage(ww, wh-barH)
	}
	layer := pd.boardLayer
	layer.Clear()

	// area the puzzle is solved in
	l := pd.layout
	ghelper.EbitenutilDrawRect(layer, l.Origin.X, l.Origin.Y, l.Edge, l.Edge, ctx.Theme.Frame)

	for _, s := range ctx.Board.Sprites(l, ghelper.PictureEdge) {
		img := ctx.AssetsWorker.Piece(s.Image)
		if img == nil {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(s.Scale, s.Scale)
		op.GeoM.Translate(s.TopLeft.X, s.TopLeft.Y)
		op.Filter = ebiten.FilterLinear
		layer.DrawImage(img, op)
	}

	if id, dragging := pd.ctrl.Active(); dragging {
		if p, ok := ctx.Board.Piece(id); ok {
			lo, hi := p.Bounds()
			a, b := l.ToDevice(lo), l.ToDevice(hi)
			ghelper.EbitenutilDrawRectStroke(layer, a.X, a.Y, b.X-a.X, b.Y-a.Y, 2, ctx.Theme.Accent)
		}
	}
	pd.dirty = false
}

func (pd *GUIPlayDrawer) Draw(ctx *ghelper.GUIGameContext, screen *ebiten.Image) {
	screen.Fill(ctx.Theme.Bg)
	if pd.dirty || pd.boardLayer == nil {
		pd.renderBoard(ctx)
	}
	if pd.boardLayer != nil {
		screen.DrawImage(pd.boardLayer, nil)
	}

	_, wh := ctx.WindowSize()
	fonts := ctx.AssetsWorker.Fonts()
	progress := fmt.Sprintf(ctx.AssetsWorker.Lang().T("play.progress"), ctx.Board.SnappedCount(), ctx.Board.Len())
	text.Draw(screen, progress, fonts.Normal, 20, wh-barH/2+6, ctx.Theme.MenuText)
	if pd.status != "" && time.Now().Before(pd.statusUntil) {
		text.Draw(screen, pd.status, fonts.Small, 20, wh-barH/2+26, ctx.Theme.Accent)
	}

	for _, b := range pd.buttons {
		b.DrawAnimated(screen, fonts.Normal, ctx.Theme)
	}
	pd.msg.Draw(ctx, screen)

	if ctx.Config.Debug {
		dbg := fmt.Sprintf("TPS: %0.2f state: %v", ebiten.ActualTPS(), pd.ctrl.State())
		text.Draw(screen, dbg, fonts.Debug, 8, 16, ctx.Theme.MenuText)
	}
}
