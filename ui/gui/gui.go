package gui

import (
	"errors"
	"fmt"

	"jigsaw/src/logx"
	"jigsaw/src/puzzle"
	"jigsaw/src/storage"
	"jigsaw/ui/gui/gbase"
	"jigsaw/ui/gui/gbase/gconf"
	"jigsaw/ui/gui/gdraw"
	"jigsaw/ui/gui/ghelper"
	"jigsaw/ui/sound"

	"github.com/hajimehoshi/ebiten/v2"
)

type GUIProcessing struct {
	mgr *gdraw.SceneManager
	ctx *ghelper.GUIGameContext
}

// NewGUI prepares assets and the scene manager. store may be nil, then
// saving is disabled.
func NewGUI(b *puzzle.Board, rng puzzle.Rand, store *storage.Store, slot string,
	cfg *gconf.Config, logger logx.Logger) (*GUIProcessing, error) {
	assets, err := ghelper.NewGUIAssetsWorker(cfg.Lang, b.Pieces())
	if err != nil {
		return nil, fmt.Errorf("error load assets: %w", err)
	}

	ctx := ghelper.NewGUIGameContext(b, rng, assets, cfg, logger)
	ctx.Store = store
	ctx.Slot = slot
	if cfg.Sound {
		p := sound.NewPlayer()
		if err := p.Initialize(); err != nil {
			logger.Warnf("sound disabled: %v", err)
		} else {
			ctx.Sound = p
		}
	}

	return &GUIProcessing{
		mgr: gdraw.NewSceneManager(ctx),
		ctx: ctx,
	}, nil
}

func (gp *GUIProcessing) Run() error {
	defer gp.ctx.Sound.Close()

	ebiten.SetWindowSize(gp.ctx.Config.WindowW, gp.ctx.Config.WindowH)
	ebiten.SetWindowSizeLimits(gconf.MinWindowW, gconf.MinWindowH, -1, -1)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Jigsaw")
	ebiten.SetWindowClosingHandled(true)

	err := ebiten.RunGame(gp)
	if errors.Is(err, gbase.ErrExit) {
		return nil
	}
	return err
}

func (gp *GUIProcessing) Update() error {
	if ebiten.IsWindowBeingClosed() {
		gp.mgr.Leave()
		return gbase.ErrExit
	}
	err := gp.mgr.Update()
	if errors.Is(err, gbase.ErrExit) {
		gp.mgr.Leave()
	}
	return err
}

func (gp *GUIProcessing) Draw(screen *ebiten.Image) {
	gp.mgr.Draw(screen)
}

func (gp *GUIProcessing) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	gp.ctx.Window.W, gp.ctx.Window.H = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
