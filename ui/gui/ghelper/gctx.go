package ghelper

import (
	"jigsaw/src/logx"
	"jigsaw/src/puzzle"
	"jigsaw/src/storage"
	"jigsaw/ui/gui/gbase"
	"jigsaw/ui/gui/gbase/gconf"
	"jigsaw/ui/sound"
)

// ---- GUI Context ----

type GUIGameContext struct {
	Board        *puzzle.Board
	Rand         puzzle.Rand
	Store        *storage.Store // nil when saving is off
	Slot         string
	AssetsWorker *GUIAssetsWorker
	Config       *gconf.Config
	Theme        gbase.Palette
	Sound        *sound.Player
	Logx         logx.Logger

	// current outside size, updated by Layout
	Window struct{ W, H int }
}

func NewGUIGameContext(b *puzzle.Board, rng puzzle.Rand, a *GUIAssetsWorker, c *gconf.Config, l logx.Logger) *GUIGameContext {
	ctx := &GUIGameContext{
		Board:        b,
		Rand:         rng,
		AssetsWorker: a,
		Config:       c,
		Theme:        gbase.PaletteFromString(c.Theme),
		Logx:         l,
	}
	ctx.Window.W, ctx.Window.H = c.WindowW, c.WindowH
	return ctx
}

func (ctx *GUIGameContext) WindowSize() (int, int) {
	return ctx.Window.W, ctx.Window.H
}
