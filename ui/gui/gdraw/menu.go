package gdraw

import (
	"math"
	"time"

	"jigsaw/ui/gui/gbase"
	"jigsaw/ui/gui/ghelper"
	"jigsaw/ui/gui/ghelper/glang"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
)

type GUIMenuDrawer struct {
	buttons  []*ghelper.Button
	idxStart int
	idxLang  int
	idxExit  int

	click    clickState
	elapsed  float64
	prevTime time.Time
	lastW    int
	lastH    int
}

func NewGUIMenuDrawer(ctx *ghelper.GUIGameContext) *GUIMenuDrawer {
	md := &GUIMenuDrawer{prevTime: time.Now()}
	md.makeLayout(ctx)
	return md
}

func (md *GUIMenuDrawer) makeLayout(ctx *ghelper.GUIGameContext) {
	ww, wh := ctx.WindowSize()
	md.lastW, md.lastH = ww, wh
	lang := ctx.AssetsWorker.Lang()

	w, h := 220, 52
	x := (ww - w) / 2
	y := wh/2 + 40
	md.buttons = md.buttons[:0]
	add := func(label string) int {
		md.buttons = append(md.buttons, ghelper.NewButton(label, x, y, w, h, ctx.Theme))
		y += h + 16
		return len(md.buttons) - 1
	}
	md.idxStart = add(lang.T("menu.start"))
	md.idxLang = add(lang.T("menu.lang"))
	md.idxExit = add(lang.T("menu.exit"))
}

func (md *GUIMenuDrawer) Update(ctx *ghelper.GUIGameContext) (SceneType, error) {
	if ww, wh := ctx.WindowSize(); ww != md.lastW || wh != md.lastH {
		md.makeLayout(ctx)
	}
	now := time.Now()
	dt := now.Sub(md.prevTime).Seconds()
	md.prevTime = now
	md.elapsed += dt

	// keyboard: toggle palette
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if ctx.Config.Theme == "dark" {
			ctx.Config.Theme = "light"
		} else {
			ctx.Config.Theme = "dark"
		}
		ctx.Theme = gbase.PaletteFromString(ctx.Config.Theme)
		md.makeLayout(ctx)
	}

	mx, my, _, justClicked, justReleased := md.click.poll()
	for i, b := range md.buttons {
		clicked := b.HandleInput(mx, my, justClicked, justReleased)
		b.UpdateAnim(dt)
		if !clicked {
			continue
		}
		ctx.Logx.Infof("%s (%d) clicked", b.Label, i)
		switch i {
		case md.idxStart:
			return ScenePlay, nil
		case md.idxLang:
			next := glang.EN
			if ctx.AssetsWorker.Lang().GetLang() == glang.EN {
				next = glang.RU
			}
			if err := ctx.AssetsWorker.Lang().SetLang(next); err != nil {
				ctx.Logx.Errorf("error switch lang: %v", err)
			}
			ctx.Config.Lang = next.String()
			md.makeLayout(ctx)
		case md.idxExit:
			return SceneNotChanged, gbase.ErrExit
		}
	}
	return SceneNotChanged, nil
}

func (md *GUIMenuDrawer) Draw(ctx *ghelper.GUIGameContext, screen *ebiten.Image) {
	screen.Fill(ctx.Theme.Bg)
	ww, wh := ctx.WindowSize()

	// picture preview, gently bobbing
	pic := ctx.AssetsWorker.Picture()
	size := float64(wh) * 0.35
	scale := size / float64(pic.Bounds().Dx())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((float64(ww)-size)/2, float64(wh)*0.08+math.Sin(md.elapsed*2)*4)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(pic, op)

	title := ctx.AssetsWorker.Lang().T("menu.title")
	b := text.BoundString(ctx.AssetsWorker.Fonts().Bold, title)
	text.Draw(screen, title, ctx.AssetsWorker.Fonts().Bold, (ww-b.Dx())/2, wh/2+10, ctx.Theme.MenuText)

	for _, btn := range md.buttons {
		btn.DrawAnimated(screen, ctx.AssetsWorker.Fonts().Normal, ctx.Theme)
	}
}
