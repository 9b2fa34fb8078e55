package ghelper

import (
	"image"
	"math"

	"jigsaw/ui/gui/gbase"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// ---- UI ELEMENTS ----

// ---- Button ----

type Button struct {
	Label      string
	X, Y, W, H int
	Image      *ebiten.Image // pre-rendered rounded rect with stroke

	// animation state
	Hover   bool
	Pressed bool
	// animation variables
	Scale         float64
	TargetScale   float64
	OffsetY       float64 // vertical offset for pressed effect
	TargetOffsetY float64
	AnimSpeed     float64 // approach speed per second
}

func NewButton(label string, x, y, w, h int, theme gbase.Palette) *Button {
	return &Button{
		Label: label,
		X:     x, Y: y, W: w, H: h,
		Image: RenderRoundedRect(w, h, 12, theme.ButtonFill, theme.ButtonStroke, 3),
		Scale: 1.0, TargetScale: 1.0, AnimSpeed: 10.0,
	}
}

func (b *Button) Contains(px, py int) bool {
	return PointInRect(px, py, b.X, b.Y, b.W, b.H)
}

// HandleInput is called every Update, returns true when a click finished on the button
func (b *Button) HandleInput(px, py int, justClicked, justReleased bool) bool {
	inside := b.Contains(px, py)
	b.Hover = inside

	// press starts only inside the button
	if justClicked && inside {
		b.Pressed = true
		b.TargetScale = 0.96
		b.TargetOffsetY = 3.0
	}
	if justReleased {
		if b.Pressed && inside {
			b.Pressed = false
			b.TargetScale = 1.03 // click bounce
			b.TargetOffsetY = 0
			return true
		}
		// released outside: cancel press
		b.Pressed = false
		b.TargetScale = 1.0
		b.TargetOffsetY = 0
	}
	if !b.Pressed {
		b.TargetScale = 1.0
		if inside {
			b.TargetScale = 1.02
		}
		b.TargetOffsetY = 0
	}
	return false
}

// UpdateAnim moves scale and offset toward their targets, dt in seconds
func (b *Button) UpdateAnim(dt float64) {
	if b.AnimSpeed <= 0 {
		b.AnimSpeed = 8.0
	}
	approach := func(cur *float64, target float64) {
		t := 1.0 - math.Exp(-b.AnimSpeed*dt)
		*cur = *cur*(1.0-t) + target*t
	}
	approach(&b.Scale, b.TargetScale)
	approach(&b.OffsetY, b.TargetOffsetY)

	if !b.Pressed && math.Abs(b.Scale-1.03) < 0.005 {
		b.TargetScale = 1.0
	}
}

func (b *Button) DrawAnimated(screen *ebiten.Image, face font.Face, theme gbase.Palette) {
	if b.Image == nil {
		return
	}
	cx := float64(b.X + b.W/2)
	cy := float64(b.Y+b.H/2) + b.OffsetY

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Image.Bounds().Dx())/2, -float64(b.Image.Bounds().Dy())/2)
	op.GeoM.Scale(b.Scale, b.Scale)
	op.GeoM.Translate(cx, cy)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(b.Image, op)

	bounds := text.BoundString(face, b.Label)
	text.Draw(screen, b.Label, face, int(cx)-bounds.Dx()/2, int(cy)+bounds.Dy()/2, theme.ButtonText)
}

// ---- MessageBox ----

// MessageBox is a modal with a title, a body and a row of choice buttons
type MessageBox struct {
	Title   string
	Label   string
	Choices []string

	// state
	Open      bool
	Animating bool
	Opening   bool
	Scale     float64 // 0..1
	OnSelect  func(idx int)

	HoverIndex int
	selected   int
}

const (
	choiceW   = 140
	choiceH   = 44
	choiceGap = 16
)

func NewMessageBox() *MessageBox {
	return &MessageBox{HoverIndex: -1, selected: -1}
}

// ShowMessage opens the modal, OnSelect gets the choice index after the
// close animation
func (mb *MessageBox) ShowMessage(title, msg string, choices []string, onSelect func(idx int)) {
	mb.Title = title
	mb.Label = msg
	mb.Choices = choices
	mb.OnSelect = onSelect
	mb.HoverIndex = -1
	mb.selected = -1

	mb.Open = true
	mb.Opening = true
	mb.Animating = true
	mb.Scale = 0.0
}

func (mb *MessageBox) IsOverlayed() bool {
	return mb.Open || mb.Animating
}

func (mb *MessageBox) AnimateMessage(dt float64) {
	const speed = 6.0
	if !mb.Animating {
		return
	}
	if mb.Opening {
		mb.Scale += speed * dt
		if mb.Scale >= 1.0 {
			mb.Scale = 1.0
			mb.Animating = false
		}
		return
	}
	mb.Scale -= speed * dt
	if mb.Scale <= 0.0 {
		mb.Scale = 0.0
		mb.Animating = false
		mb.Open = false
		if mb.OnSelect != nil && mb.selected >= 0 {
			mb.OnSelect(mb.selected)
		}
	}
}

func (mb *MessageBox) CollapseMessage(selected int) {
	mb.selected = selected
	mb.Opening = false
	mb.Animating = true
}

// layout returns the modal rect and the choice button rects at full scale
func (mb *MessageBox) layout(ctx *GUIGameContext) (image.Rectangle, []image.Rectangle) {
	fonts := ctx.AssetsWorker.Fonts()
	tw := text.BoundString(fonts.Bold, mb.Title).Dx()
	if bw := text.BoundString(fonts.Normal, mb.Label).Dx(); bw > tw {
		tw = bw
	}
	n := len(mb.Choices)
	if cw := n*choiceW + (n-1)*choiceGap; cw > tw {
		tw = cw
	}
	mw, mh := tw+64, 180
	ww, wh := ctx.WindowSize()
	x0, y0 := (ww-mw)/2, (wh-mh)/2
	modal := image.Rect(x0, y0, x0+mw, y0+mh)

	rects := make([]image.Rectangle, 0, n)
	startX := x0 + (mw-(n*choiceW+(n-1)*choiceGap))/2
	by := y0 + mh - choiceH - 20
	for i := 0; i < n; i++ {
		bx := startX + i*(choiceW+choiceGap)
		rects = append(rects, image.Rect(bx, by, bx+choiceW, by+choiceH))
	}
	return modal, rects
}

// Update handles clicks on the choices, only once the modal is fully open
func (mb *MessageBox) Update(ctx *GUIGameContext, mx, my int, justReleased bool) {
	if !mb.Open || mb.Animating {
		return
	}
	_, rects := mb.layout(ctx)
	mb.HoverIndex = -1
	for i, r := range rects {
		if image.Pt(mx, my).In(r) {
			mb.HoverIndex = i
		}
	}
	if justReleased && mb.HoverIndex >= 0 {
		mb.CollapseMessage(mb.HoverIndex)
	}
}

func (mb *MessageBox) Draw(ctx *GUIGameContext, screen *ebiten.Image) {
	if !mb.IsOverlayed() {
		return
	}
	ww, wh := ctx.WindowSize()
	EbitenutilDrawRect(screen, 0, 0, float64(ww), float64(wh), ctx.Theme.ModalBg)

	modal, rects := mb.layout(ctx)
	scale := math.Max(0, math.Min(1, mb.Scale))
	currW := int(math.Max(6, float64(modal.Dx())*scale))
	currH := int(math.Max(6, float64(modal.Dy())*scale))
	mx := (ww - currW) / 2
	my := (wh - currH) / 2

	modalImg := RenderRoundedRect(currW, currH, 16, ctx.Theme.ButtonFill, ctx.Theme.ButtonStroke, 3)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(mx), float64(my))
	screen.DrawImage(modalImg, op)

	// content only when (almost) fully opened
	if scale < 0.85 {
		return
	}
	fonts := ctx.AssetsWorker.Fonts()
	text.Draw(screen, mb.Title, fonts.Bold, modal.Min.X+32, modal.Min.Y+48, ctx.Theme.MenuText)
	text.Draw(screen, mb.Label, fonts.Normal, modal.Min.X+32, modal.Min.Y+84, ctx.Theme.MenuText)
	for i, r := range rects {
		fill := ctx.Theme.ButtonFill
		if i == mb.HoverIndex {
			fill = ctx.Theme.Accent
		}
		img := RenderRoundedRect(r.Dx(), r.Dy(), 12, fill, ctx.Theme.ButtonStroke, 3)
		opb := &ebiten.DrawImageOptions{}
		opb.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
		screen.DrawImage(img, opb)
		b := text.BoundString(fonts.Normal, mb.Choices[i])
		text.Draw(screen, mb.Choices[i], fonts.Normal, r.Min.X+(r.Dx()-b.Dx())/2, r.Min.Y+(r.Dy()+b.Dy())/2, ctx.Theme.ButtonText)
	}
}
