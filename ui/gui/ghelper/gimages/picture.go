package gimages

import (
	"image"
	"math"

	"jigsaw/src/puzzle"

	"github.com/fogleman/gg"
)

// RenderPicture draws the finished picture, edge x edge pixels
func RenderPicture(edge int) image.Image {
	e := float64(edge)
	dc := gg.NewContext(edge, edge)

	// sky
	sky := gg.NewLinearGradient(0, 0, 0, e)
	sky.AddColorStop(0, colorHex("#7ec8f0"))
	sky.AddColorStop(1, colorHex("#e8f6ff"))
	dc.SetFillStyle(sky)
	dc.DrawRectangle(0, 0, e, e)
	dc.Fill()

	// sun
	dc.SetHexColor("#ffd23f")
	dc.DrawCircle(e*0.8, e*0.18, e*0.09)
	dc.Fill()

	// hills
	dc.SetHexColor("#5fae4e")
	dc.DrawEllipse(e*0.25, e*1.0, e*0.55, e*0.35)
	dc.Fill()
	dc.SetHexColor("#4a9a3c")
	dc.DrawEllipse(e*0.8, e*1.05, e*0.5, e*0.4)
	dc.Fill()

	// grub: body segments along a wave
	for i := 0; i < 7; i++ {
		t := float64(i) / 6
		x := e * (0.2 + 0.55*t)
		y := e*0.55 + math.Sin(t*math.Pi*2)*e*0.05
		dc.SetHexColor("#f2a541")
		dc.DrawCircle(x, y, e*0.07)
		dc.FillPreserve()
		dc.SetHexColor("#a0522d")
		dc.SetLineWidth(e * 0.006)
		dc.Stroke()
	}
	// head
	hx, hy := e*0.8, e*0.5
	dc.SetHexColor("#e07a1f")
	dc.DrawCircle(hx, hy, e*0.09)
	dc.Fill()
	dc.SetHexColor("#ffffff")
	dc.DrawCircle(hx+e*0.03, hy-e*0.03, e*0.022)
	dc.Fill()
	dc.SetHexColor("#222222")
	dc.DrawCircle(hx+e*0.035, hy-e*0.03, e*0.011)
	dc.Fill()

	return dc.Image()
}

// CutPieces cuts every piece footprint at its target out of the picture
// and outlines it. Keys are the piece image handles.
func CutPieces(picture image.Image, pieces []puzzle.Piece) map[string]image.Image {
	edge := float64(picture.Bounds().Dx())
	out := make(map[string]image.Image, len(pieces))
	for _, p := range pieces {
		lo := p.Target.Sub(p.Anchor)
		w := int(math.Round(p.Size.X * edge))
		h := int(math.Round(p.Size.Y * edge))
		if w <= 0 || h <= 0 {
			continue
		}
		dc := gg.NewContext(w, h)
		dc.DrawRoundedRectangle(0, 0, float64(w), float64(h), edge*0.02)
		dc.Clip()
		dc.DrawImage(picture, -int(math.Round(lo.X*edge)), -int(math.Round(lo.Y*edge)))
		dc.ResetClip()
		dc.SetRGBA255(0x40, 0x40, 0x40, 0xcc)
		dc.SetLineWidth(2)
		dc.DrawRoundedRectangle(1, 1, float64(w)-2, float64(h)-2, edge*0.02)
		dc.Stroke()
		out[p.Image] = dc.Image()
	}
	return out
}
