package gimages

import (
	"image/color"
	"testing"

	"jigsaw/src/puzzle"
)

func TestRenderPictureSize(t *testing.T) {
	img := RenderPicture(120)
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 120 {
		t.Fatalf("bounds = %v", b)
	}
}

func TestCutPieces(t *testing.T) {
	pic := RenderPicture(200)
	pieces := puzzle.ClassicPieces()
	cut := CutPieces(pic, pieces)

	if len(cut) != len(pieces) {
		t.Fatalf("got %d images, want %d", len(cut), len(pieces))
	}
	for _, p := range pieces {
		img, ok := cut[p.Image]
		if !ok {
			t.Errorf("no image for %s", p.Image)
			continue
		}
		b := img.Bounds()
		if b.Dx() != int(p.Size.X*200+0.5) || b.Dy() != int(p.Size.Y*200+0.5) {
			t.Errorf("%s bounds = %v for size %v", p.Image, b, p.Size)
		}
	}
}

func TestColorHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.Color
	}{
		{"#ff8000", color.RGBA{0xff, 0x80, 0x00, 0xff}},
		{"00ff00", color.RGBA{0x00, 0xff, 0x00, 0xff}},
		{"#fff", color.Black},
		{"#zzzzzz", color.Black},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := colorHex(tt.in); got != tt.want {
				t.Errorf("colorHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
