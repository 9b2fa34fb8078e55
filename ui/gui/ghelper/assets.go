package ghelper

import (
	"jigsaw/src/puzzle"
	"jigsaw/ui/gui/ghelper/gfont"
	"jigsaw/ui/gui/ghelper/gimages"
	"jigsaw/ui/gui/ghelper/glang"

	"github.com/hajimehoshi/ebiten/v2"
)

// PictureEdge is the pixel edge of the full picture the pieces are cut from
const PictureEdge = 600

type GUIAssetsWorker struct {
	picture     *ebiten.Image
	pieceImages map[string]*ebiten.Image
	fonts       *gfont.Fonts
	lang        *glang.GUILangWorker
}

func NewGUIAssetsWorker(lang string, pieces []puzzle.Piece) (*GUIAssetsWorker, error) {
	l, err := glang.NewGUILangWorker(lang)
	if err != nil {
		return nil, err
	}
	f, err := gfont.LoadFonts()
	if err != nil {
		return nil, err
	}
	pic := gimages.RenderPicture(PictureEdge)
	imgs := make(map[string]*ebiten.Image, len(pieces))
	for handle, img := range gimages.CutPieces(pic, pieces) {
		imgs[handle] = ebiten.NewImageFromImage(img)
	}
	return &GUIAssetsWorker{
		picture:     ebiten.NewImageFromImage(pic),
		pieceImages: imgs,
		fonts:       f,
		lang:        l,
	}, nil
}

func (aw *GUIAssetsWorker) Piece(handle string) *ebiten.Image {
	return aw.pieceImages[handle]
}

func (aw *GUIAssetsWorker) Picture() *ebiten.Image {
	return aw.picture
}

func (aw *GUIAssetsWorker) Fonts() *gfont.Fonts {
	return aw.fonts
}

func (aw *GUIAssetsWorker) Lang() *glang.GUILangWorker {
	return aw.lang
}
