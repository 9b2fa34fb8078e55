package gdraw

import (
	"jigsaw/ui/gui/ghelper"

	"github.com/hajimehoshi/ebiten/v2"
)

// ---- Scene ----

type Scene interface {
	Update(ctx *ghelper.GUIGameContext) (SceneType, error)
	Draw(ctx *ghelper.GUIGameContext, screen *ebiten.Image)
}

type SceneType int

const (
	SceneMenu SceneType = iota
	ScenePlay
	SceneNotChanged
)

func (t SceneType) ToScene(s Scene, ctx *ghelper.GUIGameContext) Scene {
	switch t {
	case SceneMenu:
		s = NewGUIMenuDrawer(ctx)
	case ScenePlay:
		s = NewGUIPlayDrawer(ctx)
	case SceneNotChanged:
	default:
	}
	return s
}

// ---- Scene Manager ----

type SceneManager struct {
	ctx     *ghelper.GUIGameContext
	current Scene
}

func NewSceneManager(ctx *ghelper.GUIGameContext) *SceneManager {
	return &SceneManager{ctx: ctx, current: NewGUIMenuDrawer(ctx)}
}

func (m *SceneManager) Update() error {
	next, err := m.current.Update(m.ctx)
	if err != nil {
		return err
	}
	if next != SceneNotChanged {
		if l, ok := m.current.(interface{ Leave(*ghelper.GUIGameContext) }); ok {
			l.Leave(m.ctx)
		}
		m.current = next.ToScene(m.current, m.ctx)
	}
	return nil
}

func (m *SceneManager) Draw(screen *ebiten.Image) {
	m.current.Draw(m.ctx, screen)
}

// Leave lets the current scene persist its state before the window closes
func (m *SceneManager) Leave() {
	if l, ok := m.current.(interface{ Leave(*ghelper.GUIGameContext) }); ok {
		l.Leave(m.ctx)
	}
}

// mouse edge detection shared by scenes
type clickState struct {
	prevMouseDown bool
}

func (c *clickState) poll() (mx, my int, down, justClicked, justReleased bool) {
	mx, my = ebiten.CursorPosition()
	down = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	justClicked = down && !c.prevMouseDown
	justReleased = !down && c.prevMouseDown
	c.prevMouseDown = down
	return
}
