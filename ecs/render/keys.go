package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/flagrun/ecs/system"
)

var keyBindings = map[system.Key][]ebiten.Key{
	system.KeyLeft:       {ebiten.KeyArrowLeft, ebiten.KeyA},
	system.KeyRight:      {ebiten.KeyArrowRight, ebiten.KeyD},
	system.KeyUp:         {ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeySpace},
	system.KeyRestart:    {ebiten.KeyR},
	system.KeyPause:      {ebiten.KeyEscape, ebiten.KeyP},
	system.KeyMute:       {ebiten.KeyM},
	system.KeyFullscreen: {ebiten.KeyF},
}

// EbitenKeys reads the keyboard through ebiten.
type EbitenKeys struct{}

func (EbitenKeys) Pressed(k system.Key) bool {
	for _, key := range keyBindings[k] {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}

func (EbitenKeys) JustPressed(k system.Key) bool {
	for _, key := range keyBindings[k] {
		if inpututil.IsKeyJustPressed(key) {
			return true
		}
	}
	return false
}

var _ system.KeyState = EbitenKeys{}
