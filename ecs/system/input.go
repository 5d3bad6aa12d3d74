package system

import (
	"github.com/milk9111/flagrun/ecs"
	"github.com/milk9111/flagrun/ecs/component"
)

// Key is an abstract game key, mapped to physical keys by the KeyState
// implementation.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyRestart
	KeyPause
	KeyMute
	KeyFullscreen
)

// KeyState reports keyboard state for the current tick.
type KeyState interface {
	Pressed(k Key) bool
	JustPressed(k Key) bool
}

type InputSystem struct {
	keys KeyState
}

func NewInputSystem(keys KeyState) *InputSystem {
	return &InputSystem{keys: keys}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil || i.keys == nil {
		return
	}

	left := i.keys.Pressed(KeyLeft)
	right := i.keys.Pressed(KeyRight)
	up := i.keys.Pressed(KeyUp)

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		input.Left = left
		input.Right = right
		input.Up = up
	})
}

// StaticKeys is a KeyState with fixed answers, used by headless runs.
type StaticKeys struct {
	Down map[Key]bool
	Just map[Key]bool
}

func (s StaticKeys) Pressed(k Key) bool     { return s.Down[k] }
func (s StaticKeys) JustPressed(k Key) bool { return s.Just[k] }
