package system

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/flagrun/ecs"
	"github.com/milk9111/flagrun/ecs/component"
)

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	require.NoError(t, ecs.Add(w, e, kind, v))
}

func testClips() map[string]component.AnimationDef {
	lib := component.NewAnimationLibrary()
	lib.Register(component.AnimationDef{Name: AnimLeft, Frames: []int{0, 1, 2, 3}, FPS: 10, Loop: true})
	lib.Register(component.AnimationDef{Name: AnimTurn, Frames: []int{4}, FPS: 20})
	lib.Register(component.AnimationDef{Name: AnimRight, Frames: []int{5, 6, 7, 8}, FPS: 10, Loop: true})
	return lib.Defs()
}

func addBox(t *testing.T, w *ecs.World, x, y, width, height float64, static bool) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: width, Height: height, Static: static, CollideWorldBounds: !static})
	if !static {
		mustAdd(t, w, e, component.TouchingComponent.Kind(), &component.Touching{})
	}
	return e
}

func addPlayer(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := addBox(t, w, x, y, 32, 48, false)
	mustAdd(t, w, e, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: 160, JumpSpeed: 330, StompBounce: 200})
	mustAdd(t, w, e, component.InputComponent.Kind(), &component.Input{})
	mustAdd(t, w, e, component.SpriteComponent.Kind(), &component.Sprite{Texture: "player"})
	mustAdd(t, w, e, component.AnimationComponent.Kind(), &component.Animation{Defs: testClips()})
	return e
}

func get[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T]) *T {
	t.Helper()
	v, ok := ecs.Get(w, e, kind)
	require.True(t, ok)
	return v
}
