package entity

import (
	"fmt"

	"github.com/milk9111/flagrun/ecs"
	"github.com/milk9111/flagrun/ecs/component"
	"github.com/milk9111/flagrun/prefabs"
)

// NewPlayer spawns the player at pos. clips are the shared animation clips;
// the player starts on spec.Animation.
func NewPlayer(w *ecs.World, spec prefabs.PlayerSpec, pos prefabs.PositionSpec, clips map[string]component.AnimationDef) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed:   spec.MoveSpeed,
		JumpSpeed:   spec.JumpSpeed,
		StompBounce: spec.StompBounce,
	}); err != nil {
		return 0, fmt.Errorf("player: add player component: %w", err)
	}

	if err := ecs.Add(w, entity, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{
		X:      pos.X,
		Y:      pos.Y,
		ScaleX: 1,
		ScaleY: 1,
	}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:              spec.Collider.Width,
		Height:             spec.Collider.Height,
		Bounce:             spec.Bounce,
		CollideWorldBounds: true,
	}); err != nil {
		return 0, fmt.Errorf("player: add physics body: %w", err)
	}

	if err := ecs.Add(w, entity, component.TouchingComponent.Kind(), &component.Touching{}); err != nil {
		return 0, fmt.Errorf("player: add touching: %w", err)
	}

	if err := ecs.Add(w, entity, component.SpriteComponent.Kind(), &component.Sprite{Texture: spec.Sprite.Image}); err != nil {
		return 0, fmt.Errorf("player: add sprite: %w", err)
	}

	anim := &component.Animation{Defs: clips}
	if _, ok := clips[spec.Animation]; ok {
		anim.Current = spec.Animation
		anim.Playing = true
	}
	if err := ecs.Add(w, entity, component.AnimationComponent.Kind(), anim); err != nil {
		return 0, fmt.Errorf("player: add animation: %w", err)
	}

	if err := ecs.Add(w, entity, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layerOr(spec.RenderLayer.Index, LayerActor)}); err != nil {
		return 0, fmt.Errorf("player: add render layer: %w", err)
	}

	return entity, nil
}

func layerOr(index, fallback int) int {
	if index == 0 {
		return fallback
	}
	return index
}
