package entity

import (
	"fmt"

	"github.com/milk9111/flagrun/ecs"
	"github.com/milk9111/flagrun/ecs/component"
	"github.com/milk9111/flagrun/prefabs"
)

// NewFlag spawns the goal. It is a falling body that settles on whatever
// platform is beneath it and is not clamped to the screen.
func NewFlag(w *ecs.World, spec prefabs.FlagSpec) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.FlagTagComponent.Kind(), &component.FlagTag{}); err != nil {
		return 0, fmt.Errorf("flag: add tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("flag: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:  spec.Collider.Width,
		Height: spec.Collider.Height,
	}); err != nil {
		return 0, fmt.Errorf("flag: add physics body: %w", err)
	}

	if err := ecs.Add(w, entity, component.SpriteComponent.Kind(), &component.Sprite{Texture: spec.Sprite.Image}); err != nil {
		return 0, fmt.Errorf("flag: add sprite: %w", err)
	}

	if err := ecs.Add(w, entity, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: LayerPickup}); err != nil {
		return 0, fmt.Errorf("flag: add render layer: %w", err)
	}

	return entity, nil
}
