package entity

import (
	"fmt"

	"github.com/milk9111/flagrun/ecs"
	"github.com/milk9111/flagrun/ecs/component"
	"github.com/milk9111/flagrun/prefabs"
)

// NewPlatform spawns an immovable ground slab of size collider scaled by
// spec.Scale (1 when unset).
func NewPlatform(w *ecs.World, spec prefabs.PlatformSpec, collider prefabs.ColliderSpec, sprite prefabs.SpriteSpec) (ecs.Entity, error) {
	scale := spec.Scale
	if scale == 0 {
		scale = 1
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.PlatformTagComponent.Kind(), &component.PlatformTag{}); err != nil {
		return 0, fmt.Errorf("platform: add tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y, ScaleX: scale, ScaleY: scale}); err != nil {
		return 0, fmt.Errorf("platform: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:  collider.Width,
		Height: collider.Height,
		Static: true,
	}); err != nil {
		return 0, fmt.Errorf("platform: add physics body: %w", err)
	}

	if err := ecs.Add(w, entity, component.SpriteComponent.Kind(), &component.Sprite{Texture: sprite.Image}); err != nil {
		return 0, fmt.Errorf("platform: add sprite: %w", err)
	}

	if err := ecs.Add(w, entity, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: LayerPlatform}); err != nil {
		return 0, fmt.Errorf("platform: add render layer: %w", err)
	}

	return entity, nil
}
