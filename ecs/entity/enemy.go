package entity

import (
	"fmt"

	"github.com/milk9111/flagrun/ecs"
	"github.com/milk9111/flagrun/ecs/component"
	"github.com/milk9111/flagrun/prefabs"
)

// NewEnemy spawns a patroller at pos. It falls until it first touches a
// platform and only then starts walking.
func NewEnemy(w *ecs.World, spec prefabs.EnemySpec, pos prefabs.PositionSpec) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.EnemyComponent.Kind(), &component.Enemy{
		Direction:   component.DirectionRight,
		Active:      true,
		PatrolSpeed: spec.PatrolSpeed,
		MinX:        spec.MinX,
		MaxX:        spec.MaxX,
		StompValue:  spec.StompValue,
		Script:      spec.Script,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add enemy component: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{
		X:      pos.X,
		Y:      pos.Y,
		ScaleX: 1,
		ScaleY: 1,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:              spec.Collider.Width,
		Height:             spec.Collider.Height,
		Bounce:             spec.Bounce,
		CollideWorldBounds: true,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add physics body: %w", err)
	}

	if err := ecs.Add(w, entity, component.TouchingComponent.Kind(), &component.Touching{}); err != nil {
		return 0, fmt.Errorf("enemy: add touching: %w", err)
	}

	if err := ecs.Add(w, entity, component.SpriteComponent.Kind(), &component.Sprite{Texture: spec.Sprite.Image}); err != nil {
		return 0, fmt.Errorf("enemy: add sprite: %w", err)
	}

	if err := ecs.Add(w, entity, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layerOr(spec.RenderLayer.Index, LayerActor)}); err != nil {
		return 0, fmt.Errorf("enemy: add render layer: %w", err)
	}

	return entity, nil
}
