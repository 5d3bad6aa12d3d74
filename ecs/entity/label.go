package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/flagrun/ecs"
	"github.com/milk9111/flagrun/ecs/component"
	"github.com/milk9111/flagrun/prefabs"
)

func NewLabel(w *ecs.World, x, y float64, label component.Label, layer int) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("label: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.LabelComponent.Kind(), &label); err != nil {
		return 0, fmt.Errorf("label: add label: %w", err)
	}

	if err := ecs.Add(w, entity, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layer}); err != nil {
		return 0, fmt.Errorf("label: add render layer: %w", err)
	}

	return entity, nil
}

// NewScoreLabel spawns the HUD score text.
func NewScoreLabel(w *ecs.World, spec prefabs.LabelSpec, text string) (ecs.Entity, error) {
	entity, err := NewLabel(w, spec.X, spec.Y, component.Label{
		Text:  text,
		Size:  spec.Size,
		Color: spec.Color.Or(color.Black),
	}, LayerHUD)
	if err != nil {
		return 0, fmt.Errorf("score label: %w", err)
	}

	if err := ecs.Add(w, entity, component.HUDTagComponent.Kind(), &component.HUDTag{}); err != nil {
		return 0, fmt.Errorf("score label: add hud tag: %w", err)
	}
	return entity, nil
}

func NewBackground(w *ecs.World, spec prefabs.BackgroundSpec) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("background: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.RectComponent.Kind(), &component.Rect{
		Width:  spec.Width,
		Height: spec.Height,
		Color:  spec.Color.Or(color.Black),
	}); err != nil {
		return 0, fmt.Errorf("background: add rect: %w", err)
	}

	if err := ecs.Add(w, entity, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: LayerBackground}); err != nil {
		return 0, fmt.Errorf("background: add render layer: %w", err)
	}

	return entity, nil
}
