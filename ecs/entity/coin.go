package entity

import (
	"fmt"
	"math/rand/v2"

	"github.com/milk9111/flagrun/common"
	"github.com/milk9111/flagrun/ecs"
	"github.com/milk9111/flagrun/ecs/component"
	"github.com/milk9111/flagrun/prefabs"
)

// NewCoins lays out row.Count coins. Each gets its own vertical bounce drawn
// from [BounceMin, BounceMax) so the row lands unevenly.
func NewCoins(w *ecs.World, spec prefabs.CoinSpec, row prefabs.CoinRowSpec, rng *rand.Rand) ([]ecs.Entity, error) {
	coins := make([]ecs.Entity, 0, row.Count)
	for i := 0; i < row.Count; i++ {
		x := row.X + float64(i)*row.StepX
		e, err := newCoin(w, spec, x, row.Y, bounceBetween(rng, spec.BounceMin, spec.BounceMax))
		if err != nil {
			return nil, fmt.Errorf("coin %d: %w", i, err)
		}
		coins = append(coins, e)
	}
	return coins, nil
}

func newCoin(w *ecs.World, spec prefabs.CoinSpec, x, y, bounce float64) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.CoinComponent.Kind(), &component.Coin{
		Active: true,
		HomeX:  x,
		HomeY:  y,
		Value:  spec.Value,
	}); err != nil {
		return 0, fmt.Errorf("coin: add coin component: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("coin: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:              spec.Collider.Width,
		Height:             spec.Collider.Height,
		BounceY:            bounce,
		CollideWorldBounds: true,
	}); err != nil {
		return 0, fmt.Errorf("coin: add physics body: %w", err)
	}

	if err := ecs.Add(w, entity, component.SpriteComponent.Kind(), &component.Sprite{Texture: spec.Sprite.Image}); err != nil {
		return 0, fmt.Errorf("coin: add sprite: %w", err)
	}

	if err := ecs.Add(w, entity, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layerOr(spec.RenderLayer.Index, LayerPickup)}); err != nil {
		return 0, fmt.Errorf("coin: add render layer: %w", err)
	}

	return entity, nil
}

func bounceBetween(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return common.Clamp(lo, 0, 1)
	}
	return common.Clamp(lo+rng.Float64()*(hi-lo), 0, 1)
}
