package system

import (
	"github.com/milk9111/flagrun/ecs"
	"github.com/milk9111/flagrun/ecs/component"
)

const (
	AnimLeft  = "left"
	AnimRight = "right"
	AnimTurn  = "turn"
)

// PlayerControlSystem turns held keys into player velocity and animation.
// Left wins over right when both are held.
type PlayerControlSystem struct{}

func NewPlayerControlSystem() *PlayerControlSystem {
	return &PlayerControlSystem{}
}

func (p *PlayerControlSystem) Update(w *ecs.World) {
	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, player *component.Player, input *component.Input, body *component.PhysicsBody) {
		anim, _ := ecs.Get(w, e, component.AnimationComponent.Kind())

		switch {
		case input.Left:
			body.VelX = -player.MoveSpeed
			PlayAnimation(anim, AnimLeft, true)
		case input.Right:
			body.VelX = player.MoveSpeed
			PlayAnimation(anim, AnimRight, true)
		default:
			body.VelX = 0
			PlayAnimation(anim, AnimTurn, false)
		}

		if !input.Up {
			return
		}
		if touching, ok := ecs.Get(w, e, component.TouchingComponent.Kind()); ok && touching.Down {
			body.VelY = -player.JumpSpeed
		}
	})
}
