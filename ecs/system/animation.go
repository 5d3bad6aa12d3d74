package system

import (
	"github.com/milk9111/flagrun/common"
	"github.com/milk9111/flagrun/ecs"
	"github.com/milk9111/flagrun/ecs/component"
)

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.AnimationComponent.Kind(), component.SpriteComponent.Kind(), func(_ ecs.Entity, anim *component.Animation, sprite *component.Sprite) {
		def, ok := anim.Defs[anim.Current]
		if !ok || len(def.Frames) == 0 {
			return
		}

		if anim.Playing {
			// Advance frame every N ticks based on FPS
			ticksPerFrame := 1
			if def.FPS > 0 {
				ticksPerFrame = int(float64(common.TPS) / def.FPS)
			}
			if ticksPerFrame < 1 {
				ticksPerFrame = 1
			}

			anim.FrameTimer++
			if anim.FrameTimer >= ticksPerFrame {
				anim.FrameTimer = 0
				anim.Frame++
				if anim.Frame >= len(def.Frames) {
					if def.Loop {
						anim.Frame = 0
					} else {
						anim.Frame = len(def.Frames) - 1
						anim.Playing = false
					}
				}
			}
		}

		if anim.Frame >= len(def.Frames) {
			anim.Frame = 0
		}
		sprite.Frame = def.Frames[anim.Frame]
	})
}

// PlayAnimation switches anim to the named clip. With ignoreIfPlaying a
// running clip of the same name keeps its frame.
func PlayAnimation(anim *component.Animation, name string, ignoreIfPlaying bool) {
	if anim == nil {
		return
	}
	if _, ok := anim.Defs[name]; !ok {
		return
	}
	if ignoreIfPlaying && anim.Current == name && anim.Playing {
		return
	}
	anim.Current = name
	anim.Frame = 0
	anim.FrameTimer = 0
	anim.Playing = true
}
