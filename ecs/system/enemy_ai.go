package system

import (
	"github.com/charmbracelet/log"

	"github.com/milk9111/flagrun/common"
	"github.com/milk9111/flagrun/ecs"
	"github.com/milk9111/flagrun/ecs/component"
	"github.com/milk9111/flagrun/prefabs"
)

// EnemyAISystem drives patrolling enemies, either through their tengo
// script or the built-in rule when no script is set or it fails to load.
type EnemyAISystem struct {
	LoadScript func(name string) ([]byte, error)

	scripts map[string]*patrolScript
	broken  map[string]bool
	log     *log.Logger
}

func NewEnemyAISystem() *EnemyAISystem {
	return &EnemyAISystem{
		LoadScript: prefabs.LoadScript,
		scripts:    make(map[string]*patrolScript),
		broken:     make(map[string]bool),
		log:        common.Log("ai"),
	}
}

func (s *EnemyAISystem) Update(w *ecs.World) {
	ecs.ForEach3(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, enemy *component.Enemy, transform *component.Transform, body *component.PhysicsBody) {
		if !enemy.Active || body.Disabled {
			return
		}

		var touching component.Touching
		if t, ok := ecs.Get(w, e, component.TouchingComponent.Kind()); ok {
			touching = *t
		}

		if rt := s.script(enemy.Script); rt != nil {
			err := rt.run(enemy, body, transform.X, touching)
			if err == nil {
				return
			}
			s.log.Warn("patrol script failed, using built-in rule", "entity", e, "script", enemy.Script, "err", err)
			s.broken[enemy.Script] = true
			delete(s.scripts, enemy.Script)
		}
		Patrol(enemy, body, transform.X, touching)
	})
}

// Reload drops compiled scripts so the next update reads them again.
func (s *EnemyAISystem) Reload() {
	s.scripts = make(map[string]*patrolScript)
	s.broken = make(map[string]bool)
}

func (s *EnemyAISystem) script(name string) *patrolScript {
	if name == "" || s.broken[name] {
		return nil
	}
	if rt, ok := s.scripts[name]; ok {
		return rt
	}

	src, err := s.LoadScript(name)
	if err != nil {
		s.log.Warn("load patrol script", "script", name, "err", err)
		s.broken[name] = true
		return nil
	}
	rt, err := compilePatrolScript(name, src)
	if err != nil {
		s.log.Warn("compile patrol script", "script", name, "err", err)
		s.broken[name] = true
		return nil
	}
	s.log.Debug("patrol script ready", "script", name)
	s.scripts[name] = rt
	return rt
}

// Patrol is the built-in walking rule. An enemy starts walking right the
// first time it touches ground, then reverses on wall contact or when it
// crosses MinX/MaxX.
func Patrol(enemy *component.Enemy, body *component.PhysicsBody, x float64, touching component.Touching) {
	if !enemy.HasLanded && touching.Down {
		land(enemy, body)
	}
	if !enemy.HasLanded {
		return
	}

	if touching.Right || x > enemy.MaxX {
		turn(enemy, body, component.DirectionLeft)
	} else if touching.Left || x < enemy.MinX {
		turn(enemy, body, component.DirectionRight)
	}
}

func land(enemy *component.Enemy, body *component.PhysicsBody) {
	if enemy.HasLanded {
		return
	}
	enemy.HasLanded = true
	turn(enemy, body, component.DirectionRight)
}

func turn(enemy *component.Enemy, body *component.PhysicsBody, dir component.Direction) {
	enemy.Direction = dir
	if dir == component.DirectionLeft {
		body.VelX = -enemy.PatrolSpeed
		return
	}
	body.VelX = enemy.PatrolSpeed
}
