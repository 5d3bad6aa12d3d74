package system

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/flagrun/ecs"
	"github.com/milk9111/flagrun/ecs/component"
)

type patrolCase struct {
	name     string
	landed   bool
	dir      component.Direction
	vx       float64
	x        float64
	touching component.Touching
	wantLand bool
	wantDir  component.Direction
	wantVX   float64
}

var patrolCases = []patrolCase{
	{name: "falling_stays_still", x: 400, dir: component.DirectionRight, wantDir: component.DirectionRight},
	{name: "lands_and_walks_right", x: 400, dir: component.DirectionRight, touching: component.Touching{Down: true}, wantLand: true, wantDir: component.DirectionRight, wantVX: 100},
	{name: "lands_past_right_edge_turns_same_tick", x: 760, dir: component.DirectionRight, touching: component.Touching{Down: true}, wantLand: true, wantDir: component.DirectionLeft, wantVX: -100},
	{name: "keeps_walking", landed: true, x: 500, dir: component.DirectionRight, vx: 100, touching: component.Touching{Down: true}, wantLand: true, wantDir: component.DirectionRight, wantVX: 100},
	{name: "right_threshold", landed: true, x: 751, dir: component.DirectionRight, vx: 100, wantLand: true, wantDir: component.DirectionLeft, wantVX: -100},
	{name: "exact_threshold_does_not_turn", landed: true, x: 750, dir: component.DirectionRight, vx: 100, wantLand: true, wantDir: component.DirectionRight, wantVX: 100},
	{name: "wall_on_right", landed: true, x: 300, dir: component.DirectionRight, vx: 100, touching: component.Touching{Right: true}, wantLand: true, wantDir: component.DirectionLeft, wantVX: -100},
	{name: "left_threshold", landed: true, x: 49, dir: component.DirectionLeft, vx: -100, wantLand: true, wantDir: component.DirectionRight, wantVX: 100},
	{name: "wall_on_left", landed: true, x: 300, dir: component.DirectionLeft, vx: -100, touching: component.Touching{Left: true}, wantLand: true, wantDir: component.DirectionRight, wantVX: 100},
	{name: "right_checked_before_left", landed: true, x: 300, dir: component.DirectionRight, vx: 100, touching: component.Touching{Left: true, Right: true}, wantLand: true, wantDir: component.DirectionLeft, wantVX: -100},
}

func addEnemy(t *testing.T, w *ecs.World, tc patrolCase, script string) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: tc.x, Y: 300, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 32, Height: 32, VelX: tc.vx})
	touching := tc.touching
	mustAdd(t, w, e, component.TouchingComponent.Kind(), &touching)
	mustAdd(t, w, e, component.EnemyComponent.Kind(), &component.Enemy{
		Direction:   tc.dir,
		HasLanded:   tc.landed,
		Active:      true,
		PatrolSpeed: 100,
		MinX:        50,
		MaxX:        750,
		Script:      script,
	})
	return e
}

func TestEnemyPatrol(t *testing.T) {
	runners := []struct {
		name   string
		script string
	}{
		{name: "native", script: ""},
		{name: "tengo", script: "patrol.tengo"},
	}

	for _, r := range runners {
		for _, tc := range patrolCases {
			t.Run(r.name+"/"+tc.name, func(t *testing.T) {
				w := ecs.NewWorld()
				e := addEnemy(t, w, tc, r.script)

				NewEnemyAISystem().Update(w)

				enemy := get(t, w, e, component.EnemyComponent.Kind())
				body := get(t, w, e, component.PhysicsBodyComponent.Kind())
				assert.Equal(t, tc.wantLand, enemy.HasLanded)
				assert.Equal(t, tc.wantDir, enemy.Direction)
				assert.Equal(t, tc.wantVX, body.VelX)
			})
		}
	}
}

func TestEnemyAIFallsBackWhenScriptBroken(t *testing.T) {
	tests := []struct {
		name   string
		loader func(string) ([]byte, error)
	}{
		{name: "missing", loader: func(string) ([]byte, error) { return nil, errors.New("no such script") }},
		{name: "syntax_error", loader: func(string) ([]byte, error) { return []byte("update := func(enemy) {"), nil }},
		{name: "runtime_error", loader: func(string) ([]byte, error) { return []byte("update := func(enemy) { enemy.nope() }"), nil }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := addEnemy(t, w, patrolCases[1], "broken.tengo")

			sys := NewEnemyAISystem()
			sys.LoadScript = tc.loader
			sys.Update(w)

			body := get(t, w, e, component.PhysicsBodyComponent.Kind())
			assert.Equal(t, 100.0, body.VelX)
			require.True(t, get(t, w, e, component.EnemyComponent.Kind()).HasLanded)
		})
	}
}

func TestEnemyAISkipsInactive(t *testing.T) {
	w := ecs.NewWorld()
	e := addEnemy(t, w, patrolCases[1], "")
	get(t, w, e, component.EnemyComponent.Kind()).Active = false

	NewEnemyAISystem().Update(w)
	assert.False(t, get(t, w, e, component.EnemyComponent.Kind()).HasLanded)
}
