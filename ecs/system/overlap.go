package system

import (
	"github.com/milk9111/flagrun/common"
	"github.com/milk9111/flagrun/ecs"
	"github.com/milk9111/flagrun/ecs/component"
)

// Interaction names a player overlap rule.
type Interaction int

const (
	InteractionCoin Interaction = iota
	InteractionEnemy
	InteractionFlag
)

func (i Interaction) String() string {
	switch i {
	case InteractionCoin:
		return "coin"
	case InteractionEnemy:
		return "enemy"
	case InteractionFlag:
		return "flag"
	default:
		return "unknown"
	}
}

// OverlapHandler is called once per tick for each overlapping pair.
type OverlapHandler func(w *ecs.World, player, other ecs.Entity)

// OverlapSystem tests the player body against coins, enemies and flags and
// dispatches each overlap to the handler registered for its interaction.
// Disabled bodies, inactive coins and inactive enemies are skipped.
type OverlapSystem struct {
	handlers map[Interaction]OverlapHandler
}

func NewOverlapSystem() *OverlapSystem {
	return &OverlapSystem{handlers: make(map[Interaction]OverlapHandler)}
}

// Handle registers fn for kind, replacing any previous handler.
func (o *OverlapSystem) Handle(kind Interaction, fn OverlapHandler) {
	o.handlers[kind] = fn
}

func (o *OverlapSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	player, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	if !overlapCandidate(w, player) {
		return
	}

	for _, e := range ecs.Query(w, component.CoinComponent.Kind()) {
		if coin, ok := ecs.Get(w, e, component.CoinComponent.Kind()); !ok || !coin.Active {
			continue
		}
		o.dispatch(w, InteractionCoin, player, e)
	}

	for _, e := range ecs.Query(w, component.EnemyComponent.Kind()) {
		if enemy, ok := ecs.Get(w, e, component.EnemyComponent.Kind()); !ok || !enemy.Active {
			continue
		}
		o.dispatch(w, InteractionEnemy, player, e)
	}

	for _, e := range ecs.Query(w, component.FlagTagComponent.Kind()) {
		o.dispatch(w, InteractionFlag, player, e)
	}
}

func (o *OverlapSystem) dispatch(w *ecs.World, kind Interaction, player, other ecs.Entity) {
	fn := o.handlers[kind]
	if fn == nil || !overlapCandidate(w, other) || !Overlapping(w, player, other) {
		return
	}
	fn(w, player, other)
}

func overlapCandidate(w *ecs.World, e ecs.Entity) bool {
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	return ok && !body.Disabled
}

// Overlapping reports whether the scaled bodies of a and b intersect.
func Overlapping(w *ecs.World, a, b ecs.Entity) bool {
	ax, ay, aw, ah, ok := bounds(w, a)
	if !ok {
		return false
	}
	bx, by, bw, bh, ok := bounds(w, b)
	if !ok {
		return false
	}
	return common.Overlaps(ax, ay, aw, ah, bx, by, bw, bh)
}

func bounds(w *ecs.World, e ecs.Entity) (x, y, width, height float64, ok bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return 0, 0, 0, 0, false
	}
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		return 0, 0, 0, 0, false
	}
	sx, sy := scaleOf(t)
	return t.X, t.Y, body.Width * sx, body.Height * sy, true
}
