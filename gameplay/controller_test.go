package gameplay

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/flagrun/ecs"
	"github.com/milk9111/flagrun/ecs/component"
	"github.com/milk9111/flagrun/ecs/system"
)

type fakeSaver struct {
	results []Result
	err     error
}

func (f *fakeSaver) SaveResult(r Result) error {
	f.results = append(f.results, r)
	return f.err
}

type testKeys struct {
	down map[system.Key]bool
	just map[system.Key]bool
}

func (k *testKeys) Pressed(key system.Key) bool     { return k.down[key] }
func (k *testKeys) JustPressed(key system.Key) bool { return k.just[key] }

func newTestController(t *testing.T) (*Controller, *testKeys, *fakeSaver) {
	t.Helper()
	cfg, err := LoadConfig("level.yaml")
	require.NoError(t, err)

	clips := component.NewAnimationLibrary()
	clips.Register(component.AnimationDef{Name: system.AnimLeft, Frames: []int{0, 1, 2, 3}, FPS: 10, Loop: true})
	clips.Register(component.AnimationDef{Name: system.AnimTurn, Frames: []int{4}, FPS: 20})
	clips.Register(component.AnimationDef{Name: system.AnimRight, Frames: []int{5, 6, 7, 8}, FPS: 10, Loop: true})

	keys := &testKeys{down: map[system.Key]bool{}, just: map[system.Key]bool{}}
	saver := &fakeSaver{}
	c, err := NewController(Options{Config: cfg, Clips: clips, Keys: keys, Seed: 7, Saver: saver})
	require.NoError(t, err)
	return c, keys, saver
}

func query(c *Controller, kinds ...component.Kind) []ecs.Entity {
	return ecs.Query(c.World(), kinds...)
}

func mustGet[T any](t *testing.T, c *Controller, e ecs.Entity, kind component.ComponentKind[T]) *T {
	t.Helper()
	v, ok := ecs.Get(c.World(), e, kind)
	require.True(t, ok)
	return v
}

func labels(c *Controller) []string {
	var out []string
	ecs.ForEach(c.World(), component.LabelComponent.Kind(), func(_ ecs.Entity, l *component.Label) {
		out = append(out, l.Text)
	})
	return out
}

func firstOf(t *testing.T, c *Controller, kind component.Kind) ecs.Entity {
	t.Helper()
	e, ok := ecs.First(c.World(), kind)
	require.True(t, ok)
	return e
}

func TestBuildWorldLayout(t *testing.T) {
	c, _, _ := newTestController(t)

	assert.Len(t, query(c, component.PlatformTagComponent.Kind()), 4)
	assert.Len(t, query(c, component.CoinComponent.Kind()), 12)
	assert.Len(t, query(c, component.EnemyComponent.Kind()), 1)
	assert.Len(t, query(c, component.FlagTagComponent.Kind()), 1)
	assert.Equal(t, []string{"Score: 0"}, labels(c))

	s := c.Session()
	assert.Zero(t, s.Score)
	assert.False(t, s.Over)
	assert.Equal(t, OutcomeNone, s.Outcome)

	player := mustGet(t, c, c.Player(), component.TransformComponent.Kind())
	assert.Equal(t, 100.0, player.X)
	assert.Equal(t, 450.0, player.Y)

	enemy := firstOf(t, c, component.EnemyComponent.Kind())
	assert.Zero(t, mustGet(t, c, enemy, component.PhysicsBodyComponent.Kind()).VelX)
	assert.Equal(t, component.DirectionRight, mustGet(t, c, enemy, component.EnemyComponent.Kind()).Direction)

	bg := firstOf(t, c, component.RectComponent.Kind())
	assert.Equal(t, color.NRGBA{R: 0x68, G: 0x88, B: 0xff, A: 0xff}, mustGet(t, c, bg, component.RectComponent.Kind()).Color)
}

func TestCoinCollection(t *testing.T) {
	c, _, _ := newTestController(t)
	w := c.World()
	coin := query(c, component.CoinComponent.Kind())[0]

	c.OnCoinCollected(w, c.Player(), coin)
	assert.Equal(t, 10, c.Session().Score)
	assert.False(t, mustGet(t, c, coin, component.CoinComponent.Kind()).Active)
	assert.True(t, mustGet(t, c, coin, component.PhysicsBodyComponent.Kind()).Disabled)
	assert.True(t, mustGet(t, c, coin, component.SpriteComponent.Kind()).Hidden)
	assert.Contains(t, labels(c), "Score: 10")

	c.OnCoinCollected(w, c.Player(), coin)
	assert.Equal(t, 10, c.Session().Score, "inactive coin awards nothing")

	events := c.Events()
	require.Len(t, events, 1)
	assert.Equal(t, ecs.EventCoinCollected, events[0].Kind)
}

func TestLastCoinRefillsRow(t *testing.T) {
	c, _, _ := newTestController(t)
	w := c.World()
	coins := query(c, component.CoinComponent.Kind())

	for _, e := range coins {
		// knock them off their home row first
		tr := mustGet(t, c, e, component.TransformComponent.Kind())
		tr.Y = 300
		mustGet(t, c, e, component.PhysicsBodyComponent.Kind()).VelY = 40
	}
	for _, e := range coins {
		c.OnCoinCollected(w, c.Player(), e)
	}

	assert.Equal(t, 120, c.Session().Score)
	xs := make(map[float64]bool)
	for _, e := range coins {
		coin := mustGet(t, c, e, component.CoinComponent.Kind())
		tr := mustGet(t, c, e, component.TransformComponent.Kind())
		body := mustGet(t, c, e, component.PhysicsBodyComponent.Kind())
		assert.True(t, coin.Active)
		assert.False(t, body.Disabled)
		assert.False(t, mustGet(t, c, e, component.SpriteComponent.Kind()).Hidden)
		assert.Equal(t, 50.0, tr.Y)
		assert.Zero(t, body.VelX)
		assert.Zero(t, body.VelY)
		xs[tr.X] = true
	}
	for i := 0; i < 12; i++ {
		assert.True(t, xs[12+70*float64(i)], "coin at x=%v", 12+70*i)
	}
}

func placeForContact(t *testing.T, c *Controller, playerY, playerVY float64) ecs.Entity {
	t.Helper()
	enemy := firstOf(t, c, component.EnemyComponent.Kind())
	et := mustGet(t, c, enemy, component.TransformComponent.Kind())
	et.X, et.Y = 400, 50

	pt := mustGet(t, c, c.Player(), component.TransformComponent.Kind())
	pt.X, pt.Y = 400, playerY
	mustGet(t, c, c.Player(), component.PhysicsBodyComponent.Kind()).VelY = playerVY
	return enemy
}

func TestPlayerEnemyContact(t *testing.T) {
	tests := []struct {
		name      string
		playerY   float64
		playerVY  float64
		wantStomp bool
	}{
		{name: "falling_onto_top", playerY: 30, playerVY: 50, wantStomp: true},
		{name: "rising_through_top", playerY: 30, playerVY: -50, wantStomp: false},
		{name: "side_hit_standing", playerY: 50, playerVY: 0, wantStomp: false},
		// The enemy's top edge sits at y 34, so a falling player at 40 is
		// already level with it and loses.
		{name: "falling_but_level", playerY: 40, playerVY: 50, wantStomp: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _, saver := newTestController(t)
			enemy := placeForContact(t, c, tc.playerY, tc.playerVY)

			c.OnPlayerEnemyContact(c.World(), c.Player(), enemy)
			s := c.Session()

			if tc.wantStomp {
				assert.Equal(t, 20, s.Score)
				assert.False(t, s.Over)
				assert.False(t, mustGet(t, c, enemy, component.EnemyComponent.Kind()).Active)
				assert.True(t, mustGet(t, c, enemy, component.PhysicsBodyComponent.Kind()).Disabled)
				assert.Equal(t, -200.0, mustGet(t, c, c.Player(), component.PhysicsBodyComponent.Kind()).VelY)
				assert.False(t, c.Physics().Paused())
				assert.Empty(t, saver.results)
				return
			}

			assert.Zero(t, s.Score)
			assert.True(t, s.Over)
			assert.Equal(t, OutcomeLost, s.Outcome)
			assert.True(t, c.Physics().Paused())
			assert.Equal(t, colorRed, mustGet(t, c, c.Player(), component.SpriteComponent.Kind()).Tint)
			assert.Equal(t, system.AnimTurn, mustGet(t, c, c.Player(), component.AnimationComponent.Kind()).Current)
			assert.Contains(t, labels(c), "GAME OVER")
			assert.Contains(t, labels(c), "Press R to restart")
			require.Len(t, saver.results, 1)
			assert.Equal(t, OutcomeLost, saver.results[0].Outcome)
			assert.Equal(t, s.ID.String(), saver.results[0].SessionID)
		})
	}
}

func TestStompedEnemyIgnoredAfterwards(t *testing.T) {
	c, _, _ := newTestController(t)
	enemy := placeForContact(t, c, 30, 50)

	c.OnPlayerEnemyContact(c.World(), c.Player(), enemy)
	placeForContact(t, c, 50, 0)
	c.OnPlayerEnemyContact(c.World(), c.Player(), enemy)

	assert.Equal(t, 20, c.Session().Score)
	assert.False(t, c.Session().Over)
}

func TestFlagWins(t *testing.T) {
	c, _, saver := newTestController(t)
	w := c.World()
	c.OnCoinCollected(w, c.Player(), query(c, component.CoinComponent.Kind())[0])

	flag := firstOf(t, c, component.FlagTagComponent.Kind())
	c.OnFlagReached(w, c.Player(), flag)

	s := c.Session()
	assert.True(t, s.Over)
	assert.Equal(t, OutcomeWon, s.Outcome)
	assert.True(t, c.Physics().Paused())
	assert.Equal(t, colorGreen, mustGet(t, c, c.Player(), component.SpriteComponent.Kind()).Tint)
	assert.Subset(t, labels(c), []string{"YOU WIN!", "Final Score: 10", "Press R to play again"})

	require.Len(t, saver.results, 1)
	assert.Equal(t, 10, saver.results[0].Score)
	assert.Equal(t, "meadow", saver.results[0].Level)
}

func TestEndedSessionIgnoresEverythingButRestart(t *testing.T) {
	c, keys, saver := newTestController(t)
	w := c.World()
	c.OnFlagReached(w, c.Player(), firstOf(t, c, component.FlagTagComponent.Kind()))

	before := *mustGet(t, c, c.Player(), component.TransformComponent.Kind())
	keys.down[system.KeyRight] = true
	keys.down[system.KeyUp] = true
	for i := 0; i < 30; i++ {
		require.NoError(t, c.Update())
	}
	assert.Equal(t, before, *mustGet(t, c, c.Player(), component.TransformComponent.Kind()))
	assert.Zero(t, mustGet(t, c, c.Player(), component.PhysicsBodyComponent.Kind()).VelX)

	c.OnCoinCollected(w, c.Player(), query(c, component.CoinComponent.Kind())[0])
	enemy := placeForContact(t, c, 50, 0)
	c.OnPlayerEnemyContact(w, c.Player(), enemy)
	c.OnFlagReached(w, c.Player(), firstOf(t, c, component.FlagTagComponent.Kind()))

	s := c.Session()
	assert.Zero(t, s.Score)
	assert.Equal(t, OutcomeWon, s.Outcome)
	assert.Len(t, saver.results, 1)
}

func TestRestart(t *testing.T) {
	c, keys, _ := newTestController(t)
	first := c.Session().ID

	keys.just[system.KeyRestart] = true
	require.NoError(t, c.Update())
	assert.Equal(t, first, c.Session().ID, "restart is ignored while running")
	keys.just[system.KeyRestart] = false

	enemy := placeForContact(t, c, 50, 0)
	c.OnPlayerEnemyContact(c.World(), c.Player(), enemy)
	require.True(t, c.Session().Over)

	require.NoError(t, c.Update())
	assert.True(t, c.Session().Over, "no restart without the key")

	keys.just[system.KeyRestart] = true
	require.NoError(t, c.Update())

	s := c.Session()
	assert.NotEqual(t, first, s.ID)
	assert.False(t, s.Over)
	assert.Zero(t, s.Score)
	assert.False(t, c.Physics().Paused())
	assert.Equal(t, []string{"Score: 0"}, labels(c))
	pt := mustGet(t, c, c.Player(), component.TransformComponent.Kind())
	assert.Equal(t, 100.0, pt.X)
	assert.Equal(t, 450.0, pt.Y)
	assert.Nil(t, mustGet(t, c, c.Player(), component.SpriteComponent.Kind()).Tint)
}

func TestIdleRunLandsEnemyAndPlayer(t *testing.T) {
	c, _, _ := newTestController(t)

	for i := 0; i < 300; i++ {
		require.NoError(t, c.Update())
	}

	s := c.Session()
	assert.False(t, s.Over)
	assert.Zero(t, s.Score)

	enemy := firstOf(t, c, component.EnemyComponent.Kind())
	assert.True(t, mustGet(t, c, enemy, component.EnemyComponent.Kind()).HasLanded)
	assert.Equal(t, 100.0, abs(mustGet(t, c, enemy, component.PhysicsBodyComponent.Kind()).VelX))

	pt := mustGet(t, c, c.Player(), component.TransformComponent.Kind())
	assert.InDelta(t, 512, pt.Y, 1.5)

	flag := firstOf(t, c, component.FlagTagComponent.Kind())
	assert.InDelta(t, 188, mustGet(t, c, flag, component.TransformComponent.Kind()).Y, 1.5)
}

func TestHeldRunStopsAtPlatformSide(t *testing.T) {
	c, keys, _ := newTestController(t)
	pt := mustGet(t, c, c.Player(), component.TransformComponent.Kind())
	body := mustGet(t, c, c.Player(), component.PhysicsBodyComponent.Kind())
	// platform at (600,400) has its left face at x 400
	pt.X, pt.Y = 361, 400
	body.VelX, body.VelY = 0, 0
	keys.down[system.KeyRight] = true

	maxX := pt.X
	sawRight := false
	for i := 0; i < 25; i++ {
		require.NoError(t, c.Update())
		maxX = max(maxX, pt.X)
		if mustGet(t, c, c.Player(), component.TouchingComponent.Kind()).Right {
			sawRight = true
		}
	}

	assert.True(t, sawRight)
	assert.Less(t, maxX, 386.5, "player sank into the platform side")
	assert.Greater(t, pt.Y, 400.0, "gravity still applies against the wall")
}

func TestSaverErrorsAreNotFatal(t *testing.T) {
	c, _, saver := newTestController(t)
	saver.err = errors.New("disk full")

	c.OnFlagReached(c.World(), c.Player(), firstOf(t, c, component.FlagTagComponent.Kind()))
	assert.True(t, c.Session().Over)
}

func TestSameSeedSameBounce(t *testing.T) {
	a, _, _ := newTestController(t)
	b, _, _ := newTestController(t)

	ca := query(a, component.CoinComponent.Kind())
	cb := query(b, component.CoinComponent.Kind())
	for i := range ca {
		assert.Equal(t,
			mustGet(t, a, ca[i], component.PhysicsBodyComponent.Kind()).BounceY,
			mustGet(t, b, cb[i], component.PhysicsBodyComponent.Kind()).BounceY)
	}
}

func TestSessionScoreNeverDecreases(t *testing.T) {
	s := NewSession(time.Now())
	s.AddScore(10)
	s.AddScore(-5)
	assert.Equal(t, 10, s.Score)

	require.True(t, s.End(OutcomeLost))
	s.AddScore(20)
	assert.Equal(t, 10, s.Score)
	assert.False(t, s.End(OutcomeWon))
	assert.Equal(t, OutcomeLost, s.Outcome)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
