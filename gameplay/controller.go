package gameplay

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/milk9111/flagrun/common"
	"github.com/milk9111/flagrun/ecs"
	"github.com/milk9111/flagrun/ecs/component"
	"github.com/milk9111/flagrun/ecs/entity"
	"github.com/milk9111/flagrun/ecs/system"
)

var (
	colorRed   = color.NRGBA{R: 0xff, A: 0xff}
	colorGreen = color.NRGBA{G: 0xff, A: 0xff}
)

type Options struct {
	Config Config
	// Clips are the animation clips registered at boot. Nil leaves entities
	// unanimated.
	Clips *component.AnimationLibrary
	Keys  system.KeyState
	// Seed drives coin bounce. Zero picks a time-based seed.
	Seed  uint64
	Saver ResultSaver
	Now   func() time.Time
}

// Controller owns one play session: the world, its systems and the rules
// that run when the player touches a coin, an enemy or the flag.
type Controller struct {
	cfg   Config
	clips *component.AnimationLibrary
	keys  system.KeyState
	rng   *rand.Rand
	saver ResultSaver
	now   func() time.Time
	log   *log.Logger

	session   *Session
	world     *ecs.World
	physics   *system.PhysicsSystem
	ai        *system.EnemyAISystem
	scheduler *ecs.Scheduler

	player     ecs.Entity
	scoreLabel ecs.Entity
}

// NewController initialises the session and builds the first world.
func NewController(opts Options) (*Controller, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	c := &Controller{
		cfg:   opts.Config,
		clips: opts.Clips,
		keys:  opts.Keys,
		rng:   rand.New(rand.NewPCG(seed, seed>>1|1)),
		saver: opts.Saver,
		now:   now,
		log:   common.Log("gameplay"),
		ai:    system.NewEnemyAISystem(),
	}

	c.InitState()
	if err := c.BuildWorld(); err != nil {
		return nil, err
	}
	return c, nil
}

// InitState starts a fresh session: score zero, not over.
func (c *Controller) InitState() {
	c.session = NewSession(c.now())
}

// BuildWorld creates the world, physics space and every entity of the
// level, and wires the overlap rules to the handlers.
func (c *Controller) BuildWorld() error {
	c.world = ecs.NewWorld()
	c.physics = system.NewPhysicsSystem()

	overlaps := system.NewOverlapSystem()
	overlaps.Handle(system.InteractionCoin, c.OnCoinCollected)
	overlaps.Handle(system.InteractionEnemy, c.OnPlayerEnemyContact)
	overlaps.Handle(system.InteractionFlag, c.OnFlagReached)

	c.scheduler = ecs.NewScheduler(
		system.NewInputSystem(c.keys),
		system.NewPlayerControlSystem(),
		c.ai,
		c.physics,
		overlaps,
		system.NewAnimationSystem(),
	)

	level := c.cfg.Level
	w := c.world

	if _, err := entity.NewBackground(w, level.Background); err != nil {
		return fmt.Errorf("gameplay: build world: %w", err)
	}
	for _, p := range level.Platforms {
		if _, err := entity.NewPlatform(w, p, level.Ground, level.GroundSkin); err != nil {
			return fmt.Errorf("gameplay: build world: %w", err)
		}
	}

	player, err := entity.NewPlayer(w, c.cfg.Player, level.Player, c.clips.Defs())
	if err != nil {
		return fmt.Errorf("gameplay: build world: %w", err)
	}
	c.player = player

	for _, pos := range level.Enemies {
		if _, err := entity.NewEnemy(w, c.cfg.Enemy, pos); err != nil {
			return fmt.Errorf("gameplay: build world: %w", err)
		}
	}

	if _, err := entity.NewCoins(w, c.cfg.Coin, level.Coins, c.rng); err != nil {
		return fmt.Errorf("gameplay: build world: %w", err)
	}

	if _, err := entity.NewFlag(w, level.Flag); err != nil {
		return fmt.Errorf("gameplay: build world: %w", err)
	}

	label, err := entity.NewScoreLabel(w, level.ScoreLabel, scoreText(0))
	if err != nil {
		return fmt.Errorf("gameplay: build world: %w", err)
	}
	c.scoreLabel = label

	c.log.Debug("world built", "session", c.session.ID, "level", level.Name, "entities", len(ecs.Entities(w)))
	return nil
}

// Update runs one simulation tick. After the session ends only the restart
// key is honoured.
func (c *Controller) Update() error {
	if c.session.Over {
		if c.keys != nil && c.keys.JustPressed(system.KeyRestart) {
			return c.Restart()
		}
		return nil
	}
	c.scheduler.Update(c.world)
	return nil
}

// Restart discards the world and session and builds both again.
func (c *Controller) Restart() error {
	c.log.Info("restart", "previous", c.session.ID, "score", c.session.Score)
	c.InitState()
	return c.BuildWorld()
}

// Reload swaps in a new config, drops compiled scripts and restarts.
func (c *Controller) Reload(cfg Config) error {
	c.cfg = cfg
	c.ai.Reload()
	return c.Restart()
}

func (c *Controller) World() *ecs.World              { return c.world }
func (c *Controller) Physics() *system.PhysicsSystem { return c.physics }
func (c *Controller) Player() ecs.Entity             { return c.player }
func (c *Controller) Session() Session               { return *c.session }
func (c *Controller) Events() []ecs.Event            { return c.world.Events().Drain() }
func (c *Controller) Config() Config                 { return c.cfg }

// OnCoinCollected hides the coin and scores it. When the last active coin
// goes, the whole row comes back at its home positions.
func (c *Controller) OnCoinCollected(w *ecs.World, player, coinEntity ecs.Entity) {
	if c.session.Over {
		return
	}
	coin, ok := ecs.Get(w, coinEntity, component.CoinComponent.Kind())
	if !ok || !coin.Active {
		return
	}

	coin.Active = false
	setEnabled(w, coinEntity, false)

	c.session.AddScore(coin.Value)
	c.refreshScore()
	w.Events().Push(ecs.Event{Kind: ecs.EventCoinCollected, Entity: coinEntity})

	if activeCoins(w) == 0 {
		c.refillCoins(w)
	}
}

// OnPlayerEnemyContact stomps the enemy when the player is falling onto its
// top half, and ends the session otherwise.
func (c *Controller) OnPlayerEnemyContact(w *ecs.World, player, enemyEntity ecs.Entity) {
	if c.session.Over {
		return
	}
	enemy, ok := ecs.Get(w, enemyEntity, component.EnemyComponent.Kind())
	if !ok || !enemy.Active {
		return
	}
	playerBody, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}
	playerPos, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	enemyPos, ok := ecs.Get(w, enemyEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	enemyBody, ok := ecs.Get(w, enemyEntity, component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}

	if stomped(playerBody.VelY, playerPos.Y, enemyPos.Y, enemyBody.Height*scaleY(enemyPos)) {
		enemy.Active = false
		setEnabled(w, enemyEntity, false)

		c.session.AddScore(enemy.StompValue)
		c.refreshScore()

		if p, ok := ecs.Get(w, player, component.PlayerComponent.Kind()); ok {
			playerBody.VelY = -p.StompBounce
		}
		w.Events().Push(ecs.Event{Kind: ecs.EventEnemyStomped, Entity: enemyEntity})
		return
	}

	c.finish(w, player, OutcomeLost)
	if anim, ok := ecs.Get(w, player, component.AnimationComponent.Kind()); ok {
		system.PlayAnimation(anim, system.AnimTurn, false)
	}
	c.overlayLabel(400, 300, "GAME OVER", 64, color.Black, colorRed)
	c.overlayLabel(400, 350, "Press R to restart", 32, color.White, nil)
	w.Events().Push(ecs.Event{Kind: ecs.EventPlayerHurt, Entity: player})
	c.save()
}

// OnFlagReached wins the session.
func (c *Controller) OnFlagReached(w *ecs.World, player, flag ecs.Entity) {
	if c.session.Over {
		return
	}

	c.finish(w, player, OutcomeWon)
	c.overlayLabel(400, 300, "YOU WIN!", 64, color.Black, colorGreen)
	c.overlayLabel(400, 350, fmt.Sprintf("Final Score: %d", c.session.Score), 32, color.Black, nil)
	c.overlayLabel(400, 400, "Press R to play again", 32, color.Black, nil)
	w.Events().Push(ecs.Event{Kind: ecs.EventFlagReached, Entity: flag})
	c.save()
}

// stomped is true when the player moves down and its centre is above the
// enemy's top edge.
func stomped(playerVelY, playerY, enemyY, enemyHeight float64) bool {
	return playerVelY > 0 && playerY < enemyY-enemyHeight/2
}

func (c *Controller) finish(w *ecs.World, player ecs.Entity, outcome Outcome) {
	c.physics.Pause()
	c.session.End(outcome)

	tint := colorGreen
	if outcome == OutcomeLost {
		tint = colorRed
	}
	if sprite, ok := ecs.Get(w, player, component.SpriteComponent.Kind()); ok {
		sprite.Tint = tint
	}
	c.log.Info("session over", "session", c.session.ID, "outcome", outcome, "score", c.session.Score)
}

func (c *Controller) save() {
	if c.saver == nil {
		return
	}
	res := Result{
		SessionID: c.session.ID.String(),
		Level:     c.cfg.Level.Name,
		Score:     c.session.Score,
		Outcome:   c.session.Outcome,
		Duration:  c.now().Sub(c.session.StartedAt),
	}
	if err := c.saver.SaveResult(res); err != nil {
		c.log.Warn("save result", "session", res.SessionID, "err", err)
	}
}

func (c *Controller) refreshScore() {
	if label, ok := ecs.Get(c.world, c.scoreLabel, component.LabelComponent.Kind()); ok {
		label.Text = scoreText(c.session.Score)
	}
}

func (c *Controller) overlayLabel(x, y float64, text string, size float64, fg, bg color.Color) {
	_, err := entity.NewLabel(c.world, x, y, component.Label{
		Text:       text,
		Size:       size,
		Color:      fg,
		Background: bg,
		Centered:   true,
	}, entity.LayerOverlay)
	if err != nil {
		c.log.Error("overlay label", "text", text, "err", err)
	}
}

func (c *Controller) refillCoins(w *ecs.World) {
	ecs.ForEach2(w, component.CoinComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, coin *component.Coin, t *component.Transform) {
		coin.Active = true
		t.X = coin.HomeX
		t.Y = coin.HomeY
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			body.VelX = 0
			body.VelY = 0
		}
		setEnabled(w, e, true)
	})
	c.log.Debug("coins refilled", "session", c.session.ID)
}

func activeCoins(w *ecs.World) int {
	n := 0
	ecs.ForEach(w, component.CoinComponent.Kind(), func(_ ecs.Entity, coin *component.Coin) {
		if coin.Active {
			n++
		}
	})
	return n
}

// setEnabled shows or hides an entity and adds or removes its body from
// the simulation.
func setEnabled(w *ecs.World, e ecs.Entity, enabled bool) {
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		body.Disabled = !enabled
	}
	if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		sprite.Hidden = !enabled
	}
}

func scaleY(t *component.Transform) float64 {
	if t.ScaleY == 0 {
		return 1
	}
	return t.ScaleY
}

func scoreText(score int) string {
	return fmt.Sprintf("Score: %d", score)
}
