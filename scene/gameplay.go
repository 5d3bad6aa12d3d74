package scene

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/flagrun/common"
	"github.com/milk9111/flagrun/ecs/render"
	"github.com/milk9111/flagrun/ecs/system"
	"github.com/milk9111/flagrun/gameplay"
	"github.com/milk9111/flagrun/prefabs"
	"github.com/milk9111/flagrun/settings"
)

type GameplayOptions struct {
	Resources *Resources
	LevelFile string
	Keys      system.KeyState
	Seed      uint64
	Saver     gameplay.ResultSaver
	Settings  *settings.Manager
	// Watcher, when set, triggers a config reload on prefab changes.
	Watcher *prefabs.Watcher
	Debug   bool
}

// GameplayScene hosts the controller: it feeds it ticks, plays the sounds
// for its events and draws its world.
type GameplayScene struct {
	ctrl     *gameplay.Controller
	renderer *render.RenderSystem
	res      *Resources
	keys     system.KeyState
	settings *settings.Manager
	watcher  *prefabs.Watcher
	debug    bool

	pauseUI *ebitenui.UI
	paused  bool

	log *log.Logger
}

func NewGameplayScene(opts GameplayOptions) (*GameplayScene, error) {
	if opts.Resources == nil {
		return nil, fmt.Errorf("gameplay scene: no resources")
	}
	cfg, err := gameplay.LoadConfig(opts.LevelFile)
	if err != nil {
		return nil, err
	}
	ctrl, err := gameplay.NewController(gameplay.Options{
		Config: cfg,
		Clips:  opts.Resources.Clips,
		Keys:   opts.Keys,
		Seed:   opts.Seed,
		Saver:  opts.Saver,
	})
	if err != nil {
		return nil, err
	}
	renderer, err := render.NewRenderSystem(opts.Resources.Textures)
	if err != nil {
		return nil, fmt.Errorf("gameplay scene: %w", err)
	}

	s := &GameplayScene{
		ctrl:     ctrl,
		renderer: renderer,
		res:      opts.Resources,
		keys:     opts.Keys,
		settings: opts.Settings,
		watcher:  opts.Watcher,
		debug:    opts.Debug,
		log:      common.Log("scene"),
	}
	s.pauseUI = NewPauseUI(s.Resume)
	return s, nil
}

func (s *GameplayScene) Controller() *gameplay.Controller { return s.ctrl }
func (s *GameplayScene) Paused() bool                     { return s.paused }

func (s *GameplayScene) Resume() { s.paused = false }

func (s *GameplayScene) Update() error {
	s.pollWatcher()
	s.handleToggles()

	if s.paused {
		s.pauseUI.Update()
		return nil
	}

	if err := s.ctrl.Update(); err != nil {
		return err
	}
	s.res.Sounds.PlayEvents(s.ctrl.Events())
	return nil
}

func (s *GameplayScene) handleToggles() {
	if s.keys == nil {
		return
	}
	if s.keys.JustPressed(system.KeyPause) && !s.ctrl.Session().Over {
		s.paused = !s.paused
	}
	if s.settings == nil {
		return
	}
	if s.keys.JustPressed(system.KeyMute) {
		muted := s.settings.ToggleMute()
		s.log.Info("mute", "muted", muted)
	}
	if s.keys.JustPressed(system.KeyFullscreen) {
		ebiten.SetFullscreen(s.settings.ToggleFullscreen())
	}
}

// pollWatcher reloads the config when a prefab or script changed on disk.
// A broken edit keeps the running session.
func (s *GameplayScene) pollWatcher() {
	if s.watcher == nil {
		return
	}
	changed := s.watcher.Poll()
	if len(changed) == 0 {
		return
	}
	s.log.Info("prefabs changed", "files", changed)
	cfg, err := gameplay.LoadConfig(s.ctrl.Config().LevelFile)
	if err != nil {
		s.log.Error("reload prefabs", "err", err)
		return
	}
	if err := s.ctrl.Reload(cfg); err != nil {
		s.log.Error("rebuild world", "err", err)
	}
}

func (s *GameplayScene) Draw(screen *ebiten.Image) {
	s.renderer.Draw(s.ctrl.World(), screen)
	if s.debug {
		render.DebugDraw(screen, s.ctrl.Physics().Space())
	}
	if s.paused {
		s.pauseUI.Draw(screen)
	}
}

// Close stops the prefab watcher.
func (s *GameplayScene) Close() error {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Close()
}
