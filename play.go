package main

import (
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/spf13/cobra"

	"github.com/milk9111/flagrun/common"
	"github.com/milk9111/flagrun/ecs/render"
	"github.com/milk9111/flagrun/gameplay"
	"github.com/milk9111/flagrun/prefabs"
	"github.com/milk9111/flagrun/scene"
	"github.com/milk9111/flagrun/settings"
	"github.com/milk9111/flagrun/storage"
)

const audioSampleRate = 44100

func runPlay(cmd *cobra.Command, args []string) error {
	common.SetDebug(flagDebug)
	log := common.Log("main")

	prefs := settings.Open("flagrun")
	if cmd.Flags().Changed("volume") {
		prefs.SetVolume(flagVolume)
	}

	var saver gameplay.ResultSaver
	if flagDBPath != "" {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			log.Warn("scores will not be saved", "err", err)
		} else {
			defer store.Close()
			saver = store
		}
	}

	var watcher *prefabs.Watcher
	if flagWatch {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Warn("prefab watch disabled", "dir", prefabs.Dir, "err", err)
		} else {
			watcher = w
		}
	}

	scenes := scene.NewManager()
	defer scenes.Close()

	onReady := func(res *scene.Resources) error {
		scenes.Register("main", func() (scene.Scene, error) {
			return scene.NewGameplayScene(scene.GameplayOptions{
				Resources: res,
				LevelFile: flagLevel,
				Keys:      render.EbitenKeys{},
				Seed:      flagSeed,
				Saver:     saver,
				Settings:  prefs,
				Watcher:   watcher,
				Debug:     flagDebug,
			})
		})
		return scenes.Start("main")
	}

	audioCtx := audio.NewContext(audioSampleRate)
	scenes.Register("preload", func() (scene.Scene, error) {
		return scene.NewPreloadScene(audioCtx, prefs.Gain, onReady)
	})
	if err := scenes.Start("preload"); err != nil {
		return err
	}

	ebiten.SetWindowSize(common.ScreenWidth, common.ScreenHeight)
	ebiten.SetWindowTitle("flagrun")
	ebiten.SetTPS(common.TPS)
	ebiten.SetFullscreen(prefs.Settings().Fullscreen)

	log.Info("starting", "level", flagLevel, "seed", flagSeed, "db", flagDBPath, "watch", watcher != nil)
	return ebiten.RunGame(NewGame(scenes))
}
