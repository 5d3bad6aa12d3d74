package gameplay

import (
	"fmt"

	"github.com/milk9111/flagrun/prefabs"
)

// Config is every prefab the gameplay scene is built from.
type Config struct {
	LevelFile string
	Level     prefabs.LevelSpec
	Player    prefabs.PlayerSpec
	Enemy     prefabs.EnemySpec
	Coin      prefabs.CoinSpec
}

// LoadConfig decodes the level file and the actor prefabs.
func LoadConfig(levelFile string) (Config, error) {
	if levelFile == "" {
		levelFile = "level.yaml"
	}
	cfg := Config{LevelFile: levelFile}

	var err error
	if cfg.Level, err = prefabs.LoadSpec[prefabs.LevelSpec](levelFile); err != nil {
		return Config{}, fmt.Errorf("gameplay: %w", err)
	}
	if cfg.Player, err = prefabs.LoadSpec[prefabs.PlayerSpec]("player.yaml"); err != nil {
		return Config{}, fmt.Errorf("gameplay: %w", err)
	}
	if cfg.Enemy, err = prefabs.LoadSpec[prefabs.EnemySpec]("enemy.yaml"); err != nil {
		return Config{}, fmt.Errorf("gameplay: %w", err)
	}
	if cfg.Coin, err = prefabs.LoadSpec[prefabs.CoinSpec]("coin.yaml"); err != nil {
		return Config{}, fmt.Errorf("gameplay: %w", err)
	}
	return cfg, nil
}
