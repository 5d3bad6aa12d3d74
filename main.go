// flagrun is a small 2D platformer: collect coins, stomp the walker, reach
// the flag.
//
// Usage:
//
//	flagrun                  - Play
//	flagrun scores           - Show the best runs
//
// Global flags:
//
//	--db <path>     - Scores database (default: ~/.flagrun/scores.db, "" disables)
//	--debug         - Debug logging and collider outlines
//	--seed <value>  - RNG seed for coin bounce (0 = time based)
//	--watch         - Reload prefabs from ./prefabs when they change
//	--level <file>  - Level prefab (default: level.yaml)
//	--volume <0-1>  - Set and save the sound volume
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagDBPath string
	flagDebug  bool
	flagSeed   uint64
	flagWatch  bool
	flagLevel  string
	flagVolume float64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flagrun",
	Short: "flagrun - collect coins, stomp the walker, reach the flag",
	Long: `flagrun is a minimal platformer.

Arrows or A/D move, Up/W/Space jumps. R restarts after a game over.
Esc or P pauses, M mutes, F toggles fullscreen.

Examples:
  flagrun
  flagrun --watch --debug
  flagrun scores --limit 5`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flagrun/scores.db", "Path to scores database (empty disables)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging and collider outlines")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().BoolVar(&flagWatch, "watch", false, "Reload prefabs from ./prefabs on change")
	rootCmd.PersistentFlags().StringVar(&flagLevel, "level", "level.yaml", "Level prefab file")
	rootCmd.PersistentFlags().Float64Var(&flagVolume, "volume", 0.8, "Sound volume, saved for later runs")

	rootCmd.AddCommand(scoresCmd)
}
