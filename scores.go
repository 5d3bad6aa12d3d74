package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/milk9111/flagrun/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the top runs recorded in the scores database.

Examples:
  flagrun scores
  flagrun scores --limit 3`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	if flagDBPath == "" {
		return fmt.Errorf("scores: no database (--db is empty)")
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.TopRuns(flagLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Best runs")
	fmt.Fprintln(out)
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-6s  %-6s  %-8s  %s\n", "Rank", "Score", "Result", "Time", "Date")
	fmt.Fprintf(out, "  %-4s  %-6s  %-6s  %-8s  %s\n", "----", "-----", "------", "----", "----")
	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d  %-6d  %-6s  %-8s  %s\n", i+1, r.Score, r.Outcome, r.Duration.Round(100*time.Millisecond), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	high, err := store.HighScore()
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "High score: %d\n", high)
	return nil
}
