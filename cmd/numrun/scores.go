package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/numrun/internal/storage"
)

var (
	flagScoresLimit int
	flagShowRuns    bool
	flagClearScores bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top high scores and overall statistics.

Examples:
  numrun scores
  numrun scores --limit 20
  numrun scores --runs --player ana
  numrun scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of rows to show")
	scoresCmd.Flags().BoolVar(&flagShowRuns, "runs", false, "Show recent runs instead of top scores")
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete every score and run")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	switch {
	case flagClearScores:
		if err := store.ClearScores(); err != nil {
			return err
		}
		fmt.Println("Scores cleared.")
		return nil
	case flagShowRuns:
		return printRuns(store)
	}

	scores, err := store.TopScores(flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Println("High Scores - Number Run")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'numrun play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-8s  %-5s  %s\n", "Rank", "Player", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %-5s  %s\n", "----", "------", "-----", "-----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-12s  %-8d  %-5d  %s\n", i+1, e.Player, e.Score, e.Level, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetStats()
	if err == nil && stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d   Best: %d   Average: %.0f   Castles reached: %d\n",
			stats.Runs, stats.HighScore, stats.AvgScore, stats.Completed)
	}
	return nil
}

func printRuns(store *storage.Store) error {
	player := flagPlayer
	runs, err := store.RecentRuns(player, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-12s  %-5s  %-15s  %-8s  %-7s  %s\n", "Player", "Where", "Result", "Score", "Time", "Date")
	fmt.Printf("  %-12s  %-5s  %-15s  %-8s  %-7s  %s\n", "------", "-----", "------", "-----", "----", "----")
	for _, r := range runs {
		fmt.Printf("  %-12s  %-5s  %-15s  %-8d  %-7s  %s\n",
			r.Player,
			fmt.Sprintf("%d-%d", r.Level, r.Stage),
			r.Outcome,
			r.Score,
			r.Duration.Round(time.Second),
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
