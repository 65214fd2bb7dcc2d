package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-brawler/internal/leaderboard"
	"github.com/vovakirdan/tui-brawler/internal/storage"
)

var (
	flagTopN  int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top high scores. When the scores database cannot be opened,
the local leaderboard cache is shown instead.

Examples:
  brawler scores
  brawler scores -n 5
  brawler scores --db ./scores.db
  brawler scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagTopN, "top", "n", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every score from the database")
}

func runScores(_ *cobra.Command, _ []string) {
	logger, closeLog := openLogger()
	defer closeLog()
	cfg := loadConfig(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var backend leaderboard.Backend
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
	} else {
		defer store.Close()
		backend = store
	}

	if flagClear {
		if store == nil {
			fail("no scores database to clear")
		}
		if err := store.ClearScores(ctx); err != nil {
			fail("clearing scores: %v", err)
		}
		fmt.Println("Scores cleared.")
		return
	}

	board := leaderboard.New(backend, cfg.Leaderboard, leaderboard.WithLogger(logger))
	entries, err := board.Top(ctx, flagTopN)
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	fmt.Println("High Scores - Gym Rush")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'brawler play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-12s  %-10s  %s\n", "Rank", "Name", "Score", "Date")
	fmt.Printf("  %-4s  %-12s  %-10s  %s\n", "----", "----", "-----", "----")
	for i, e := range entries {
		date := ""
		if !e.At.IsZero() {
			date = e.At.Local().Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-4d  %-12s  %-10d  %s\n", i+1, e.Name, e.Score, date)
	}

	if store == nil {
		return
	}
	stats, err := store.GetStats(ctx)
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Best: %d  Average: %.0f\n", stats.Runs, stats.HighScore, stats.AvgScore)
}
