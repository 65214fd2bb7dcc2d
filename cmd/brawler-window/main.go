// brawler-window plays Gym Rush in a desktop window.
//
// It is a separate binary so the terminal build stays free of cgo and X11.
//
// Usage:
//
//	brawler-window [--level N] [--seed S] [--config path] [--scale K]
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-brawler/internal/config"
	"github.com/vovakirdan/tui-brawler/internal/core"
	"github.com/vovakirdan/tui-brawler/internal/games/brawler"
	"github.com/vovakirdan/tui-brawler/internal/platform/window"
)

var (
	flagLevel      int
	flagSeed       int64
	flagConfig     string
	flagScale      int
	flagDifficulty string
	flagBoss       bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "brawler-window",
	Short: "Play Gym Rush in a desktop window",
	Long: `Play Gym Rush in a desktop window with real key presses and releases.

Controls:
  Left/Right, A/D   - Move
  Space/Up/W        - Jump (hold for a higher jump)
  X/Z/J             - Punch (jump kick in the air)
  C/K               - Kick
  P                 - Pause
  Enter             - Confirm
  Esc               - Quit`,
	Args: cobra.NoArgs,
	Run:  run,
}

func init() {
	rootCmd.Flags().IntVar(&flagLevel, "level", 1, "Campaign level to start at (1-based)")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom brawler.yaml")
	rootCmd.Flags().IntVar(&flagScale, "scale", 1, "Window scale factor")
	rootCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.Flags().BoolVar(&flagBoss, "boss", false, "Start at the boss level")
}

func run(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "brawler-window",
	})

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	preset := cfg.Difficulty.Preset
	if flagDifficulty != "" {
		if preset, err = config.ParsePreset(flagDifficulty); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	config.ApplyPreset(&cfg, preset)

	opts := []brawler.Option{
		brawler.WithConfig(cfg),
		brawler.WithLogger(logger),
		brawler.WithStartLevel(max(0, flagLevel-1)),
		brawler.WithViewport(cfg.Camera.ViewportW, cfg.Camera.ViewportH),
	}
	if flagBoss {
		opts = append(opts, brawler.WithMode(brawler.ModeBoss))
	}
	game := brawler.NewWithOptions(opts...)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	runtime := core.RuntimeConfig{
		ScreenW:  int(cfg.Camera.ViewportW),
		ScreenH:  int(cfg.Camera.ViewportH),
		TickRate: cfg.Loop.TickRate,
		Seed:     seed,
	}

	if err := window.Run(game, runtime, window.Options{Scale: flagScale, Logger: logger}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
