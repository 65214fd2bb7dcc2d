package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-brawler/internal/core"
	"github.com/vovakirdan/tui-brawler/internal/games/brawler"
	"github.com/vovakirdan/tui-brawler/internal/registry"
	"github.com/vovakirdan/tui-brawler/internal/sim"
)

var (
	flagSeconds float64
	flagScript  string
	flagMode    string
	flagFrame   bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the game headless with a scripted input tape",
	Long: `Run the simulation without a terminal UI. The script is a comma separated
input tape; each entry holds its actions for a number of steps:

  confirm, wait*30, confirm, right*120, right+jump*15, punch, wait*5

Actions: left, right, jump, punch, kick, pause, confirm, back, wait.
A run with the same --seed and script always ends in the same state.

Examples:
  brawler sim --seconds 10 --seed 42
  brawler sim --script "confirm, wait*30, confirm, right*600" --frame`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().Float64Var(&flagSeconds, "seconds", 10, "Simulated seconds to run")
	simCmd.Flags().StringVar(&flagScript, "script", "confirm, wait*30, confirm, right*600", "Input tape")
	simCmd.Flags().StringVar(&flagMode, "mode", "brawler", "Game mode")
	simCmd.Flags().IntVar(&flagLevel, "level", 1, "Campaign level to start at (1-based)")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	simCmd.Flags().BoolVar(&flagFrame, "frame", false, "Print the final frame")
}

func runSim(_ *cobra.Command, _ []string) {
	logger, closeLog := openLogger()
	defer closeLog()

	tape, err := sim.ParseTape(flagScript)
	if err != nil {
		fail("%v", err)
	}

	brawler.SetConfigPath(flagConfig)
	brawler.SetDifficultyPreset(flagDifficulty)
	brawler.SetLogger(logger)
	brawler.SetStartLevel(max(0, flagLevel-1))

	created, err := registry.Create(flagMode)
	if err != nil {
		fail("%v", err)
	}
	game, ok := created.(*brawler.Game)
	if !ok {
		fail("mode %q cannot run headless", flagMode)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: flagFPS, Seed: seed}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	steps := int(flagSeconds * float64(cfg.TickRate))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	res, err := sim.Run(ctx, game, cfg, tape, steps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: run interrupted: %v\n", err)
	}
	logger.Info("sim finished", "steps", res.Steps, "seed", seed, "wall", time.Since(start))

	s := res.Snapshot
	fmt.Printf("seed:      %d\n", seed)
	fmt.Printf("steps:     %d (%.2fs simulated)\n", res.Steps, res.Elapsed.Seconds())
	fmt.Printf("screen:    %s\n", res.State.Screen)
	fmt.Printf("level:     %d\n", s.Level+1)
	fmt.Printf("score:     %d\n", s.Score)
	fmt.Printf("lives:     %d\n", s.Lives)
	fmt.Printf("health:    %.0f\n", s.Health)
	fmt.Printf("player:    %.1f,%.1f %s\n", s.PlayerX, s.PlayerY, s.PlayerState)
	fmt.Printf("enemies:   %d\n", s.EnemyCount)
	if s.BossHP > 0 {
		fmt.Printf("boss:      %.0f hp, phase %d\n", s.BossHP, s.BossPhase)
	}
	fmt.Printf("hash:      %016x\n", res.Hash)

	if flagFrame {
		screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
		game.Render(screen)
		fmt.Println()
		fmt.Println(screen.String())
	}
}
