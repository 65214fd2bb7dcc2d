package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-brawler/internal/core"
	"github.com/vovakirdan/tui-brawler/internal/games/brawler"
	"github.com/vovakirdan/tui-brawler/internal/levels"
	"github.com/vovakirdan/tui-brawler/internal/platform/tui"
	"github.com/vovakirdan/tui-brawler/internal/registry"
)

var (
	flagDifficulty string
	flagLevel      int
	flagLevelsDir  string
	flagWatch      bool
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play Gym Rush",
	Long: `Start playing. Without a mode the menu opens first.

Controls:
  Left/Right, A/D   - Move
  Space/Up/W        - Jump (hold for a higher jump)
  X/Z/J             - Punch (jump kick in the air)
  C/V               - Kick
  P                 - Pause
  Enter             - Confirm
  B/Esc             - Back to menu (paused or game over)
  Ctrl+S            - Save a text screenshot
  Ctrl+Y            - Copy the frame or your final score
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - More lives, weaker enemies and boss
  normal - The default tables
  hard   - One life, enemies hit harder, tougher boss

Examples:
  brawler play
  brawler play brawler --difficulty easy
  brawler play brawler --level 3
  brawler play brawler_boss
  brawler play brawler --levels-dir ./levels --watch`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select, Tab for the leaderboard.
After a run, b/esc returns to the menu.`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
		c.Flags().IntVar(&flagLevel, "level", 1, "Campaign level to start at (1-based)")
		c.Flags().StringVar(&flagLevelsDir, "levels-dir", "", "Load levels from this directory instead of the built-in campaign")
		c.Flags().BoolVar(&flagWatch, "watch", false, "Reload --levels-dir when a level file changes")
	}
}

func runPlay(_ *cobra.Command, args []string) {
	mode := ""
	if len(args) == 1 {
		mode = args[0]
		if !registry.Exists(mode) {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
			fmt.Fprintln(os.Stderr, "Run 'brawler modes' to see available modes.")
			os.Exit(1)
		}
	}

	logger, closeLog := openLogger()
	defer closeLog()
	cfg := loadConfig(logger)

	brawler.SetConfigPath(flagConfig)
	brawler.SetDifficultyPreset(flagDifficulty)
	brawler.SetLogger(logger)
	brawler.SetStartLevel(max(0, flagLevel-1))

	opts := tui.GameOptions{Logger: logger, LevelsDir: flagLevelsDir, Clipboard: true}

	if flagLevelsDir != "" {
		set, err := levels.NewLoader(flagLevelsDir).LoadAll()
		if err != nil {
			fail("loading levels from %s: %v", flagLevelsDir, err)
		}
		if set.Count() == 0 {
			fail("no level files in %s", flagLevelsDir)
		}
		brawler.SetLevels(set)
		logger.Info("loaded levels", "dir", flagLevelsDir, "count", set.Count())

		if flagWatch {
			w, err := levels.NewWatcher(flagLevelsDir)
			if err != nil {
				fail("watching %s: %v", flagLevelsDir, err)
			}
			defer w.Close()
			opts.Watcher = w
		}
	} else if flagWatch {
		fmt.Fprintln(os.Stderr, "Warning: --watch needs --levels-dir, ignoring")
	}

	board, closeBoard := openBoard(cfg, logger)
	defer closeBoard()
	opts.Board = board

	// Get terminal size
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	if mode == "" {
		if err := tui.RunSession(runtime, opts); err != nil {
			fail("running game: %v", err)
		}
		return
	}

	game, err := registry.Create(mode)
	if err != nil {
		fail("creating game: %v", err)
	}
	result, err := tui.RunGame(game, runtime, opts)
	if err != nil {
		fail("running game: %v", err)
	}
	logger.Info("run finished", "mode", mode, "score", result.State.Score, "won", result.State.Won)
}
