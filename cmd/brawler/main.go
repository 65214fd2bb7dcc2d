// brawler is Gym Rush, a side-scrolling brawler for the terminal.
//
// Usage:
//
//	brawler play [mode]      - Play a mode (no mode opens the menu)
//	brawler menu             - Start the menu
//	brawler modes            - List game modes
//	brawler levels           - List the campaign levels
//	brawler scores           - Show the leaderboard
//	brawler serve            - Start the SSH server for remote play
//	brawler sim              - Run the game headless with a scripted input tape
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.brawler/scores.db)
//	--config <path>      - Use a custom brawler.yaml
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-brawler/internal/config"
	"github.com/vovakirdan/tui-brawler/internal/leaderboard"
	"github.com/vovakirdan/tui-brawler/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/tui-brawler/internal/games/brawler"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "brawler",
	Short: "Gym Rush - fight your way through junk food to the gym",
	Long: `Gym Rush is a side-scrolling action platformer that runs in your
terminal, over SSH, or headless.

Available commands:
  play     - Play a mode directly (or open the menu)
  menu     - Interactive mode picker
  modes    - Show all game modes
  levels   - Show the campaign levels
  scores   - View the leaderboard
  serve    - Start SSH server for remote play
  sim      - Headless run with a scripted input tape

Examples:
  brawler play
  brawler play brawler --difficulty hard
  brawler play brawler_boss
  brawler serve --ssh :2222
  brawler sim --seconds 30 --script "confirm, wait*30, confirm, right*600"`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (steps per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.brawler/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom brawler.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// openLogger returns a logger writing to ~/.brawler/brawler.log. The
// terminal belongs to Bubble Tea, so nothing is logged to stderr. If the
// file cannot be opened, logs are discarded.
func openLogger() (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: unknown log level %q, using info\n", flagLogLevel)
		level = log.InfoLevel
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	if path, pathErr := storage.ExpandHome("~/.brawler/brawler.log"); pathErr == nil {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr == nil {
			if f, openErr := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); openErr == nil {
				w = f
				closeFn = func() { f.Close() }
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "brawler",
		Level:           level,
	})
	return logger, closeFn
}

// loadConfig loads brawler.yaml from --config or the default search path.
func loadConfig(logger *log.Logger) config.GameConfig {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.DefaultConfig()
	}
	return cfg
}

// openBoard opens the scores database and the leaderboard on top of it.
// Without a database the leaderboard runs on its local cache only.
func openBoard(cfg config.GameConfig, logger *log.Logger) (*leaderboard.Board, func()) {
	var backend leaderboard.Backend
	closeFn := func() {}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, using local cache", "db", flagDBPath, "err", err)
	} else {
		backend = store
		closeFn = func() { store.Close() }
	}
	return leaderboard.New(backend, cfg.Leaderboard, leaderboard.WithLogger(logger)), closeFn
}
