// ladders is a terminal Snakes & Ladders table for 1-4 players sharing a keyboard.
//
// Usage:
//
//	ladders list              - List table variants
//	ladders play              - Play a game directly
//	ladders menu              - Pick the number of players interactively
//	ladders serve             - Start SSH server for remote play
//	ladders history           - Show finished games and wins per seat
//	ladders board             - Print the snakes and ladders of the board
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 30)
//	--seed <value>    - Set RNG seed for reproducible dice
//	--db <path>       - Set database path (default: ~/.ladders/ladders.db)
//	--config <path>   - Use a custom table config YAML
//	--speed <preset>  - Pacing preset: slow, normal, fast, instant
//	--log <path>      - Log file for local play (default: ~/.ladders/ladders.log)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ladders/internal/config"
	"github.com/vovakirdan/tui-ladders/internal/games/ladders"
	"github.com/vovakirdan/tui-ladders/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagSpeed   string
	flagVerbose bool
	flagLogPath string

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "ladders",
		Level:  log.WarnLevel,
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ladders",
	Short: "Snakes & Ladders in your terminal",
	Long: `Snakes & Ladders for 1-4 players taking turns at one keyboard.

Available commands:
  list     - Show the table variants
  play     - Start a game directly
  menu     - Interactive player-count picker
  serve    - Start SSH server for remote play
  history  - View finished games
  board    - Print the board's snakes and ladders

Examples:
  ladders play --players 3
  ladders menu --speed fast
  ladders serve --ssh :2222
  ladders history`,
	SilenceUsage:      true,
	PersistentPreRunE: configure,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to game history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom table config YAML")
	rootCmd.PersistentFlags().StringVar(&flagSpeed, "speed", "", "Pacing preset: slow, normal, fast, instant")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", defaultLogPath, "Log file for local play")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(boardCmd)
}

// configure hands the global flags to the table package before any command runs.
func configure(_ *cobra.Command, _ []string) error {
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	preset, err := config.ParseSpeedPreset(flagSpeed)
	if err != nil {
		return err
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	ladders.SetConfigPath(flagConfig)
	ladders.SetSpeedPreset(preset)
	ladders.SetLogger(logger)
	return nil
}

// openStore opens the history database. The game still works without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open history database, games will not be recorded", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// defaultLogPath keeps local play logs out of the terminal the game draws on.
const defaultLogPath = "~/.ladders/ladders.log"

// openPlayLog returns a logger writing to path for the lifetime of a local
// game, and a func that closes the file. It falls back to discarding.
func openPlayLog(path string, level log.Level) (*log.Logger, func()) {
	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Warn("could not create log directory, game logs are discarded", "path", path, "error", err)
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		logger.Warn("could not open log file, game logs are discarded", "path", path, "error", err)
		return log.New(io.Discard), func() {}
	}

	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "ladders",
		Level:           level,
	})
	return l, func() { f.Close() }
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// playLogLevel records finished matches in the log file, and every turn with --verbose.
func playLogLevel() log.Level {
	if flagVerbose {
		return log.DebugLevel
	}
	return log.InfoLevel
}
