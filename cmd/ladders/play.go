package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-ladders/internal/config"
	"github.com/vovakirdan/tui-ladders/internal/core"
	"github.com/vovakirdan/tui-ladders/internal/games/ladders"
	"github.com/vovakirdan/tui-ladders/internal/multiplayer"
	"github.com/vovakirdan/tui-ladders/internal/platform/tui"
	"github.com/vovakirdan/tui-ladders/internal/registry"
	"github.com/vovakirdan/tui-ladders/internal/storage"
)

var flagPlayers int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of Snakes & Ladders at this keyboard.

Players take turns in order; whoever's turn it is presses Space.

Controls:
  Space/Enter  - Roll the die
  Tab          - Skip the current animation
  Arrows/WASD  - Move the inspect cursor over the board
  P            - Pause
  R            - Play again (after a win)
  B/Esc        - Back
  Q/Ctrl+C     - Quit

The number of players defaults to the table config (2 unless changed).

Examples:
  ladders play
  ladders play --players 4
  ladders play --speed instant --seed 42
  ladders play --config ./my-table.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVarP(&flagPlayers, "players", "n", 0, "Number of players, 1-4 (default from config)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	players := flagPlayers
	if players == 0 {
		players = defaultPlayers()
	}

	gameID := ladders.IDForPlayers(players)
	if !registry.Exists(gameID) {
		return fmt.Errorf("unsupported number of players %d (want 1-4)", players)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	cfg := runtimeConfig()
	cfg.Players = players

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	playLog, closeLog := openPlayLog(flagLogPath, playLogLevel())
	defer closeLog()
	ladders.SetLogger(playLog)

	if _, err := tui.RunGame(game, saverFor(store), cfg, playLog); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// runtimeConfig builds the platform config from the global flags and the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.Players = defaultPlayers()
	return cfg
}

// defaultPlayers reads the player count from the table config.
func defaultPlayers() int {
	tableCfg, err := config.LoadLadders(flagConfig)
	if err != nil {
		logger.Warn("using default table config", "error", err)
		return config.DefaultLaddersConfig().Players
	}
	return tableCfg.Players
}

// saverFor keeps a missing store from turning into a non-nil saver.
func saverFor(store *storage.Store) multiplayer.ResultSaver {
	if store == nil {
		return nil
	}
	return store
}
