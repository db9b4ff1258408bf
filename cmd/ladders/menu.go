package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ladders/internal/games/ladders"
	"github.com/vovakirdan/tui-ladders/internal/platform/tui"
	"github.com/vovakirdan/tui-ladders/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick the number of players and play",
	Long: `Start in interactive menu mode.

Choose how many players sit at the table, then play. After a game you
return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Start a table
  Tab          - Game history
  Q            - Quit

Examples:
  ladders menu
  ladders menu --speed fast
  ladders menu --db ./ladders.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	playLog, closeLog := openPlayLog(flagLogPath, playLogLevel())
	defer closeLog()
	ladders.SetLogger(playLog)

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}

		// Keep any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsHistory {
			goBack, err := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				logger.Error("history screen failed", "error", err)
			}
			if goBack {
				continue
			}
			return nil
		}

		if menuResult.GameID == "" {
			return nil
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			logger.Error("could not create game", "game", menuResult.GameID, "error", err)
			continue
		}

		// Fresh dice for every table unless a seed was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		goBack, err := tui.RunGame(game, saverFor(store), cfg, playLog)
		if err != nil {
			logger.Error("game failed", "game", menuResult.GameID, "error", err)
		}
		if !goBack && err == nil {
			return nil
		}
	}
}
