package main

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ladders/internal/games/ladders"
	"github.com/vovakirdan/tui-ladders/internal/platform/tui"
	"github.com/vovakirdan/tui-ladders/internal/registry"
	"github.com/vovakirdan/tui-ladders/internal/storage"
)

var (
	flagHistoryPlayers     int
	flagHistoryLimit       int
	flagHistoryInteractive bool
	flagHistoryStats       bool
	flagHistoryMatch       string
	flagHistoryClear       bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show finished games",
	Long: `Display recent games and the number of wins per seat.

Without --players all table sizes are listed together.

Examples:
  ladders history
  ladders history --players 2
  ladders history --limit 50
  ladders history --stats             # Fastest win, average turns, last played
  ladders history --match <id>        # One game by its match id
  ladders history --clear -n 3        # Forget all 3-player games
  ladders history -i                  # Browse in the interactive screen`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryPlayers, "players", "n", 0, "Only show games with this many players")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of games to show")
	historyCmd.Flags().BoolVarP(&flagHistoryInteractive, "interactive", "i", false, "Open the interactive history screen")
	historyCmd.Flags().BoolVar(&flagHistoryStats, "stats", false, "Show aggregated statistics per table")
	historyCmd.Flags().StringVar(&flagHistoryMatch, "match", "", "Show a single game by match id")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete recorded games (all tables unless --players is set)")
	historyCmd.MarkFlagsMutuallyExclusive("interactive", "stats", "match", "clear")
}

func runHistory(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store == nil {
		return errors.New("no game history available")
	}
	defer store.Close()

	gameID := ""
	if flagHistoryPlayers != 0 {
		gameID = ladders.IDForPlayers(flagHistoryPlayers)
		if !registry.Exists(gameID) {
			return fmt.Errorf("unsupported number of players %d (want 1-4)", flagHistoryPlayers)
		}
	}

	switch {
	case flagHistoryInteractive:
		cfg := runtimeConfig()
		_, err := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH)
		return err
	case flagHistoryMatch != "":
		return printMatch(os.Stdout, store, flagHistoryMatch)
	case flagHistoryStats:
		return printStats(os.Stdout, store, gameID)
	case flagHistoryClear:
		return clearHistory(os.Stdout, store, gameID)
	}
	return printHistory(os.Stdout, store, gameID, flagHistoryLimit)
}

// printHistory lists recent games, plus wins per seat when gameID names one table.
func printHistory(w io.Writer, store *storage.Store, gameID string, limit int) error {
	games, err := store.RecentGames(gameID, limit)
	if err != nil {
		return fmt.Errorf("retrieving games: %w", err)
	}

	fmt.Fprintf(w, "Game History - %s\n\n", tableTitle(gameID))

	if len(games) == 0 {
		fmt.Fprintln(w, "No games recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'ladders play' to play the first one!")
		return nil
	}

	fmt.Fprintf(w, "  %-16s  %-7s  %-10s  %5s  %6s\n", "Date", "Players", "Result", "Turns", "Time")
	fmt.Fprintf(w, "  %-16s  %-7s  %-10s  %5s  %6s\n", "----", "-------", "------", "-----", "----")
	for _, g := range games {
		fmt.Fprintf(w, "  %-16s  %-7d  %-10s  %5d  %6s\n",
			g.CreatedAt.Local().Format("2006-01-02 15:04"),
			g.Players, resultOf(g), g.Turns, clock(g.Duration))
	}

	// Seat wins only make sense within one table size
	if gameID == "" {
		return nil
	}
	wins, err := store.WinsBySeat(gameID)
	if err != nil {
		return fmt.Errorf("retrieving wins: %w", err)
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, "Wins:")
	for _, seat := range slices.Sorted(maps.Keys(wins)) {
		fmt.Fprintf(w, "  P%d: %d", seat, wins[seat])
	}
	fmt.Fprintln(w)
	return nil
}

// printStats shows aggregated numbers for one table, or for every table played.
func printStats(w io.Writer, store *storage.Store, gameID string) error {
	var all []*storage.GameStats
	if gameID != "" {
		st, err := store.GetGameStats(gameID)
		if err != nil {
			return fmt.Errorf("retrieving stats: %w", err)
		}
		all = append(all, st)
	} else {
		byGame, err := store.GetAllGamesStats()
		if err != nil {
			return fmt.Errorf("retrieving stats: %w", err)
		}
		for _, id := range slices.Sorted(maps.Keys(byGame)) {
			all = append(all, byGame[id])
		}
	}

	fmt.Fprintf(w, "Statistics - %s\n\n", tableTitle(gameID))
	if len(all) == 0 || (len(all) == 1 && all[0].GamesCount == 0) {
		fmt.Fprintln(w, "No games recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-12s  %5s  %9s  %11s  %9s  %9s  %s\n",
		"Table", "Games", "Completed", "Fastest win", "Avg turns", "Play time", "Last played")
	for _, st := range all {
		fastest := "-"
		if st.FastestWin > 0 {
			fastest = fmt.Sprintf("%d turns", st.FastestWin)
		}
		last := "-"
		if !st.LastPlayed.IsZero() {
			last = st.LastPlayed.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "  %-12s  %5d  %9d  %11s  %9.1f  %9s  %s\n",
			st.GameID, st.GamesCount, st.Completed, fastest, st.AvgTurns,
			(time.Duration(st.TotalSecs) * time.Second).String(), last)
	}
	return nil
}

// printMatch shows one recorded game.
func printMatch(w io.Writer, store *storage.Store, matchID string) error {
	g, err := store.GameByMatchID(matchID)
	if err != nil {
		return fmt.Errorf("retrieving match: %w", err)
	}
	if g == nil {
		return fmt.Errorf("no game recorded with match id %q", matchID)
	}

	fmt.Fprintf(w, "Match    %s\n", g.MatchID)
	fmt.Fprintf(w, "Table    %s\n", tableTitle(g.GameID))
	fmt.Fprintf(w, "Result   %s\n", resultOf(*g))
	fmt.Fprintf(w, "Turns    %d\n", g.Turns)
	fmt.Fprintf(w, "Time     %s\n", clock(g.Duration))
	fmt.Fprintf(w, "Session  %s\n", g.Session)
	fmt.Fprintf(w, "Played   %s\n", g.CreatedAt.Local().Format("2006-01-02 15:04"))
	return nil
}

// clearHistory deletes the games of one table, or of every registered table.
func clearHistory(w io.Writer, store *storage.Store, gameID string) error {
	ids := []string{gameID}
	if gameID == "" {
		ids = ids[:0]
		for _, g := range registry.List() {
			ids = append(ids, g.ID)
		}
	}
	for _, id := range ids {
		if err := store.ClearGames(id); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "Cleared history for %s.\n", tableTitle(gameID))
	return nil
}

func tableTitle(gameID string) string {
	if gameID == "" {
		return "All tables"
	}
	if info, ok := registry.Lookup(gameID); ok {
		return info.Title
	}
	return gameID
}

func resultOf(g storage.GameRecord) string {
	if g.Winner > 0 {
		return fmt.Sprintf("P%d won", g.Winner)
	}
	return g.EndReason
}

func clock(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
