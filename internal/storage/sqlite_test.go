package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-ladders/internal/multiplayer"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func completed(gameID string, winner, turns int) GameRecord {
	return GameRecord{
		GameID:    gameID,
		Players:   2,
		Winner:    winner,
		Turns:     turns,
		EndReason: string(multiplayer.EndCompleted),
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRecent(t *testing.T) {
	store := openTestStore(t)

	for i, rec := range []GameRecord{
		completed("ladders-2p", 1, 30),
		completed("ladders-2p", 2, 25),
		completed("ladders-4p", 3, 60),
	} {
		if _, err := store.SaveGame(rec); err != nil {
			t.Fatalf("SaveGame(%d) failed: %v", i, err)
		}
	}

	two, err := store.RecentGames("ladders-2p", 10)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(two) != 2 {
		t.Fatalf("Expected 2 games, got %d", len(two))
	}
	// Newest first
	if two[0].Winner != 2 || two[1].Winner != 1 {
		t.Errorf("Games not newest first: %+v", two)
	}
	if two[0].MatchID == "" || two[0].MatchID == two[1].MatchID {
		t.Errorf("SaveGame should assign unique match ids: %q %q", two[0].MatchID, two[1].MatchID)
	}

	all, err := store.RecentGames("", 10)
	if err != nil {
		t.Fatalf("RecentGames(all) failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 games across variants, got %d", len(all))
	}

	limited, _ := store.RecentGames("", 1)
	if len(limited) != 1 {
		t.Errorf("Expected limit to apply, got %d", len(limited))
	}
}

func TestStoreSaveMatchResult(t *testing.T) {
	store := openTestStore(t)

	m := multiplayer.NewMatch("ladders-3p", 3, "ssh-abc")
	res, _ := m.Finish(3, 42, multiplayer.EndCompleted)
	res.Duration = 95 * time.Second

	if err := store.SaveMatchResult(res); err != nil {
		t.Fatalf("SaveMatchResult() failed: %v", err)
	}

	rec, err := store.GameByMatchID(string(m.ID()))
	if err != nil {
		t.Fatalf("GameByMatchID() failed: %v", err)
	}
	if rec == nil {
		t.Fatal("saved match not found")
	}
	if rec.Players != 3 || rec.Winner != 3 || rec.Turns != 42 || rec.Duration != 95 || rec.Session != "ssh-abc" {
		t.Errorf("record = %+v", rec)
	}

	// Same match cannot be stored twice
	if err := store.SaveMatchResult(res); err == nil {
		t.Error("duplicate match id should fail")
	}

	missing, err := store.GameByMatchID("nope")
	if err != nil || missing != nil {
		t.Errorf("GameByMatchID(missing) = %v, %v", missing, err)
	}
}

func TestStoreWinsBySeat(t *testing.T) {
	store := openTestStore(t)

	store.SaveGame(completed("ladders-2p", 1, 30))
	store.SaveGame(completed("ladders-2p", 1, 28))
	store.SaveGame(completed("ladders-2p", 2, 33))
	store.SaveGame(GameRecord{GameID: "ladders-2p", Players: 2, EndReason: string(multiplayer.EndAbandoned), Turns: 4})
	store.SaveGame(completed("ladders-4p", 4, 50))

	wins, err := store.WinsBySeat("ladders-2p")
	if err != nil {
		t.Fatalf("WinsBySeat() failed: %v", err)
	}
	if wins[1] != 2 || wins[2] != 1 || len(wins) != 2 {
		t.Errorf("wins = %v, want map[1:2 2:1]", wins)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("ladders-2p")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.FastestWin != 0 {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveGame(completed("ladders-2p", 1, 30))
	store.SaveGame(completed("ladders-2p", 2, 20))
	store.SaveGame(GameRecord{GameID: "ladders-2p", Players: 2, EndReason: string(multiplayer.EndAbandoned), Turns: 4})
	store.SaveGame(completed("ladders-1p", 1, 12))

	stats, err := store.GetGameStats("ladders-2p")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.Completed != 2 || stats.FastestWin != 20 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgTurns != 18 {
		t.Errorf("AvgTurns = %v, want 18", stats.AvgTurns)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["ladders-1p"].FastestWin != 12 {
		t.Errorf("all stats = %v", all)
	}
}

func TestStoreClearGames(t *testing.T) {
	store := openTestStore(t)

	store.SaveGame(completed("ladders-2p", 1, 30))
	store.SaveGame(completed("ladders-3p", 2, 40))

	if err := store.ClearGames("ladders-2p"); err != nil {
		t.Fatalf("ClearGames() failed: %v", err)
	}

	if games, _ := store.RecentGames("ladders-2p", 10); len(games) != 0 {
		t.Errorf("Expected 0 games after clear, got %d", len(games))
	}
	if games, _ := store.RecentGames("ladders-3p", 10); len(games) != 1 {
		t.Error("Other variants should not be affected by clearing")
	}
}
