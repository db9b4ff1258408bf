// Package storage provides SQLite-based persistence for finished games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-ladders/internal/multiplayer"
)

// DefaultPath is where the CLI keeps its database.
const DefaultPath = "~/.ladders/ladders.db"

// Store manages the SQLite database connection for game history.
type Store struct {
	db *sql.DB
}

// GameRecord is one finished (or abandoned) game.
type GameRecord struct {
	ID        int64
	MatchID   string
	GameID    string
	Players   int
	Winner    int // 0 if nobody won
	Turns     int
	EndReason string // "completed", "abandoned"
	Session   string
	Duration  int // Duration in seconds
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			players INTEGER NOT NULL,
			winner INTEGER NOT NULL DEFAULT 0,
			turns INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			session TEXT NOT NULL DEFAULT '',
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_game_id ON games(game_id);
		CREATE INDEX IF NOT EXISTS idx_games_created ON games(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame records a finished game. Returns the ID of the inserted record.
func (s *Store) SaveGame(rec GameRecord) (int64, error) {
	if rec.MatchID == "" {
		rec.MatchID = string(multiplayer.NewMatchID())
	}
	res, err := s.db.Exec(
		`INSERT INTO games
		 (match_id, game_id, players, winner, turns, end_reason, session, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.MatchID,
		rec.GameID,
		rec.Players,
		rec.Winner,
		rec.Turns,
		rec.EndReason,
		rec.Session,
		rec.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save game: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SaveMatchResult implements multiplayer.ResultSaver.
func (s *Store) SaveMatchResult(result multiplayer.MatchResult) error {
	_, err := s.SaveGame(GameRecord{
		MatchID:   string(result.MatchID),
		GameID:    result.GameID,
		Players:   result.Players,
		Winner:    result.Winner,
		Turns:     result.Turns,
		EndReason: string(result.Reason),
		Session:   string(result.Session),
		Duration:  int(result.Duration.Seconds()),
	})
	return err
}

// Ensure Store implements ResultSaver
var _ multiplayer.ResultSaver = (*Store)(nil)

const gameColumns = `id, match_id, game_id, players, winner, turns, end_reason, session, duration_secs, created_at`

// GameByMatchID retrieves a game by its match ID. Returns nil if not found.
func (s *Store) GameByMatchID(matchID string) (*GameRecord, error) {
	row := s.db.QueryRow(`SELECT `+gameColumns+` FROM games WHERE match_id = ?`, matchID)

	rec, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query game: %w", err)
	}
	return &rec, nil
}

// RecentGames retrieves the most recent games, newest first.
// An empty gameID returns games of every variant.
func (s *Store) RecentGames(gameID string, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + gameColumns + ` FROM games`
	args := []any{}
	if gameID != "" {
		query += ` WHERE game_id = ?`
		args = append(args, gameID)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var records []GameRecord
	for rows.Next() {
		rec, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// WinsBySeat counts completed games per winning seat for a variant.
func (s *Store) WinsBySeat(gameID string) (map[int]int, error) {
	rows, err := s.db.Query(
		`SELECT winner, COUNT(*)
		 FROM games
		 WHERE game_id = ? AND end_reason = ? AND winner > 0
		 GROUP BY winner`,
		gameID, string(multiplayer.EndCompleted),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query wins: %w", err)
	}
	defer rows.Close()

	wins := make(map[int]int)
	for rows.Next() {
		var seat, count int
		if err := rows.Scan(&seat, &count); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		wins[seat] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return wins, nil
}

// ClearGames deletes all games for the given variant.
func (s *Store) ClearGames(gameID string) error {
	_, err := s.db.Exec("DELETE FROM games WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear games: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a variant.
type GameStats struct {
	GameID     string
	GamesCount int
	Completed  int
	FastestWin int // Fewest turns in a completed game, 0 if none
	AvgTurns   float64
	TotalSecs  int64
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a specific variant.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN end_reason = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MIN(CASE WHEN end_reason = ? THEN turns END), 0),
		        COALESCE(AVG(turns), 0),
		        COALESCE(SUM(duration_secs), 0),
		        MAX(created_at)
		 FROM games WHERE game_id = ?`,
		string(multiplayer.EndCompleted), string(multiplayer.EndCompleted), gameID,
	).Scan(&stats.GamesCount, &stats.Completed, &stats.FastestWin, &stats.AvgTurns, &stats.TotalSecs, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllGamesStats retrieves statistics for every variant that has been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*),
		        SUM(CASE WHEN end_reason = ? THEN 1 ELSE 0 END),
		        COALESCE(MIN(CASE WHEN end_reason = ? THEN turns END), 0),
		        AVG(turns), SUM(duration_secs), MAX(created_at)
		 FROM games
		 GROUP BY game_id`,
		string(multiplayer.EndCompleted), string(multiplayer.EndCompleted),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var st GameStats
		var lastPlayed any
		if err := rows.Scan(&st.GameID, &st.GamesCount, &st.Completed, &st.FastestWin, &st.AvgTurns, &st.TotalSecs, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.GameID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (GameRecord, error) {
	var rec GameRecord
	var createdAt any
	err := row.Scan(
		&rec.ID,
		&rec.MatchID,
		&rec.GameID,
		&rec.Players,
		&rec.Winner,
		&rec.Turns,
		&rec.EndReason,
		&rec.Session,
		&rec.Duration,
		&createdAt,
	)
	if err != nil {
		return GameRecord{}, err
	}
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

// parseTime handles both time.Time and string values from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
