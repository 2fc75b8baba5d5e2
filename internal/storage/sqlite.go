// Package storage provides SQLite-based persistence for the leaderboard.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a user has no recorded games.
var ErrNotFound = errors.New("storage: not found")

// Store manages the SQLite database connection for the leaderboard.
type Store struct {
	db *sql.DB
}

// ScoreSubmission is a finished game to record.
type ScoreSubmission struct {
	Username string
	Mode     string // walls or pass-through
	Score    int
	Duration time.Duration
}

// ScoreEntry is a leaderboard row. Rank is 1-based within its mode, or
// within the whole board when listing all modes.
type ScoreEntry struct {
	ID        int64
	Rank      int
	Username  string
	Mode      string
	Score     int
	Duration  time.Duration
	CreatedAt time.Time
}

// UserStats summarizes one player's games.
type UserStats struct {
	Username     string
	HighScore    int
	GamesPlayed  int
	AverageScore int
	LastPlayed   time.Time
}

// GlobalStats summarizes the whole leaderboard.
type GlobalStats struct {
	TotalPlayers int
	TotalGames   int
	HighestScore int
}

// ModeStats summarizes the games of one mode.
type ModeStats struct {
	Mode       string
	GamesCount int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps :memory: databases shared.
	db.SetMaxOpenConns(1)

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
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_mode_top ON scores(mode, score DESC);
		CREATE INDEX IF NOT EXISTS idx_scores_username ON scores(username);
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

// SaveScore records a finished game and returns it with its rank in its mode.
// Equal scores rank in the order they were submitted.
func (s *Store) SaveScore(sub ScoreSubmission) (ScoreEntry, error) {
	if sub.Username == "" {
		return ScoreEntry{}, fmt.Errorf("storage: username is required")
	}
	if sub.Score < 0 {
		return ScoreEntry{}, fmt.Errorf("storage: negative score %d", sub.Score)
	}

	result, err := s.db.Exec(
		"INSERT INTO scores (username, mode, score, duration_secs) VALUES (?, ?, ?, ?)",
		sub.Username, sub.Mode, sub.Score, int64(sub.Duration/time.Second),
	)
	if err != nil {
		return ScoreEntry{}, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return ScoreEntry{}, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	entry, err := s.entryByID(id)
	if err != nil {
		return ScoreEntry{}, err
	}
	entry.Rank, err = s.rankOf(entry)
	if err != nil {
		return ScoreEntry{}, err
	}
	return entry, nil
}

func (s *Store) entryByID(id int64) (ScoreEntry, error) {
	row := s.db.QueryRow(
		`SELECT id, username, mode, score, duration_secs, created_at FROM scores WHERE id = ?`, id,
	)
	e, err := scanEntry(row)
	if err != nil {
		return ScoreEntry{}, fmt.Errorf("storage: cannot read score %d: %w", id, err)
	}
	return e, nil
}

// rankOf counts the entries of e's mode ahead of e.
func (s *Store) rankOf(e ScoreEntry) (int, error) {
	var ahead int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM scores
		 WHERE mode = ? AND (score > ? OR (score = ? AND id < ?))`,
		e.Mode, e.Score, e.Score, e.ID,
	).Scan(&ahead)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot compute rank: %w", err)
	}
	return ahead + 1, nil
}

// TopScores returns the best entries, highest first. An empty mode lists
// every mode together. Limit defaults to 10.
func (s *Store) TopScores(mode string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT id, username, mode, score, duration_secs, created_at FROM scores`
	args := []any{}
	if mode != "" {
		query += ` WHERE mode = ?`
		args = append(args, mode)
	}
	query += ` ORDER BY score DESC, id ASC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the best score in mode, or across all modes when empty.
// Returns 0 if no scores exist.
func (s *Store) HighScore(mode string) (int, error) {
	query := `SELECT COALESCE(MAX(score), 0) FROM scores`
	args := []any{}
	if mode != "" {
		query += ` WHERE mode = ?`
		args = append(args, mode)
	}

	var score int
	if err := s.db.QueryRow(query, args...).Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return score, nil
}

// UserRank returns the rank of the user's best entry within that entry's mode.
// Returns ErrNotFound if the user has no games.
func (s *Store) UserRank(username string) (int, error) {
	row := s.db.QueryRow(
		`SELECT id, username, mode, score, duration_secs, created_at
		 FROM scores
		 WHERE username = ?
		 ORDER BY score DESC, id ASC
		 LIMIT 1`,
		username,
	)
	best, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query user rank: %w", err)
	}
	return s.rankOf(best)
}

// UserStats summarizes the user's games. Returns ErrNotFound if there are none.
func (s *Store) UserStats(username string) (UserStats, error) {
	stats := UserStats{Username: username}
	var avg float64
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), MAX(created_at)
		 FROM scores WHERE username = ?`,
		username,
	).Scan(&stats.GamesPlayed, &stats.HighScore, &avg, &lastPlayed)
	if err != nil {
		return UserStats{}, fmt.Errorf("storage: cannot query user stats: %w", err)
	}
	if stats.GamesPlayed == 0 {
		return UserStats{}, ErrNotFound
	}

	stats.AverageScore = int(avg + 0.5)
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// GlobalStats summarizes every recorded game.
func (s *Store) GlobalStats() (GlobalStats, error) {
	var stats GlobalStats
	err := s.db.QueryRow(
		`SELECT COUNT(DISTINCT username), COUNT(*), COALESCE(MAX(score), 0) FROM scores`,
	).Scan(&stats.TotalPlayers, &stats.TotalGames, &stats.HighestScore)
	if err != nil {
		return GlobalStats{}, fmt.Errorf("storage: cannot query global stats: %w", err)
	}
	return stats, nil
}

// AllModeStats returns per-mode statistics for every mode with games.
func (s *Store) AllModeStats() (map[string]ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), MAX(score), AVG(score), MAX(created_at)
		 FROM scores GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query mode stats: %w", err)
	}
	defer rows.Close()

	result := make(map[string]ModeStats)
	for rows.Next() {
		var ms ModeStats
		var lastPlayed any
		if err := rows.Scan(&ms.Mode, &ms.GamesCount, &ms.HighScore, &ms.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan mode stats: %w", err)
		}
		ms.LastPlayed = parseTime(lastPlayed)
		result[ms.Mode] = ms
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return result, nil
}

// ClearScores removes the scores of mode, or every score when empty.
func (s *Store) ClearScores(mode string) error {
	var err error
	if mode == "" {
		_, err = s.db.Exec("DELETE FROM scores")
	} else {
		_, err = s.db.Exec("DELETE FROM scores WHERE mode = ?", mode)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (ScoreEntry, error) {
	var e ScoreEntry
	var durationSecs int64
	var createdAt any
	if err := sc.Scan(&e.ID, &e.Username, &e.Mode, &e.Score, &durationSecs, &createdAt); err != nil {
		return ScoreEntry{}, err
	}
	e.Duration = time.Duration(durationSecs) * time.Second
	e.CreatedAt = parseTime(createdAt)
	return e, nil
}

// parseTime handles both time.Time and the string form SQLite may return.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339, time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
