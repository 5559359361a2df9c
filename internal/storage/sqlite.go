// Package storage provides SQLite-based persistence for snake runs and the
// best score. Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/google/uuid"
)

// DefaultBestKey is the best_scores key used by local play.
const DefaultBestKey = "snake"

const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// Result is a finished run as reported by the game driver.
type Result struct {
	RunID  string // Generated when empty
	Player string // "local" or the SSH user
	Score  int
	Length int
	Ticks  uint64
}

// ScoreEntry represents a single recorded run.
type ScoreEntry struct {
	ID        int64
	RunID     string
	Player    string
	Score     int
	Length    int
	Ticks     uint64
	CreatedAt time.Time
}

// Stats contains aggregated statistics over all recorded runs.
type Stats struct {
	Games      int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	MaxLength  int
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
// The special path ":memory:" opens a private in-memory database.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
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
	// One connection: SSH sessions share the Store, and :memory: is per connection.
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
			run_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL DEFAULT 'local',
			score INTEGER NOT NULL,
			length INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC);
		CREATE INDEX IF NOT EXISTS idx_scores_player ON scores(player);

		CREATE TABLE IF NOT EXISTS best_scores (
			key TEXT PRIMARY KEY,
			score INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
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

// NewRunID returns a fresh identifier for a run.
func NewRunID() string {
	return uuid.NewString()
}

// SaveScore records a finished run and returns the ID of the inserted row.
func (s *Store) SaveScore(r Result) (int64, error) {
	if r.RunID == "" {
		r.RunID = NewRunID()
	}
	if r.Player == "" {
		r.Player = "local"
	}

	result, err := s.db.Exec(
		"INSERT INTO scores (run_id, player, score, length, ticks) VALUES (?, ?, ?, ?, ?)",
		r.RunID, r.Player, r.Score, r.Length, int64(r.Ticks),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N runs ordered by score descending.
// Ties go to the earlier run.
func (s *Store) TopScores(limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, player, score, length, ticks, created_at
		 FROM scores
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var ticks int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.Player, &e.Score, &e.Length, &ticks, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Ticks = uint64(ticks)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest recorded run score, or 0 with no runs.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM scores").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes the run history and every best score.
func (s *Store) ClearScores() error {
	if _, err := s.db.Exec("DELETE FROM scores"); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM best_scores"); err != nil {
		return fmt.Errorf("storage: cannot clear best scores: %w", err)
	}
	return nil
}

// Stats retrieves aggregated statistics over all runs.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), COALESCE(MAX(length), 0), MAX(created_at)
		 FROM scores`,
	).Scan(&stats.Games, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &stats.MaxLength, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// BestScore returns the best score stored under key, or 0 if none is.
func (s *Store) BestScore(key string) (int, error) {
	var score int
	err := s.db.QueryRow("SELECT score FROM best_scores WHERE key = ?", key).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return score, nil
}

// SetBestScore stores score under key if it beats the stored value.
// Reports whether the row changed.
func (s *Store) SetBestScore(key string, score int) (bool, error) {
	res, err := s.db.Exec(
		`INSERT INTO best_scores (key, score) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET score = excluded.score, updated_at = CURRENT_TIMESTAMP
		 WHERE excluded.score > best_scores.score`,
		key, score,
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot save best score: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n > 0, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
