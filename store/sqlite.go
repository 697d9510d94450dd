package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/lixenwraith/snake/engine"
)

// SQLite persists the high score and finished games in a single file
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and ensures the schema
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One writer; avoids SQLITE_BUSY between the loop and the exit summary
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if err := createSchemas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schemas: %w", err)
	}

	return &SQLite{db: db}, nil
}

func createSchemas(db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS high_score (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			score INTEGER NOT NULL,
			updated_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS games (
			game_id TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			length INTEGER NOT NULL,
			collision TEXT NOT NULL,
			started_at DATETIME NOT NULL,
			ended_at DATETIME NOT NULL,
			played_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_games_score ON games(score DESC);`,
	}

	for _, query := range schemas {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the database handle
func (s *SQLite) Close() error {
	return s.db.Close()
}

// ReadHighScore returns the stored best score, 0 when none was written
func (s *SQLite) ReadHighScore(ctx context.Context) (int, error) {
	var score int
	err := s.db.QueryRowContext(ctx, `SELECT score FROM high_score WHERE id = 1`).Scan(&score)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read high score: %w", err)
	}
	return score, nil
}

// WriteHighScore stores score as the new best
func (s *SQLite) WriteHighScore(ctx context.Context, score int) error {
	query := `
		INSERT INTO high_score (id, score, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET score=excluded.score, updated_at=excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, score, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to write high score: %w", err)
	}
	return nil
}

// RecordGame appends a finished game
func (s *SQLite) RecordGame(ctx context.Context, rec engine.GameRecord) error {
	query := `
		INSERT INTO games (game_id, score, length, collision, started_at, ended_at, played_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		rec.ID, rec.Score, rec.Length, rec.Collision,
		rec.StartedAt.UTC(), rec.EndedAt.UTC(), rec.PlayedFor.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to record game %s: %w", rec.ID, err)
	}
	return nil
}

// TopGames returns up to n games, best score first, newest first on ties
func (s *SQLite) TopGames(ctx context.Context, n int) ([]engine.GameRecord, error) {
	query := `
		SELECT game_id, score, length, collision, started_at, ended_at, played_ms
		FROM games ORDER BY score DESC, ended_at DESC LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var out []engine.GameRecord
	for rows.Next() {
		var rec engine.GameRecord
		var playedMs int64
		if err := rows.Scan(&rec.ID, &rec.Score, &rec.Length, &rec.Collision,
			&rec.StartedAt, &rec.EndedAt, &playedMs); err != nil {
			return nil, err
		}
		rec.PlayedFor = time.Duration(playedMs) * time.Millisecond
		out = append(out, rec)
	}
	return out, rows.Err()
}

// GameCount returns the number of recorded games
func (s *SQLite) GameCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}
	return n, nil
}
