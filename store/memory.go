// Package store implements the persistence collaborator: the best score and
// the history of finished games
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/lixenwraith/snake/engine"
)

// Store is everything the game needs from persistence
type Store interface {
	engine.HighScoreStore
	engine.GameRecorder
	TopGames(ctx context.Context, n int) ([]engine.GameRecord, error)
	GameCount(ctx context.Context) (int, error)
	Close() error
}

var (
	_ Store = (*SQLite)(nil)
	_ Store = (*Memory)(nil)
)

// Memory is a non-durable Store, used when the database cannot be opened
type Memory struct {
	mu    sync.Mutex
	best  int
	games []engine.GameRecord
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) ReadHighScore(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best, nil
}

func (m *Memory) WriteHighScore(_ context.Context, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.best = score
	return nil
}

func (m *Memory) RecordGame(_ context.Context, rec engine.GameRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games = append(m.games, rec)
	return nil
}

func (m *Memory) TopGames(_ context.Context, n int) ([]engine.GameRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := append([]engine.GameRecord(nil), m.games...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].EndedAt.After(out[j].EndedAt)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (m *Memory) GameCount(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.games), nil
}

func (m *Memory) Close() error { return nil }
