package engine

import (
	"context"
	"time"
)

// HighScoreStore persists the best score across processes
type HighScoreStore interface {
	ReadHighScore(ctx context.Context) (int, error)
	WriteHighScore(ctx context.Context, score int) error
}

// GameRecord describes a finished game
type GameRecord struct {
	ID        string
	Score     int
	Length    int
	Collision string
	StartedAt time.Time
	EndedAt   time.Time
	PlayedFor time.Duration
}

// GameRecorder stores finished games
type GameRecorder interface {
	RecordGame(ctx context.Context, rec GameRecord) error
}

// AudioPlayer controls the looping background track
type AudioPlayer interface {
	Play()
	Pause()
}

// Notifier is told synchronously when a game ends
// Implementations must not block
type Notifier interface {
	NotifyGameOver(score int)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(score int)

func (f NotifierFunc) NotifyGameOver(score int) { f(score) }

// MultiNotifier fans out to every notifier in order
type MultiNotifier []Notifier

func (m MultiNotifier) NotifyGameOver(score int) {
	for _, n := range m {
		n.NotifyGameOver(score)
	}
}

// TickTimer drives Tick at a fixed period
// Restart replaces any running period; there is never more than one
type TickTimer interface {
	Restart(interval time.Duration)
	Stop()
}

type nopStore struct{}

func (nopStore) ReadHighScore(context.Context) (int, error)   { return 0, nil }
func (nopStore) WriteHighScore(context.Context, int) error    { return nil }
func (nopStore) RecordGame(context.Context, GameRecord) error { return nil }

type nopAudio struct{}

func (nopAudio) Play()  {}
func (nopAudio) Pause() {}

type nopTimer struct{}

func (nopTimer) Restart(time.Duration) {}
func (nopTimer) Stop()                 {}
