package engine

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeTimer struct {
	active   bool
	restarts []time.Duration
	stops    int
}

func (f *fakeTimer) Restart(d time.Duration) {
	f.active = true
	f.restarts = append(f.restarts, d)
}

func (f *fakeTimer) Stop() {
	f.active = false
	f.stops++
}

type fakeAudio struct {
	playing bool
	plays   int
	pauses  int
}

func (f *fakeAudio) Play() {
	f.playing = true
	f.plays++
}

func (f *fakeAudio) Pause() {
	f.playing = false
	f.pauses++
}

type memStore struct {
	best    int
	readErr error
	writes  []int
	records []GameRecord
	ctxErrs []error // ctx.Err() seen by each write
}

func (m *memStore) ReadHighScore(context.Context) (int, error) {
	if m.readErr != nil {
		return 0, m.readErr
	}
	return m.best, nil
}

func (m *memStore) WriteHighScore(ctx context.Context, score int) error {
	m.ctxErrs = append(m.ctxErrs, ctx.Err())
	m.best = score
	m.writes = append(m.writes, score)
	return nil
}

func (m *memStore) RecordGame(ctx context.Context, rec GameRecord) error {
	m.ctxErrs = append(m.ctxErrs, ctx.Err())
	m.records = append(m.records, rec)
	return nil
}

type harness struct {
	game     *Game
	timer    *fakeTimer
	audio    *fakeAudio
	store    *memStore
	clock    *MockTimeProvider
	gameOver []int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWith(t, DefaultConfig(), &memStore{})
}

func newHarnessWith(t *testing.T, cfg Config, store *memStore) *harness {
	t.Helper()
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Invalid test config: %v", err)
	}

	h := &harness{
		timer: &fakeTimer{},
		audio: &fakeAudio{},
		store: store,
		clock: NewMockTimeProvider(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)),
	}
	h.game = NewGame(context.Background(), cfg, Collaborators{
		Store:    store,
		Recorder: store,
		Audio:    h.audio,
		Timer:    h.timer,
		Time:     h.clock,
		Notifier: NotifierFunc(func(score int) { h.gameOver = append(h.gameOver, score) }),
	})
	return h
}

// running starts the game and parks the food far from the action
func (h *harness) running(t *testing.T) *Game {
	t.Helper()
	h.game.StartNewGame()
	if h.game.State() != StateRunning {
		t.Fatalf("Expected running after StartNewGame, got %v", h.game.State())
	}
	h.placeFood(Position{X: 0, Y: 0})
	return h.game
}

// place overrides the body and heading
func (h *harness) place(body []Position, dir Direction) {
	h.game.snake = append([]Position(nil), body...)
	h.game.direction = dir
	h.game.pending = dir
}

func (h *harness) placeFood(p Position) {
	h.game.food = p
	h.game.hasFood = true
}

var errStoreDown = errors.New("store down")
