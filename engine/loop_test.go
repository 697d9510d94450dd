package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/snake/status"
)

// startLoop runs a loop over a fresh game until the test ends
func startLoop(t *testing.T, cfg Config, observers ...Observer) (*Loop, *Game) {
	t.Helper()
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
	g := NewGame(context.Background(), cfg, Collaborators{})
	l := NewLoop(g, status.NewRegistry(), observers...)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("Loop did not stop after cancel")
		}
	})
	return l, g
}

func snapshot(t *testing.T, l *Loop) Snapshot {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s, err := l.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	return s
}

// slowConfig never ticks on its own during a test
func slowConfig() Config {
	cfg := DefaultConfig()
	cfg.StartInterval = time.Hour
	cfg.IntervalFloor = time.Hour
	return cfg
}

func TestLoopCommandsApplyInOrder(t *testing.T) {
	l, _ := startLoop(t, slowConfig())

	l.TogglePause()
	l.Do(func(g *Game) { g.food, g.hasFood = Position{}, true })

	// Any number of turns before the next tick: the last valid one wins
	l.SetDirection(Up)
	l.SetDirection(Left)
	l.SetDirection(Down)
	l.Do(func(g *Game) { g.Tick() })

	s := snapshot(t, l)
	if s.State != StateRunning {
		t.Fatalf("Expected running, got %v", s.State)
	}
	if s.Snake[0] != (Position{X: 10, Y: 11}) {
		t.Errorf("Expected head (10,11), got %v", s.Snake[0])
	}
	if s.Direction != Down {
		t.Errorf("Expected direction down, got %v", s.Direction)
	}
}

func TestLoopTimerFollowsState(t *testing.T) {
	l, _ := startLoop(t, slowConfig())

	if snapshot(t, l); l.TimerActive() {
		t.Fatal("Expected no timer in ready state")
	}

	l.TogglePause()
	if snapshot(t, l); !l.TimerActive() {
		t.Fatal("Expected timer after start")
	}

	l.TogglePause()
	if snapshot(t, l); l.TimerActive() {
		t.Fatal("Expected timer stopped on pause")
	}

	l.PlayPause()
	l.Do(func(g *Game) {
		g.snake = []Position{{X: 0, Y: 0}}
		g.pending = Up
	})
	l.Do(func(g *Game) { g.Tick() })
	s := snapshot(t, l)
	if s.State != StateOver {
		t.Fatalf("Expected over, got %v", s.State)
	}
	if l.TimerActive() {
		t.Error("Expected timer stopped on game over")
	}
}

func TestLoopSingleTickerAcrossRestarts(t *testing.T) {
	reg := status.NewRegistry()
	g := NewGame(context.Background(), slowConfig(), Collaborators{Status: reg})
	l := NewLoop(g, reg)

	// Restart and Stop are only ever called from the loop goroutine;
	// calling them directly here is the same single-threaded use.
	for i := 0; i < 5; i++ {
		l.Restart(time.Hour)
		if l.ticker == nil || !l.TimerActive() {
			t.Fatalf("Restart %d: expected an active ticker", i)
		}
	}
	first := l.ticker
	l.Restart(time.Hour)
	if l.ticker == first {
		t.Error("Expected restart to replace the ticker")
	}

	l.Stop()
	if l.ticker != nil || l.tickC != nil || l.TimerActive() {
		t.Error("Expected no ticker after stop")
	}
	if got := reg.Ints.Get("engine.timer_restarts").Load(); got != 6 {
		t.Errorf("Expected 6 restarts counted, got %d", got)
	}
}

func TestLoopTicksOnTimer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartInterval = 5 * time.Millisecond
	cfg.IntervalFloor = 5 * time.Millisecond

	var mu sync.Mutex
	var ticks []uint64
	obs := ObserverFunc(func(s Snapshot) {
		mu.Lock()
		ticks = append(ticks, s.Tick)
		mu.Unlock()
	})

	l, _ := startLoop(t, cfg, obs)
	l.Do(func(g *Game) {
		g.snake = []Position{{X: 0, Y: 10}}
		g.food, g.hasFood = Position{X: 0, Y: 0}, true
	})
	l.TogglePause()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := len(ticks)
		last := uint64(0)
		if n > 0 {
			last = ticks[n-1]
		}
		mu.Unlock()
		if last >= 3 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("Expected at least three timer-driven ticks")
}

func TestLoopStoppedRejectsSnapshot(t *testing.T) {
	g := NewGame(context.Background(), slowConfig(), Collaborators{})
	l := NewLoop(g, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}

	if _, err := l.Snapshot(context.Background()); !errors.Is(err, ErrLoopStopped) {
		t.Errorf("Expected ErrLoopStopped, got %v", err)
	}

	// Commands after stop are dropped without blocking
	for i := 0; i < commandQueueSize*2; i++ {
		l.SetDirection(Up)
	}
}

func TestLoopRunTwice(t *testing.T) {
	l, _ := startLoop(t, slowConfig())
	snapshot(t, l)

	if err := l.Run(context.Background()); err == nil {
		t.Error("Expected error for second Run")
	}
}
