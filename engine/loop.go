package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/snake/status"
)

// commandQueueSize bounds input buffered between two loop iterations
const commandQueueSize = 64

// ErrLoopStopped is returned for requests made after Run has returned
var ErrLoopStopped = errors.New("loop stopped")

// Observer receives a snapshot after every tick and every command
// Called on the loop goroutine; implementations must return quickly
type Observer interface {
	Observe(Snapshot)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(Snapshot)

func (f ObserverFunc) Observe(s Snapshot) { f(s) }

// Loop is the single actor that owns a Game
// Commands from any goroutine are applied between ticks, so a turn queued
// while a tick is pending is seen by that tick
// Also the game's TickTimer, holding at most one time.Ticker
type Loop struct {
	game      *Game
	observers []Observer

	cmds     chan func(*Game)
	done     chan struct{}
	stopOnce sync.Once

	// Owned by the Run goroutine
	ticker *time.Ticker
	tickC  <-chan time.Time

	running      atomic.Bool
	timerActive  atomic.Bool
	statRestarts *atomic.Int64
}

// NewLoop wraps g; the loop becomes the game's tick timer
func NewLoop(g *Game, reg *status.Registry, observers ...Observer) *Loop {
	if reg == nil {
		reg = status.NewRegistry()
	}
	l := &Loop{
		game:         g,
		observers:    observers,
		cmds:         make(chan func(*Game), commandQueueSize),
		done:         make(chan struct{}),
		statRestarts: reg.Ints.Get("engine.timer_restarts"),
	}
	g.timer = l
	return l
}

// Restart implements TickTimer
// Stops the current ticker before creating the next one
func (l *Loop) Restart(interval time.Duration) {
	l.Stop()
	l.ticker = time.NewTicker(interval)
	l.tickC = l.ticker.C
	l.timerActive.Store(true)
	l.statRestarts.Add(1)
}

// Stop implements TickTimer
func (l *Loop) Stop() {
	if l.ticker != nil {
		l.ticker.Stop()
		l.ticker = nil
	}
	l.tickC = nil
	l.timerActive.Store(false)
}

// TimerActive reports whether a ticker is currently running
func (l *Loop) TimerActive() bool {
	return l.timerActive.Load()
}

// Run processes ticks and commands until ctx is cancelled
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return errors.New("loop already running")
	}
	defer l.shutdown()

	l.publish()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case cmd := <-l.cmds:
			cmd(l.game)
			l.publish()

		case <-l.tickC:
			l.game.Tick()
			l.publish()
		}
	}
}

func (l *Loop) shutdown() {
	l.Stop()
	l.stopOnce.Do(func() { close(l.done) })
}

func (l *Loop) publish() {
	if len(l.observers) == 0 {
		return
	}
	snap := l.game.Snapshot()
	for _, o := range l.observers {
		o.Observe(snap)
	}
}

// Do queues fn to run on the loop goroutine; dropped once the loop stopped
func (l *Loop) Do(fn func(*Game)) {
	select {
	case l.cmds <- fn:
	case <-l.done:
	}
}

// SetDirection queues a turn request
func (l *Loop) SetDirection(d Direction) {
	l.Do(func(g *Game) { g.SetDirection(d) })
}

// TogglePause queues a pause toggle
func (l *Loop) TogglePause() {
	l.Do((*Game).TogglePause)
}

// PlayPause queues the play/pause control
func (l *Loop) PlayPause() {
	l.Do((*Game).PlayPause)
}

// StartNewGame queues a reset
func (l *Loop) StartNewGame() {
	l.Do((*Game).StartNewGame)
}

// Snapshot asks the loop for a consistent copy of the game
func (l *Loop) Snapshot(ctx context.Context) (Snapshot, error) {
	reply := make(chan Snapshot, 1)
	select {
	case l.cmds <- func(g *Game) { reply <- g.Snapshot() }:
	case <-l.done:
		return Snapshot{}, ErrLoopStopped
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}

	select {
	case s := <-reply:
		return s, nil
	case <-l.done:
		return Snapshot{}, ErrLoopStopped
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}
