package engine

import (
	"context"
	"log"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/snake/status"
)

// persistTimeout bounds every store call made from inside a tick
const persistTimeout = time.Second

// Collaborators are the engine's outside world; nil fields fall back to no-ops
type Collaborators struct {
	Store    HighScoreStore
	Recorder GameRecorder
	Audio    AudioPlayer
	Notifier Notifier
	Timer    TickTimer
	Time     TimeProvider
	Status   *status.Registry
}

// Game is the simulation engine and owns all mutable game state
// Not safe for concurrent use: drive it from a single goroutine (see Loop)
type Game struct {
	cfg Config
	rng *rand.Rand
	ctx context.Context // bounds store calls

	id        string
	snake     []Position // head first
	direction Direction  // applied on the last tick
	pending   Direction  // applied on the next tick
	food      Position
	hasFood   bool
	score     int
	highScore int
	interval  time.Duration
	state     State
	tick      uint64
	clock     *playClock

	store    HighScoreStore
	recorder GameRecorder
	audio    AudioPlayer
	notifier Notifier
	timer    TickTimer
	now      TimeProvider

	// Cached metric pointers
	statTicks    *atomic.Int64
	statFood     *atomic.Int64
	statRejected *atomic.Int64
	statGames    *atomic.Int64
	statSpeedUps *atomic.Int64
	statBest     *atomic.Int64
}

// NewGame creates a game in the Ready state and loads the persisted high score
// cfg must pass Validate; ctx bounds every store call the game makes
func NewGame(ctx context.Context, cfg Config, c Collaborators) *Game {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	g := &Game{
		cfg:      cfg,
		ctx:      ctx,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		store:    c.Store,
		recorder: c.Recorder,
		audio:    c.Audio,
		notifier: c.Notifier,
		timer:    c.Timer,
		now:      c.Time,
	}
	if g.store == nil {
		g.store = nopStore{}
	}
	if g.recorder == nil {
		g.recorder = nopStore{}
	}
	if g.audio == nil {
		g.audio = nopAudio{}
	}
	if g.notifier == nil {
		g.notifier = MultiNotifier(nil)
	}
	if g.timer == nil {
		g.timer = nopTimer{}
	}
	if g.now == nil {
		g.now = NewMonotonicTimeProvider()
	}
	g.clock = newPlayClock(g.now)

	reg := c.Status
	if reg == nil {
		reg = status.NewRegistry()
	}
	g.statTicks = reg.Ints.Get("engine.ticks")
	g.statFood = reg.Ints.Get("engine.food_eaten")
	g.statRejected = reg.Ints.Get("engine.turns_rejected")
	g.statGames = reg.Ints.Get("engine.games")
	g.statSpeedUps = reg.Ints.Get("engine.speed_ups")
	g.statBest = reg.Ints.Get("engine.high_score")

	readCtx, cancel := context.WithTimeout(ctx, persistTimeout)
	best, err := g.store.ReadHighScore(readCtx)
	cancel()
	if err != nil {
		log.Printf("engine: read high score: %v", err)
		best = 0
	}
	g.highScore = best
	g.statBest.Store(int64(best))

	g.reset()
	g.state = StateReady
	return g
}

// reset puts a fresh snake and food on the board without touching the timer
func (g *Game) reset() {
	g.id = uuid.NewString()
	g.snake = []Position{g.cfg.Origin}
	g.direction = g.cfg.InitialDirection
	g.pending = g.cfg.InitialDirection
	g.score = 0
	g.interval = g.cfg.StartInterval
	g.tick = 0
	g.clock.reset()
	g.food, g.hasFood = g.placeFood()
}

// SetDirection buffers a turn for the next tick and reports acceptance
// Non-unit vectors and turns sharing the effective direction's axis are dropped
func (g *Game) SetDirection(d Direction) bool {
	if !d.Valid() || d.SharesAxis(g.direction) {
		g.statRejected.Add(1)
		return false
	}
	g.pending = d
	return true
}

// Tick advances the simulation by one step; no-op unless running
func (g *Game) Tick() TickResult {
	if g.state != StateRunning {
		return TickResult{Outcome: OutcomeIdle}
	}

	g.tick++
	g.statTicks.Add(1)

	g.direction = g.pending
	head := g.snake[0].Add(g.direction)

	// Checked against the pre-move body: the tail cell still blocks
	if kind := g.collision(head); kind != CollisionNone {
		g.finish(kind)
		return TickResult{Outcome: OutcomeCollided, Collision: kind}
	}

	g.snake = append(g.snake, Position{})
	copy(g.snake[1:], g.snake)
	g.snake[0] = head

	if !g.hasFood || head != g.food {
		g.snake = g.snake[:len(g.snake)-1]
		return TickResult{Outcome: OutcomeMoved}
	}

	g.score++
	g.statFood.Add(1)
	g.food, g.hasFood = g.placeFood()
	if !g.hasFood {
		log.Printf("engine: board full at length %d, no food placed", len(g.snake))
	}

	if g.isMilestone() {
		g.adjustSpeed()
	}
	g.updateHighScore()

	return TickResult{Outcome: OutcomeAte, ScoreDelta: 1}
}

func (g *Game) collision(head Position) Collision {
	if !head.InBounds(g.cfg.TileCount) {
		return CollisionWall
	}
	if contains(g.snake, head) {
		return CollisionSelf
	}
	return CollisionNone
}

// finish moves to Over and informs every collaborator
func (g *Game) finish(kind Collision) {
	g.state = StateOver
	g.clock.pause()
	g.timer.Stop()
	g.audio.Pause()

	if g.score > g.highScore {
		g.highScore = g.score
		g.persistHighScore()
	}

	rec := GameRecord{
		ID:        g.id,
		Score:     g.score,
		Length:    len(g.snake),
		Collision: kind.String(),
		StartedAt: g.clock.startedAt,
		EndedAt:   g.now.Now(),
		PlayedFor: g.clock.elapsed(),
	}
	ctx, cancel := context.WithTimeout(g.ctx, persistTimeout)
	if err := g.recorder.RecordGame(ctx, rec); err != nil {
		log.Printf("engine: record game %s: %v", g.id, err)
	}
	cancel()

	log.Printf("engine: game %s over (%s) score=%d length=%d", g.id, kind, g.score, len(g.snake))
	g.notifier.NotifyGameOver(g.score)
}

func (g *Game) updateHighScore() {
	if g.score <= g.highScore {
		return
	}
	g.highScore = g.score
	g.persistHighScore()
}

func (g *Game) persistHighScore() {
	g.statBest.Store(int64(g.highScore))

	ctx, cancel := context.WithTimeout(g.ctx, persistTimeout)
	defer cancel()
	if err := g.store.WriteHighScore(ctx, g.highScore); err != nil {
		log.Printf("engine: write high score %d: %v", g.highScore, err)
	}
}

// StartNewGame discards the current game and runs a fresh one
func (g *Game) StartNewGame() {
	g.reset()
	g.statGames.Add(1)
	g.run()
	log.Printf("engine: game %s started", g.id)
}

// TogglePause flips between running and paused and starts a Ready game
// Ignored once the game is over
func (g *Game) TogglePause() {
	switch g.state {
	case StateOver:
		return
	case StateRunning:
		g.state = StatePaused
		g.clock.pause()
		g.timer.Stop()
		g.audio.Pause()
	case StateReady:
		g.statGames.Add(1)
		g.run()
	case StatePaused:
		g.run()
	}
}

// PlayPause is the single play/pause control: a finished game restarts,
// anything else toggles
func (g *Game) PlayPause() {
	if g.state == StateOver {
		g.StartNewGame()
		return
	}
	g.TogglePause()
}

func (g *Game) run() {
	g.state = StateRunning
	g.clock.resume()
	g.timer.Restart(g.interval)
	g.audio.Play()
}

// State returns the lifecycle phase
func (g *Game) State() State { return g.state }

// IsOver reports whether the last tick ended the game
func (g *Game) IsOver() bool { return g.state == StateOver }

// IsPaused reports whether ticks are currently ignored for a live game
func (g *Game) IsPaused() bool { return g.state == StatePaused || g.state == StateReady }

// Score returns the current score
func (g *Game) Score() int { return g.score }

// HighScore returns the best score seen, including the current game
func (g *Game) HighScore() int { return g.highScore }

// Interval returns the current tick period
func (g *Game) Interval() time.Duration { return g.interval }

// Direction returns the effective direction of the last tick
func (g *Game) Direction() Direction { return g.direction }

// PendingDirection returns the direction the next tick will apply
func (g *Game) PendingDirection() Direction { return g.pending }

// Food returns the food cell and whether one is on the board
func (g *Game) Food() (Position, bool) { return g.food, g.hasFood }

// Snake returns a copy of the body, head first
func (g *Game) Snake() []Position {
	out := make([]Position, len(g.snake))
	copy(out, g.snake)
	return out
}

// ID returns the identifier of the current game
func (g *Game) ID() string { return g.id }

// TileCount returns the grid edge length
func (g *Game) TileCount() int { return g.cfg.TileCount }

// Snapshot copies the state for rendering and broadcast
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		GameID:     g.id,
		Tick:       g.tick,
		State:      g.state,
		TileCount:  g.cfg.TileCount,
		Snake:      g.Snake(),
		Food:       g.food,
		HasFood:    g.hasFood,
		Direction:  g.direction,
		Score:      g.score,
		HighScore:  g.highScore,
		IntervalMs: g.interval.Milliseconds(),
	}
}
