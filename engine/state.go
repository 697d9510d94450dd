package engine

import (
	"fmt"
	"time"
)

// State is the lifecycle phase of a game
type State int

const (
	StateReady State = iota // Paused before the first move
	StateRunning
	StatePaused
	StateOver
)

var stateNames = [...]string{"ready", "running", "paused", "over"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// MarshalText encodes the state by name for the spectator feed
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name so spectator clients can read the feed
func (s *State) UnmarshalText(b []byte) error {
	for i, name := range stateNames {
		if name == string(b) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", b)
}

// Outcome classifies what a single tick did
type Outcome int

const (
	OutcomeIdle     Outcome = iota // Not running, nothing advanced
	OutcomeMoved                   // Head advanced, tail dropped
	OutcomeAte                     // Head advanced onto food, tail kept
	OutcomeCollided                // Game ended
)

// Collision identifies the obstacle hit by the head
type Collision int

const (
	CollisionNone Collision = iota
	CollisionWall
	CollisionSelf
)

func (c Collision) String() string {
	switch c {
	case CollisionWall:
		return "wall"
	case CollisionSelf:
		return "self"
	}
	return "none"
}

// TickResult reports the effect of one Tick
type TickResult struct {
	Outcome    Outcome
	ScoreDelta int
	Collision  Collision
}

// Snapshot is an immutable copy of the game for readers outside the loop
type Snapshot struct {
	GameID     string     `json:"game_id"`
	Tick       uint64     `json:"tick"`
	State      State      `json:"state"`
	TileCount  int        `json:"tile_count"`
	Snake      []Position `json:"snake"`
	Food       Position   `json:"food"`
	HasFood    bool       `json:"has_food"`
	Direction  Direction  `json:"direction"`
	Score      int        `json:"score"`
	HighScore  int        `json:"high_score"`
	IntervalMs int64      `json:"interval_ms"`
}

// Interval returns the tick interval captured in the snapshot
func (s Snapshot) Interval() time.Duration {
	return time.Duration(s.IntervalMs) * time.Millisecond
}
