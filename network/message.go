package network

import (
	"time"

	"github.com/lixenwraith/snake/engine"
)

// MessageType identifies the semantic meaning of a feed message
type MessageType string

const (
	MsgSnapshot MessageType = "snapshot"  // Full game state after a tick or command
	MsgGameOver MessageType = "game_over" // Sent once when a game ends
)

// Message is the JSON envelope sent to spectators
type Message struct {
	Type     MessageType      `json:"type"`
	Seq      uint64           `json:"seq"`
	SentAt   time.Time        `json:"sent_at"`
	Snapshot *engine.Snapshot `json:"snapshot,omitempty"`
	GameOver *GameOverEvent   `json:"game_over,omitempty"`
}

// GameOverEvent summarizes a finished game
type GameOverEvent struct {
	GameID    string `json:"game_id"`
	Score     int    `json:"score"`
	HighScore int    `json:"high_score"`
	Length    int    `json:"length"`
	Ticks     uint64 `json:"ticks"`
}
