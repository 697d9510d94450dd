// Package input translates terminal key events into game commands
package input

import "github.com/lixenwraith/snake/engine"

// Intent is the semantic action bound to a key
type Intent uint8

const (
	IntentNone Intent = iota

	// System
	IntentQuit
	IntentToggleMute

	// Steering
	IntentMoveUp
	IntentMoveDown
	IntentMoveLeft
	IntentMoveRight

	// Game control
	IntentTogglePause // Space
	IntentPlayPause   // Play/pause button: new game when over, else toggle
	IntentNewGame
)

// actionNames maps config action names to intents
var actionNames = map[string]Intent{
	"none":         IntentNone, // Unbind sentinel
	"quit":         IntentQuit,
	"toggle_mute":  IntentToggleMute,
	"move_up":      IntentMoveUp,
	"move_down":    IntentMoveDown,
	"move_left":    IntentMoveLeft,
	"move_right":   IntentMoveRight,
	"toggle_pause": IntentTogglePause,
	"play_pause":   IntentPlayPause,
	"new_game":     IntentNewGame,
}

// Direction returns the heading requested by a steering intent
func (i Intent) Direction() (engine.Direction, bool) {
	switch i {
	case IntentMoveUp:
		return engine.Up, true
	case IntentMoveDown:
		return engine.Down, true
	case IntentMoveLeft:
		return engine.Left, true
	case IntentMoveRight:
		return engine.Right, true
	}
	return engine.Direction{}, false
}

func (i Intent) String() string {
	for name, v := range actionNames {
		if v == i {
			return name
		}
	}
	return "unknown"
}
