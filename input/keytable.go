package input

import (
	"maps"

	"github.com/gdamore/tcell/v2"
)

// KeyTable maps keys to intents
type KeyTable struct {
	// Non-rune keys (arrows, Enter, Esc, Ctrl+*)
	SpecialKeys map[tcell.Key]Intent

	// Printable keys, matched case-insensitively for letters
	Runes map[rune]Intent
}

// DefaultKeyTable returns the default bindings: arrows, hjkl and wasd steer
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]Intent{
			tcell.KeyUp:     IntentMoveUp,
			tcell.KeyDown:   IntentMoveDown,
			tcell.KeyLeft:   IntentMoveLeft,
			tcell.KeyRight:  IntentMoveRight,
			tcell.KeyEnter:  IntentPlayPause,
			tcell.KeyEscape: IntentQuit,
			tcell.KeyCtrlC:  IntentQuit,
		},
		Runes: map[rune]Intent{
			'h': IntentMoveLeft,
			'j': IntentMoveDown,
			'k': IntentMoveUp,
			'l': IntentMoveRight,

			'w': IntentMoveUp,
			'a': IntentMoveLeft,
			's': IntentMoveDown,
			'd': IntentMoveRight,

			' ': IntentTogglePause,
			'p': IntentPlayPause,
			'n': IntentNewGame,
			'm': IntentToggleMute,
			'q': IntentQuit,
		},
	}
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	return &KeyTable{
		SpecialKeys: maps.Clone(kt.SpecialKeys),
		Runes:       maps.Clone(kt.Runes),
	}
}

// Lookup resolves a key event to its intent
func (kt *KeyTable) Lookup(ev *tcell.EventKey) Intent {
	if ev.Key() != tcell.KeyRune {
		return kt.SpecialKeys[ev.Key()]
	}

	r := ev.Rune()
	if intent, ok := kt.Runes[r]; ok {
		return intent
	}
	// Caps lock should not stop the snake
	if r >= 'A' && r <= 'Z' {
		return kt.Runes[r+('a'-'A')]
	}
	return IntentNone
}
