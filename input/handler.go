package input

import (
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/snake/engine"
)

// Commands is the engine surface input drives; engine.Loop implements it
type Commands interface {
	SetDirection(engine.Direction)
	TogglePause()
	PlayPause()
	StartNewGame()
}

// Muter toggles audio output; returns true if now audible
type Muter interface {
	ToggleMute() bool
}

// Handler dispatches terminal events to game commands
type Handler struct {
	keys     *KeyTable
	cmds     Commands
	muter    Muter
	onChange func()
}

// NewHandler creates a handler; nil keys uses the defaults, nil muter ignores mute
func NewHandler(keys *KeyTable, cmds Commands, muter Muter) *Handler {
	if keys == nil {
		keys = DefaultKeyTable()
	}
	return &Handler{
		keys:  keys,
		cmds:  cmds,
		muter: muter,
	}
}

// OnRedraw registers fn for events that change the view without a game
// command, such as resize and mute
func (h *Handler) OnRedraw(fn func()) {
	h.onChange = fn
}

// HandleEvent processes one event and returns false when the game should exit
func (h *Handler) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev)
	case *tcell.EventResize:
		h.redraw()
	}
	return true
}

func (h *Handler) handleKey(ev *tcell.EventKey) bool {
	intent := h.keys.Lookup(ev)

	if dir, ok := intent.Direction(); ok {
		h.cmds.SetDirection(dir)
		return true
	}

	switch intent {
	case IntentQuit:
		return false
	case IntentTogglePause:
		h.cmds.TogglePause()
	case IntentPlayPause:
		h.cmds.PlayPause()
	case IntentNewGame:
		h.cmds.StartNewGame()
	case IntentToggleMute:
		if h.muter != nil {
			audible := h.muter.ToggleMute()
			log.Printf("input: audio audible=%v", audible)
			h.redraw()
		}
	}
	return true
}

func (h *Handler) redraw() {
	if h.onChange != nil {
		h.onChange()
	}
}
