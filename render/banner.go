package render

import (
	"fmt"
	"sync"
	"time"

	"github.com/lixenwraith/snake/constants"
	"github.com/lixenwraith/snake/engine"
)

// Banner is the game-over notifier. NotifyGameOver only records the message;
// the renderer shows it in the status bar until it expires
type Banner struct {
	mu       sync.Mutex
	text     string
	until    time.Time
	timer    *time.Timer
	onExpire func()

	clock    engine.TimeProvider
	duration time.Duration
}

// NewBanner creates a banner using clock for expiry; nil clock uses wall time
func NewBanner(clock engine.TimeProvider, duration time.Duration) *Banner {
	if clock == nil {
		clock = engine.NewMonotonicTimeProvider()
	}
	if duration <= 0 {
		duration = constants.BannerDuration
	}
	return &Banner{clock: clock, duration: duration}
}

// OnExpire registers fn to run once a shown banner times out, typically a redraw
func (b *Banner) OnExpire(fn func()) {
	b.mu.Lock()
	b.onExpire = fn
	b.mu.Unlock()
}

// NotifyGameOver implements engine.Notifier
func (b *Banner) NotifyGameOver(score int) {
	b.Show(fmt.Sprintf("Game over! Your score: %d", score))
}

// Show displays text for the banner duration, replacing any current text
func (b *Banner) Show(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.text = text
	b.until = b.clock.Now().Add(b.duration)

	if b.timer != nil {
		b.timer.Stop()
	}
	if fn := b.onExpire; fn != nil {
		b.timer = time.AfterFunc(b.duration, fn)
	}
}

// Text returns the current banner and whether it is still showing
func (b *Banner) Text() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.text == "" || !b.clock.Now().Before(b.until) {
		return "", false
	}
	return b.text, true
}

// Clear hides the banner immediately
func (b *Banner) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.text = ""
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
