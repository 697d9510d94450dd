// Package render draws game snapshots onto a tcell screen
package render

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/snake/constants"
	"github.com/lixenwraith/snake/engine"
)

// MuteState reports whether audio output is silenced
type MuteState interface {
	IsMuted() bool
}

// Renderer implements engine.Observer. Each observed snapshot is kept so
// the frame can be redrawn on resize or banner expiry without the loop
type Renderer struct {
	mu      sync.Mutex
	screen  tcell.Screen
	palette Palette
	banner  *Banner
	audio   MuteState

	last    engine.Snapshot
	hasLast bool
}

// NewRenderer creates a renderer; banner and audio may be nil
func NewRenderer(screen tcell.Screen, palette Palette, banner *Banner, audio MuteState) *Renderer {
	r := &Renderer{
		screen:  screen,
		palette: palette,
		banner:  banner,
		audio:   audio,
	}
	if banner != nil {
		banner.OnExpire(r.Redraw)
	}
	return r
}

// Observe implements engine.Observer
func (r *Renderer) Observe(s engine.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.last = s
	r.hasLast = true
	r.draw()
}

// Redraw repaints the last snapshot
func (r *Renderer) Redraw() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.hasLast {
		r.draw()
	}
}

// Resize resynchronizes the physical screen after a terminal resize
func (r *Renderer) Resize() {
	r.screen.Sync()
	r.Redraw()
}

func (r *Renderer) draw() {
	s := r.last
	bg := tcell.StyleDefault.Background(r.palette.Background)

	width, height := r.screen.Size()
	r.screen.Fill(' ', bg)

	layout := NewLayout(width, height, s.TileCount)
	if !layout.Fits() {
		r.drawText(0, 0, fmt.Sprintf("Terminal too small: need %dx%d", layout.BoardW, layout.BoardH+1), bg.Foreground(r.palette.StateOver))
		r.screen.Show()
		return
	}

	r.drawBorder(layout, bg)

	if s.HasFood {
		r.drawCell(layout, s.Food, constants.FoodGlyph, bg.Foreground(r.palette.Food))
	}
	snakeStyle := bg.Foreground(r.palette.Snake)
	for _, p := range s.Snake {
		r.drawCell(layout, p, constants.SnakeGlyph, snakeStyle)
	}

	r.drawOverlay(layout, s, bg)
	r.drawStatusBar(layout, s, bg)
	r.screen.Show()
}

func (r *Renderer) drawBorder(l Layout, bg tcell.Style) {
	style := bg.Foreground(r.palette.Border)
	right := l.BoardX + l.BoardW - 1
	bottom := l.BoardY + l.BoardH - 1

	for x := l.BoardX; x <= right; x++ {
		r.screen.SetContent(x, l.BoardY, constants.BorderGlyph, nil, style)
		r.screen.SetContent(x, bottom, constants.BorderGlyph, nil, style)
	}
	for y := l.BoardY + 1; y < bottom; y++ {
		r.screen.SetContent(l.BoardX, y, constants.BorderGlyph, nil, style)
		r.screen.SetContent(right, y, constants.BorderGlyph, nil, style)
	}
}

// drawCell fills every column of one grid cell; cells outside the grid are skipped
func (r *Renderer) drawCell(l Layout, p engine.Position, glyph rune, style tcell.Style) {
	if !p.InBounds(l.TileCount) {
		return
	}
	sx, sy := l.Cell(p.X, p.Y)
	if glyph == constants.SnakeGlyph {
		for i := 0; i < constants.CellColumns; i++ {
			r.screen.SetContent(sx+i, sy, glyph, nil, style)
		}
		return
	}
	// Narrow glyphs sit in the first column, the rest stays background
	r.screen.SetContent(sx, sy, glyph, nil, style)
}

// drawOverlay centers a hint on the board for every state except running
func (r *Renderer) drawOverlay(l Layout, s engine.Snapshot, bg tcell.Style) {
	var text string
	switch s.State {
	case engine.StateReady:
		text = "SPACE to start"
	case engine.StatePaused:
		text = "PAUSED"
	case engine.StateOver:
		text = "GAME OVER  n: new game"
	default:
		return
	}

	x := l.BoardX + (l.BoardW-len(text))/2
	y := l.BoardY + l.BoardH/2
	r.drawText(x, y, text, bg.Foreground(r.palette.Overlay).Bold(true))
}

func (r *Renderer) drawStatusBar(l Layout, s engine.Snapshot, bg tcell.Style) {
	x := 0
	y := l.StatusY

	if r.audio != nil {
		audioBg := r.palette.AudioUnmuted
		if r.audio.IsMuted() {
			audioBg = r.palette.AudioMuted
		}
		x = r.drawText(x, y, " ♪ ", bg.Foreground(tcell.ColorBlack).Background(audioBg))
		x++
	}

	var stateColor tcell.Color
	switch s.State {
	case engine.StateRunning:
		stateColor = r.palette.StateRunning
	case engine.StatePaused:
		stateColor = r.palette.StatePaused
	case engine.StateOver:
		stateColor = r.palette.StateOver
	default:
		stateColor = r.palette.StateReady
	}
	x = r.drawText(x, y, fmt.Sprintf(" %s ", stateLabel(s.State)), bg.Foreground(tcell.ColorBlack).Background(stateColor))

	text := fmt.Sprintf(" Score: %d  Best: %d  Speed: %dms", s.Score, s.HighScore, s.Interval().Milliseconds())
	x = r.drawText(x, y, text, bg.Foreground(r.palette.Status))

	if r.banner != nil {
		if msg, ok := r.banner.Text(); ok {
			r.drawText(x+2, y, " "+msg+" ", bg.Foreground(r.palette.Status).Background(r.palette.BannerBg).Bold(true))
		}
	}
}

// drawText writes s from (x, y), clipped to the screen, and returns the next column
func (r *Renderer) drawText(x, y int, s string, style tcell.Style) int {
	width, _ := r.screen.Size()
	for _, ch := range s {
		if x >= width {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}

func stateLabel(s engine.State) string {
	switch s {
	case engine.StateRunning:
		return "RUN"
	case engine.StatePaused:
		return "PAUSE"
	case engine.StateOver:
		return "OVER"
	}
	return "READY"
}
