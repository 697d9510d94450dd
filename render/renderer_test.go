package render

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/snake/constants"
	"github.com/lixenwraith/snake/engine"
)

type fakeMute bool

func (f fakeMute) IsMuted() bool { return bool(f) }

func newTestScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	screen.SetSize(width, height)
	t.Cleanup(screen.Fini)
	return screen
}

func testSnapshot() engine.Snapshot {
	return engine.Snapshot{
		State:      engine.StateRunning,
		TileCount:  20,
		Snake:      []engine.Position{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}},
		Food:       engine.Position{X: 3, Y: 4},
		HasFood:    true,
		Direction:  engine.Right,
		Score:      7,
		HighScore:  12,
		IntervalMs: 90,
	}
}

// rowText reads a screen row back as a string
func rowText(screen tcell.SimulationScreen, y int) string {
	width, _ := screen.Size()
	var sb strings.Builder
	for x := 0; x < width; x++ {
		mainc, _, _, _ := screen.GetContent(x, y)
		if mainc == 0 {
			mainc = ' '
		}
		sb.WriteRune(mainc)
	}
	return sb.String()
}

func TestRendererDrawsSnakeAndFood(t *testing.T) {
	screen := newTestScreen(t, 80, 30)
	palette := NewPalette(ColorModeTrueColor)
	r := NewRenderer(screen, palette, nil, nil)

	snap := testSnapshot()
	r.Observe(snap)

	layout := NewLayout(80, 30, snap.TileCount)

	for _, p := range snap.Snake {
		sx, sy := layout.Cell(p.X, p.Y)
		for i := 0; i < constants.CellColumns; i++ {
			mainc, _, style, _ := screen.GetContent(sx+i, sy)
			if mainc != constants.SnakeGlyph {
				t.Errorf("Snake cell %v col %d: expected %q, got %q", p, i, constants.SnakeGlyph, mainc)
			}
			fg, bg, _ := style.Decompose()
			if fg != RgbSnake {
				t.Errorf("Snake cell %v: expected lime foreground, got %v", p, fg)
			}
			if bg != RgbBackground {
				t.Errorf("Snake cell %v: expected background %v, got %v", p, RgbBackground, bg)
			}
		}
	}

	fx, fy := layout.Cell(snap.Food.X, snap.Food.Y)
	mainc, _, style, _ := screen.GetContent(fx, fy)
	if mainc != constants.FoodGlyph {
		t.Errorf("Expected food glyph at %v, got %q", snap.Food, mainc)
	}
	if fg, _, _ := style.Decompose(); fg != RgbFood {
		t.Errorf("Expected red food, got %v", fg)
	}
}

func TestRendererSkipsFoodWhenBoardFull(t *testing.T) {
	screen := newTestScreen(t, 80, 30)
	r := NewRenderer(screen, NewPalette(ColorModeTrueColor), nil, nil)

	snap := testSnapshot()
	r.Observe(snap)

	// Full board: food coordinates are stale and must not be drawn
	full := snap
	full.HasFood = false
	r.Observe(full)

	l := NewLayout(80, 30, snap.TileCount)
	fx, fy := l.Cell(snap.Food.X, snap.Food.Y)
	if mainc, _, _, _ := screen.GetContent(fx, fy); mainc != ' ' {
		t.Errorf("Expected empty cell at %v without food, got %q", snap.Food, mainc)
	}
	for _, p := range full.Snake {
		sx, sy := l.Cell(p.X, p.Y)
		if mainc, _, _, _ := screen.GetContent(sx, sy); mainc != constants.SnakeGlyph {
			t.Errorf("Expected snake still drawn at %v, got %q", p, mainc)
		}
	}
}

func TestRendererDrawsBorder(t *testing.T) {
	screen := newTestScreen(t, 80, 30)
	r := NewRenderer(screen, NewPalette(ColorModeTrueColor), nil, nil)
	r.Observe(testSnapshot())

	l := NewLayout(80, 30, 20)
	corners := [][2]int{
		{l.BoardX, l.BoardY},
		{l.BoardX + l.BoardW - 1, l.BoardY},
		{l.BoardX, l.BoardY + l.BoardH - 1},
		{l.BoardX + l.BoardW - 1, l.BoardY + l.BoardH - 1},
	}
	for _, c := range corners {
		if mainc, _, _, _ := screen.GetContent(c[0], c[1]); mainc != constants.BorderGlyph {
			t.Errorf("Expected border at %v, got %q", c, mainc)
		}
	}

	// Interior next to the border is empty
	if mainc, _, _, _ := screen.GetContent(l.BoardX+1, l.BoardY+1); mainc != ' ' {
		t.Errorf("Expected empty interior, got %q", mainc)
	}
}

func TestRendererStatusBar(t *testing.T) {
	screen := newTestScreen(t, 80, 30)
	r := NewRenderer(screen, NewPalette(ColorModeTrueColor), nil, fakeMute(false))
	r.Observe(testSnapshot())

	l := NewLayout(80, 30, 20)
	row := rowText(screen, l.StatusY)

	for _, want := range []string{"RUN", "Score: 7", "Best: 12", "Speed: 90ms", "♪"} {
		if !strings.Contains(row, want) {
			t.Errorf("Status bar %q missing %q", row, want)
		}
	}
}

func TestRendererMuteIndicator(t *testing.T) {
	tests := []struct {
		name  string
		muted bool
		want  tcell.Color
	}{
		{"Unmuted", false, RgbAudioUnmuted},
		{"Muted", true, RgbAudioMuted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := newTestScreen(t, 80, 30)
			r := NewRenderer(screen, NewPalette(ColorModeTrueColor), nil, fakeMute(tt.muted))
			r.Observe(testSnapshot())

			l := NewLayout(80, 30, 20)
			_, _, style, _ := screen.GetContent(0, l.StatusY)
			if _, bg, _ := style.Decompose(); bg != tt.want {
				t.Errorf("Expected indicator background %v, got %v", tt.want, bg)
			}
		})
	}
}

func TestRendererOverlayPerState(t *testing.T) {
	tests := []struct {
		state engine.State
		want  string
	}{
		{engine.StateReady, "SPACE to start"},
		{engine.StatePaused, "PAUSED"},
		{engine.StateOver, "GAME OVER"},
		{engine.StateRunning, ""},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			screen := newTestScreen(t, 80, 30)
			r := NewRenderer(screen, NewPalette(ColorModeTrueColor), nil, nil)

			snap := testSnapshot()
			snap.State = tt.state
			r.Observe(snap)

			l := NewLayout(80, 30, 20)
			row := rowText(screen, l.BoardY+l.BoardH/2)
			if tt.want == "" {
				for _, hint := range []string{"SPACE", "PAUSED", "GAME OVER"} {
					if strings.Contains(row, hint) {
						t.Errorf("Running board should have no overlay, found %q", hint)
					}
				}
				return
			}
			if !strings.Contains(row, tt.want) {
				t.Errorf("Overlay row %q missing %q", row, tt.want)
			}
		})
	}
}

func TestRendererBannerExpires(t *testing.T) {
	screen := newTestScreen(t, 80, 30)
	clock := engine.NewMockTimeProvider(time.Now())
	banner := NewBanner(clock, constants.BannerDuration)
	r := NewRenderer(screen, NewPalette(ColorModeTrueColor), banner, nil)
	defer banner.Clear()

	snap := testSnapshot()
	snap.State = engine.StateOver
	banner.NotifyGameOver(snap.Score)
	r.Observe(snap)

	l := NewLayout(80, 30, 20)
	if row := rowText(screen, l.StatusY); !strings.Contains(row, "Game over! Your score: 7") {
		t.Fatalf("Expected banner in status bar, got %q", row)
	}

	clock.Advance(constants.BannerDuration)
	r.Redraw()
	if row := rowText(screen, l.StatusY); strings.Contains(row, "Game over!") {
		t.Errorf("Expected banner gone after expiry, got %q", row)
	}
}

func TestRendererTooSmall(t *testing.T) {
	screen := newTestScreen(t, 20, 10)
	r := NewRenderer(screen, NewPalette(ColorModeTrueColor), nil, nil)
	r.Observe(testSnapshot())

	if row := rowText(screen, 0); !strings.HasPrefix(row, "Terminal too small") {
		t.Errorf("Expected size warning, got %q", row)
	}
}

func TestRendererRedrawWithoutSnapshot(t *testing.T) {
	screen := newTestScreen(t, 80, 30)
	r := NewRenderer(screen, NewPalette(ColorModeTrueColor), nil, nil)

	defer func() {
		if rec := recover(); rec != nil {
			t.Errorf("Redraw before any snapshot panicked: %v", rec)
		}
	}()
	r.Redraw()
	r.Resize()
}

func TestRendererSkipsOutOfBoundsCells(t *testing.T) {
	screen := newTestScreen(t, 80, 30)
	r := NewRenderer(screen, NewPalette(ColorModeTrueColor), nil, nil)

	snap := testSnapshot()
	snap.Snake = []engine.Position{{X: -1, Y: 0}, {X: 0, Y: 0}}
	r.Observe(snap)

	l := NewLayout(80, 30, 20)
	// (-1, 0) would land on the left border
	if mainc, _, _, _ := screen.GetContent(l.BoardX, l.BoardY+1); mainc != constants.BorderGlyph {
		t.Errorf("Expected border untouched, got %q", mainc)
	}
}
