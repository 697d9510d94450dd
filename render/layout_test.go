package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestLayoutCentersBoard(t *testing.T) {
	l := NewLayout(80, 30, 20)

	if l.BoardW != 42 || l.BoardH != 22 {
		t.Fatalf("Expected 42x22 board, got %dx%d", l.BoardW, l.BoardH)
	}
	if l.BoardX != 19 {
		t.Errorf("Expected board x 19, got %d", l.BoardX)
	}
	if l.BoardY != 3 {
		t.Errorf("Expected board y 3, got %d", l.BoardY)
	}
	if l.StatusY != l.BoardY+l.BoardH {
		t.Errorf("Expected status bar directly below board, got row %d", l.StatusY)
	}
	if !l.Fits() {
		t.Error("Expected board to fit 80x30")
	}

	x, y := l.Cell(0, 0)
	if x != 20 || y != 4 {
		t.Errorf("Expected cell (0,0) at (20,4), got (%d,%d)", x, y)
	}
	x, y = l.Cell(19, 19)
	if x != 20+19*2 || y != 4+19 {
		t.Errorf("Expected cell (19,19) at (%d,%d), got (%d,%d)", 20+38, 23, x, y)
	}
}

func TestLayoutFits(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          bool
	}{
		{"Exact", 42, 23, true},
		{"Too narrow", 41, 23, false},
		{"No status row", 42, 22, false},
		{"Large", 200, 60, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewLayout(tt.width, tt.height, 20).Fits(); got != tt.want {
				t.Errorf("Fits() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPaletteModes(t *testing.T) {
	if p := NewPalette(ColorModeTrueColor); p.Snake != RgbSnake || p.Food != RgbFood {
		t.Errorf("Truecolor palette should use RGB colors")
	}
	if p := NewPalette(ColorMode256); p.Snake != tcell.ColorLime || p.Food != tcell.ColorRed {
		t.Errorf("256 palette should use named colors, got %v %v", p.Snake, p.Food)
	}
}

func TestParseColorMode(t *testing.T) {
	t.Setenv("COLORTERM", "")
	tests := []struct {
		in   string
		want ColorMode
	}{
		{"256", ColorMode256},
		{"truecolor", ColorModeTrueColor},
		{"24bit", ColorModeTrueColor},
		{"auto", ColorMode256},
	}
	for _, tt := range tests {
		if got := ParseColorMode(tt.in); got != tt.want {
			t.Errorf("ParseColorMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	t.Setenv("COLORTERM", "truecolor")
	if got := ParseColorMode("auto"); got != ColorModeTrueColor {
		t.Errorf("Expected detection to honor COLORTERM, got %v", got)
	}
}
