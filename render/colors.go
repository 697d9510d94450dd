package render

import (
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ColorMode selects how palette colors reach the terminal
type ColorMode uint8

const (
	ColorMode256 ColorMode = iota
	ColorModeTrueColor
)

// RGB color definitions
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbSnake      = tcell.NewRGBColor(0, 255, 0)     // Lime
	RgbFood       = tcell.NewRGBColor(255, 0, 0)     // Red
	RgbBorder     = tcell.NewRGBColor(90, 90, 110)   // Muted gray-blue
	RgbStatusBar  = tcell.NewRGBColor(255, 255, 255) // White
	RgbOverlay    = tcell.NewRGBColor(255, 215, 0)   // Gold
	RgbBannerBg   = tcell.NewRGBColor(180, 50, 50)   // Dark red

	RgbStateRunning = tcell.NewRGBColor(0, 200, 0)     // Green
	RgbStatePaused  = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbStateOver    = tcell.NewRGBColor(255, 80, 80)   // Red
	RgbStateReady   = tcell.NewRGBColor(100, 150, 255) // Blue

	RgbAudioMuted   = tcell.NewRGBColor(255, 0, 0) // Bright red when muted
	RgbAudioUnmuted = tcell.NewRGBColor(0, 255, 0) // Bright green when unmuted
)

// Palette is the set of colors one frame is drawn with
type Palette struct {
	Background tcell.Color
	Snake      tcell.Color
	Food       tcell.Color
	Border     tcell.Color
	Status     tcell.Color
	Overlay    tcell.Color
	BannerBg   tcell.Color

	StateRunning tcell.Color
	StatePaused  tcell.Color
	StateOver    tcell.Color
	StateReady   tcell.Color

	AudioMuted   tcell.Color
	AudioUnmuted tcell.Color
}

// NewPalette returns the palette for mode. 256-color terminals get the
// nearest xterm palette entries
func NewPalette(mode ColorMode) Palette {
	p := Palette{
		Background:   RgbBackground,
		Snake:        RgbSnake,
		Food:         RgbFood,
		Border:       RgbBorder,
		Status:       RgbStatusBar,
		Overlay:      RgbOverlay,
		BannerBg:     RgbBannerBg,
		StateRunning: RgbStateRunning,
		StatePaused:  RgbStatePaused,
		StateOver:    RgbStateOver,
		StateReady:   RgbStateReady,
		AudioMuted:   RgbAudioMuted,
		AudioUnmuted: RgbAudioUnmuted,
	}
	if mode == ColorModeTrueColor {
		return p
	}

	return Palette{
		Background:   tcell.ColorBlack,
		Snake:        tcell.ColorLime,
		Food:         tcell.ColorRed,
		Border:       tcell.ColorGray,
		Status:       tcell.ColorWhite,
		Overlay:      tcell.ColorGold,
		BannerBg:     tcell.ColorMaroon,
		StateRunning: tcell.ColorGreen,
		StatePaused:  tcell.ColorOrange,
		StateOver:    tcell.ColorRed,
		StateReady:   tcell.ColorBlue,
		AudioMuted:   tcell.ColorRed,
		AudioUnmuted: tcell.ColorLime,
	}
}

// ParseColorMode resolves the -color flag; anything unrecognized falls back to detection
func ParseColorMode(s string) ColorMode {
	switch strings.ToLower(s) {
	case "256":
		return ColorMode256
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor
	default:
		return DetectColorMode()
	}
}

// DetectColorMode checks COLORTERM the same way terminals advertise 24-bit support
func DetectColorMode() ColorMode {
	switch strings.ToLower(os.Getenv("COLORTERM")) {
	case "truecolor", "24bit":
		return ColorModeTrueColor
	}
	return ColorMode256
}
