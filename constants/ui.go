package constants

import "time"

// Rendering
const (
	// CellColumns is the number of terminal columns one grid cell occupies
	CellColumns = 2

	// BannerDuration is how long a notification banner stays in the status bar
	BannerDuration = 5 * time.Second
)

// Glyphs
const (
	SnakeGlyph  = '█'
	FoodGlyph   = '●'
	BorderGlyph = '░'
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "snake.log"
	MaxLogSize  = 10 * 1024 * 1024
)
