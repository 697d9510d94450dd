package constants

import "time"

// Grid Geometry
const (
	// TileSize is the edge length of one grid cell in surface units
	TileSize = 20

	// SurfaceSize is the edge length of the square play surface in surface units
	SurfaceSize = 400

	// MinTileCount is the smallest playable grid edge
	MinTileCount = 5
)

// Game Loop Timing
const (
	// StartInterval is the tick interval at the beginning of every game
	StartInterval = 100 * time.Millisecond

	// IntervalFloor is the fastest tick interval speed-ups can reach
	IntervalFloor = 50 * time.Millisecond

	// IntervalStep is subtracted from the interval on every milestone
	IntervalStep = 10 * time.Millisecond

	// MilestonePeriod is the score period that triggers a speed-up
	MilestonePeriod = 5
)

// Spawn
const (
	// OriginX, OriginY is the cell of the single starting segment
	OriginX = 10
	OriginY = 10

	// InitialDirX, InitialDirY is the starting heading (right)
	InitialDirX = 1
	InitialDirY = 0
)
