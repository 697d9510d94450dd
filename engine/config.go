package engine

import (
	"fmt"
	"time"

	"github.com/lixenwraith/snake/constants"
)

// Config holds the rules of one game instance
type Config struct {
	TileCount        int
	Origin           Position
	InitialDirection Direction

	StartInterval   time.Duration
	IntervalFloor   time.Duration
	IntervalStep    time.Duration
	MilestonePeriod int

	// Seed for food placement; 0 seeds from the clock
	Seed uint64
}

// DefaultConfig returns the classic 20x20 rules
func DefaultConfig() Config {
	return Config{
		TileCount:        constants.SurfaceSize / constants.TileSize,
		Origin:           Position{X: constants.OriginX, Y: constants.OriginY},
		InitialDirection: Direction{X: constants.InitialDirX, Y: constants.InitialDirY},
		StartInterval:    constants.StartInterval,
		IntervalFloor:    constants.IntervalFloor,
		IntervalStep:     constants.IntervalStep,
		MilestonePeriod:  constants.MilestonePeriod,
	}
}

// Validate rejects configurations the engine cannot run
func (c Config) Validate() error {
	switch {
	case c.TileCount < 2:
		return fmt.Errorf("tile count %d: need at least 2", c.TileCount)
	case !c.Origin.InBounds(c.TileCount):
		return fmt.Errorf("origin %v outside %dx%d grid", c.Origin, c.TileCount, c.TileCount)
	case !c.InitialDirection.Valid():
		return fmt.Errorf("initial direction %v is not a unit vector", c.InitialDirection)
	case c.StartInterval <= 0 || c.IntervalFloor <= 0:
		return fmt.Errorf("intervals must be positive")
	case c.IntervalFloor > c.StartInterval:
		return fmt.Errorf("interval floor %v above start interval %v", c.IntervalFloor, c.StartInterval)
	case c.IntervalStep <= 0:
		return fmt.Errorf("interval step must be positive")
	case c.MilestonePeriod <= 0:
		return fmt.Errorf("milestone period must be positive")
	}
	return nil
}
