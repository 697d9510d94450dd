// Package config resolves game settings from defaults, an optional TOML
// file and SNAKE_* environment variables, in that order
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/snake/constants"
	"github.com/lixenwraith/snake/engine"
)

// DefaultPath is read when no -config flag is given; absence is not an error
const DefaultPath = "snake.toml"

// Config is the full settings tree
type Config struct {
	Grid     GridConfig     `toml:"grid"`
	Speed    SpeedConfig    `toml:"speed"`
	Audio    AudioConfig    `toml:"audio"`
	Store    StoreConfig    `toml:"store"`
	Spectate SpectateConfig `toml:"spectate"`

	// Keys rebinds controls: key name -> action name, "none" unbinds
	Keys map[string]string `toml:"keys"`

	// Seed for food placement; 0 picks one from the clock
	Seed uint64 `toml:"seed"`
}

type GridConfig struct {
	TileSize    int `toml:"tile_size"`
	SurfaceSize int `toml:"surface_size"`
	OriginX     int `toml:"origin_x"`
	OriginY     int `toml:"origin_y"`
}

type SpeedConfig struct {
	StartMs   int `toml:"start_interval_ms"`
	FloorMs   int `toml:"floor_interval_ms"`
	StepMs    int `toml:"step_ms"`
	Milestone int `toml:"milestone"`
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
	// Music is an MP3 or WAV file looped as background; empty uses the built-in loop
	Music string `toml:"music"`
}

type StoreConfig struct {
	Path string `toml:"path"`
}

type SpectateConfig struct {
	// Addr enables the spectator feed when non-empty, e.g. "127.0.0.1:8080"
	Addr string `toml:"addr"`
}

// Default returns the classic browser-game settings
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			TileSize:    constants.TileSize,
			SurfaceSize: constants.SurfaceSize,
			OriginX:     constants.OriginX,
			OriginY:     constants.OriginY,
		},
		Speed: SpeedConfig{
			StartMs:   int(constants.StartInterval / time.Millisecond),
			FloorMs:   int(constants.IntervalFloor / time.Millisecond),
			StepMs:    int(constants.IntervalStep / time.Millisecond),
			Milestone: constants.MilestonePeriod,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  constants.DefaultMasterVolume,
		},
		Store: StoreConfig{
			Path: "data/snake.db",
		},
	}
}

// Load reads path over the defaults. A missing file at DefaultPath is
// ignored; a missing explicit path is an error
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == DefaultPath {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// ApplyEnv overlays SNAKE_* variables; unparsable values are ignored
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("SNAKE_AUDIO_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Audio.Enabled = b
		}
	}

	// Percent, 0-100
	if v := getenv("SNAKE_MASTER_VOLUME"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Audio.Volume = clamp01(float64(n) / 100.0)
		}
	}

	if v := getenv("SNAKE_MUSIC"); v != "" {
		c.Audio.Music = v
	}
	if v := getenv("SNAKE_DB"); v != "" {
		c.Store.Path = v
	}
	if v := getenv("SNAKE_SPECTATE"); v != "" {
		c.Spectate.Addr = v
	}
}

// TileCount is the grid edge derived from the surface and tile sizes
func (c *Config) TileCount() int {
	if c.Grid.TileSize <= 0 {
		return 0
	}
	return c.Grid.SurfaceSize / c.Grid.TileSize
}

// Validate checks the settings the engine and adapters depend on
func (c *Config) Validate() error {
	if c.Grid.TileSize <= 0 {
		return fmt.Errorf("grid.tile_size must be positive, got %d", c.Grid.TileSize)
	}
	if n := c.TileCount(); n < constants.MinTileCount {
		return fmt.Errorf("grid of %d tiles is too small (surface %d / tile %d), need %d",
			n, c.Grid.SurfaceSize, c.Grid.TileSize, constants.MinTileCount)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio.volume must be within 0..1, got %v", c.Audio.Volume)
	}
	if c.Store.Path == "" {
		return errors.New("store.path must not be empty")
	}
	return c.Engine().Validate()
}

// Engine converts the settings into simulation rules
func (c *Config) Engine() engine.Config {
	return engine.Config{
		TileCount:        c.TileCount(),
		Origin:           engine.Position{X: c.Grid.OriginX, Y: c.Grid.OriginY},
		InitialDirection: engine.Direction{X: constants.InitialDirX, Y: constants.InitialDirY},
		StartInterval:    time.Duration(c.Speed.StartMs) * time.Millisecond,
		IntervalFloor:    time.Duration(c.Speed.FloorMs) * time.Millisecond,
		IntervalStep:     time.Duration(c.Speed.StepMs) * time.Millisecond,
		MilestonePeriod:  c.Speed.Milestone,
		Seed:             c.Seed,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
