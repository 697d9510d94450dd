// Package audio plays the looping background track through the beep speaker
// Without an output device every operation degrades to silent state tracking
package audio

import (
	"io"
	"log"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/snake/constants"
	"github.com/lixenwraith/snake/status"
)

// Config selects the track and output level
type Config struct {
	Enabled bool
	Volume  float64 // 0.0-1.0
	Path    string  // MP3/WAV file; empty uses LoopGenerator
}

// Music owns the single looping background track
type Music struct {
	mu sync.Mutex

	cfg         Config
	sr          beep.SampleRate
	ctrl        *beep.Ctrl
	volume      *effects.Volume
	track       io.Closer
	initialized bool

	// Published as audio.playing and audio.muted
	playing *atomic.Bool
	muted   *atomic.Bool
}

// NewMusic creates a player; call Initialize to open the device
func NewMusic(cfg Config, reg *status.Registry) *Music {
	if reg == nil {
		reg = status.NewRegistry()
	}
	m := &Music{
		cfg:     cfg,
		sr:      beep.SampleRate(constants.SampleRate),
		playing: reg.Bools.Get("audio.playing"),
		muted:   reg.Bools.Get("audio.muted"),
	}
	m.muted.Store(!cfg.Enabled)
	return m
}

// Initialize opens the speaker and queues the track paused
// A disabled player skips the device entirely
func (m *Music) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized || !m.cfg.Enabled {
		return nil
	}

	var src beep.Streamer = NewLoopGenerator(m.sr)
	if m.cfg.Path != "" {
		s, closer, err := openTrack(m.cfg.Path, m.sr)
		if err != nil {
			log.Printf("audio: %v, using built-in loop", err)
		} else {
			src = s
			m.track = closer
		}
	}

	if err := speaker.Init(m.sr, m.sr.N(constants.SpeakerBuffer)); err != nil {
		m.closeTrack()
		return err
	}

	m.ctrl = &beep.Ctrl{Streamer: src, Paused: !m.playing.Load()}
	m.volume = &effects.Volume{
		Streamer: m.ctrl,
		Base:     2,
		Volume:   volumeExponent(m.cfg.Volume),
		Silent:   m.muted.Load() || m.cfg.Volume <= 0,
	}
	speaker.Play(m.volume)
	m.initialized = true
	return nil
}

// Play resumes the track from where it paused
func (m *Music) Play() {
	m.setPaused(false)
}

// Pause holds the track position
func (m *Music) Pause() {
	m.setPaused(true)
}

func (m *Music) setPaused(paused bool) {
	m.playing.Store(!paused)

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}

	speaker.Lock()
	m.ctrl.Paused = paused
	speaker.Unlock()
}

// ToggleMute silences output without affecting play state; returns true if now audible
func (m *Music) ToggleMute() bool {
	muted := !m.muted.Load()
	m.muted.Store(muted)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		speaker.Lock()
		m.volume.Silent = muted || m.cfg.Volume <= 0
		speaker.Unlock()
	}
	return !muted
}

// IsPlaying reports the last Play/Pause request
func (m *Music) IsPlaying() bool {
	return m.playing.Load()
}

// IsMuted returns current mute state
func (m *Music) IsMuted() bool {
	return m.muted.Load()
}

// Close stops output and releases the track
func (m *Music) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	m.closeTrack()
	m.initialized = false
}

func (m *Music) closeTrack() {
	if m.track != nil {
		m.track.Close()
		m.track = nil
	}
}

// volumeExponent maps a linear 0-1 level to effects.Volume's base-2 exponent
func volumeExponent(v float64) float64 {
	if v <= 0 {
		return 0
	}
	if v > 1 {
		v = 1
	}
	return math.Log2(v)
}
