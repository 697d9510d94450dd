package engine

import "time"

// playClock measures time spent running, excluding pauses
// Owned by the game; not safe for concurrent use
type playClock struct {
	time TimeProvider

	startedAt   time.Time
	pausedAt    time.Time
	totalPaused time.Duration
	paused      bool
	started     bool
}

func newPlayClock(tp TimeProvider) *playClock {
	return &playClock{time: tp}
}

// reset clears all tracking; the clock starts paused
func (c *playClock) reset() {
	*c = playClock{time: c.time}
}

// resume starts the clock on first call, then continues after pauses
func (c *playClock) resume() {
	now := c.time.Now()
	if !c.started {
		c.started = true
		c.startedAt = now
		return
	}
	if c.paused {
		c.totalPaused += now.Sub(c.pausedAt)
		c.paused = false
		c.pausedAt = time.Time{}
	}
}

func (c *playClock) pause() {
	if !c.started || c.paused {
		return
	}
	c.paused = true
	c.pausedAt = c.time.Now()
}

// elapsed returns running time so far
func (c *playClock) elapsed() time.Duration {
	if !c.started {
		return 0
	}
	end := c.time.Now()
	if c.paused {
		end = c.pausedAt
	}
	return end.Sub(c.startedAt) - c.totalPaused
}
