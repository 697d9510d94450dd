package engine

// isMilestone reports whether score just crossed a speed-up threshold
func (g *Game) isMilestone() bool {
	return g.score > 0 && g.score%g.cfg.MilestonePeriod == 0
}

// adjustSpeed shortens the tick interval by one step down to the floor
// and restarts the timer at the new period
func (g *Game) adjustSpeed() {
	if g.interval <= g.cfg.IntervalFloor {
		return
	}

	g.interval -= g.cfg.IntervalStep
	if g.interval < g.cfg.IntervalFloor {
		g.interval = g.cfg.IntervalFloor
	}

	g.statSpeedUps.Add(1)
	g.timer.Restart(g.interval)
}
