package engine

// placeFood samples uniformly until a cell off the snake turns up
// Returns false only when the snake covers every cell
func (g *Game) placeFood() (Position, bool) {
	n := g.cfg.TileCount
	if len(g.snake) >= n*n {
		return Position{}, false
	}

	for {
		candidate := Position{
			X: g.rng.IntN(n),
			Y: g.rng.IntN(n),
		}
		if !contains(g.snake, candidate) {
			return candidate, true
		}
	}
}
