package engine

// Position is a grid cell coordinate
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the cell one step along d
func (p Position) Add(d Direction) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// InBounds reports whether p lies on a square grid of edge n
func (p Position) InBounds(n int) bool {
	return p.X >= 0 && p.X < n && p.Y >= 0 && p.Y < n
}

// Direction is a unit step on one axis
type Direction struct {
	X int `json:"x"`
	Y int `json:"y"`
}

var (
	Up    = Direction{X: 0, Y: -1}
	Down  = Direction{X: 0, Y: 1}
	Left  = Direction{X: -1, Y: 0}
	Right = Direction{X: 1, Y: 0}
)

// Valid reports whether d is one of the four unit vectors
func (d Direction) Valid() bool {
	switch d {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

// SharesAxis reports whether d and o move along the same non-zero axis
// True for both reversals and repeats of the current heading
func (d Direction) SharesAxis(o Direction) bool {
	return (d.X != 0 && o.X != 0) || (d.Y != 0 && o.Y != 0)
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "none"
}

// contains reports whether p is one of cells
func contains(cells []Position, p Position) bool {
	for _, c := range cells {
		if c == p {
			return true
		}
	}
	return false
}
