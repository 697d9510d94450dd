package render

import "github.com/lixenwraith/snake/constants"

// Layout maps grid cells to screen cells. The board is centered with a one
// cell border; the status bar sits on the row below the bottom border
type Layout struct {
	Width, Height int // Screen size
	TileCount     int

	BoardX, BoardY int // Top-left of the border
	BoardW, BoardH int // Including border
	StatusY        int
}

// NewLayout centers a tileCount×tileCount grid in a width×height screen
func NewLayout(width, height, tileCount int) Layout {
	l := Layout{
		Width:     width,
		Height:    height,
		TileCount: tileCount,
		BoardW:    tileCount*constants.CellColumns + 2,
		BoardH:    tileCount + 2,
	}

	l.BoardX = max(0, (width-l.BoardW)/2)
	l.BoardY = max(0, (height-l.BoardH-1)/2)
	l.StatusY = l.BoardY + l.BoardH
	return l
}

// Fits reports whether the board and status bar are fully visible
func (l Layout) Fits() bool {
	return l.BoardW <= l.Width && l.BoardH+1 <= l.Height
}

// Cell returns the leftmost screen column and the row of grid cell (x, y)
func (l Layout) Cell(x, y int) (int, int) {
	return l.BoardX + 1 + x*constants.CellColumns, l.BoardY + 1 + y
}
