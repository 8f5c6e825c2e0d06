package grid

import "github.com/panelpop/panelpop/internal/core"

// Cursor identifies the left cell of the horizontal 2-cell swap window.
// Invariant: 0 <= X <= width-2, 0 <= Y <= height-1.
type Cursor struct {
	X, Y  int
	board *Board
}

// NewCursor creates a cursor centered on the board.
func NewCursor(b *Board) *Cursor {
	return &Cursor{
		X:     (b.Width() - 2) / 2,
		Y:     b.Height() / 2,
		board: b,
	}
}

// Move shifts the cursor by (dx, dy), clamped to legal cursor bounds.
func (c *Cursor) Move(dx, dy int) {
	c.X = core.Clamp(c.X+dx, 0, c.board.Width()-2)
	c.Y = core.Clamp(c.Y+dy, 0, c.board.Height()-1)
}

// ShiftUp moves the cursor one row up when a new bottom row spawns, so it
// keeps pointing at the same tiles. At the top edge it stays put.
func (c *Cursor) ShiftUp() {
	if c.Y > 0 {
		c.Y--
	}
}
