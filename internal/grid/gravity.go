package grid

// Move records one tile relocation produced by drop resolution.
type Move struct {
	Type  TileType
	X     int
	FromY int
	ToY   int
}

// FallingTile tracks the presentation progress of a relocated tile. The
// logical occupancy already moved when the Move was issued; the record only
// drives the animation lock and the Block Slip timing window.
type FallingTile struct {
	Type     TileType
	X        int
	FromY    int
	ToY      int
	Progress float64 // Rows fallen since FromY
}

// WorldY returns the tile's continuous vertical position in row units.
func (f FallingTile) WorldY() float64 {
	return float64(f.FromY) + f.Progress
}

// SlipWindowOpen reports whether the tile has covered less than half of
// the final row unit into its destination cell, which is the window in
// which a Block Slip may reroute it.
func (f FallingTile) SlipWindowOpen() bool {
	return float64(f.ToY)-f.WorldY() > 0.5
}

// DropColumn compacts column x downward: every tile above an empty slot in
// its garbage-delimited segment moves down, preserving relative vertical
// order. Garbage cells act as floors and do not move. The board occupancy
// mutates immediately; reported moves let the caller animate. Calling
// twice without removals in between reports zero moves.
func DropColumn(b *Board, x int) []Move {
	var moves []Move
	h := b.Height()

	segEnd := h - 1 // Bottom of the current non-garbage segment
	for segEnd >= 0 {
		if b.IsGarbage(x, segEnd) {
			segEnd--
			continue
		}
		segStart := segEnd
		for segStart-1 >= 0 && !b.IsGarbage(x, segStart-1) {
			segStart--
		}

		writeY := segEnd
		for y := segEnd; y >= segStart; y-- {
			if b.IsEmpty(x, y) {
				continue
			}
			if y != writeY {
				cell := b.At(x, y)
				b.ClearCell(x, y)
				*b.cellAt(x, writeY) = cell
				moves = append(moves, Move{Type: cell.Type, X: x, FromY: y, ToY: writeY})
			}
			writeY--
		}

		segEnd = segStart - 1
	}
	return moves
}

// DropBoard compacts every column and returns all moves.
func DropBoard(b *Board) []Move {
	var moves []Move
	for x := 0; x < b.Width(); x++ {
		moves = append(moves, DropColumn(b, x)...)
	}
	return moves
}

// TrackFalls converts drop moves into falling records and locks the
// destination cells with AnimDropping until the animation completes.
func (b *Board) TrackFalls(moves []Move) {
	for _, m := range moves {
		b.setAnim(m.X, m.ToY, AnimDropping)
		b.falling = append(b.falling, FallingTile{
			Type:  m.Type,
			X:     m.X,
			FromY: m.FromY,
			ToY:   m.ToY,
		})
	}
}

// UpdateFalling advances falling animations by dt at the given speed in
// rows per second and releases animation locks on arrival. The unlock runs
// for every completed record even if its cell was cleared or overwritten
// meanwhile, so no cell can stay locked behind a lost record.
func (b *Board) UpdateFalling(dt, rowsPerSecond float64) {
	if len(b.falling) == 0 {
		return
	}
	remaining := b.falling[:0]
	for _, f := range b.falling {
		f.Progress += dt * rowsPerSecond
		if f.WorldY() >= float64(f.ToY) || f.ToY < 0 {
			if b.AnimAt(f.X, f.ToY) == AnimDropping {
				b.setAnim(f.X, f.ToY, AnimIdle)
			}
			continue
		}
		remaining = append(remaining, f)
	}
	b.falling = remaining
}

// CompleteFalls finishes every falling animation immediately.
func (b *Board) CompleteFalls() {
	for _, f := range b.falling {
		if b.AnimAt(f.X, f.ToY) == AnimDropping {
			b.setAnim(f.X, f.ToY, AnimIdle)
		}
	}
	b.falling = b.falling[:0]
}

// FallingCount returns the number of in-flight falling tiles.
func (b *Board) FallingCount() int {
	return len(b.falling)
}

// FallingInto returns the falling record targeting (x, y), if any.
func (b *Board) FallingInto(x, y int) (FallingTile, bool) {
	for _, f := range b.falling {
		if f.X == x && f.ToY == y {
			return f, true
		}
	}
	return FallingTile{}, false
}

// Falling returns a snapshot of all in-flight falling tiles, used by the
// presentation layer to draw tiles between rows.
func (b *Board) Falling() []FallingTile {
	out := make([]FallingTile, len(b.falling))
	copy(out, b.falling)
	return out
}

// redirectFallsAbove shifts every falling record in column x with a
// destination at or above row y one row upward, moving the logical cell
// contents with them. Returns false (mutating nothing) if any record would
// leave the top of the grid or collide with a settled cell.
func (b *Board) redirectFallsAbove(x, y int) bool {
	var idx []int
	minTo := y + 1
	for i, f := range b.falling {
		if f.X == x && f.ToY <= y {
			idx = append(idx, i)
			if f.ToY < minTo {
				minTo = f.ToY
			}
		}
	}
	if len(idx) == 0 {
		return true
	}
	if minTo-1 < 0 {
		return false
	}
	if !b.IsEmpty(x, minTo-1) {
		if _, falling := b.FallingInto(x, minTo-1); !falling {
			return false
		}
	}

	// Move logical contents top-down so nothing is overwritten.
	for to := minTo; to <= y; to++ {
		if _, ok := b.FallingInto(x, to); !ok {
			continue
		}
		cell := b.At(x, to)
		b.ClearCell(x, to)
		*b.cellAt(x, to-1) = cell
	}
	for _, i := range idx {
		b.falling[i].ToY--
		b.falling[i].FromY--
	}
	return true
}
