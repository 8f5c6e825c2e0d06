// Package grid implements the panelpop board simulation: tile storage,
// rising, swapping, gravity, match detection, cascade resolution and the
// danger/game-over state machine. The package is deliberately free of
// external dependencies so the simulation stays pure and testable; all
// timing is explicit (timer fields advanced by dt), never blocking.
package grid

import (
	"github.com/panelpop/panelpop/internal/config"
)

// TileType is the color/kind of a tile. TileNone marks a cell that holds
// no matchable tile (empty or garbage).
type TileType int8

// TileNone is returned for cells without a tile type.
const TileNone TileType = -1

// Kind is the occupancy kind of a cell.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindTile
	KindGarbage
)

// Anim is the animation lock state of a cell. Logical occupancy is always
// current; Anim only gates which operations may touch the cell.
type Anim uint8

const (
	AnimIdle Anim = iota
	AnimSwapping
	AnimDropping
)

// Cell is one grid location. Owned exclusively by Board; all other
// components reference cells by coordinates.
type Cell struct {
	Kind    Kind
	Type    TileType
	Anim    Anim
	Garbage int // Garbage block ID, 0 when none
}

// Coord identifies a cell. Y grows downward: y=0 is the top visible row,
// y=height-1 the bottom row where new rows spawn.
type Coord struct {
	X, Y int
}

// Board is the width x height grid of cells plus a preload buffer of rows
// that have not yet scrolled into view. It owns no behavior beyond storage,
// coordinate validity and the falling-tile bookkeeping that gravity and
// Block Slip share.
type Board struct {
	width       int
	height      int
	preloadRows int

	cells   [][]Cell     // [y][x]
	preload [][]TileType // preload[0] is the next row to spawn

	gen     *TileGenerator
	falling []FallingTile
}

// NewBoard creates a board from the grid configuration, fills the lower
// initial-fill rows and the preload buffer from the seeded generator.
func NewBoard(cfg config.GridConfig, seed int64) *Board {
	b := &Board{
		width:       cfg.Width,
		height:      cfg.Height,
		preloadRows: cfg.PreloadRows,
		gen:         NewTileGenerator(cfg.TileTypes, seed),
	}
	b.cells = make([][]Cell, b.height)
	for y := range b.cells {
		b.cells[y] = make([]Cell, b.width)
	}

	fillRows := cfg.InitialFillRows
	if fillRows > b.height {
		fillRows = b.height
	}
	b.fillInitial(fillRows)
	return b
}

// fillInitial populates the bottom fillRows visible rows and the preload
// buffer. Rows are generated top to bottom so the no-instant-match
// constraint always sees the two rows generated before (the rows above).
func (b *Board) fillInitial(fillRows int) {
	var prev, prev2 []TileType
	for y := b.height - fillRows; y < b.height; y++ {
		row := b.gen.GenerateRow(b.width, prev, prev2)
		for x, t := range row {
			b.cells[y][x] = Cell{Kind: KindTile, Type: t}
		}
		prev2 = prev
		prev = row
	}

	b.preload = make([][]TileType, 0, b.preloadRows)
	for i := 0; i < b.preloadRows; i++ {
		row := b.gen.GenerateRow(b.width, prev, prev2)
		b.preload = append(b.preload, row)
		prev2 = prev
		prev = row
	}
}

// SetSeed reseeds the tile generator without reconstructing the board.
func (b *Board) SetSeed(seed int64) {
	b.gen.SetSeed(seed)
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of visible rows.
func (b *Board) Height() int { return b.height }

// PreloadRowCount returns the number of buffered not-yet-visible rows.
func (b *Board) PreloadRowCount() int { return len(b.preload) }

// PreloadRow returns the buffered row at index i (0 = next to spawn).
func (b *Board) PreloadRow(i int) []TileType {
	if i < 0 || i >= len(b.preload) {
		return nil
	}
	return b.preload[i]
}

// InBounds reports whether (x, y) addresses a visible cell.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// At returns a copy of the cell at (x, y). Out-of-bounds reads return an
// empty cell.
func (b *Board) At(x, y int) Cell {
	if !b.InBounds(x, y) {
		return Cell{}
	}
	return b.cells[y][x]
}

func (b *Board) cellAt(x, y int) *Cell {
	return &b.cells[y][x]
}

// TileTypeAt returns the tile type at (x, y), or TileNone for empty and
// garbage cells.
func (b *Board) TileTypeAt(x, y int) TileType {
	if !b.InBounds(x, y) {
		return TileNone
	}
	c := b.cells[y][x]
	if c.Kind != KindTile {
		return TileNone
	}
	return c.Type
}

// IsEmpty reports whether the cell at (x, y) holds nothing.
func (b *Board) IsEmpty(x, y int) bool {
	return b.InBounds(x, y) && b.cells[y][x].Kind == KindEmpty
}

// IsTile reports whether the cell at (x, y) holds an ordinary tile.
func (b *Board) IsTile(x, y int) bool {
	return b.InBounds(x, y) && b.cells[y][x].Kind == KindTile
}

// IsGarbage reports whether the cell at (x, y) belongs to a garbage block.
func (b *Board) IsGarbage(x, y int) bool {
	return b.InBounds(x, y) && b.cells[y][x].Kind == KindGarbage
}

// AnimAt returns the animation lock state at (x, y).
func (b *Board) AnimAt(x, y int) Anim {
	if !b.InBounds(x, y) {
		return AnimIdle
	}
	return b.cells[y][x].Anim
}

// SetTile places an idle tile of the given type at (x, y).
func (b *Board) SetTile(x, y int, t TileType) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[y][x] = Cell{Kind: KindTile, Type: t}
}

// ClearCell marks the slot at (x, y) empty.
func (b *Board) ClearCell(x, y int) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[y][x] = Cell{}
}

// setAnim updates the animation lock of an occupied cell.
func (b *Board) setAnim(x, y int, a Anim) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[y][x].Anim = a
}

// TopOccupiedRow returns the smallest y holding a non-empty cell in column
// x, or the board height when the column is empty.
func (b *Board) TopOccupiedRow(x int) int {
	for y := 0; y < b.height; y++ {
		if b.cells[y][x].Kind != KindEmpty {
			return y
		}
	}
	return b.height
}

// TopRowOccupied reports whether any cell of the topmost row is occupied.
func (b *Board) TopRowOccupied() bool {
	for x := 0; x < b.width; x++ {
		if b.cells[0][x].Kind != KindEmpty {
			return true
		}
	}
	return false
}

// FillRatio returns occupied cells over total cells, used as a conservative
// danger fallback when no danger manager is wired.
func (b *Board) FillRatio() float64 {
	occupied := 0
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.cells[y][x].Kind != KindEmpty {
				occupied++
			}
		}
	}
	return float64(occupied) / float64(b.width*b.height)
}

// SpawnBottomRow shifts every row up by one index and fills the bottom row
// from the preload buffer, which is topped up from the generator. The
// caller must not spawn while the top row is occupied.
func (b *Board) SpawnBottomRow() {
	for y := 0; y < b.height-1; y++ {
		b.cells[y] = b.cells[y+1]
	}
	bottom := make([]Cell, b.width)
	for x, t := range b.preload[0] {
		bottom[x] = Cell{Kind: KindTile, Type: t}
	}
	b.cells[b.height-1] = bottom

	// Falling records track row indices, so they shift with the rows.
	for i := range b.falling {
		b.falling[i].FromY--
		b.falling[i].ToY--
	}

	copy(b.preload, b.preload[1:])

	// The freshly generated tail row must respect the two rows that will
	// sit directly above it once it spawns.
	var prev, prev2 []TileType
	n := len(b.preload)
	switch {
	case n >= 3:
		prev = b.preload[n-2]
		prev2 = b.preload[n-3]
	case n == 2:
		prev = b.preload[0]
		prev2 = rowTypes(b.cells[b.height-1])
	default:
		prev = rowTypes(b.cells[b.height-1])
		prev2 = rowTypes(b.cells[b.height-2])
	}
	b.preload[n-1] = b.gen.GenerateRow(b.width, prev, prev2)
}

func rowTypes(row []Cell) []TileType {
	out := make([]TileType, len(row))
	for x, c := range row {
		if c.Kind == KindTile {
			out[x] = c.Type
		} else {
			out[x] = TileNone
		}
	}
	return out
}
