package grid

// garbageSpawnDelay spaces out queued slabs so an opponent's burst does
// not land as one wall.
const garbageSpawnDelay = 0.5

type garbageSlab struct {
	width int
}

// GarbageField manages garbage slabs on one board: queuing incoming
// attacks, dropping them from the top, re-settling them after clears and
// dissolving them into normal tiles when a match pops next to them.
//
// Slabs are rigid one-row blocks. They rest as soon as any cell under them
// is occupied and never move sideways.
type GarbageField struct {
	board   *Board
	pending []garbageSlab
	nextID  int
	timer   float64
}

func NewGarbageField(b *Board) *GarbageField {
	return &GarbageField{board: b, nextID: 1}
}

// QueueGarbage converts an incoming attack of the given block count into
// one slab; bigger attacks arrive wider.
func (g *GarbageField) QueueGarbage(blocks int) {
	if blocks <= 0 {
		return
	}
	w := 2 + blocks
	if w > g.board.Width() {
		w = g.board.Width()
	}
	g.pending = append(g.pending, garbageSlab{width: w})
}

// PendingCount returns the number of queued slabs not yet on the board.
func (g *GarbageField) PendingCount() int { return len(g.pending) }

// HasActiveGarbage reports whether any garbage cell is on the board.
func (g *GarbageField) HasActiveGarbage() bool {
	for y := 0; y < g.board.Height(); y++ {
		for x := 0; x < g.board.Width(); x++ {
			if g.board.IsGarbage(x, y) {
				return true
			}
		}
	}
	return false
}

// IsAdjacentToGarbage reports whether any 4-neighbor of (x, y) is garbage.
func (g *GarbageField) IsAdjacentToGarbage(x, y int) bool {
	return g.board.IsGarbage(x-1, y) || g.board.IsGarbage(x+1, y) ||
		g.board.IsGarbage(x, y-1) || g.board.IsGarbage(x, y+1)
}

// Update tries to place one queued slab per spawn delay. A slab stays
// queued while the top row has no room for it.
func (g *GarbageField) Update(dt float64) {
	if g.timer > 0 {
		g.timer -= dt
	}
	if g.timer > 0 || len(g.pending) == 0 {
		return
	}
	if g.place(g.pending[0]) {
		g.pending = g.pending[1:]
		g.timer = garbageSpawnDelay
	}
}

// place drops a slab from the top at a centered x and lets it rest at the
// lowest free position. Returns false when the entry row is blocked.
func (g *GarbageField) place(s garbageSlab) bool {
	x := (g.board.Width() - s.width) / 2
	if !g.rowFree(x, 0, s.width) {
		return false
	}
	y := 0
	for g.canDescend(x, y, s.width) {
		y++
	}
	id := g.nextID
	g.nextID++
	for i := 0; i < s.width; i++ {
		*g.board.cellAt(x+i, y) = Cell{Kind: KindGarbage, Type: TileNone, Garbage: id}
	}
	return true
}

// Settle moves every slab down as far as it can go, bottom-most slabs
// first so stacked garbage compacts in one pass.
func (g *GarbageField) Settle() {
	for y := g.board.Height() - 2; y >= 0; y-- {
		for x := 0; x < g.board.Width(); x++ {
			if !g.board.IsGarbage(x, y) {
				continue
			}
			id := g.board.At(x, y).Garbage
			sx, w := g.slabSpan(x, y, id)
			ny := y
			for g.canDescend(sx, ny, w) {
				ny++
			}
			if ny != y {
				for i := 0; i < w; i++ {
					*g.board.cellAt(sx+i, ny) = g.board.At(sx+i, y)
					g.board.ClearCell(sx+i, y)
				}
			}
			x = sx + w - 1
		}
	}
}

// DissolveAdjacent converts every slab touching a cleared cell into normal
// random tiles, which then fall and can chain into the cascade.
func (g *GarbageField) DissolveAdjacent(cleared []Coord) {
	ids := make(map[int]bool)
	offsets := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	for _, c := range cleared {
		for _, o := range offsets {
			nx, ny := c.X+o[0], c.Y+o[1]
			if g.board.IsGarbage(nx, ny) {
				ids[g.board.At(nx, ny).Garbage] = true
			}
		}
	}
	if len(ids) == 0 {
		return
	}
	for y := 0; y < g.board.Height(); y++ {
		for x := 0; x < g.board.Width(); x++ {
			if g.board.IsGarbage(x, y) && ids[g.board.At(x, y).Garbage] {
				*g.board.cellAt(x, y) = Cell{Kind: KindTile, Type: g.board.gen.RandomType(), Anim: AnimIdle}
			}
		}
	}
}

// slabSpan returns the starting x and width of the slab with the given id
// on row y, assuming (x, y) belongs to it.
func (g *GarbageField) slabSpan(x, y, id int) (int, int) {
	sx := x
	for sx > 0 && g.board.IsGarbage(sx-1, y) && g.board.At(sx-1, y).Garbage == id {
		sx--
	}
	ex := x
	for ex < g.board.Width()-1 && g.board.IsGarbage(ex+1, y) && g.board.At(ex+1, y).Garbage == id {
		ex++
	}
	return sx, ex - sx + 1
}

func (g *GarbageField) rowFree(x, y, w int) bool {
	for i := 0; i < w; i++ {
		if !g.board.IsEmpty(x+i, y) {
			return false
		}
	}
	return true
}

// canDescend reports whether the full row segment directly under
// (x..x+w-1, y) is empty and inside the board.
func (g *GarbageField) canDescend(x, y, w int) bool {
	if y+1 >= g.board.Height() {
		return false
	}
	return g.rowFree(x, y+1, w)
}
