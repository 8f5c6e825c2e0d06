package grid

import "math/rand"

// TileGenerator produces tile rows from a deterministic seed. Spawned rows
// never contain a completed 3-run on their own or against the two rows
// directly above, so a freshly risen row only matches through player action
// or a pending cascade.
type TileGenerator struct {
	rng   *rand.Rand
	types int
}

// NewTileGenerator creates a generator for the given number of tile types.
func NewTileGenerator(types int, seed int64) *TileGenerator {
	if types < 3 {
		types = 3
	}
	return &TileGenerator{
		rng:   rand.New(rand.NewSource(seed)),
		types: types,
	}
}

// SetSeed reseeds the generator. Subsequent rows are fully determined by
// the new seed, independent of anything generated before.
func (g *TileGenerator) SetSeed(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))
}

// RandomType returns one uniformly random tile type.
func (g *TileGenerator) RandomType() TileType {
	return TileType(g.rng.Intn(g.types))
}

// GenerateRow produces a row of width tiles. prev is the row directly
// above the new row, prev2 the row above that; either may be nil or short.
// The generated row avoids horizontal 3-runs within itself and vertical
// 3-runs with prev/prev2.
func (g *TileGenerator) GenerateRow(width int, prev, prev2 []TileType) []TileType {
	row := make([]TileType, width)
	for x := 0; x < width; x++ {
		row[x] = g.pickAt(row, x, prev, prev2)
	}
	return row
}

func (g *TileGenerator) pickAt(row []TileType, x int, prev, prev2 []TileType) TileType {
	banHorizontal := TileNone
	if x >= 2 && row[x-1] == row[x-2] {
		banHorizontal = row[x-1]
	}
	banVertical := TileNone
	if above, above2 := rowAt(prev, x), rowAt(prev2, x); above != TileNone && above == above2 {
		banVertical = above
	}

	// With >= 3 types at most two types are banned, so a legal pick
	// always exists.
	for {
		t := g.RandomType()
		if t == banHorizontal || t == banVertical {
			continue
		}
		return t
	}
}

func rowAt(row []TileType, x int) TileType {
	if row == nil || x < 0 || x >= len(row) {
		return TileNone
	}
	return row[x]
}
