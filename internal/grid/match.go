package grid

// FindMatches scans every row for horizontal runs and every column for
// vertical runs of length >= 3 of identical tile type and returns the
// union of all cells participating in any qualifying run, in scan order.
// A cell in both a horizontal and a vertical run appears once. Empty,
// garbage and animating cells never match. No side effects.
func FindMatches(b *Board) []Coord {
	w, h := b.Width(), b.Height()
	marked := make([]bool, w*h)

	matchType := func(x, y int) TileType {
		if !b.IsTile(x, y) || b.AnimAt(x, y) != AnimIdle {
			return TileNone
		}
		return b.TileTypeAt(x, y)
	}

	// Horizontal runs
	for y := 0; y < h; y++ {
		x := 0
		for x < w {
			t := matchType(x, y)
			run := 1
			for x+run < w && t != TileNone && matchType(x+run, y) == t {
				run++
			}
			if t != TileNone && run >= 3 {
				for i := 0; i < run; i++ {
					marked[y*w+x+i] = true
				}
			}
			x += run
		}
	}

	// Vertical runs
	for x := 0; x < w; x++ {
		y := 0
		for y < h {
			t := matchType(x, y)
			run := 1
			for y+run < h && t != TileNone && matchType(x, y+run) == t {
				run++
			}
			if t != TileNone && run >= 3 {
				for i := 0; i < run; i++ {
					marked[(y+i)*w+x] = true
				}
			}
			y += run
		}
	}

	var out []Coord
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if marked[y*w+x] {
				out = append(out, Coord{X: x, Y: y})
			}
		}
	}
	return out
}

// GroupMatches flood-fills the matched cells over 4-neighbor adjacency and
// returns the disjoint connected components. The union of all groups
// equals the input set exactly once per cell.
func GroupMatches(cells []Coord) [][]Coord {
	if len(cells) == 0 {
		return nil
	}

	set := make(map[Coord]bool, len(cells))
	for _, c := range cells {
		set[c] = true
	}
	visited := make(map[Coord]bool, len(cells))

	var groups [][]Coord
	for _, start := range cells {
		if visited[start] {
			continue
		}
		var group []Coord
		stack := []Coord{start}
		visited[start] = true
		for len(stack) > 0 {
			c := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			group = append(group, c)
			for _, n := range [4]Coord{
				{X: c.X - 1, Y: c.Y},
				{X: c.X + 1, Y: c.Y},
				{X: c.X, Y: c.Y - 1},
				{X: c.X, Y: c.Y + 1},
			} {
				if set[n] && !visited[n] {
					visited[n] = true
					stack = append(stack, n)
				}
			}
		}
		groups = append(groups, group)
	}
	return groups
}
