// Package ai implements the computer opponent: a heuristic swap evaluator
// (Brain) and an input pacing layer (Hands) that feeds the chosen move to
// the simulation through the same action vocabulary a human player uses.
package ai

import (
	"math/rand"
	"sort"

	"github.com/panelpop/panelpop/internal/config"
	"github.com/panelpop/panelpop/internal/grid"
)

// SwapCandidate is one evaluated swap position with its heuristic score.
type SwapCandidate struct {
	X, Y             int
	Score            float64
	ImmediateMatches int
	ChainDepth       int
	GarbageSent      int
	ClearsGarbage    bool // Match sits adjacent to a garbage block
	InDangerZone     bool // Swap row is inside the danger zone
}

// Brain enumerates every legal swap on a stable board and scores it by
// immediate match value, estimated cascade depth, garbage pressure, danger
// handling and setup play, weighted by the difficulty settings.
type Brain struct {
	session    *grid.Session
	settings   config.DifficultySettings
	dangerRows int
	rng        *rand.Rand
}

func NewBrain(s *grid.Session, settings config.DifficultySettings, dangerRows int, seed int64) *Brain {
	return &Brain{
		session:    s,
		settings:   settings,
		dangerRows: dangerRows,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// FindBestSwap evaluates the whole board and returns the selected swap
// target. The boolean is false when no candidate clears the configured
// minimum score. Must only be called on a stable board.
func (br *Brain) FindBestSwap(panicking bool) (SwapCandidate, bool) {
	board := br.session.Board()
	swapper := br.session.Swapper()

	var candidates []SwapCandidate
	for y := 0; y < board.Height(); y++ {
		for x := 0; x <= board.Width()-2; x++ {
			if !swapper.CanSwapAt(x, y) {
				continue
			}
			// Swapping identical tiles can never form a new run.
			if board.TileTypeAt(x, y) == board.TileTypeAt(x+1, y) {
				continue
			}
			c := br.evaluate(x, y, panicking)
			if c.Score >= br.settings.MinSwapScore {
				candidates = append(candidates, c)
			}
		}
	}
	if len(candidates) == 0 {
		return SwapCandidate{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	// Humanization: sometimes overlook the best move entirely, and
	// sometimes play a deliberately weaker one.
	if len(candidates) >= 2 && br.rng.Float64() < br.settings.MissObviousMatchChance {
		candidates = candidates[1:]
	}
	idx := 0
	if len(candidates) > 1 && br.rng.Float64() < br.settings.EffectiveMistakeChance(panicking) {
		span := len(candidates) - 1
		if span > 4 {
			span = 4
		}
		idx = 1 + br.rng.Intn(span)
	}
	return candidates[idx], true
}

// evaluate scores the swap at (x, y) without mutating the board.
func (br *Brain) evaluate(x, y int, panicking bool) SwapCandidate {
	board := br.session.Board()
	s := br.settings

	// Post-swap type lookup: the two window cells exchange contents,
	// everything else reads straight from the board.
	leftType := board.TileTypeAt(x, y)
	rightType := board.TileTypeAt(x+1, y)
	typeAt := func(cx, cy int) grid.TileType {
		if cy == y {
			if cx == x {
				return rightType
			}
			if cx == x+1 {
				return leftType
			}
		}
		return board.TileTypeAt(cx, cy)
	}

	// Horizontal and vertical runs are counted independently per swapped
	// cell; a tile sitting in both an H and a V run contributes twice.
	matchCount := 0
	for _, cx := range []int{x, x + 1} {
		t := typeAt(cx, y)
		if t == grid.TileNone {
			continue
		}
		if h := runLength(typeAt, cx, y, 1, 0, t); h >= 3 {
			matchCount += h
		}
		if v := runLength(typeAt, cx, y, 0, 1, t); v >= 3 {
			matchCount += v
		}
	}

	score := float64(matchCount * 10)
	if matchCount >= 4 {
		score += 15
	}
	if matchCount >= 5 {
		score += 25
	}
	if matchCount >= 6 {
		score += 40
	}

	chainDepth := 1
	garbageSent := 0
	lookahead := s.EffectiveLookahead(panicking)
	if lookahead > 1 && matchCount >= 3 {
		chainDepth = chainDepthFor(br.cascadePotential(x, y))
		if chainDepth > lookahead {
			chainDepth = lookahead
		}
		if chainDepth > 1 {
			score += float64(chainDepth) * 20 * s.SetupVsGreedBias
		}
		garbageSent = grid.GarbageForMatch(matchCount, chainDepth)
		if garbageSent > 0 {
			score += float64(garbageSent) * 5 * s.AggressionBias
		}
	}

	clearsGarbage := matchCount >= 3 && br.nearGarbage(x, y)
	if clearsGarbage {
		score += 30 * s.GarbageClearingWeight
	}

	inDanger := y < br.dangerRows
	if inDanger && matchCount >= 3 {
		score += 25 * s.SafetyWeight
	}
	if inDanger && matchCount == 0 {
		score -= 10 * s.SafetyWeight
	}

	// Setup play: a no-match swap that parks a tile next to exactly one
	// partner of its own color is worth a little patience.
	if matchCount == 0 && s.SetupVsGreedBias > 0.3 && !panicking {
		if rightType != grid.TileNone && pairsUp(typeAt, x, y, x+1, rightType) {
			score += 5 * s.SetupVsGreedBias
		}
		if leftType != grid.TileNone && pairsUp(typeAt, x+1, y, x, leftType) {
			score += 5 * s.SetupVsGreedBias
		}
	}

	return SwapCandidate{
		X:                x,
		Y:                y,
		Score:            score,
		ImmediateMatches: matchCount,
		ChainDepth:       chainDepth,
		GarbageSent:      garbageSent,
		ClearsGarbage:    clearsGarbage,
		InDangerZone:     inDanger,
	}
}

// cascadePotential counts occupied non-garbage cells with a gap directly
// below them, in the five rows above the swap and within two columns of
// the swap window. It is a rough chain predictor, not a board simulation.
func (br *Brain) cascadePotential(x, y int) int {
	board := br.session.Board()
	count := 0
	for cx := x - 2; cx <= x+3; cx++ {
		for cy := y - 5; cy < y; cy++ {
			if !board.InBounds(cx, cy) {
				continue
			}
			if board.IsTile(cx, cy) && board.IsEmpty(cx, cy+1) {
				count++
			}
		}
	}
	return count
}

// chainDepthFor buckets cascade potential into an estimated chain depth.
// The thresholds are tuned, not derived.
func chainDepthFor(potential int) int {
	switch {
	case potential >= 6:
		return 4
	case potential >= 4:
		return 3
	case potential >= 2:
		return 2
	default:
		return 1
	}
}

// nearGarbage reports whether the swap window touches an active garbage
// block on any of its six outer neighbors.
func (br *Brain) nearGarbage(x, y int) bool {
	board := br.session.Board()
	offsets := [6][2]int{
		{x - 1, y}, {x + 2, y},
		{x, y - 1}, {x, y + 1},
		{x + 1, y - 1}, {x + 1, y + 1},
	}
	for _, o := range offsets {
		if board.IsGarbage(o[0], o[1]) {
			return true
		}
	}
	return false
}

// pairsUp reports whether a tile of type t placed at (cx, cy) would sit
// next to exactly one tile of its own color, ignoring the other swap cell
// at (ox, cy).
func pairsUp(typeAt func(int, int) grid.TileType, cx, cy, ox int, t grid.TileType) bool {
	same := 0
	neighbors := [4][2]int{{cx - 1, cy}, {cx + 1, cy}, {cx, cy - 1}, {cx, cy + 1}}
	for _, n := range neighbors {
		if n[0] == ox && n[1] == cy {
			continue
		}
		if typeAt(n[0], n[1]) == t {
			same++
		}
	}
	return same == 1
}

// runLength counts the maximal run of type t through (x, y) along the
// given axis, using the post-swap type lookup.
func runLength(typeAt func(int, int) grid.TileType, x, y, dx, dy int, t grid.TileType) int {
	n := 1
	for cx, cy := x-dx, y-dy; typeAt(cx, cy) == t; cx, cy = cx-dx, cy-dy {
		n++
	}
	for cx, cy := x+dx, y+dy; typeAt(cx, cy) == t; cx, cy = cx+dx, cy+dy {
		n++
	}
	return n
}
