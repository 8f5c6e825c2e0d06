package grid

import "github.com/panelpop/panelpop/internal/config"

// SwapResult classifies the outcome of a swap attempt.
type SwapResult int

const (
	SwapOK SwapResult = iota
	RejectOutOfBounds
	RejectGarbage
	RejectProcessing
	RejectCooldown
	RejectAnimating
)

func (r SwapResult) String() string {
	switch r {
	case SwapOK:
		return "ok"
	case RejectOutOfBounds:
		return "out-of-bounds"
	case RejectGarbage:
		return "garbage"
	case RejectProcessing:
		return "processing"
	case RejectCooldown:
		return "cooldown"
	case RejectAnimating:
		return "animating"
	default:
		return "unknown"
	}
}

type activeSwap struct {
	x, y  int
	timer float64
}

// slipPlan records a falling tile that must be redirected one row up so the
// stationary neighbor can slide into its landing cell.
type slipPlan struct {
	x, y int
}

// Swapper executes horizontal swaps at cursor positions. A swap exchanges
// (x,y) and (x+1,y), animates for the configured duration, then re-settles
// the columns and hands any new matches to the processor.
type Swapper struct {
	board     *Board
	proc      *Processor
	timing    config.TimingConfig
	events    EventSink
	cooldowns map[Coord]float64
	active    []activeSwap
}

func NewSwapper(b *Board, proc *Processor, timing config.TimingConfig) *Swapper {
	return &Swapper{
		board:     b,
		proc:      proc,
		timing:    timing,
		events:    NopEventSink{},
		cooldowns: make(map[Coord]float64),
	}
}

func (s *Swapper) SetEventSink(events EventSink) {
	if events == nil {
		events = NopEventSink{}
	}
	s.events = events
}

// IsSwapping reports whether any swap animation is still in flight.
func (s *Swapper) IsSwapping() bool { return len(s.active) > 0 }

// CanSwapAt reports whether a swap at (x,y) would be accepted right now.
// This is the same legality check TrySwap applies, without side effects.
func (s *Swapper) CanSwapAt(x, y int) bool {
	res, _ := s.check(x, y)
	return res == SwapOK
}

// TrySwap attempts to exchange (x,y) and (x+1,y). On success the logical
// occupancy is updated immediately and the visual animation begins; the
// cells stay locked until the animation completes.
func (s *Swapper) TrySwap(x, y int) SwapResult {
	res, slips := s.check(x, y)
	if res != SwapOK {
		s.startCooldown(x, y, res)
		return res
	}

	// Block Slip: a falling tile whose landing cell takes part in the swap
	// is redirected one row up, together with everything stacked above it.
	// If the redirect cannot fit the swap is rejected with the board
	// untouched.
	slipped := len(slips) > 0
	for _, p := range slips {
		if !s.board.redirectFallsAbove(p.x, p.y) {
			s.startCooldown(x, y, RejectAnimating)
			return RejectAnimating
		}
	}

	left := s.board.cellAt(x, y)
	right := s.board.cellAt(x+1, y)
	*left, *right = *right, *left
	if left.Kind == KindTile {
		left.Anim = AnimSwapping
	}
	if right.Kind == KindTile {
		right.Anim = AnimSwapping
	}

	s.active = append(s.active, activeSwap{x: x, y: y, timer: s.timing.SwapSeconds})
	s.events.OnSwap(x, y, slipped)
	return SwapOK
}

// startCooldown puts both attempted cells on cooldown after a declined
// swap. Out-of-bounds attempts touch no cells, and an attempt declined by
// an existing cooldown does not refresh it.
func (s *Swapper) startCooldown(x, y int, res SwapResult) {
	if res == RejectOutOfBounds || res == RejectCooldown {
		return
	}
	s.cooldowns[Coord{X: x, Y: y}] = s.timing.SwapCooldown
	s.cooldowns[Coord{X: x + 1, Y: y}] = s.timing.SwapCooldown
}

// check validates a swap without mutating anything. The returned slip plans
// list falling tiles that would have to be redirected for the swap to land.
func (s *Swapper) check(x, y int) (SwapResult, []slipPlan) {
	if x < 0 || x > s.board.Width()-2 || y < 0 || y >= s.board.Height() {
		return RejectOutOfBounds, nil
	}
	var slips []slipPlan
	for _, cx := range []int{x, x + 1} {
		if s.board.IsGarbage(cx, y) {
			return RejectGarbage, nil
		}
		if s.proc != nil && s.proc.IsProcessing(cx, y) {
			return RejectProcessing, nil
		}
		if s.cooldowns[Coord{X: cx, Y: y}] > 0 {
			return RejectCooldown, nil
		}
		switch s.board.AnimAt(cx, y) {
		case AnimSwapping:
			return RejectAnimating, nil
		case AnimDropping:
			ft, ok := s.board.FallingInto(cx, y)
			if !ok || !ft.SlipWindowOpen() {
				return RejectAnimating, nil
			}
			slips = append(slips, slipPlan{x: cx, y: y})
		}
	}
	// Slipping is only meaningful when the stationary neighbor slides into
	// the vacated cell; two falling cells cannot slip past each other.
	if len(slips) == 2 {
		return RejectAnimating, nil
	}
	return SwapOK, slips
}

// Update advances swap animations and cooldowns. Completed swaps release
// their cell locks, re-settle gravity and kick off match resolution.
func (s *Swapper) Update(dt float64) {
	for c, t := range s.cooldowns {
		t -= dt
		if t <= 0 {
			delete(s.cooldowns, c)
		} else {
			s.cooldowns[c] = t
		}
	}

	if len(s.active) == 0 {
		return
	}
	remaining := s.active[:0]
	finished := false
	for _, sw := range s.active {
		sw.timer -= dt
		if sw.timer > 0 {
			remaining = append(remaining, sw)
			continue
		}
		s.release(sw.x, sw.y)
		s.release(sw.x+1, sw.y)
		finished = true
	}
	s.active = remaining
	if finished {
		moves := DropBoard(s.board)
		s.board.TrackFalls(moves)
		if len(moves) > 0 {
			s.events.OnDrop(moves)
		}
		if s.proc != nil {
			s.proc.ResolveAfterFalls()
		}
	}
}

func (s *Swapper) release(x, y int) {
	if s.board.AnimAt(x, y) == AnimSwapping {
		s.board.setAnim(x, y, AnimIdle)
	}
}
