package grid

import (
	"testing"
)

func newTestSwapper(b *Board) (*Swapper, *Processor, *Scorer) {
	scorer := &Scorer{}
	p := NewProcessor(b, testTiming(), scorer, nil)
	return NewSwapper(b, p, testTiming()), p, scorer
}

func TestTrySwapExchangesTiles(t *testing.T) {
	b := emptyBoard(6, 12)
	b.SetTile(2, 11, 1)
	b.SetTile(3, 11, 2)
	s, _, _ := newTestSwapper(b)

	if res := s.TrySwap(2, 11); res != SwapOK {
		t.Fatalf("swap rejected: %v", res)
	}
	if b.TileTypeAt(2, 11) != 2 || b.TileTypeAt(3, 11) != 1 {
		t.Errorf("logical occupancy not swapped: %d %d", b.TileTypeAt(2, 11), b.TileTypeAt(3, 11))
	}
	if b.AnimAt(2, 11) != AnimSwapping || b.AnimAt(3, 11) != AnimSwapping {
		t.Errorf("swapped cells not locked for the animation")
	}
	if !s.IsSwapping() {
		t.Errorf("IsSwapping false right after a swap")
	}

	s.Update(0.2)
	if s.IsSwapping() {
		t.Errorf("swap animation never completed")
	}
	if b.AnimAt(2, 11) != AnimIdle || b.AnimAt(3, 11) != AnimIdle {
		t.Errorf("locks not released after the animation")
	}
}

func TestTrySwapWithEmptyCell(t *testing.T) {
	b := emptyBoard(6, 12)
	b.SetTile(2, 11, 1)
	s, _, _ := newTestSwapper(b)

	if res := s.TrySwap(2, 11); res != SwapOK {
		t.Fatalf("swap with empty neighbor rejected: %v", res)
	}
	if !b.IsEmpty(2, 11) || b.TileTypeAt(3, 11) != 1 {
		t.Errorf("tile did not move into the empty cell")
	}
}

func TestTrySwapRejectsOutOfBounds(t *testing.T) {
	b := emptyBoard(6, 12)
	s, _, _ := newTestSwapper(b)

	for _, c := range []Coord{{X: -1, Y: 5}, {X: 5, Y: 5}, {X: 2, Y: -1}, {X: 2, Y: 12}} {
		if res := s.TrySwap(c.X, c.Y); res != RejectOutOfBounds {
			t.Errorf("TrySwap(%d,%d) = %v, want out-of-bounds", c.X, c.Y, res)
		}
	}
}

func TestTrySwapRejectsGarbage(t *testing.T) {
	b := emptyBoard(6, 12)
	b.SetTile(2, 11, 1)
	*b.cellAt(3, 11) = Cell{Kind: KindGarbage, Type: TileNone, Garbage: 1}
	s, _, _ := newTestSwapper(b)

	if res := s.TrySwap(2, 11); res != RejectGarbage {
		t.Errorf("swap into garbage = %v, want garbage rejection", res)
	}
}

func TestTrySwapRejectsProcessingCells(t *testing.T) {
	b := emptyBoard(6, 12)
	for x := 0; x < 3; x++ {
		b.SetTile(x, 11, 1)
	}
	b.SetTile(3, 11, 2)
	s, p, _ := newTestSwapper(b)
	p.Resolve()

	if res := s.TrySwap(2, 11); res != RejectProcessing {
		t.Errorf("swap through a clearing cell = %v, want processing rejection", res)
	}
	// A swap not touching the locked cells is fine.
	if res := s.TrySwap(3, 10); res != SwapOK {
		t.Errorf("unrelated swap = %v, want ok", res)
	}
}

func TestTrySwapCooldownAfterRejection(t *testing.T) {
	b := emptyBoard(6, 12)
	b.SetTile(2, 11, 1)
	*b.cellAt(3, 11) = Cell{Kind: KindGarbage, Type: TileNone, Garbage: 1}
	s, _, _ := newTestSwapper(b)

	if res := s.TrySwap(2, 11); res != RejectGarbage {
		t.Fatalf("swap into garbage = %v, want garbage rejection", res)
	}
	// The declined attempt put both cells on cooldown; a pair sharing
	// one of them is blocked too.
	if res := s.TrySwap(1, 11); res != RejectCooldown {
		t.Errorf("swap against a cooled cell = %v, want cooldown rejection", res)
	}
	s.Update(0.25)
	if res := s.TrySwap(1, 11); res != SwapOK {
		t.Errorf("swap after cooldown = %v, want ok", res)
	}
}

func TestSwapBackAfterAnimation(t *testing.T) {
	b := emptyBoard(6, 12)
	b.SetTile(2, 11, 1)
	b.SetTile(3, 11, 2)
	s, _, _ := newTestSwapper(b)

	if res := s.TrySwap(2, 11); res != SwapOK {
		t.Fatalf("swap rejected: %v", res)
	}
	s.Update(0.11) // animation done

	// Successful swaps carry no cooldown: swapping straight back is legal.
	if res := s.TrySwap(2, 11); res != SwapOK {
		t.Fatalf("swap-back = %v, want ok", res)
	}
	s.Update(0.11)
	if b.TileTypeAt(2, 11) != 1 || b.TileTypeAt(3, 11) != 2 {
		t.Errorf("swap-back did not restore the pair: %d %d",
			b.TileTypeAt(2, 11), b.TileTypeAt(3, 11))
	}
}

func TestSwapCompletionResolvesMatches(t *testing.T) {
	b := emptyBoard(6, 12)
	b.SetTile(0, 11, 1)
	b.SetTile(1, 11, 1)
	b.SetTile(3, 11, 1)
	b.SetTile(2, 11, 2)
	s, p, scorer := newTestSwapper(b)

	if res := s.TrySwap(2, 11); res != SwapOK {
		t.Fatalf("swap rejected: %v", res)
	}
	s.Update(0.11)

	if !p.Busy() {
		t.Fatalf("completed swap did not trigger match resolution")
	}
	p.RunToCompletion()
	if scorer.Score() != 30 {
		t.Errorf("score = %d, want 30", scorer.Score())
	}
}

func TestSwapOverHoleDropsTileThenMatches(t *testing.T) {
	b := emptyBoard(6, 12)
	// Swapping (3,10) left puts the tile over the bottom-row gap; it
	// must land before the run can complete.
	b.SetTile(0, 11, 1)
	b.SetTile(1, 11, 1)
	b.SetTile(3, 10, 1)
	s, p, scorer := newTestSwapper(b)

	if res := s.TrySwap(2, 10); res != SwapOK {
		t.Fatalf("swap rejected: %v", res)
	}
	s.Update(0.11)

	// The tile is mid-fall: the processor waits for it to land.
	if p.State() != ProcDropping {
		t.Fatalf("processor state = %v, want dropping", p.State())
	}
	b.CompleteFalls()
	p.Update(1.0 / 60)
	p.RunToCompletion()

	if scorer.Score() != 30 {
		t.Errorf("score = %d, want 30", scorer.Score())
	}
}

func TestBlockSlipRedirectsFallingTile(t *testing.T) {
	b := emptyBoard(6, 12)
	b.SetTile(0, 11, 1) // stationary tile to slide right
	b.SetTile(1, 11, 2) // falling, just started
	b.falling = append(b.falling, FallingTile{Type: 2, X: 1, FromY: 3, ToY: 11})
	b.setAnim(1, 11, AnimDropping)
	s, _, _ := newTestSwapper(b)

	if res := s.TrySwap(0, 11); res != SwapOK {
		t.Fatalf("slip swap rejected: %v", res)
	}
	if b.TileTypeAt(1, 11) != 1 {
		t.Errorf("stationary tile did not slip into the landing cell")
	}
	if b.TileTypeAt(1, 10) != 2 {
		t.Errorf("falling tile not redirected one row up")
	}
	ft, ok := b.FallingInto(1, 10)
	if !ok || ft.Type != 2 {
		t.Errorf("falling record not retargeted: %+v ok=%v", ft, ok)
	}
}

func TestBlockSlipClosedWindowRejected(t *testing.T) {
	b := emptyBoard(6, 12)
	b.SetTile(0, 11, 1)
	b.SetTile(1, 11, 2)
	b.falling = append(b.falling, FallingTile{Type: 2, X: 1, FromY: 3, ToY: 11, Progress: 7.8})
	b.setAnim(1, 11, AnimDropping)
	s, _, _ := newTestSwapper(b)

	if res := s.TrySwap(0, 11); res != RejectAnimating {
		t.Errorf("slip with closed window = %v, want animating rejection", res)
	}
	if b.TileTypeAt(0, 11) != 1 || b.TileTypeAt(1, 11) != 2 {
		t.Errorf("rejected slip mutated the board")
	}
}

func TestBlockSlipAtTopRejectedAtomically(t *testing.T) {
	b := emptyBoard(6, 12)
	b.SetTile(0, 0, 1)
	b.SetTile(1, 0, 2)
	b.falling = append(b.falling, FallingTile{Type: 2, X: 1, FromY: -1, ToY: 0})
	b.setAnim(1, 0, AnimDropping)
	s, _, _ := newTestSwapper(b)

	if res := s.TrySwap(0, 0); res != RejectAnimating {
		t.Fatalf("slip past the grid top = %v, want animating rejection", res)
	}
	if b.TileTypeAt(0, 0) != 1 || b.TileTypeAt(1, 0) != 2 {
		t.Errorf("rejected slip mutated the board")
	}
	if b.AnimAt(1, 0) != AnimDropping {
		t.Errorf("rejected slip changed animation state")
	}
}

func TestCanSwapAtMatchesTrySwap(t *testing.T) {
	b := emptyBoard(6, 12)
	b.SetTile(2, 11, 1)
	b.SetTile(3, 11, 2)
	*b.cellAt(5, 11) = Cell{Kind: KindGarbage, Type: TileNone, Garbage: 1}
	s, _, _ := newTestSwapper(b)

	if !s.CanSwapAt(2, 11) {
		t.Errorf("CanSwapAt false for a legal swap")
	}
	if s.CanSwapAt(4, 11) {
		t.Errorf("CanSwapAt true next to garbage")
	}
	if s.CanSwapAt(-1, 0) {
		t.Errorf("CanSwapAt true out of bounds")
	}
}
