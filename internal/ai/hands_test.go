package ai

import (
	"testing"

	"github.com/panelpop/panelpop/internal/grid"
)

func TestHandsWalksHorizontalBeforeVertical(t *testing.T) {
	s := stillSession()
	h := NewHands(s, exactSettings(), 7) // 4 inputs per second
	cursor := s.Cursor()
	cursor.X, cursor.Y = 1, 4

	h.ExecuteSwap(grid.Coord{X: 3, Y: 6}, false)
	if !h.Busy() {
		t.Fatalf("hands idle right after ExecuteSwap")
	}

	type pos struct{ x, y int }
	var path []pos
	for i := 0; i < 20 && h.Busy(); i++ {
		h.Update(0.25)
		path = append(path, pos{cursor.X, cursor.Y})
	}

	want := []pos{{2, 4}, {3, 4}, {3, 5}, {3, 6}, {3, 6}}
	if len(path) < len(want) {
		t.Fatalf("path too short: %v", path)
	}
	for i, w := range want {
		if path[i] != w {
			t.Fatalf("step %d at %v, want %v (path %v)", i, path[i], w, path)
		}
	}
	if h.Busy() {
		t.Errorf("hands still busy after reaching the target")
	}
}

func TestHandsFiresSwapOnArrival(t *testing.T) {
	s := stillSession()
	b := s.Board()
	b.SetTile(2, 11, 1)
	b.SetTile(3, 11, 2)
	h := NewHands(s, exactSettings(), 7)
	s.Cursor().X, s.Cursor().Y = 2, 11

	h.ExecuteSwap(grid.Coord{X: 2, Y: 11}, false)
	h.Update(0.25) // already on target: the single input is the swap

	if h.Busy() {
		t.Fatalf("hands busy after firing the swap")
	}
	if b.TileTypeAt(2, 11) != 2 || b.TileTypeAt(3, 11) != 1 {
		t.Errorf("swap never fired: %d %d", b.TileTypeAt(2, 11), b.TileTypeAt(3, 11))
	}
}

func TestHandsInputPacing(t *testing.T) {
	s := stillSession()
	h := NewHands(s, exactSettings(), 7)
	cursor := s.Cursor()
	cursor.X, cursor.Y = 0, 6

	h.ExecuteSwap(grid.Coord{X: 4, Y: 6}, false)
	// A tick shorter than the input interval moves nothing.
	h.Update(0.1)
	if cursor.X != 0 {
		t.Errorf("input fired before the rate interval elapsed")
	}
	// One long tick affords several inputs at once.
	h.Update(0.75)
	if cursor.X != 3 {
		t.Errorf("cursor x = %d after 3 intervals, want 3", cursor.X)
	}
}

func TestHandsPanicSpeedsInputs(t *testing.T) {
	s := stillSession()
	settings := exactSettings()
	settings.PanicSpeedMultiplier = 2
	h := NewHands(s, settings, 7)
	cursor := s.Cursor()
	cursor.X, cursor.Y = 0, 6

	h.ExecuteSwap(grid.Coord{X: 4, Y: 6}, true)
	h.Update(0.25) // two inputs at the doubled rate
	if cursor.X != 2 {
		t.Errorf("cursor x = %d under panic pacing, want 2", cursor.X)
	}
}

func TestHandsHesitationDelaysFirstInput(t *testing.T) {
	s := stillSession()
	settings := exactSettings()
	settings.HesitationChance = 1
	settings.MaxHesitationSeconds = 0.5
	h := NewHands(s, settings, 7)
	cursor := s.Cursor()
	startX := cursor.X

	h.ExecuteSwap(grid.Coord{X: startX + 2, Y: cursor.Y}, false)
	if h.State() != HandsHesitating {
		t.Fatalf("state = %v, want hesitating", h.State())
	}

	// Hesitation is bounded, so this always clears it.
	h.Update(0.5)
	for i := 0; i < 10 && cursor.X == startX; i++ {
		h.Update(0.25)
	}
	if cursor.X == startX {
		t.Errorf("no input ever fired after hesitation")
	}
}

func TestHandsPanicSkipsHesitation(t *testing.T) {
	s := stillSession()
	settings := exactSettings()
	settings.HesitationChance = 1
	settings.MaxHesitationSeconds = 0.5
	h := NewHands(s, settings, 7)

	h.ExecuteSwap(grid.Coord{X: 0, Y: 0}, true)
	if h.State() != HandsExecuting {
		t.Errorf("state = %v under panic, want executing", h.State())
	}
}

func TestHandsCancelPlanIsIdempotent(t *testing.T) {
	s := stillSession()
	h := NewHands(s, exactSettings(), 7)
	cursor := s.Cursor()
	startX := cursor.X

	h.CancelPlan() // cancel with no plan is fine
	h.ExecuteSwap(grid.Coord{X: startX + 3, Y: cursor.Y}, false)
	h.CancelPlan()
	h.CancelPlan()

	if h.Busy() {
		t.Fatalf("hands busy after cancel")
	}
	h.Update(1.0)
	if cursor.X != startX {
		t.Errorf("cancelled plan still moved the cursor")
	}
}
