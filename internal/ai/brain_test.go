package ai

import (
	"testing"

	"github.com/panelpop/panelpop/internal/config"
	"github.com/panelpop/panelpop/internal/grid"
)

// stillSession builds a session with an empty, non-rising board so tests
// can lay out tiles by hand.
func stillSession() *grid.Session {
	cfg := config.DefaultGameConfig()
	cfg.Grid.InitialFillRows = 0
	cfg.Rise.Speed = 0
	return grid.NewSession(&cfg, 42)
}

// exactSettings disables every random and weighted adjustment so scores
// are predictable.
func exactSettings() config.DifficultySettings {
	return config.DifficultySettings{
		ReactionSeconds: 0.1,
		InputsPerSecond: 4,
		MaxLookahead:    1,
		MinSwapScore:    10,
	}
}

func TestBrainFindsSimpleThreeMatch(t *testing.T) {
	s := stillSession()
	b := s.Board()
	b.SetTile(0, 11, 1)
	b.SetTile(1, 11, 1)
	b.SetTile(3, 11, 1)
	b.SetTile(2, 11, 2)
	br := NewBrain(s, exactSettings(), 3, 7)

	c, ok := br.FindBestSwap(false)
	if !ok {
		t.Fatalf("no candidate found for an obvious match")
	}
	if c.X != 2 || c.Y != 11 {
		t.Errorf("candidate at (%d,%d), want (2,11)", c.X, c.Y)
	}
	if c.ImmediateMatches != 3 {
		t.Errorf("immediate matches = %d, want 3", c.ImmediateMatches)
	}
	if c.Score != 30 {
		t.Errorf("score = %v, want 30", c.Score)
	}
}

func TestBrainFourMatchBaseScore(t *testing.T) {
	s := stillSession()
	b := s.Board()
	// Column 2 holds a broken vertical run; swapping a 1 into (2,9)
	// completes four in a column.
	b.SetTile(2, 8, 1)
	b.SetTile(2, 9, 3)
	b.SetTile(2, 10, 1)
	b.SetTile(2, 11, 1)
	b.SetTile(3, 9, 1)
	br := NewBrain(s, exactSettings(), 3, 7)

	c, ok := br.FindBestSwap(false)
	if !ok {
		t.Fatalf("no candidate found")
	}
	if c.X != 2 || c.Y != 9 {
		t.Fatalf("candidate at (%d,%d), want (2,9)", c.X, c.Y)
	}
	if c.ImmediateMatches != 4 {
		t.Errorf("immediate matches = %d, want 4", c.ImmediateMatches)
	}
	// 4 tiles x 10 plus the >=4 tier bonus.
	if c.Score != 55 {
		t.Errorf("score = %v, want 55", c.Score)
	}
}

func TestBrainDoubleCountsCrossMatches(t *testing.T) {
	s := stillSession()
	b := s.Board()
	// Swapping a 1 into (2,10) completes a horizontal and a vertical run
	// through the same cell; both full run lengths count.
	b.SetTile(0, 10, 1)
	b.SetTile(1, 10, 1)
	b.SetTile(2, 10, 4)
	b.SetTile(3, 10, 1)
	b.SetTile(2, 8, 1)
	b.SetTile(2, 9, 1)
	br := NewBrain(s, exactSettings(), 3, 7)

	c, ok := br.FindBestSwap(false)
	if !ok {
		t.Fatalf("no candidate found")
	}
	if c.X != 2 || c.Y != 10 {
		t.Fatalf("candidate at (%d,%d), want (2,10)", c.X, c.Y)
	}
	if c.ImmediateMatches != 6 {
		t.Errorf("immediate matches = %d, want 6 (3 horizontal + 3 vertical)", c.ImmediateMatches)
	}
	// 6x10 plus cumulative tier bonuses 15+25+40.
	if c.Score != 140 {
		t.Errorf("score = %v, want 140", c.Score)
	}
}

func TestBrainNoCandidateOnEmptyBoard(t *testing.T) {
	s := stillSession()
	br := NewBrain(s, exactSettings(), 3, 7)

	if _, ok := br.FindBestSwap(false); ok {
		t.Errorf("candidate returned on an empty board")
	}
}

func TestBrainPrunesIdenticalPairs(t *testing.T) {
	s := stillSession()
	b := s.Board()
	b.SetTile(2, 11, 1)
	b.SetTile(3, 11, 1)
	settings := exactSettings()
	settings.MinSwapScore = -1000
	br := NewBrain(s, settings, 3, 7)

	c, ok := br.FindBestSwap(false)
	if ok && c.X == 2 && c.Y == 11 {
		t.Errorf("identical-pair swap not pruned: %+v", c)
	}
}

func TestBrainDangerZoneAdjustments(t *testing.T) {
	s := stillSession()
	b := s.Board()
	// A completable run inside the 3-row danger zone.
	b.SetTile(0, 2, 1)
	b.SetTile(1, 2, 1)
	b.SetTile(3, 2, 1)
	b.SetTile(2, 2, 2)
	settings := exactSettings()
	settings.SafetyWeight = 1
	br := NewBrain(s, settings, 3, 7)

	c, ok := br.FindBestSwap(false)
	if !ok {
		t.Fatalf("no candidate found")
	}
	if c.Score != 55 {
		t.Errorf("danger-zone match score = %v, want 30 + 25", c.Score)
	}
	if !c.InDangerZone {
		t.Errorf("candidate not flagged as inside the danger zone")
	}
}

func TestBrainPenalizesWastedMovesInDanger(t *testing.T) {
	s := stillSession()
	b := s.Board()
	b.SetTile(1, 2, 1)
	b.SetTile(2, 2, 2)
	settings := exactSettings()
	settings.SafetyWeight = 1
	settings.MinSwapScore = -1000
	br := NewBrain(s, settings, 3, 7)

	c, ok := br.FindBestSwap(false)
	if !ok {
		t.Fatalf("no candidate found")
	}
	if c.ImmediateMatches != 0 {
		t.Fatalf("unexpected match found: %+v", c)
	}
	if c.Score != -10 {
		t.Errorf("wasted-move score = %v, want -10", c.Score)
	}
}

func TestBrainGarbageClearingBonus(t *testing.T) {
	s := stillSession()
	b := s.Board()
	b.SetTile(0, 11, 1)
	b.SetTile(1, 11, 1)
	b.SetTile(3, 11, 1)
	b.SetTile(2, 11, 2)
	s.Garbage().QueueGarbage(1)
	s.Update(1.0 / 60) // slab lands at (1..3, 10)
	settings := exactSettings()
	settings.GarbageClearingWeight = 1
	br := NewBrain(s, settings, 3, 7)

	c, ok := br.FindBestSwap(false)
	if !ok {
		t.Fatalf("no candidate found")
	}
	if c.Score != 60 {
		t.Errorf("score = %v, want 30 + 30 garbage bonus", c.Score)
	}
	if !c.ClearsGarbage {
		t.Errorf("candidate not flagged as clearing garbage")
	}
	if c.InDangerZone {
		t.Errorf("bottom-row candidate flagged as in the danger zone")
	}
}

func TestBrainChainEstimateAddsBonus(t *testing.T) {
	s := stillSession()
	b := s.Board()
	b.SetTile(0, 11, 1)
	b.SetTile(1, 11, 1)
	b.SetTile(3, 11, 1)
	b.SetTile(2, 11, 2)
	// Two overhanging tiles with gaps below, within the scan window.
	b.SetTile(1, 8, 3)
	b.SetTile(3, 7, 4)
	settings := exactSettings()
	settings.MaxLookahead = 4
	settings.SetupVsGreedBias = 1
	settings.AggressionBias = 1
	br := NewBrain(s, settings, 3, 7)

	c, ok := br.FindBestSwap(false)
	if !ok {
		t.Fatalf("no candidate found")
	}
	if c.ChainDepth != 2 {
		t.Errorf("chain depth = %d, want 2", c.ChainDepth)
	}
	if c.GarbageSent != 1 {
		t.Errorf("garbage estimate = %d, want 1", c.GarbageSent)
	}
	// 30 base + 2x20 chain bonus + 1x5 garbage estimate.
	if c.Score != 75 {
		t.Errorf("score = %v, want 75", c.Score)
	}
}

func TestChainDepthBuckets(t *testing.T) {
	cases := []struct{ potential, want int }{
		{0, 1}, {1, 1}, {2, 2}, {3, 2}, {4, 3}, {5, 3}, {6, 4}, {9, 4},
	}
	for _, c := range cases {
		if got := chainDepthFor(c.potential); got != c.want {
			t.Errorf("chainDepthFor(%d) = %d, want %d", c.potential, got, c.want)
		}
	}
}

func TestBrainSetupValue(t *testing.T) {
	s := stillSession()
	b := s.Board()
	// Swapping (2,11) right parks the 1 next to a lone same-colored tile.
	b.SetTile(2, 11, 1)
	b.SetTile(4, 11, 1)
	settings := exactSettings()
	settings.SetupVsGreedBias = 1
	settings.MinSwapScore = 1
	br := NewBrain(s, settings, 3, 7)

	c, ok := br.FindBestSwap(false)
	if !ok {
		t.Fatalf("no setup candidate found")
	}
	if c.X != 2 || c.Y != 11 || c.ImmediateMatches != 0 {
		t.Fatalf("candidate = %+v, want setup swap at (2,11)", c)
	}
	if c.Score != 5 {
		t.Errorf("setup score = %v, want 5", c.Score)
	}

	// The same swap is worthless while panicking.
	if _, ok := br.FindBestSwap(true); ok {
		t.Errorf("setup swap selected under panic")
	}
}

func TestBrainMissesObviousMatchWhenConfigured(t *testing.T) {
	s := stillSession()
	b := s.Board()
	b.SetTile(0, 11, 1)
	b.SetTile(1, 11, 1)
	b.SetTile(3, 11, 1)
	b.SetTile(2, 11, 2)
	b.SetTile(5, 8, 4) // harmless extra material for weak candidates
	settings := exactSettings()
	settings.MinSwapScore = -1000
	settings.MissObviousMatchChance = 1
	br := NewBrain(s, settings, 3, 7)

	for i := 0; i < 10; i++ {
		c, ok := br.FindBestSwap(false)
		if !ok {
			t.Fatalf("no candidate found")
		}
		if c.ImmediateMatches != 0 {
			t.Fatalf("top candidate was not dropped: %+v", c)
		}
	}
}

func TestBrainOnlyReturnsLegalSwaps(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.Rise.Speed = 0
	s := grid.NewSession(&cfg, 9)
	settings := exactSettings()
	settings.MinSwapScore = -1000
	settings.SuboptimalMoveChance = 0.5
	settings.MissObviousMatchChance = 0.3
	br := NewBrain(s, settings, 3, 7)

	for i := 0; i < 100; i++ {
		c, ok := br.FindBestSwap(i%2 == 0)
		if !ok {
			t.Fatalf("no candidate on a half-filled board")
		}
		if !s.Swapper().CanSwapAt(c.X, c.Y) {
			t.Fatalf("brain returned an illegal swap at (%d,%d)", c.X, c.Y)
		}
	}
}
