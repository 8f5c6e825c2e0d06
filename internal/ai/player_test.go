package ai

import (
	"testing"

	"github.com/panelpop/panelpop/internal/grid"
)

func TestPlayerClearsObviousMatch(t *testing.T) {
	s := stillSession()
	b := s.Board()
	b.SetTile(0, 11, 1)
	b.SetTile(1, 11, 1)
	b.SetTile(3, 11, 1)
	b.SetTile(2, 11, 2)
	p := NewPlayer(s, exactSettings(), 3, 7)

	dt := 1.0 / 60
	for i := 0; i < 1200 && s.Score() == 0; i++ {
		p.Update(dt)
		s.Update(dt)
	}

	if s.Score() != 30 {
		t.Errorf("score = %d, want 30 from the planned match", s.Score())
	}
}

func TestPlayerWaitsForStableBoard(t *testing.T) {
	s := stillSession()
	b := s.Board()
	for x := 0; x < 3; x++ {
		b.SetTile(x, 11, 1)
	}
	s.Processor().Resolve() // cascade in flight
	p := NewPlayer(s, exactSettings(), 3, 7)

	p.Update(1.0) // reaction delay expires while the cascade runs
	if p.Hands().Busy() {
		t.Errorf("player planned a move against an unstable board")
	}
}

func TestPlayerPanicDetection(t *testing.T) {
	s := stillSession()
	settings := exactSettings()
	settings.PanicIntensityThreshold = 0.6
	p := NewPlayer(s, settings, 3, 7)

	intensity := 0.0
	p.dangerOf = func() grid.DangerState {
		return grid.DangerState{Level: grid.DangerWarning, Intensity: intensity}
	}

	if p.Panicking() {
		t.Errorf("panicking with zero intensity")
	}
	intensity = 0.7
	if !p.Panicking() {
		t.Errorf("not panicking above the threshold")
	}

	// A zero threshold disables panic instead of always triggering it.
	p.settings.PanicIntensityThreshold = 0
	if p.Panicking() {
		t.Errorf("panicking with panic disabled")
	}
}

func TestPlayerPanicCancelsCalmPlan(t *testing.T) {
	s := stillSession()
	b := s.Board()
	b.SetTile(0, 11, 1)
	b.SetTile(2, 11, 1)
	settings := exactSettings()
	settings.MinSwapScore = -1000
	settings.PanicIntensityThreshold = 0.6
	p := NewPlayer(s, settings, 3, 7)

	intensity := 0.0
	p.dangerOf = func() grid.DangerState {
		return grid.DangerState{Level: grid.DangerWarning, Intensity: intensity}
	}

	// Let the player commit to a calm plan.
	for i := 0; i < 60 && !p.Hands().Busy(); i++ {
		p.Update(1.0 / 60)
	}
	if !p.Hands().Busy() {
		t.Fatalf("player never planned a move")
	}

	intensity = 0.9
	p.Update(1.0 / 60)
	if p.Hands().Busy() && !p.Hands().Panicking() {
		t.Errorf("calm plan survived the panic transition")
	}
}

func TestPlayerFastRisesWhenSafe(t *testing.T) {
	s := stillSession()
	settings := exactSettings()
	settings.FastRiseWhenSafe = true
	p := NewPlayer(s, settings, 3, 7)

	// Empty board: nothing to swap, danger level none, so the AI raises
	// the stack itself. Base rise speed is zero in this session, meaning
	// any spawned row must come from a fast-rise request.
	dt := 1.0 / 60
	for i := 0; i < 180; i++ {
		p.Update(dt)
		s.Update(dt)
	}

	if s.Board().FillRatio() == 0 {
		t.Errorf("AI never fast-raised an empty board")
	}
}

func TestPlayerStopsAfterGameOver(t *testing.T) {
	s := stillSession()
	b := s.Board()
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			b.SetTile(x, y, grid.TileType((x+y)%2)*2)
		}
	}
	cfg := exactSettings()
	p := NewPlayer(s, cfg, 3, 7)

	for i := 0; i < 600 && !s.GameOver(); i++ {
		p.Update(1.0 / 60)
		s.Update(1.0 / 60)
	}
	if !s.GameOver() {
		t.Fatalf("full board never topped out")
	}

	p.Update(1.0)
	if p.Hands().Busy() {
		t.Errorf("AI kept playing a finished game")
	}
}
