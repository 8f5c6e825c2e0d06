package ai

import (
	"github.com/panelpop/panelpop/internal/config"
	"github.com/panelpop/panelpop/internal/core"
	"github.com/panelpop/panelpop/internal/grid"
)

// Player drives one session with a Brain and Hands pair: it thinks on a
// reaction-delay timer whenever the board is stable, detects panic from
// the danger intensity and hands the chosen swap to the executor.
type Player struct {
	session  *grid.Session
	brain    *Brain
	hands    *Hands
	settings config.DifficultySettings

	reaction float64

	// dangerOf can be overridden in tests; nil falls back to a crude
	// fill-ratio panic estimate.
	dangerOf func() grid.DangerState
}

func NewPlayer(s *grid.Session, settings config.DifficultySettings, dangerRows int, seed int64) *Player {
	return &Player{
		session:  s,
		brain:    NewBrain(s, settings, dangerRows, seed),
		hands:    NewHands(s, settings, seed+1),
		settings: settings,
		reaction: settings.ReactionSeconds,
		dangerOf: s.Danger,
	}
}

// Brain exposes the evaluator, mainly for inspection and tests.
func (p *Player) Brain() *Brain { return p.brain }

// Hands exposes the input executor.
func (p *Player) Hands() *Hands { return p.hands }

// Update runs one tick of the AI: pacing in-flight inputs, rethinking
// under panic, and planning a new move when the reaction delay expires on
// a stable board.
func (p *Player) Update(dt float64) {
	if p.session.GameOver() {
		return
	}
	panicking := p.Panicking()

	// A plan made in calm conditions is worth redoing once the stack
	// becomes threatening.
	if panicking && p.hands.Busy() && !p.hands.Panicking() {
		p.hands.CancelPlan()
	}

	p.hands.Update(dt)

	p.reaction -= dt
	if p.reaction > 0 {
		return
	}
	if p.hands.Busy() || !p.session.Stable() {
		return
	}
	p.reaction = p.settings.ReactionSeconds

	if candidate, ok := p.brain.FindBestSwap(panicking); ok {
		p.hands.ExecuteSwap(grid.Coord{X: candidate.X, Y: candidate.Y}, panicking)
		return
	}
	// Nothing worth swapping: optionally speed the board up while safe.
	if p.settings.FastRiseWhenSafe && !panicking && p.dangerLevel() == grid.DangerNone {
		p.session.HandleAction(core.ActionRaise)
	}
}

// Panicking reports whether the danger intensity has crossed the panic
// threshold. A non-positive threshold disables panic entirely; otherwise
// intensity 0 on a safe board would satisfy it.
func (p *Player) Panicking() bool {
	if p.dangerOf == nil {
		return p.session.Board().FillRatio() > 0.7
	}
	if p.settings.PanicIntensityThreshold <= 0 {
		return false
	}
	return p.dangerOf().Intensity >= p.settings.PanicIntensityThreshold
}

func (p *Player) dangerLevel() grid.DangerLevel {
	if p.dangerOf == nil {
		return grid.DangerNone
	}
	return p.dangerOf().Level
}
