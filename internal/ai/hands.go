package ai

import (
	"math/rand"

	"github.com/panelpop/panelpop/internal/config"
	"github.com/panelpop/panelpop/internal/core"
	"github.com/panelpop/panelpop/internal/grid"
)

// HandsState is the input executor's phase.
type HandsState int

const (
	HandsIdle HandsState = iota
	HandsHesitating
	HandsExecuting
)

func (s HandsState) String() string {
	switch s {
	case HandsIdle:
		return "idle"
	case HandsHesitating:
		return "hesitating"
	case HandsExecuting:
		return "executing"
	default:
		return "unknown"
	}
}

// Hands walks the cursor toward a target swap position one input at a
// time, paced by the configured input rate, and fires the swap on arrival.
// Inputs go through the session's normal action handling, so the
// simulation cannot tell the AI apart from a player.
type Hands struct {
	session  *grid.Session
	settings config.DifficultySettings
	rng      *rand.Rand

	state      HandsState
	target     grid.Coord
	panicking  bool
	hesitation float64
	accum      float64
}

func NewHands(s *grid.Session, settings config.DifficultySettings, seed int64) *Hands {
	return &Hands{
		session:  s,
		settings: settings,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// State returns the current phase.
func (h *Hands) State() HandsState { return h.state }

// Busy reports whether a plan is in flight.
func (h *Hands) Busy() bool { return h.state != HandsIdle }

// Panicking reports whether the active plan was made under panic.
func (h *Hands) Panicking() bool { return h.panicking }

// ExecuteSwap starts walking toward the target. A calm AI sometimes
// hesitates before the first input; a panicking one never does.
func (h *Hands) ExecuteSwap(target grid.Coord, panicking bool) {
	h.target = target
	h.panicking = panicking
	h.accum = 0
	h.hesitation = 0
	h.state = HandsExecuting
	if !panicking && h.rng.Float64() < h.settings.HesitationChance {
		h.hesitation = h.rng.Float64() * h.settings.MaxHesitationSeconds
		h.state = HandsHesitating
	}
}

// CancelPlan aborts the current plan. Idempotent and safe in any state.
func (h *Hands) CancelPlan() {
	h.state = HandsIdle
	h.hesitation = 0
	h.accum = 0
}

// Update advances the pacing timers and issues at most the inputs the
// elapsed time affords.
func (h *Hands) Update(dt float64) {
	switch h.state {
	case HandsIdle:
		return
	case HandsHesitating:
		h.hesitation -= dt
		if h.hesitation > 0 {
			return
		}
		h.hesitation = 0
		h.state = HandsExecuting
	}

	h.accum += dt
	interval := 1.0 / h.settings.EffectiveInputRate(h.panicking)
	for h.accum >= interval && h.state == HandsExecuting {
		h.accum -= interval
		h.step()
	}
}

// step issues one input: horizontal movement first, then vertical, then
// the swap itself once the cursor sits on the target.
func (h *Hands) step() {
	cursor := h.session.Cursor()
	switch {
	case cursor.X < h.target.X:
		h.session.HandleAction(core.ActionRight)
	case cursor.X > h.target.X:
		h.session.HandleAction(core.ActionLeft)
	case cursor.Y < h.target.Y:
		h.session.HandleAction(core.ActionDown)
	case cursor.Y > h.target.Y:
		h.session.HandleAction(core.ActionUp)
	default:
		h.session.HandleAction(core.ActionSwap)
		h.CancelPlan()
	}
}
