package grid

import (
	"github.com/panelpop/panelpop/internal/config"
)

// ProcState is the cascade state machine phase.
type ProcState uint8

const (
	ProcIdle ProcState = iota
	ProcClearing
	ProcDropping
)

// Processor sequences clear -> score -> drop -> re-check until no more
// cascades, tracking the combo across the whole cascade. Timing is
// explicit: the blink/pop delay and the fall animation are timer fields
// advanced once per tick.
type Processor struct {
	board  *Board
	timing config.TimingConfig

	score     ScoreSink
	breathing BreathingSink
	attack    AttackSink
	events    EventSink
	garbage   *GarbageField

	state      ProcState
	processing map[Coord]bool
	timer      float64
	pending    [][]Coord
}

// NewProcessor creates a cascade processor over the given board. Nil sinks
// are replaced by no-ops so a partially wired simulation still ticks.
func NewProcessor(b *Board, timing config.TimingConfig, score ScoreSink, breathing BreathingSink) *Processor {
	if score == nil {
		score = &Scorer{}
	}
	if breathing == nil {
		breathing = nopBreathing{}
	}
	return &Processor{
		board:      b,
		timing:     timing,
		score:      score,
		breathing:  breathing,
		events:     NopEventSink{},
		processing: make(map[Coord]bool),
	}
}

// SetEventSink wires the presentation sink.
func (p *Processor) SetEventSink(s EventSink) {
	if s == nil {
		s = NopEventSink{}
	}
	p.events = s
}

// SetAttackSink wires the outgoing-garbage sink.
func (p *Processor) SetAttackSink(s AttackSink) {
	p.attack = s
}

// SetGarbageField wires the garbage registry dissolved by adjacent clears.
func (p *Processor) SetGarbageField(g *GarbageField) {
	p.garbage = g
}

// Busy reports whether a cascade is in flight. The riser and the AI gate
// on this.
func (p *Processor) Busy() bool {
	return p.state != ProcIdle
}

// State returns the current cascade phase.
func (p *Processor) State() ProcState {
	return p.state
}

// Combo returns the current cascade-step counter.
func (p *Processor) Combo() int {
	return p.score.Combo()
}

// IsProcessing reports whether the cell at (x, y) is locked by an active
// clear step. Swaps through these coordinates are rejected; unrelated
// swaps are not blocked.
func (p *Processor) IsProcessing(x, y int) bool {
	return p.processing[Coord{X: x, Y: y}]
}

// Resolve checks the board for matches and starts a cascade if any are
// found. Safe to call at any time; a no-op while a cascade is already in
// flight or when the board is stable.
func (p *Processor) Resolve() {
	if p.state != ProcIdle {
		return
	}
	p.beginStep()
}

// ResolveAfterFalls parks the processor until in-flight falls land, then
// checks for matches. Used after swaps that open holes under tiles, where
// the landed result rather than the mid-air one must be matched.
func (p *Processor) ResolveAfterFalls() {
	if p.state != ProcIdle {
		return
	}
	if p.board.FallingCount() > 0 {
		p.state = ProcDropping
		return
	}
	p.beginStep()
}

// beginStep computes match groups and enters Clearing, or finishes the
// cascade when the board is stable.
func (p *Processor) beginStep() {
	groups := GroupMatches(FindMatches(p.board))
	if len(groups) == 0 {
		if p.score.Combo() > 0 {
			p.score.ResetCombo()
		}
		p.state = ProcIdle
		return
	}

	total := 0
	for _, g := range groups {
		for _, c := range g {
			p.processing[c] = true
		}
		total += len(g)
	}

	// Combo increments once per cascade step regardless of how many
	// separate groups matched in it; scoring and breathing room each see
	// the step total exactly once.
	p.score.AddScore(total)
	combo := p.score.Combo()
	p.breathing.AddBreathingRoom(total)
	if p.attack != nil {
		if blocks := GarbageForMatch(total, combo); blocks > 0 {
			p.attack.OnGarbageSent(blocks)
		}
	}
	if p.garbage != nil {
		all := make([]Coord, 0, total)
		for _, g := range groups {
			all = append(all, g...)
		}
		p.garbage.DissolveAdjacent(all)
	}
	p.events.OnTilesMatched(groups, combo)

	p.pending = groups
	p.timer = p.timing.BlinkSeconds + p.timing.PopPerTileSeconds*float64(total)
	p.state = ProcClearing
}

// finishClearStep removes the matched cells, releases the processing
// locks, then drops. Locks are released before dropping so falling tiles
// are never blocked by already-cleared coordinates.
func (p *Processor) finishClearStep() {
	var cleared []Coord
	for _, g := range p.pending {
		for _, c := range g {
			p.board.ClearCell(c.X, c.Y)
			cleared = append(cleared, c)
		}
	}
	p.pending = nil
	for c := range p.processing {
		delete(p.processing, c)
	}
	p.events.OnTilesCleared(cleared)

	if p.garbage != nil {
		p.garbage.Settle()
	}
	moves := DropBoard(p.board)
	if len(moves) > 0 {
		p.board.TrackFalls(moves)
		p.events.OnDrop(moves)
	}
	p.state = ProcDropping
}

// Update advances the cascade state machine by dt seconds.
func (p *Processor) Update(dt float64) {
	switch p.state {
	case ProcIdle:
		// Nothing in flight.
	case ProcClearing:
		p.timer -= dt
		if p.timer <= 0 {
			p.finishClearStep()
		}
	case ProcDropping:
		if p.board.FallingCount() == 0 {
			p.beginStep()
		}
	}
}

// RunToCompletion resolves the board synchronously: every blink delay and
// fall animation completes instantly. Intended for tests and headless
// simulation; per-step collaborator calls still happen exactly once per
// step.
func (p *Processor) RunToCompletion() {
	if p.state == ProcIdle {
		p.beginStep()
	}
	// The tile count strictly decreases every clear step, so this loop
	// terminates.
	for p.state != ProcIdle {
		switch p.state {
		case ProcClearing:
			p.finishClearStep()
		case ProcDropping:
			p.board.CompleteFalls()
			p.beginStep()
		}
	}
}

// Scorer is the default scoring collaborator: it owns the combo counter
// and accumulates a score weighted by cascade depth.
type Scorer struct {
	score int
	combo int
}

// AddScore records one cascade step of tilesMatched cleared tiles.
func (s *Scorer) AddScore(tilesMatched int) {
	s.combo++
	points := tilesMatched * 10
	if s.combo > 1 {
		// Chain steps pay out progressively.
		points += 30 * (s.combo - 1)
	}
	if tilesMatched > 3 {
		points += 15 * (tilesMatched - 3)
	}
	s.score += points * s.combo
}

// Combo returns the current cascade-step counter.
func (s *Scorer) Combo() int { return s.combo }

// ResetCombo ends the cascade.
func (s *Scorer) ResetCombo() { s.combo = 0 }

// Score returns the accumulated score.
func (s *Scorer) Score() int { return s.score }

type nopBreathing struct{}

func (nopBreathing) AddBreathingRoom(int) {}
