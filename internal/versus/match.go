package versus

import (
	"fmt"

	"github.com/panelpop/panelpop/internal/ai"
	"github.com/panelpop/panelpop/internal/config"
	"github.com/panelpop/panelpop/internal/core"
	"github.com/panelpop/panelpop/internal/grid"
)

// attackRoute delivers one board's outgoing garbage to the other board.
type attackRoute struct {
	target *grid.Session
}

func (a attackRoute) OnGarbageSent(blocks int) {
	a.target.QueueGarbage(blocks)
}

// Match runs two sessions in lockstep: the local player's board and an
// AI-driven opponent board. Both tick from the same Update call, so the
// match is deterministic for a given seed and input sequence.
type Match struct {
	id         MatchID
	difficulty string

	p1  *grid.Session
	p2  *grid.Session
	cpu *ai.Player

	ticks   uint64
	elapsed float64
	result  *Result
}

// NewMatch creates a versus match. The two boards get distinct seeds
// derived from the given one so their tile sequences differ.
func NewMatch(cfg *config.GameConfig, settings config.DifficultySettings, difficulty string, seed int64) *Match {
	p1 := grid.NewSession(cfg, seed)
	p2 := grid.NewSession(cfg, seed+1)
	p1.SetAttackSink(attackRoute{target: p2})
	p2.SetAttackSink(attackRoute{target: p1})

	return &Match{
		id:         MatchID(fmt.Sprintf("vs-%d", seed)),
		difficulty: difficulty,
		p1:         p1,
		p2:         p2,
		cpu:        ai.NewPlayer(p2, settings, cfg.Grid.DangerZoneRows, seed+2),
	}
}

// ID returns the match identifier.
func (m *Match) ID() MatchID { return m.id }

// Player returns the human-controlled session.
func (m *Match) Player() *grid.Session { return m.p1 }

// Opponent returns the AI-controlled session.
func (m *Match) Opponent() *grid.Session { return m.p2 }

// Done reports whether the match has ended.
func (m *Match) Done() bool { return m.result != nil }

// Result returns the outcome, or nil while the match is running.
func (m *Match) Result() *Result { return m.result }

// HandleAction applies one human input for this tick.
func (m *Match) HandleAction(a core.Action) {
	if m.result != nil {
		return
	}
	m.p1.HandleAction(a)
}

// Update advances both boards and the AI by dt. The first tick on which
// either board reports game over finishes the match.
func (m *Match) Update(dt float64) {
	if m.result != nil {
		return
	}
	m.cpu.Update(dt)
	m.p1.Update(dt)
	m.p2.Update(dt)
	m.ticks++
	m.elapsed += dt

	over1, over2 := m.p1.GameOver(), m.p2.GameOver()
	if !over1 && !over2 {
		return
	}
	var winner PlayerID
	switch {
	case over1 && over2:
		// Simultaneous top-out: score breaks the tie, zero means draw.
		if m.p1.Score() > m.p2.Score() {
			winner = Player1
		} else if m.p2.Score() > m.p1.Score() {
			winner = Player2
		}
	case over1:
		winner = Player2
	default:
		winner = Player1
	}
	m.finish(EndReasonToppedOut, winner)
}

// Forfeit ends the match in the opponent's favor.
func (m *Match) Forfeit(player PlayerID) {
	if m.result != nil {
		return
	}
	m.finish(EndReasonForfeit, player.Opponent())
}

func (m *Match) finish(reason EndReason, winner PlayerID) {
	m.result = &Result{
		MatchID:    m.id,
		Difficulty: m.difficulty,
		Reason:     reason,
		Winner:     winner,
		Score1:     m.p1.Score(),
		Score2:     m.p2.Score(),
		Ticks:      m.ticks,
		Duration:   m.elapsed,
	}
}
