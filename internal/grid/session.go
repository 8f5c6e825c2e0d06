package grid

import (
	"github.com/panelpop/panelpop/internal/config"
	"github.com/panelpop/panelpop/internal/core"
)

// Session owns one player's complete simulation: the board, cursor, swap
// executor, cascade processor, riser, danger tracking and garbage field,
// wired together and advanced by a single Update call per tick.
type Session struct {
	cfg     *config.GameConfig
	board   *Board
	cursor  *Cursor
	scorer  *Scorer
	proc    *Processor
	swapper *Swapper
	riser   *Riser
	danger  *DangerManager
	garbage *GarbageField
}

func NewSession(cfg *config.GameConfig, seed int64) *Session {
	board := NewBoard(cfg.Grid, seed)
	cursor := NewCursor(board)
	scorer := &Scorer{}
	proc := NewProcessor(board, cfg.Timing, scorer, nil)
	garbage := NewGarbageField(board)
	proc.SetGarbageField(garbage)
	swapper := NewSwapper(board, proc, cfg.Timing)
	riser := NewRiser(board, cursor, proc, cfg.Rise)
	danger := NewDangerManager(board, cfg.Grid.DangerZoneRows)
	danger.SetGraceProvider(func() bool { return riser.Phase() == RisePhaseGrace || riser.GameOver() })

	s := &Session{
		cfg:     cfg,
		board:   board,
		cursor:  cursor,
		scorer:  scorer,
		proc:    proc,
		swapper: swapper,
		riser:   riser,
		danger:  danger,
		garbage: garbage,
	}
	// Clearing tiles buys rise pause; the riser is the breathing sink.
	proc.breathing = riser
	return s
}

// SetEventSink routes presentation events from every subsystem to one sink.
func (s *Session) SetEventSink(events EventSink) {
	s.proc.SetEventSink(events)
	s.swapper.SetEventSink(events)
	s.riser.SetEventSink(events)
}

// SetAttackSink routes outgoing garbage, used in versus play.
func (s *Session) SetAttackSink(sink AttackSink) {
	s.proc.SetAttackSink(sink)
}

// SetDangerSink routes edge-triggered danger notifications.
func (s *Session) SetDangerSink(sink DangerSink) {
	s.danger.SetSink(sink)
}

// Update advances the whole simulation by dt seconds. Order matters:
// falls land first so the processor sees settled tiles, swaps complete
// before the cascade check, garbage placement happens on a calm board,
// and the riser and danger read the final state of the frame.
func (s *Session) Update(dt float64) {
	if s.GameOver() {
		return
	}
	hadFalls := s.board.FallingCount() > 0
	s.board.UpdateFalling(dt, s.cfg.Timing.DropRowsPerSecond)
	if hadFalls && s.board.FallingCount() == 0 {
		s.proc.Resolve()
	}
	s.swapper.Update(dt)
	s.proc.Update(dt)
	if !s.proc.Busy() {
		s.garbage.Update(dt)
	}
	s.riser.Update(dt)
	s.danger.Update()
}

// HandleAction applies one player input for this tick.
func (s *Session) HandleAction(a core.Action) {
	if s.GameOver() {
		return
	}
	switch a {
	case core.ActionUp:
		s.cursor.Move(0, -1)
	case core.ActionDown:
		s.cursor.Move(0, 1)
	case core.ActionLeft:
		s.cursor.Move(-1, 0)
	case core.ActionRight:
		s.cursor.Move(1, 0)
	case core.ActionSwap:
		s.swapper.TrySwap(s.cursor.X, s.cursor.Y)
	case core.ActionRaise:
		s.riser.RequestFastRise()
	}
}

// TrySwapAtCursor attempts a swap at the current cursor position.
func (s *Session) TrySwapAtCursor() SwapResult {
	return s.swapper.TrySwap(s.cursor.X, s.cursor.Y)
}

// QueueGarbage delivers an opponent attack to this board.
func (s *Session) QueueGarbage(blocks int) {
	s.garbage.QueueGarbage(blocks)
}

// Stable reports whether no swap or cascade is in flight, the window in
// which the AI plans its next move.
func (s *Session) Stable() bool {
	return !s.swapper.IsSwapping() && !s.proc.Busy() && s.board.FallingCount() == 0
}

func (s *Session) Board() *Board          { return s.board }
func (s *Session) Cursor() *Cursor        { return s.cursor }
func (s *Session) Swapper() *Swapper      { return s.swapper }
func (s *Session) Processor() *Processor  { return s.proc }
func (s *Session) Riser() *Riser          { return s.riser }
func (s *Session) Garbage() *GarbageField { return s.garbage }
func (s *Session) Danger() DangerState    { return s.danger.State() }
func (s *Session) Score() int             { return s.scorer.Score() }
func (s *Session) Combo() int             { return s.scorer.Combo() }
func (s *Session) GameOver() bool         { return s.riser.GameOver() }
