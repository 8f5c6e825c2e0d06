package grid

import (
	"github.com/panelpop/panelpop/internal/config"
	"github.com/panelpop/panelpop/internal/core"
)

// RisePhase describes what the riser is currently doing.
type RisePhase int

const (
	RisePhaseRising RisePhase = iota
	RisePhaseBreathing
	RisePhaseGrace
	RisePhaseGameOver
)

func (p RisePhase) String() string {
	switch p {
	case RisePhaseRising:
		return "rising"
	case RisePhaseBreathing:
		return "breathing"
	case RisePhaseGrace:
		return "grace"
	case RisePhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Riser pushes the stack upward over time. Clearing tiles buys breathing
// room that pauses the rise, and a full top row starts a grace countdown
// that ends the game if the player cannot dig out in time.
type Riser struct {
	board  *Board
	cursor *Cursor
	proc   *Processor
	cfg    config.RiseConfig
	events EventSink

	offset    float64 // fraction of the next row already risen, [0,1)
	breathing float64 // seconds of paused rise remaining
	grace     float64 // grace countdown, only meaningful in RisePhaseGrace
	elapsed   float64
	phase     RisePhase

	fastActive   bool
	fastCooldown float64
}

func NewRiser(b *Board, cursor *Cursor, proc *Processor, cfg config.RiseConfig) *Riser {
	return &Riser{
		board:  b,
		cursor: cursor,
		proc:   proc,
		cfg:    cfg,
		events: NopEventSink{},
		phase:  RisePhaseRising,
	}
}

func (r *Riser) SetEventSink(events EventSink) {
	if events == nil {
		events = NopEventSink{}
	}
	r.events = events
}

func (r *Riser) Phase() RisePhase        { return r.phase }
func (r *Riser) Offset() float64         { return r.offset }
func (r *Riser) Breathing() float64      { return r.breathing }
func (r *Riser) GraceRemaining() float64 { return r.grace }
func (r *Riser) GameOver() bool          { return r.phase == RisePhaseGameOver }

// AddBreathingRoom grants paused-rise time for cleared tiles. The pool is
// capped so huge cascades cannot stall the game forever.
func (r *Riser) AddBreathingRoom(tiles int) {
	r.breathing = core.ClampF(r.breathing+float64(tiles)*r.cfg.BreathingPerTile, 0, r.cfg.BreathingMax)
}

// RequestFastRise asks for one accelerated row. Ignored during the
// post-fast-rise cooldown and once the game is over.
func (r *Riser) RequestFastRise() {
	if r.phase == RisePhaseGameOver || r.fastCooldown > 0 {
		return
	}
	r.fastActive = true
}

// Update advances the rise clock by dt. The stack never rises while the
// processor is mid-cascade, so clears always land before the next row.
func (r *Riser) Update(dt float64) {
	if r.phase == RisePhaseGameOver {
		return
	}
	r.elapsed += dt
	if r.fastCooldown > 0 {
		r.fastCooldown -= dt
	}
	if r.proc != nil && r.proc.Busy() {
		return
	}

	if r.board.TopRowOccupied() {
		r.tickGrace(dt)
		return
	}
	if r.phase == RisePhaseGrace {
		r.endGrace()
	}

	if r.breathing > 0 && !r.fastActive {
		r.breathing -= dt
		r.phase = RisePhaseBreathing
		if r.breathing > 0 {
			return
		}
		r.breathing = 0
	}
	r.phase = RisePhaseRising

	r.offset += r.speed() * dt
	for r.offset >= 1 {
		r.offset -= 1
		if r.board.TopRowOccupied() {
			r.offset = 0
			r.tickGrace(0)
			return
		}
		r.board.SpawnBottomRow()
		r.cursor.ShiftUp()
		r.events.OnRowSpawned()
		if r.fastActive {
			r.fastActive = false
			r.fastCooldown = r.cfg.FastCooldown
		}
		if r.proc != nil {
			r.proc.Resolve()
			if r.proc.Busy() {
				return
			}
		}
	}
}

func (r *Riser) tickGrace(dt float64) {
	if r.phase != RisePhaseGrace {
		r.phase = RisePhaseGrace
		r.grace = r.cfg.GraceSeconds
		r.events.OnGraceStarted()
	}
	r.grace -= dt
	if r.grace <= 0 {
		r.grace = 0
		r.phase = RisePhaseGameOver
		r.events.OnGraceEnded(true)
	}
}

func (r *Riser) endGrace() {
	r.phase = RisePhaseRising
	r.grace = 0
	r.events.OnGraceEnded(false)
}

// speed returns rows per second, ramping up slowly with elapsed play time.
// The ramp adds 2% per ten seconds and tops out at 2.5x the base speed.
func (r *Riser) speed() float64 {
	if r.fastActive {
		return r.cfg.FastSpeed
	}
	ramp := 1 + 0.002*r.elapsed
	if ramp > 2.5 {
		ramp = 2.5
	}
	return r.cfg.Speed * ramp
}
