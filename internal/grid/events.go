package grid

// ScoreSink is the scoring collaborator. The match processor calls
// AddScore exactly once per cascade step with the total tile count across
// all groups cleared in that step; the sink owns the combo counter.
type ScoreSink interface {
	AddScore(tilesMatched int)
	Combo() int
	ResetCombo()
}

// BreathingSink receives the rise-pause credit granted by matches, once
// per cascade step with the same total tile count reported to scoring.
type BreathingSink interface {
	AddBreathingRoom(tilesMatched int)
}

// EventSink receives discrete simulation events for presentation. The
// simulation never waits on the sink; implementations must return
// promptly.
type EventSink interface {
	// OnTilesMatched fires when a cascade step finds its match groups,
	// before the blink delay. combo is the step's combo number (1-based).
	OnTilesMatched(groups [][]Coord, combo int)
	// OnTilesCleared fires when the matched cells are logically removed.
	OnTilesCleared(cells []Coord)
	// OnDrop fires with the relocations of a drop resolution pass.
	OnDrop(moves []Move)
	// OnSwap fires after a successful swap at cursor position (x, y).
	OnSwap(x, y int, slipped bool)
	// OnRowSpawned fires when a preload row scrolls into view.
	OnRowSpawned()
	// OnGraceStarted and OnGraceEnded bracket the top-out grace period.
	OnGraceStarted()
	OnGraceEnded(gameOver bool)
}

// DangerSink receives edge-triggered danger notifications.
type DangerSink interface {
	OnColumnDanger(x int, entered bool)
	OnDangerLevel(level DangerLevel)
}

// AttackSink receives garbage blocks generated by matches, to be routed to
// an opposing board.
type AttackSink interface {
	OnGarbageSent(blocks int)
}

// NopEventSink discards all events.
type NopEventSink struct{}

func (NopEventSink) OnTilesMatched([][]Coord, int) {}
func (NopEventSink) OnTilesCleared([]Coord)        {}
func (NopEventSink) OnDrop([]Move)                 {}
func (NopEventSink) OnSwap(int, int, bool)         {}
func (NopEventSink) OnRowSpawned()                 {}
func (NopEventSink) OnGraceStarted()               {}
func (NopEventSink) OnGraceEnded(bool)             {}

// NopDangerSink discards all danger notifications.
type NopDangerSink struct{}

func (NopDangerSink) OnColumnDanger(int, bool)  {}
func (NopDangerSink) OnDangerLevel(DangerLevel) {}

// GarbageForMatch returns the number of garbage blocks a cascade step
// sends to the opponent, keyed by the step's matched tile count and the
// chain depth reached so far. Shared by the simulation and the AI's
// garbage estimate.
func GarbageForMatch(matchCount, chainDepth int) int {
	blocks := 0
	switch {
	case matchCount >= 6:
		blocks += 3
	case matchCount >= 5:
		blocks += 2
	case matchCount >= 4:
		blocks += 1
	}
	switch {
	case chainDepth >= 5:
		blocks += 6
	case chainDepth >= 4:
		blocks += 4
	case chainDepth >= 3:
		blocks += 2
	case chainDepth >= 2:
		blocks += 1
	}
	return blocks
}
