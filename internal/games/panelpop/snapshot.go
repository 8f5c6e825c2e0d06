package panelpop

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateGameOver    GameStateType = "game_over"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the observable game state for determinism testing
// and replay verification.
type Snapshot struct {
	Tick      uint64
	Mode      string
	Score     int
	Combo     int
	CursorX   int
	CursorY   int
	FillRatio float64
	RisePhase string
	State     GameStateType

	// Versus only
	OppScore  int
	OppFill   float64
	Winner    int
	EndReason string
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick: g.tick,
		Mode: string(g.mode),
	}

	switch {
	case g.tooSmall:
		snap.State = StatePausedSmall
		return snap
	case g.paused:
		snap.State = StatePaused
	case g.finished():
		snap.State = StateGameOver
	default:
		snap.State = StatePlaying
	}

	s := g.Session()
	if s == nil {
		return snap
	}
	snap.Score = s.Score()
	snap.Combo = s.Combo()
	snap.CursorX = s.Cursor().X
	snap.CursorY = s.Cursor().Y
	snap.FillRatio = s.Board().FillRatio()
	snap.RisePhase = s.Riser().Phase().String()

	if g.mode == ModeVersus && g.match != nil {
		snap.OppScore = g.match.Opponent().Score()
		snap.OppFill = g.match.Opponent().Board().FillRatio()
		if res := g.match.Result(); res != nil {
			snap.Winner = int(res.Winner)
			snap.EndReason = res.Reason.String()
		}
	}

	return snap
}
