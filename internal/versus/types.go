// Package versus coordinates a local two-board match: the human player's
// session against an AI-driven one, with garbage attacks routed between
// the boards. Designed so a future remote opponent can slot in where the
// AI sits today.
package versus

import "github.com/panelpop/panelpop/internal/core"

// PlayerID is an alias to core.PlayerID for convenience. Player1 is
// always the local human player, Player2 the CPU side.
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	Player1 = core.Player1
	Player2 = core.Player2
)

// MatchID uniquely identifies a match, used for result storage.
type MatchID string

// EndReason describes why a match ended.
type EndReason int

const (
	EndReasonToppedOut EndReason = iota // A board reached game over
	EndReasonForfeit                    // A player quit mid-match
	EndReasonCancelled                  // Match abandoned before ending
)

func (r EndReason) String() string {
	switch r {
	case EndReasonToppedOut:
		return "topped out"
	case EndReasonForfeit:
		return "forfeit"
	case EndReasonCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Result is the outcome of a completed match.
type Result struct {
	MatchID    MatchID
	Difficulty string
	Reason     EndReason
	Winner     PlayerID // 0 on a simultaneous top-out
	Score1     int
	Score2     int
	Ticks      uint64
	Duration   float64 // Seconds of simulated time
}

// ResultSaver persists finished matches. Implemented by the storage layer;
// the match itself never touches the database.
type ResultSaver interface {
	SaveVersusResult(r Result) error
}
