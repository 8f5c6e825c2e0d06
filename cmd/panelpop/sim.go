package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/panelpop/panelpop/internal/ai"
	"github.com/panelpop/panelpop/internal/config"
	"github.com/panelpop/panelpop/internal/versus"
)

var (
	flagSimDifficulty string
	flagSimSeconds    float64
	flagSimVerbose    bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless CPU-vs-CPU match",
	Long: `Simulate a full versus match with the CPU playing both boards.
Useful for balancing difficulty presets and checking determinism: the
same seed always produces the same match.

Examples:
  panelpop sim
  panelpop sim --difficulty hard --seed 42
  panelpop sim --max-seconds 120 -v`,
	Run: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimDifficulty, "difficulty", "normal", "Difficulty preset for both players")
	simCmd.Flags().Float64Var(&flagSimSeconds, "max-seconds", 300, "Simulated seconds before the match is called off")
	simCmd.Flags().BoolVarP(&flagSimVerbose, "verbose", "v", false, "Log board state during the match")
}

func runSim(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "sim",
	})
	if flagSimVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	if !config.ValidPreset(flagSimDifficulty) {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q (easy, normal, hard)\n", flagSimDifficulty)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	gameCfg, err := config.Load("")
	if err != nil {
		gameCfg = config.DefaultGameConfig()
	}
	settings := config.SettingsForPreset(config.DifficultyPreset(flagSimDifficulty))
	gameCfg.AI = settings

	match := versus.NewMatch(&gameCfg, settings, flagSimDifficulty, seed)

	// The match already drives a CPU on board 2; add another on board 1.
	left := ai.NewPlayer(match.Player(), settings, gameCfg.Grid.DangerZoneRows, seed+101)

	logger.Info("match started",
		"difficulty", flagSimDifficulty,
		"seed", seed,
		"tick_rate", flagFPS,
	)

	dt := 1.0 / float64(flagFPS)
	elapsed := 0.0
	nextReport := 5.0
	start := time.Now()

	for !match.Done() && elapsed < flagSimSeconds {
		left.Update(dt)
		match.Update(dt)
		elapsed += dt

		if elapsed >= nextReport {
			logger.Debug("progress",
				"sim_seconds", fmt.Sprintf("%.0f", elapsed),
				"p1_score", match.Player().Score(),
				"p1_fill", fmt.Sprintf("%.2f", match.Player().Board().FillRatio()),
				"p2_score", match.Opponent().Score(),
				"p2_fill", fmt.Sprintf("%.2f", match.Opponent().Board().FillRatio()),
			)
			nextReport += 5.0
		}
	}

	wall := time.Since(start)

	if !match.Done() {
		logger.Warn("time limit reached, calling the match",
			"sim_seconds", fmt.Sprintf("%.0f", elapsed),
		)
		match.Forfeit(loserByScore(match))
	}

	res := match.Result()
	logger.Info("match finished",
		"winner", winnerName(res.Winner),
		"reason", res.Reason.String(),
		"p1_score", res.Score1,
		"p2_score", res.Score2,
		"sim_duration", fmt.Sprintf("%.1fs", res.Duration),
		"wall_time", wall.Round(time.Millisecond),
	)
}

// loserByScore picks the forfeiting side when a timed-out match is called:
// the lower-scoring board concedes.
func loserByScore(m *versus.Match) versus.PlayerID {
	if m.Player().Score() >= m.Opponent().Score() {
		return versus.Player2
	}
	return versus.Player1
}

func winnerName(p versus.PlayerID) string {
	switch p {
	case versus.Player1:
		return "player1"
	case versus.Player2:
		return "player2"
	default:
		return "draw"
	}
}
