package config

import (
	_ "embed"
)

//go:embed defaults/panelpop.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the default panelpop configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Grid: GridConfig{
			Width:           6,
			Height:          12,
			PreloadRows:     2,
			TileTypes:       5,
			DangerZoneRows:  3,
			InitialFillRows: 6,
		},
		Rise: RiseConfig{
			Speed:            0.12,
			FastSpeed:        2.0,
			FastCooldown:     0.5,
			BreathingPerTile: 0.35,
			BreathingMax:     4.0,
			GraceSeconds:     3.0,
		},
		Timing: TimingConfig{
			SwapSeconds:       0.1,
			SwapCooldown:      0.2,
			DropRowsPerSecond: 14.0,
			BlinkSeconds:      0.45,
			PopPerTileSeconds: 0.08,
		},
		AI: NormalDifficulty(),
	}
}

// NormalDifficulty returns the baseline AI parameter set.
func NormalDifficulty() DifficultySettings {
	return DifficultySettings{
		ReactionSeconds:         0.6,
		PanicIntensityThreshold: 0.55,

		InputsPerSecond:      5.0,
		PanicSpeedMultiplier: 1.8,
		HesitationChance:     0.25,
		MaxHesitationSeconds: 0.8,

		MaxLookahead:           3,
		ReduceLookaheadOnPanic: true,
		SetupVsGreedBias:       0.5,
		AggressionBias:         1.0,
		GarbageClearingWeight:  1.0,
		SafetyWeight:           1.0,
		MinSwapScore:           5.0,
		FastRiseWhenSafe:       false,

		SuboptimalMoveChance:   0.12,
		MissObviousMatchChance: 0.08,
		PanicMistakeMultiplier: 2.0,
	}
}

// GetDefaultYAML returns the embedded default configuration file.
func GetDefaultYAML() []byte {
	return defaultGameYAML
}
