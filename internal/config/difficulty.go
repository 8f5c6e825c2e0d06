package config

// DifficultyPreset represents a named AI difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// SettingsForPreset returns the AI parameter set for a difficulty preset.
// Unknown presets fall back to normal.
func SettingsForPreset(preset DifficultyPreset) DifficultySettings {
	switch preset {
	case DifficultyEasy:
		return easyDifficulty()
	case DifficultyHard:
		return hardDifficulty()
	default:
		return NormalDifficulty()
	}
}

// ApplyPreset overwrites the AI section of a loaded config with a preset.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	cfg.AI = SettingsForPreset(preset)
}

// ValidPreset reports whether the string names a known preset.
func ValidPreset(s string) bool {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return true
	}
	return false
}

func easyDifficulty() DifficultySettings {
	d := NormalDifficulty()
	d.ReactionSeconds = 1.2
	d.InputsPerSecond = 3.0
	d.PanicSpeedMultiplier = 1.3
	d.HesitationChance = 0.45
	d.MaxHesitationSeconds = 1.5
	d.MaxLookahead = 1
	d.SetupVsGreedBias = 0.1
	d.AggressionBias = 0.4
	d.SuboptimalMoveChance = 0.3
	d.MissObviousMatchChance = 0.25
	d.MinSwapScore = 15.0
	return d
}

func hardDifficulty() DifficultySettings {
	d := NormalDifficulty()
	d.ReactionSeconds = 0.25
	d.InputsPerSecond = 9.0
	d.PanicSpeedMultiplier = 1.6
	d.HesitationChance = 0.05
	d.MaxHesitationSeconds = 0.3
	d.MaxLookahead = 4
	d.SetupVsGreedBias = 0.8
	d.AggressionBias = 1.4
	d.SuboptimalMoveChance = 0.03
	d.MissObviousMatchChance = 0.01
	d.MinSwapScore = 3.0
	d.FastRiseWhenSafe = true
	return d
}
