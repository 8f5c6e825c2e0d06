// Package config provides YAML-based game configuration loading and
// difficulty management for panelpop.
package config

// GameConfig contains all tunable parameters for a panelpop session.
type GameConfig struct {
	Grid   GridConfig         `yaml:"grid"`
	Rise   RiseConfig         `yaml:"rise"`
	Timing TimingConfig       `yaml:"timing"`
	AI     DifficultySettings `yaml:"ai"`
}

// GridConfig defines board dimensions and tile variety.
type GridConfig struct {
	Width           int `yaml:"width"`
	Height          int `yaml:"height"`
	PreloadRows     int `yaml:"preload_rows"`
	TileTypes       int `yaml:"tile_types"`
	DangerZoneRows  int `yaml:"danger_zone_rows"`
	InitialFillRows int `yaml:"initial_fill_rows"`
}

// RiseConfig defines the rise clock, breathing room and grace period.
type RiseConfig struct {
	Speed            float64 `yaml:"speed"`              // Rows per second, normal rise
	FastSpeed        float64 `yaml:"fast_speed"`         // Rows per second while fast rise is held
	FastCooldown     float64 `yaml:"fast_cooldown"`      // Minimum seconds between fast-rise requests
	BreathingPerTile float64 `yaml:"breathing_per_tile"` // Seconds of rise pause granted per matched tile
	BreathingMax     float64 `yaml:"breathing_max"`      // Cap on accumulated breathing room, seconds
	GraceSeconds     float64 `yaml:"grace_seconds"`      // Countdown once the top row is reached
}

// TimingConfig defines the fixed animation durations the simulation owns.
type TimingConfig struct {
	SwapSeconds       float64 `yaml:"swap_seconds"`         // Swap animation / lock duration
	SwapCooldown      float64 `yaml:"swap_cooldown"`        // Cooldown on cells after a rejected swap
	DropRowsPerSecond float64 `yaml:"drop_rows_per_second"` // Fall speed of dropping tiles
	BlinkSeconds      float64 `yaml:"blink_seconds"`        // Matched-tile blink before the pop
	PopPerTileSeconds float64 `yaml:"pop_per_tile_seconds"` // Sequential per-tile pop delay
}

// DifficultySettings is the tunable parameter struct consumed by the AI
// brain and hands. The AI never mutates it.
type DifficultySettings struct {
	// Think loop
	ReactionSeconds         float64 `yaml:"reaction_seconds"`          // Delay between AI decisions
	PanicIntensityThreshold float64 `yaml:"panic_intensity_threshold"` // Danger intensity at which the AI panics

	// Hands
	InputsPerSecond      float64 `yaml:"inputs_per_second"`      // Cursor inputs per second
	PanicSpeedMultiplier float64 `yaml:"panic_speed_multiplier"` // Input rate multiplier while panicking
	HesitationChance     float64 `yaml:"hesitation_chance"`      // Chance to hesitate before executing
	MaxHesitationSeconds float64 `yaml:"max_hesitation_seconds"` // Upper bound of the hesitation roll

	// Brain
	MaxLookahead           int     `yaml:"max_lookahead"`             // Chain estimation depth cap
	ReduceLookaheadOnPanic bool    `yaml:"reduce_lookahead_on_panic"` // Drop to depth 1 under panic
	SetupVsGreedBias       float64 `yaml:"setup_vs_greed_bias"`       // 0 greedy .. 1 patient setup play
	AggressionBias         float64 `yaml:"aggression_bias"`           // Weight of estimated garbage sent
	GarbageClearingWeight  float64 `yaml:"garbage_clearing_weight"`   // Weight of clearing adjacent garbage
	SafetyWeight           float64 `yaml:"safety_weight"`             // Weight of danger-zone adjustments
	MinSwapScore           float64 `yaml:"min_swap_score"`            // Candidates below are discarded
	FastRiseWhenSafe       bool    `yaml:"fast_rise_when_safe"`       // Toggle fast rise when out of danger

	// Humanization
	SuboptimalMoveChance   float64 `yaml:"suboptimal_move_chance"`    // Base chance to pick a non-best move
	MissObviousMatchChance float64 `yaml:"miss_obvious_match_chance"` // Chance to overlook the top candidate
	PanicMistakeMultiplier float64 `yaml:"panic_mistake_multiplier"`  // Mistake chance multiplier in panic
}

// EffectiveInputRate returns inputs per second, sped up while panicking.
func (d DifficultySettings) EffectiveInputRate(panicking bool) float64 {
	rate := d.InputsPerSecond
	if rate <= 0 {
		rate = 4
	}
	if panicking && d.PanicSpeedMultiplier > 0 {
		rate *= d.PanicSpeedMultiplier
	}
	return rate
}

// EffectiveMistakeChance returns the suboptimal-move chance, amplified and
// capped while panicking.
func (d DifficultySettings) EffectiveMistakeChance(panicking bool) float64 {
	chance := d.SuboptimalMoveChance
	if panicking {
		chance *= d.PanicMistakeMultiplier
		if chance > 0.8 {
			chance = 0.8
		}
	}
	return chance
}

// EffectiveLookahead returns the chain-estimation depth for this decision.
func (d DifficultySettings) EffectiveLookahead(panicking bool) int {
	if panicking && d.ReduceLookaheadOnPanic {
		return 1
	}
	if d.MaxLookahead < 1 {
		return 1
	}
	return d.MaxLookahead
}
