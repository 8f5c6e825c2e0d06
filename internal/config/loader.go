package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the game configuration.
// Search order: customPath -> ~/.panelpop/configs/panelpop.yaml ->
// ./configs/panelpop.yaml -> embedded default.
func Load(customPath string) (GameConfig, error) {
	var cfg GameConfig

	// Custom path is authoritative: errors there are reported, not skipped.
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		normalize(&cfg)
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("panelpop.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				normalize(&cfg)
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/panelpop.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			normalize(&cfg)
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultGameYAML, &cfg); err != nil {
		return DefaultGameConfig(), nil // Fallback to hardcoded if embed fails
	}
	normalize(&cfg)
	return cfg, nil
}

// normalize clamps degenerate grid values so a hand-edited config file can
// never panic the simulation. The board needs a two-cell swap cursor, at
// least one preload row to spawn from, and a visible area taller than the
// danger zone.
func normalize(cfg *GameConfig) {
	g := &cfg.Grid
	if g.Width < 2 {
		g.Width = 2
	}
	if g.PreloadRows < 1 {
		g.PreloadRows = 1
	}
	if g.TileTypes < 2 {
		g.TileTypes = 2
	}
	if g.DangerZoneRows < 1 {
		g.DangerZoneRows = 1
	}
	if g.Height < g.DangerZoneRows+1 {
		g.Height = g.DangerZoneRows + 1
	}
	if g.InitialFillRows < 0 {
		g.InitialFillRows = 0
	}
	if g.InitialFillRows > g.Height {
		g.InitialFillRows = g.Height
	}
}

// userConfigPath returns the path to the user config file, or empty if the
// home directory is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".panelpop", "configs", filename)
}
