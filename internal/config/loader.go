package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// LoadTetris loads the game configuration.
// Search order: customPath -> ~/.blocks/configs/tetris.yaml -> ./configs/tetris.yaml -> embedded default
func LoadTetris(customPath string) (TetrisConfig, error) {
	// Start from defaults so partial files only override what they set
	cfg := DefaultTetrisConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg.Normalize(), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("tetris.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg.Normalize(), nil
			}
			cfg = DefaultTetrisConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/tetris.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg.Normalize(), nil
		}
		cfg = DefaultTetrisConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultTetrisYAML, &cfg); err != nil {
		return DefaultTetrisConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg.Normalize(), nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blocks", "configs", filename)
}

// Normalize clamps every value into a playable range.
// A spawned piece must clear both walls, and the tick counter must be able
// to reach the slowest speed before it wraps.
func (c TetrisConfig) Normalize() TetrisConfig {
	c.Field.Width = core.Clamp(c.Field.Width, 7, 64)
	c.Field.Height = core.Clamp(c.Field.Height, 6, 64)

	c.Timing.TickMS = core.Clamp(c.Timing.TickMS, 1, 1000)
	if c.Timing.TickCeiling <= 0 {
		c.Timing.TickCeiling = 1 << 16
	}
	c.Timing.ClearDelayTicks = core.Clamp(c.Timing.ClearDelayTicks, 0, 1000)

	c.Scoring.LockPoints = max(c.Scoring.LockPoints, 0)
	c.Scoring.LineBonus = max(c.Scoring.LineBonus, 0)
	c.Scoring.MaxLineCount = core.Clamp(c.Scoring.MaxLineCount, 0, 10)

	c.Difficulty.MinSpeed = max(c.Difficulty.MinSpeed, 1)
	c.Difficulty.InitialSpeed = max(c.Difficulty.InitialSpeed, c.Difficulty.MinSpeed)
	c.Timing.TickCeiling = max(c.Timing.TickCeiling, c.Difficulty.InitialSpeed+1)
	if c.Difficulty.PiecesPerLevel <= 0 {
		c.Difficulty.Enabled = false
	}
	return c
}

// TickInterval returns the configured loop sleep as a duration.
func (c TetrisConfig) TickInterval() time.Duration {
	return time.Duration(c.Timing.TickMS) * time.Millisecond
}

// ApplyTetrisPreset modifies the config based on a difficulty preset.
// Unknown or empty presets leave the config untouched.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}
	speed := InitialSpeedForPreset(preset)
	if speed == 0 {
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialSpeed = max(speed, cfg.Difficulty.MinSpeed)
}
