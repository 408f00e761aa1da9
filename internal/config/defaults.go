package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default game configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Field: FieldConfig{
			Width:  12,
			Height: 18,
		},
		Timing: TimingConfig{
			TickMS:          14,
			TickCeiling:     1 << 16,
			ClearDelayTicks: 28, // ~400ms at 14ms per tick
		},
		Scoring: ScoringConfig{
			LockPoints:   25,
			LineBonus:    100,
			MaxLineCount: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:        true,
			InitialSpeed:   20,
			MinSpeed:       10,
			PiecesPerLevel: 50,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultTetrisYAML
}
