// Package config provides YAML-based game configuration loading and
// difficulty management for the blocks engine.
package config

// TetrisConfig contains all configuration for the falling-block game.
type TetrisConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Timing     TimingConfig     `yaml:"timing"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FieldConfig defines the playfield dimensions, border included.
type FieldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TimingConfig defines the loop pacing.
type TimingConfig struct {
	TickMS          int `yaml:"tick_ms"`           // Sleep between loop iterations
	TickCeiling     int `yaml:"tick_ceiling"`      // Tick counter wraps here
	ClearDelayTicks int `yaml:"clear_delay_ticks"` // Ticks completed lines stay visible
}

// ScoringConfig defines how points are awarded on lock.
type ScoringConfig struct {
	LockPoints   int `yaml:"lock_points"`    // Awarded for every locked piece
	LineBonus    int `yaml:"line_bonus"`     // Multiplied by 2^lines
	MaxLineCount int `yaml:"max_line_count"` // Cap on the exponent
}

// DifficultyConfig defines the speed progression.
// Speed is the number of ticks between two gravity steps; lower is faster.
type DifficultyConfig struct {
	Enabled        bool `yaml:"enabled"`
	InitialSpeed   int  `yaml:"initial_speed"`
	MinSpeed       int  `yaml:"min_speed"`
	PiecesPerLevel int  `yaml:"pieces_per_level"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialSpeedForPreset returns the starting speed for a difficulty preset.
// Returns 0 for presets that keep the configured speed.
func InitialSpeedForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 24
	case DifficultyNormal:
		return 20
	case DifficultyHard:
		return 14
	default:
		return 0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
