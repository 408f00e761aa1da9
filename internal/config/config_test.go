package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var cfg TetrisConfig
	if err := yaml.Unmarshal(GetDefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != DefaultTetrisConfig() {
		t.Errorf("embedded default = %+v, want %+v", cfg, DefaultTetrisConfig())
	}
}

func TestLoadTetrisCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("field:\n  width: 16\ndifficulty:\n  initial_speed: 30\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTetris(path)
	if err != nil {
		t.Fatalf("LoadTetris() failed: %v", err)
	}
	if cfg.Field.Width != 16 {
		t.Errorf("Field.Width = %d, want 16", cfg.Field.Width)
	}
	if cfg.Difficulty.InitialSpeed != 30 {
		t.Errorf("InitialSpeed = %d, want 30", cfg.Difficulty.InitialSpeed)
	}
	// Unset keys keep their defaults
	if cfg.Field.Height != 18 {
		t.Errorf("Field.Height = %d, want default 18", cfg.Field.Height)
	}
	if cfg.Scoring.LockPoints != 25 {
		t.Errorf("LockPoints = %d, want default 25", cfg.Scoring.LockPoints)
	}
}

func TestLoadTetrisMissingCustomPath(t *testing.T) {
	if _, err := LoadTetris(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestLoadTetrisInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("field: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTetris(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestNormalize(t *testing.T) {
	cfg := TetrisConfig{
		Field:      FieldConfig{Width: 2, Height: 1000},
		Timing:     TimingConfig{TickMS: 0, TickCeiling: -1, ClearDelayTicks: -5},
		Scoring:    ScoringConfig{LockPoints: -1, LineBonus: -1, MaxLineCount: 99},
		Difficulty: DifficultyConfig{Enabled: true, InitialSpeed: 3, MinSpeed: 0, PiecesPerLevel: 0},
	}.Normalize()

	if cfg.Field.Width != 7 || cfg.Field.Height != 64 {
		t.Errorf("field = %dx%d, want 7x64", cfg.Field.Width, cfg.Field.Height)
	}
	if cfg.Timing.TickMS != 1 || cfg.Timing.TickCeiling != 1<<16 || cfg.Timing.ClearDelayTicks != 0 {
		t.Errorf("timing not clamped: %+v", cfg.Timing)
	}
	if cfg.Scoring.MaxLineCount != 10 || cfg.Scoring.LockPoints != 0 {
		t.Errorf("scoring not clamped: %+v", cfg.Scoring)
	}
	if cfg.Difficulty.MinSpeed != 1 {
		t.Errorf("MinSpeed = %d, want 1", cfg.Difficulty.MinSpeed)
	}
	if cfg.Difficulty.Enabled {
		t.Error("progression without pieces_per_level should be disabled")
	}
}

func TestNormalizeTickCeilingAboveSpeed(t *testing.T) {
	cfg := DefaultTetrisConfig()
	cfg.Timing.TickCeiling = 5
	cfg = cfg.Normalize()
	if cfg.Timing.TickCeiling <= cfg.Difficulty.InitialSpeed {
		t.Errorf("TickCeiling = %d, want above InitialSpeed %d",
			cfg.Timing.TickCeiling, cfg.Difficulty.InitialSpeed)
	}

	// A slower preset applied after loading is covered by normalizing again
	ApplyTetrisPreset(&cfg, DifficultyEasy)
	cfg = cfg.Normalize()
	if cfg.Timing.TickCeiling != cfg.Difficulty.InitialSpeed+1 {
		t.Errorf("TickCeiling = %d, want %d", cfg.Timing.TickCeiling, cfg.Difficulty.InitialSpeed+1)
	}

	// Large ceilings are left alone
	cfg = DefaultTetrisConfig().Normalize()
	if cfg.Timing.TickCeiling != DefaultTetrisConfig().Timing.TickCeiling {
		t.Errorf("TickCeiling = %d, want default", cfg.Timing.TickCeiling)
	}
}

func TestApplyTetrisPreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		wantSpeed   int
		wantEnabled bool
	}{
		{DifficultyEasy, 24, true},
		{DifficultyNormal, 20, true},
		{DifficultyHard, 14, true},
		{DifficultyFixed, 20, false},
		{"", 20, true},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			ApplyTetrisPreset(&cfg, tc.preset)
			if cfg.Difficulty.InitialSpeed != tc.wantSpeed {
				t.Errorf("InitialSpeed = %d, want %d", cfg.Difficulty.InitialSpeed, tc.wantSpeed)
			}
			if cfg.Difficulty.Enabled != tc.wantEnabled {
				t.Errorf("Enabled = %v, want %v", cfg.Difficulty.Enabled, tc.wantEnabled)
			}
		})
	}
}

func TestSpeedScheduleNext(t *testing.T) {
	s := NewSpeedSchedule(DefaultTetrisConfig().Difficulty)

	speed := s.Initial()
	for pieces := 1; pieces <= 49; pieces++ {
		speed = s.Next(speed, pieces)
	}
	if speed != 20 {
		t.Fatalf("speed after 49 pieces = %d, want 20", speed)
	}
	speed = s.Next(speed, 50)
	if speed != 19 {
		t.Fatalf("speed after 50 pieces = %d, want 19", speed)
	}

	// Run far past the point where the floor is reached
	for pieces := 51; pieces <= 5000; pieces++ {
		speed = s.Next(speed, pieces)
		if speed < s.Floor() {
			t.Fatalf("speed %d dropped below floor at piece %d", speed, pieces)
		}
	}
	if speed != 10 {
		t.Errorf("final speed = %d, want floor 10", speed)
	}
}

func TestSpeedScheduleDisabled(t *testing.T) {
	cfg := DefaultTetrisConfig().Difficulty
	cfg.Enabled = false
	s := NewSpeedSchedule(cfg)

	if got := s.Next(20, 50); got != 20 {
		t.Errorf("disabled schedule changed speed to %d", got)
	}
	if got := s.Level(500); got != 1 {
		t.Errorf("disabled schedule level = %d, want 1", got)
	}
}
