package config

// SpeedSchedule calculates the gravity speed from the locked piece count.
type SpeedSchedule struct {
	cfg DifficultyConfig
}

// NewSpeedSchedule creates a new speed schedule.
func NewSpeedSchedule(cfg DifficultyConfig) *SpeedSchedule {
	return &SpeedSchedule{cfg: cfg}
}

// IsEnabled returns whether speed progression is active.
func (s *SpeedSchedule) IsEnabled() bool {
	return s.cfg.Enabled && s.cfg.PiecesPerLevel > 0
}

// Initial returns the starting speed.
func (s *SpeedSchedule) Initial() int {
	return s.cfg.InitialSpeed
}

// Floor returns the fastest allowed speed.
func (s *SpeedSchedule) Floor() int {
	return s.cfg.MinSpeed
}

// Next returns the speed after a piece lock raised the count to pieces.
// Every PiecesPerLevel-th piece makes the game one tick faster, never
// dropping below the floor.
func (s *SpeedSchedule) Next(speed, pieces int) int {
	if !s.IsEnabled() || pieces <= 0 {
		return speed
	}
	if pieces%s.cfg.PiecesPerLevel == 0 && speed > s.Floor() {
		return speed - 1
	}
	return speed
}

// Level returns a 1-based level number for HUD display.
func (s *SpeedSchedule) Level(pieces int) int {
	if !s.IsEnabled() {
		return 1
	}
	return pieces/s.cfg.PiecesPerLevel + 1
}
