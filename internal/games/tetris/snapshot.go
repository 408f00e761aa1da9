package tetris

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Phase    Phase
	Variant  Variant
	Rotation Rotation
	X        int
	Y        int
	Score    int
	Speed    int
	Pieces   int
	Lines    int
	Paused   bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.tick,
		Phase:    g.phase,
		Variant:  g.current,
		Rotation: g.rotation,
		X:        g.pos.X,
		Y:        g.pos.Y,
		Score:    g.score,
		Speed:    g.speed,
		Pieces:   g.pieces,
		Lines:    g.lines,
		Paused:   g.paused,
	}
}
