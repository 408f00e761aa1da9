package tetris

// Rotation is a number of clockwise quarter turns. Only the low two bits
// are meaningful, so any value is a valid rotation.
type Rotation uint8

// Next returns the rotation one quarter turn further.
func (r Rotation) Next() Rotation {
	return (r + 1) & 3
}

// Norm reduces r into [0, 4).
func (r Rotation) Norm() Rotation {
	return r & 3
}

// RotatedIndex maps local cell (px, py), each in [0, 4), to the index of the
// canonical mask cell that lands there after r quarter turns.
func RotatedIndex(px, py int, r Rotation) int {
	switch r & 3 {
	case 0:
		return py*4 + px
	case 1:
		return 12 + py - px*4
	case 2:
		return 15 - py*4 - px
	default:
		return 3 - py + px*4
	}
}
