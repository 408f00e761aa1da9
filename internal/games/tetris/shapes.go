// Package tetris implements the falling-block puzzle engine: the shape table,
// computed rotations, fit testing, the playfield with its line clearer, and
// the per-tick state machine that ties them together.
package tetris

import "github.com/vovakirdan/tui-blocks/internal/core"

// Variant identifies one of the seven tetromino shapes.
type Variant uint8

const (
	VariantI Variant = iota
	VariantO
	VariantT
	VariantJ
	VariantL
	VariantS
	VariantZ

	// VariantCount is the number of shapes in the table.
	VariantCount = 7
)

// Mask is a 4x4 occupancy pattern in row-major order.
type Mask [16]bool

// maskSource holds the canonical shapes as 'X' (filled) and '.' (empty).
// Only one orientation is stored; the others come from RotatedIndex.
var maskSource = [VariantCount]string{
	VariantI: "..X." + "..X." + "..X." + "..X.",
	VariantO: "...." + ".XX." + ".XX." + "....",
	VariantT: "..X." + ".XX." + "..X." + "....",
	VariantJ: "..X." + "..X." + ".XX." + "....",
	VariantL: ".X.." + ".X.." + ".XX." + "....",
	VariantS: ".X.." + ".XX." + "..X." + "....",
	VariantZ: "..X." + ".XX." + ".X.." + "....",
}

var masks = buildMasks()

func buildMasks() [VariantCount]Mask {
	var out [VariantCount]Mask
	for v, src := range maskSource {
		for i, ch := range src {
			out[v][i] = ch == 'X'
		}
	}
	return out
}

// Valid reports whether v names a shape in the table.
func (v Variant) Valid() bool {
	return v < VariantCount
}

// Mask returns the canonical, unrotated mask. The result is a copy.
func (v Variant) Mask() Mask {
	if !v.Valid() {
		return Mask{}
	}
	return masks[v]
}

// Filled reports whether local cell (px, py) is occupied after rotating by r.
func (v Variant) Filled(px, py int, r Rotation) bool {
	if !v.Valid() || px < 0 || px >= 4 || py < 0 || py >= 4 {
		return false
	}
	return masks[v][RotatedIndex(px, py, r)]
}

// Symbol returns the letter drawn for the variant, 'A' for I through 'G' for Z.
func (v Variant) Symbol() rune {
	return 'A' + rune(v)
}

// Color returns the display color of the variant.
func (v Variant) Color() core.Color {
	switch v {
	case VariantI:
		return core.ColorCyan
	case VariantO:
		return core.ColorYellow
	case VariantT:
		return core.ColorMagenta
	case VariantJ:
		return core.ColorBlue
	case VariantL:
		return core.ColorOrange
	case VariantS:
		return core.ColorGreen
	case VariantZ:
		return core.ColorRed
	default:
		return core.ColorDefault
	}
}

// String returns the conventional one-letter shape name.
func (v Variant) String() string {
	if !v.Valid() {
		return "?"
	}
	return string("IOTJLSZ"[v])
}
