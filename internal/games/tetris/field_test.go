package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	stdWidth  = 12
	stdHeight = 18
)

// fillRow occupies every interior cell of row y except the listed columns.
func fillRow(f *Field, y int, skip ...int) {
	holes := make(map[int]bool)
	for _, x := range skip {
		holes[x] = true
	}
	for x := 1; x < f.Width()-1; x++ {
		if !holes[x] {
			f.set(x, y, LockedCell(VariantO))
		}
	}
}

func cells(f *Field) []Cell {
	out := make([]Cell, len(f.cells))
	copy(out, f.cells)
	return out
}

func TestNewFieldBorder(t *testing.T) {
	f := NewField(stdWidth, stdHeight)

	for y := 0; y < stdHeight; y++ {
		for x := 0; x < stdWidth; x++ {
			c, ok := f.At(x, y)
			require.True(t, ok)
			border := x == 0 || x == stdWidth-1 || y == stdHeight-1
			if border {
				assert.Equal(t, CellBorder, c, "(%d,%d)", x, y)
			} else {
				assert.Equal(t, CellEmpty, c, "(%d,%d)", x, y)
			}
		}
	}

	_, ok := f.At(-1, 0)
	assert.False(t, ok)
	_, ok = f.At(0, stdHeight)
	assert.False(t, ok)
}

func TestFitsSpawnPoseOnEmptyField(t *testing.T) {
	f := NewField(stdWidth, stdHeight)
	for v := Variant(0); v < VariantCount; v++ {
		assert.True(t, Fits(v, 0, Pos{X: stdWidth / 2, Y: 0}, f), "variant %s", v)
	}
}

func TestFitsOverlap(t *testing.T) {
	f := NewField(stdWidth, stdHeight)
	// I piece occupies column pos.X+2, rows pos.Y..pos.Y+3
	f.set(8, 3, LockedCell(VariantT))

	assert.False(t, f.Fits(VariantI, 0, Pos{X: 6, Y: 0}))
	assert.True(t, f.Fits(VariantI, 0, Pos{X: 5, Y: 0}))
	assert.False(t, f.Fits(VariantI, 0, Pos{X: 6, Y: 3}))
}

func TestFitsHorizontalBounds(t *testing.T) {
	f := NewField(stdWidth, stdHeight)

	// Column 2 of the I mask lands on x=1, the first interior column
	assert.True(t, f.Fits(VariantI, 0, Pos{X: -1, Y: 0}))
	// x=0 is border
	assert.False(t, f.Fits(VariantI, 0, Pos{X: -2, Y: 0}))
	// x=-1 is outside the field and must not wrap around
	assert.False(t, f.Fits(VariantI, 0, Pos{X: -3, Y: 0}))
	// Far right
	assert.False(t, f.Fits(VariantI, 0, Pos{X: stdWidth - 2, Y: 0}))
	assert.False(t, f.Fits(VariantI, 0, Pos{X: stdWidth, Y: 0}))
}

func TestFitsVerticalBounds(t *testing.T) {
	f := NewField(stdWidth, stdHeight)

	// Projecting above the top is allowed
	assert.True(t, f.Fits(VariantI, 0, Pos{X: 6, Y: -3}))
	// Resting on the bottom border
	assert.True(t, f.Fits(VariantI, 0, Pos{X: 6, Y: stdHeight - 5}))
	assert.False(t, f.Fits(VariantI, 0, Pos{X: 6, Y: stdHeight - 4}))
	// Below the field entirely
	assert.False(t, f.Fits(VariantI, 0, Pos{X: 6, Y: stdHeight + 2}))
}

func TestFitsInvalidVariant(t *testing.T) {
	f := NewField(stdWidth, stdHeight)
	assert.False(t, f.Fits(Variant(VariantCount), 0, Pos{X: 6, Y: 0}))
}

func TestLockStampsOnlyPiece(t *testing.T) {
	f := NewField(stdWidth, stdHeight)
	before := cells(f)
	pos := Pos{X: 4, Y: 10}

	f.Lock(VariantT, 1, pos)

	changed := 0
	for i, c := range f.cells {
		if c == before[i] {
			continue
		}
		changed++
		x, y := i%stdWidth, i/stdWidth
		assert.Equal(t, LockedCell(VariantT), c)
		assert.True(t, VariantT.Filled(x-pos.X, y-pos.Y, 1), "(%d,%d) not part of piece", x, y)
	}
	assert.Equal(t, 4, changed)

	assert.False(t, f.Fits(VariantT, 1, pos), "locked cells must block the same pose")
}

func TestLockDropsCellsAboveTop(t *testing.T) {
	f := NewField(stdWidth, stdHeight)
	f.Lock(VariantI, 0, Pos{X: 6, Y: -2})

	for y := 0; y < 2; y++ {
		c, _ := f.At(8, y)
		assert.Equal(t, LockedCell(VariantI), c)
	}
	c, _ := f.At(8, 2)
	assert.Equal(t, CellEmpty, c)
}

func TestMarkCompleted(t *testing.T) {
	f := NewField(stdWidth, stdHeight)
	fillRow(f, 14)
	fillRow(f, 15, 3)
	fillRow(f, 16)

	rows := f.MarkCompleted(13)
	assert.Equal(t, []int{14, 16}, rows)

	for x := 1; x < stdWidth-1; x++ {
		c, _ := f.At(x, 14)
		assert.Equal(t, CellClearing, c)
		c, _ = f.At(x, 16)
		assert.Equal(t, CellClearing, c)
	}
	// Incomplete row untouched, border untouched
	c, _ := f.At(1, 15)
	assert.True(t, c.Locked())
	c, _ = f.At(0, 14)
	assert.Equal(t, CellBorder, c)
}

func TestMarkCompletedIgnoresBorderRow(t *testing.T) {
	f := NewField(stdWidth, stdHeight)
	assert.Empty(t, f.MarkCompleted(stdHeight-2))
}

func TestCompactSingleRow(t *testing.T) {
	f := NewField(stdWidth, stdHeight)
	// Give every row above the full one a distinct marker
	for y := 0; y < 10; y++ {
		f.set(1+y%(stdWidth-2), y, LockedCell(Variant(y%VariantCount)))
	}
	fillRow(f, 10)
	for y := 11; y < stdHeight-1; y++ {
		f.set(2, y, LockedCell(VariantS))
	}
	require.Equal(t, []int{10}, f.MarkCompleted(7))

	before := cells(f)
	f.Compact([]int{10})

	for y := 0; y < stdHeight; y++ {
		for x := 0; x < stdWidth; x++ {
			got, _ := f.At(x, y)
			switch {
			case x == 0 || x == stdWidth-1 || y == stdHeight-1:
				assert.Equal(t, CellBorder, got, "border (%d,%d)", x, y)
			case y == 0:
				assert.Equal(t, CellEmpty, got, "top row (%d,%d)", x, y)
			case y <= 10:
				assert.Equal(t, before[(y-1)*stdWidth+x], got, "shifted (%d,%d)", x, y)
			default:
				assert.Equal(t, before[y*stdWidth+x], got, "below (%d,%d)", x, y)
			}
		}
	}
}

func TestCompactMultipleRows(t *testing.T) {
	f := NewField(stdWidth, stdHeight)
	f.set(5, 12, LockedCell(VariantJ)) // survives, falls two rows
	fillRow(f, 13)
	f.set(7, 14, LockedCell(VariantL)) // survives, falls one row
	fillRow(f, 15)
	f.set(3, 16, LockedCell(VariantZ)) // below everything, stays

	rows := f.MarkCompleted(13)
	require.Equal(t, []int{13, 15}, rows)
	f.Compact(rows)

	c, _ := f.At(5, 14)
	assert.Equal(t, LockedCell(VariantJ), c)
	c, _ = f.At(7, 15)
	assert.Equal(t, LockedCell(VariantL), c)
	c, _ = f.At(3, 16)
	assert.Equal(t, LockedCell(VariantZ), c)

	for y := 0; y < 14; y++ {
		for x := 1; x < stdWidth-1; x++ {
			c, _ := f.At(x, y)
			assert.Equal(t, CellEmpty, c, "(%d,%d)", x, y)
		}
	}
}

func TestLockScore(t *testing.T) {
	tests := []struct {
		name  string
		lines int
		want  int
	}{
		{"no lines", 0, 25},
		{"single", 1, 225},
		{"double", 2, 425},
		{"tetris", 4, 1625},
		{"capped", 12, 25 + 1024*100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, LockScore(25, 100, tc.lines, 10))
		})
	}
}

func TestCellSymbols(t *testing.T) {
	assert.Equal(t, ' ', CellEmpty.Symbol())
	assert.Equal(t, '=', CellClearing.Symbol())
	assert.Equal(t, '#', CellBorder.Symbol())
	for v := Variant(0); v < VariantCount; v++ {
		assert.Equal(t, v.Symbol(), LockedCell(v).Symbol())
		got, ok := LockedCell(v).Variant()
		assert.True(t, ok)
		assert.Equal(t, v, got)
	}
	_, ok := CellBorder.Variant()
	assert.False(t, ok)
}
