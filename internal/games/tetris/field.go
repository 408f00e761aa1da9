package tetris

// Cell is the content of one field position.
// Values 1 through 7 hold a locked block of variant Cell-1.
type Cell uint8

const (
	CellEmpty    Cell = 0
	CellClearing Cell = 8 // Completed line awaiting removal
	CellBorder   Cell = 9
)

// symbols maps a Cell value to its on-screen rune.
const symbols = " ABCDEFG=#"

// LockedCell returns the cell value stamped for variant v.
func LockedCell(v Variant) Cell {
	return Cell(v) + 1
}

// Symbol returns the rune that represents the cell on screen.
func (c Cell) Symbol() rune {
	if int(c) >= len(symbols) {
		return '?'
	}
	return rune(symbols[c])
}

// Locked reports whether the cell holds a piece block.
func (c Cell) Locked() bool {
	return c >= 1 && c <= VariantCount
}

// Variant returns the variant a locked cell came from.
func (c Cell) Variant() (Variant, bool) {
	if !c.Locked() {
		return 0, false
	}
	return Variant(c - 1), true
}

// Pos is a field coordinate. It is signed so that a move left of column 0
// yields a negative value instead of wrapping.
type Pos struct {
	X, Y int
}

// Add returns p shifted by (dx, dy).
func (p Pos) Add(dx, dy int) Pos {
	return Pos{X: p.X + dx, Y: p.Y + dy}
}

// Field is the persistent occupancy grid. The left, right and bottom edges
// are border cells that are never overwritten or cleared.
type Field struct {
	width  int
	height int
	cells  []Cell
}

// NewField creates an empty field of the given size surrounded by border.
func NewField(width, height int) *Field {
	f := &Field{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	f.Reset()
	return f
}

// Reset empties the interior and redraws the border.
func (f *Field) Reset() {
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			c := CellEmpty
			if f.isBorder(x, y) {
				c = CellBorder
			}
			f.cells[y*f.width+x] = c
		}
	}
}

// Width returns the field width including border columns.
func (f *Field) Width() int {
	return f.width
}

// Height returns the field height including the bottom border row.
func (f *Field) Height() int {
	return f.height
}

// InBounds reports whether (x, y) is a field coordinate.
func (f *Field) InBounds(x, y int) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}

// At returns the cell at (x, y). The bool is false outside the field.
func (f *Field) At(x, y int) (Cell, bool) {
	if !f.InBounds(x, y) {
		return CellEmpty, false
	}
	return f.cells[y*f.width+x], true
}

func (f *Field) isBorder(x, y int) bool {
	return x == 0 || x == f.width-1 || y == f.height-1
}

// set writes an interior cell. Border and out-of-range writes are dropped.
func (f *Field) set(x, y int, c Cell) {
	if !f.InBounds(x, y) || f.isBorder(x, y) {
		return
	}
	f.cells[y*f.width+x] = c
}

// Lock stamps the occupied cells of the rotated piece into the field.
// Cells that project above the top row are discarded.
func (f *Field) Lock(v Variant, r Rotation, pos Pos) {
	for py := 0; py < 4; py++ {
		for px := 0; px < 4; px++ {
			if v.Filled(px, py, r) {
				f.set(pos.X+px, pos.Y+py, LockedCell(v))
			}
		}
	}
}

// rowComplete reports whether every interior cell of row y is occupied.
func (f *Field) rowComplete(y int) bool {
	if y < 0 || y >= f.height-1 {
		return false
	}
	for x := 1; x < f.width-1; x++ {
		if f.cells[y*f.width+x] == CellEmpty {
			return false
		}
	}
	return true
}

// MarkCompleted checks the four rows starting at top, marks the complete
// ones as clearing and returns their indices in ascending order.
func (f *Field) MarkCompleted(top int) []int {
	var rows []int
	for y := top; y < top+4; y++ {
		if !f.rowComplete(y) {
			continue
		}
		for x := 1; x < f.width-1; x++ {
			f.set(x, y, CellClearing)
		}
		rows = append(rows, y)
	}
	return rows
}

// Compact removes the given rows and lets everything above them fall.
// Each removed row moves the rows above it down by one, unaffected rows
// keep their order, and the vacated rows at the top become empty.
func (f *Field) Compact(rows []int) {
	if len(rows) == 0 {
		return
	}
	remove := make(map[int]bool, len(rows))
	for _, y := range rows {
		if y >= 0 && y < f.height-1 {
			remove[y] = true
		}
	}

	// Walk from the bottom interior row upward, copying kept rows down.
	dst := f.height - 2
	for src := f.height - 2; src >= 0; src-- {
		if remove[src] {
			continue
		}
		if dst != src {
			for x := 1; x < f.width-1; x++ {
				f.cells[dst*f.width+x] = f.cells[src*f.width+x]
			}
		}
		dst--
	}
	for ; dst >= 0; dst-- {
		for x := 1; x < f.width-1; x++ {
			f.cells[dst*f.width+x] = CellEmpty
		}
	}

	for y := 0; y < f.height; y++ {
		f.cells[y*f.width] = CellBorder
		f.cells[y*f.width+f.width-1] = CellBorder
	}
}

// Fits reports whether variant v with rotation r can occupy pos.
// Occupied piece cells above the top row are allowed so pieces can spawn
// partially hidden. Cells left, right or below the field never fit, and
// neither do cells over anything other than empty space.
func (f *Field) Fits(v Variant, r Rotation, pos Pos) bool {
	if !v.Valid() {
		return false
	}
	for py := 0; py < 4; py++ {
		for px := 0; px < 4; px++ {
			if !v.Filled(px, py, r) {
				continue
			}
			x, y := pos.X+px, pos.Y+py
			if x < 0 || x >= f.width || y >= f.height {
				return false
			}
			if y < 0 {
				continue
			}
			if f.cells[y*f.width+x] != CellEmpty {
				return false
			}
		}
	}
	return true
}

// Fits is the functional form of Field.Fits.
func Fits(v Variant, r Rotation, pos Pos, f *Field) bool {
	return f.Fits(v, r, pos)
}

// LockScore returns the points for one lock event that completed lines rows.
// The exponent is capped at maxLines.
func LockScore(base, bonus, lines, maxLines int) int {
	score := base
	if lines > 0 {
		score += (1 << min(lines, maxLines)) * bonus
	}
	return score
}
