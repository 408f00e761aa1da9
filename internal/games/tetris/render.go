package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// Screen layout: the field is drawn at (fieldX, fieldY) and the HUD starts
// hudGap columns to its right.
const (
	fieldX = 2
	fieldY = 2
	hudGap = 4

	hudWidth = 15
)

// Size returns the screen area the game draws into.
func (g *Game) Size() (width, height int) {
	return fieldX + g.cfg.Field.Width + hudGap + hudWidth + 1, fieldY + g.cfg.Field.Height + 1
}

// cellColor returns the display color for a field cell.
func cellColor(c Cell) core.Color {
	if v, ok := c.Variant(); ok {
		return v.Color()
	}
	switch c {
	case CellBorder:
		return core.ColorGray
	case CellClearing:
		return core.ColorBrightWhite
	default:
		return core.ColorDefault
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.field == nil {
		return
	}

	g.renderField(dst)
	if g.phase == PhaseFalling {
		g.renderPiece(dst)
	}
	g.renderHUD(dst)

	switch {
	case g.phase == PhaseGameOver:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d", g.score), "R restart  Q quit")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue", "")
	}
}

// renderField maps every field cell through the symbol table.
func (g *Game) renderField(dst *core.Screen) {
	for y := 0; y < g.field.Height(); y++ {
		for x := 0; x < g.field.Width(); x++ {
			c, _ := g.field.At(x, y)
			dst.SetColored(fieldX+x, fieldY+y, c.Symbol(), cellColor(c))
		}
	}
}

// renderPiece overlays the active piece using its variant letter.
func (g *Game) renderPiece(dst *core.Screen) {
	for py := 0; py < 4; py++ {
		for px := 0; px < 4; px++ {
			if !g.current.Filled(px, py, g.rotation) {
				continue
			}
			x, y := g.pos.X+px, g.pos.Y+py
			if !g.field.InBounds(x, y) {
				continue
			}
			dst.SetColored(fieldX+x, fieldY+y, g.current.Symbol(), g.current.Color())
		}
	}
}

// renderHUD writes score and progress next to the field.
func (g *Game) renderHUD(dst *core.Screen) {
	x := fieldX + g.field.Width() + hudGap
	dst.DrawText(x, fieldY, fmt.Sprintf("SCORE: %8d", g.score))
	dst.DrawText(x, fieldY+2, fmt.Sprintf("LEVEL: %8d", g.Level()))
	dst.DrawText(x, fieldY+3, fmt.Sprintf("LINES: %8d", g.lines))
	dst.DrawText(x, fieldY+4, fmt.Sprintf("PIECES:%8d", g.pieces))
}

// renderOverlay draws a boxed message centered over the field.
func (g *Game) renderOverlay(dst *core.Screen, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	box := core.NewRect(0, 0, width+4, len(lines)+2)
	box.X = fieldX + (g.field.Width()-box.W)/2
	box.Y = fieldY + (g.field.Height()-box.H)/2
	if box.X < 0 {
		box.X = 0
	}

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, l := range lines {
		dst.DrawText(box.X+(box.W-len(l))/2, box.Y+1+i, l)
	}
}
