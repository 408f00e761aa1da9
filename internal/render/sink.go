// Package render presents a finished screen buffer on a character terminal.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// Goto is a 1-indexed terminal cell, column first.
type Goto struct {
	Col int
	Row int
}

// Origin is the top-left terminal cell.
var Origin = Goto{Col: 1, Row: 1}

// Sink receives one rendered frame per tick.
type Sink interface {
	// Present blits buf with its top-left corner at the given cell and
	// publishes the score. An I/O failure is returned to the caller.
	Present(buf *core.Screen, at Goto, score int) error
}

// ANSISink writes frames to a VT100-compatible terminal using cursor
// positioning. Colors go through a lipgloss renderer bound to the same
// writer, so a non-terminal writer receives plain symbols.
type ANSISink struct {
	w        io.Writer
	renderer *lipgloss.Renderer
	title    string
	buf      bytes.Buffer
}

// NewANSISink creates a sink over w. The title prefixes the score shown in
// the terminal window title.
func NewANSISink(w io.Writer, title string) *ANSISink {
	return &ANSISink{
		w:        w,
		renderer: lipgloss.NewRenderer(w),
		title:    title,
	}
}

// Enter clears the terminal and hides the cursor.
func (s *ANSISink) Enter() error {
	return s.write(ansi.HideCursor + ansi.EraseEntireScreen + ansi.CursorPosition(1, 1))
}

// Leave resets attributes, shows the cursor and parks it below row.
func (s *ANSISink) Leave(row int) error {
	return s.write(ansi.ResetStyle + ansi.CursorPosition(1, row+1) + ansi.ShowCursor + "\r\n")
}

// Present implements Sink.
func (s *ANSISink) Present(buf *core.Screen, at Goto, score int) error {
	at.Col = max(at.Col, 1)
	at.Row = max(at.Row, 1)

	s.buf.Reset()
	s.buf.WriteString(ansi.SetWindowTitle(Title(s.title, score)))
	for y := 0; y < buf.Height(); y++ {
		s.buf.WriteString(ansi.CursorPosition(at.Col, at.Row+y))
		s.buf.WriteString(Line(s.renderer, buf, y))
	}

	if _, err := s.w.Write(s.buf.Bytes()); err != nil {
		return fmt.Errorf("render: present frame: %w", err)
	}
	return nil
}

func (s *ANSISink) write(seq string) error {
	if _, err := io.WriteString(s.w, seq); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// Title formats the window title for a score.
func Title(prefix string, score int) string {
	if prefix == "" {
		return "Score: " + strconv.Itoa(score)
	}
	return prefix + " - Score: " + strconv.Itoa(score)
}

// Style returns the lipgloss style for a cell color under renderer r.
func Style(r *lipgloss.Renderer, c core.Color) lipgloss.Style {
	style := r.NewStyle()
	if code := c.ANSI(); code != "" {
		style = style.Foreground(lipgloss.Color(code))
	}
	return style
}

// Line renders row y of s. Adjacent cells sharing a color are grouped into
// one styled run to keep escape sequences short.
func Line(r *lipgloss.Renderer, s *core.Screen, y int) string {
	var sb strings.Builder
	sb.Grow(s.Width() * 2)

	x := 0
	for x < s.Width() {
		color := s.GetCell(x, y).Color

		var run strings.Builder
		for x < s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != color {
				break
			}
			run.WriteRune(cell.Rune)
			x++
		}

		if color == core.ColorDefault {
			sb.WriteString(run.String())
			continue
		}
		sb.WriteString(Style(r, color).Render(run.String()))
	}
	return sb.String()
}
