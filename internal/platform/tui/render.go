package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/render"
)

// RenderScreen converts a Screen buffer to a styled string for display.
func RenderScreen(s *core.Screen) string {
	r := lipgloss.DefaultRenderer()

	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())
	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(render.Line(r, s, y))
	}
	return sb.String()
}
