package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// ScreenRenderer converts Screen buffers to styled strings. Styles are
// cached per color, so a renderer must not be shared between goroutines.
type ScreenRenderer struct {
	r      *lipgloss.Renderer
	plain  lipgloss.Style
	styles map[core.RGB]lipgloss.Style
}

// NewScreenRenderer creates a renderer for the given lipgloss renderer.
// nil uses the default renderer (stdout).
func NewScreenRenderer(r *lipgloss.Renderer) *ScreenRenderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &ScreenRenderer{
		r:      r,
		plain:  r.NewStyle(),
		styles: make(map[core.RGB]lipgloss.Style),
	}
}

func (sr *ScreenRenderer) style(c core.Cell) lipgloss.Style {
	if !c.HasColor {
		return sr.plain
	}
	st, ok := sr.styles[c.Color]
	if !ok {
		st = sr.r.NewStyle().Foreground(lipgloss.Color(c.Color.Hex()))
		sr.styles[c.Color] = st
	}
	return st
}

func sameStyle(a, b core.Cell) bool {
	return a.HasColor == b.HasColor && (!a.HasColor || a.Color == b.Color)
}

// Render converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one escape sequence.
func (sr *ScreenRenderer) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if !sameStyle(cell, start) {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(sr.style(start).Render(run.String()))
		}
	}
	return sb.String()
}
