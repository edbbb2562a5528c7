package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/cylitris/internal/core"
)

// ScreenRenderer converts Screen buffers to styled strings.
// Styles are cached per color; a game uses a few hundred at most.
type ScreenRenderer struct {
	lr     *lipgloss.Renderer
	styles map[core.RGBA]lipgloss.Style
}

// NewScreenRenderer creates a renderer bound to lr.
// A nil lr uses the process-wide default renderer.
func NewScreenRenderer(lr *lipgloss.Renderer) *ScreenRenderer {
	if lr == nil {
		lr = lipgloss.DefaultRenderer()
	}
	return &ScreenRenderer{
		lr:     lr,
		styles: make(map[core.RGBA]lipgloss.Style),
	}
}

// Hex converts a color to #rrggbb, flattening any alpha against black.
func Hex(c core.RGBA) string {
	c = c.Flatten()
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}.Clamped().Hex()
}

func (r *ScreenRenderer) style(c core.RGBA) lipgloss.Style {
	if s, ok := r.styles[c]; ok {
		return s
	}
	s := r.lr.NewStyle()
	if !c.Transparent() {
		s = s.Foreground(lipgloss.Color(Hex(c)))
	}
	r.styles[c] = s
	return s
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (r *ScreenRenderer) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if startColor.Transparent() {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(r.style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
