package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-brawler/internal/core"
)

// Painter turns a core.Screen into styled terminal text. Its styles are
// bound to one lipgloss renderer, so every SSH client gets output for its
// own color profile.
type Painter struct {
	styles map[core.Color]lipgloss.Style
	plain  lipgloss.Style
}

// NewPainter builds cell styles from the core palette. A nil renderer uses
// the process's stdout renderer.
func NewPainter(r *lipgloss.Renderer) *Painter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := &Painter{
		styles: make(map[core.Color]lipgloss.Style),
		plain:  r.NewStyle(),
	}
	for c := core.ColorRed; c <= core.ColorDarkGray; c++ {
		red, green, blue, ok := c.RGB()
		if !ok {
			continue
		}
		st := r.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", red, green, blue)))
		// Coins and score labels.
		if c == core.ColorGold {
			st = st.Bold(true)
		}
		p.styles[c] = st
	}
	return p
}

func (p *Painter) style(c core.Color) lipgloss.Style {
	if st, ok := p.styles[c]; ok {
		return st
	}
	return p.plain
}

// Render writes one styled line per screen row. Adjacent cells of the same
// color share a single escape sequence.
func (p *Painter) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < s.Width(); {
			c := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != c {
					break
				}
				run.WriteRune(cell.Rune)
			}
			if c == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(p.style(c).Render(run.String()))
		}
	}
	return sb.String()
}

var defaultPainter = NewPainter(nil)

// RenderScreen renders s with the stdout renderer.
func RenderScreen(s *core.Screen) string {
	return defaultPainter.Render(s)
}
