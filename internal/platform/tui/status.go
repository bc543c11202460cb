package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const (
	cursorHome = "\x1b[H"
	clearLine  = "\x1b[2K"
)

var (
	statusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// statusLine renders the bottom text row: game status and key help.
func (m Model) statusLine(status string) string {
	cols := m.s.Caps.Geometry.Cols
	text := statusStyle.Render(status)
	if m.state == Browsing {
		h := m.help
		if cols > 0 {
			h.Width = max(cols-lipgloss.Width(text)-2, 0)
		}
		text += "  " + helpStyle.Render(h.View(m.keys))
	}
	if cols > 0 {
		text = lipgloss.NewStyle().MaxWidth(cols).Render(text)
	}

	row := m.s.Caps.Geometry.Rows
	if row < 1 {
		row = 1
	}
	return fmt.Sprintf("\x1b[%d;1H%s%s", row, clearLine, text)
}
