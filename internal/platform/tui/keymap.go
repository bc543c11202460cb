package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jerch/sixel-puzzle/internal/core"
)

// KeyMap defines the key bindings of a puzzle session.
// It centralizes key handling and doubles as the help source of the status line.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	SlideUp    key.Binding
	SlideDown  key.Binding
	SlideLeft  key.Binding
	SlideRight key.Binding
	SlideAny   key.Binding
	Preview    key.Binding
	Close      key.Binding
	Quit       key.Binding

	// help-only entries that stand for a group of bindings
	arrows      key.Binding
	shiftArrows key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up")),
		Down:       key.NewBinding(key.WithKeys("down")),
		Left:       key.NewBinding(key.WithKeys("left")),
		Right:      key.NewBinding(key.WithKeys("right")),
		SlideUp:    key.NewBinding(key.WithKeys("shift+up")),
		SlideDown:  key.NewBinding(key.WithKeys("shift+down")),
		SlideLeft:  key.NewBinding(key.WithKeys("shift+left")),
		SlideRight: key.NewBinding(key.WithKeys("shift+right")),
		SlideAny: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "slide to gap"),
		),
		Preview: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "preview"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		arrows: key.NewBinding(
			key.WithKeys("up", "down", "left", "right"),
			key.WithHelp("arrows", "select"),
		),
		shiftArrows: key.NewBinding(
			key.WithKeys("shift+up", "shift+down", "shift+left", "shift+right"),
			key.WithHelp("shift+arrows", "slide"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.arrows, k.shiftArrows, k.SlideAny, k.Preview, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.arrows, k.shiftArrows, k.SlideAny},
		{k.Preview, k.Close, k.Quit},
	}
}

// Action translates a key message to a puzzle action.
// Returns ActionNone for keys without a binding.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Preview):
		return core.ActionPreview
	case key.Matches(msg, k.Close):
		return core.ActionClosePreview
	case key.Matches(msg, k.SlideAny):
		return core.ActionSlideAny
	case key.Matches(msg, k.SlideUp):
		return core.ActionSlideUp
	case key.Matches(msg, k.SlideDown):
		return core.ActionSlideDown
	case key.Matches(msg, k.SlideLeft):
		return core.ActionSlideLeft
	case key.Matches(msg, k.SlideRight):
		return core.ActionSlideRight
	case key.Matches(msg, k.Up):
		return core.ActionCursorUp
	case key.Matches(msg, k.Down):
		return core.ActionCursorDown
	case key.Matches(msg, k.Left):
		return core.ActionCursorLeft
	case key.Matches(msg, k.Right):
		return core.ActionCursorRight
	}
	return core.ActionNone
}
