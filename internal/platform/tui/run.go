// Package tui provides the Bubble Tea integration for the puzzle.
// It handles the input loop, key mapping, frame dispatch and the records view.
package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Run draws the first frame and runs the input loop until the player quits
// or the solved picture is dismissed. The terminal must already be in raw
// mode; the program does not touch terminal state itself.
func Run(ctx context.Context, s *Session, input io.Reader) error {
	model := NewModel(ctx, s)
	if err := model.Start(); err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithContext(ctx),
		tea.WithInput(input),
		tea.WithoutRenderer(), // frames are sixel images, not text
	)

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	if m, ok := finalModel.(Model); ok {
		return m.Err()
	}
	return nil
}
