package tui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/jerch/sixel-puzzle/internal/core"
	"github.com/jerch/sixel-puzzle/internal/games/puzzle"
	"github.com/jerch/sixel-puzzle/internal/raster"
	"github.com/jerch/sixel-puzzle/internal/storage"
	"github.com/jerch/sixel-puzzle/internal/termcap"
	"github.com/jerch/sixel-puzzle/internal/tiles"
)

// State is the phase of a running puzzle.
type State int

const (
	Browsing   State = iota // board shown, cursor and slides active
	Previewing              // complete picture shown
	Solved                  // board in goal order, next key exits
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case Browsing:
		return "Browsing"
	case Previewing:
		return "Previewing"
	case Solved:
		return "Solved"
	default:
		return "Unknown"
	}
}

// RecordSaver stores finished solves.
type RecordSaver interface {
	SaveSolve(rec storage.SolveRecord) (int64, error)
}

// Session bundles everything a running puzzle needs. It is built once
// after negotiation and owned by the Model for the rest of the run.
type Session struct {
	Game   *puzzle.Game
	Tiles  *tiles.Set
	Caps   termcap.Capabilities
	Raster raster.Rasterizer
	Out    io.Writer   // terminal the frames are written to
	Logger *log.Logger // optional
	Store  RecordSaver // optional
	Image  string      // source picture, recorded with the solve
	Best   int         // fewest moves of earlier solves at this level, 0 if none
}

// Model is the Bubble Tea model of a puzzle session.
// The program runs without a renderer: every accepted input draws exactly
// one frame through the rasterizer from inside Update, and rejected input
// draws nothing.
type Model struct {
	ctx     context.Context
	s       *Session
	state   State
	keys    KeyMap
	help    help.Model
	started time.Time
	now     func() time.Time
	err     error
}

// NewModel creates a model over a prepared session.
func NewModel(ctx context.Context, s *Session) Model {
	if s.Logger == nil {
		s.Logger = log.New(io.Discard)
	}

	h := help.New()

	return Model{
		ctx:     ctx,
		s:       s,
		state:   Browsing,
		keys:    DefaultKeyMap(),
		help:    h,
		started: time.Now(),
		now:     time.Now,
	}
}

// Start draws the first frame.
func (m Model) Start() error {
	m.s.Logger.Info("session started",
		"image", m.s.Image,
		"level", m.s.Game.Level(),
		"canvas", fmt.Sprintf("%dx%d", m.s.Tiles.Bounds().Dx(), m.s.Tiles.Bounds().Dy()),
	)
	return m.drawBoard()
}

// State returns the current phase.
func (m Model) State() State {
	return m.state
}

// Err returns the error that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == Solved {
		return m, tea.Quit
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.s.Logger.Info("session quit", "moves", m.s.Game.Moves())
		return m, tea.Quit
	}

	var err error
	switch m.state {
	case Previewing:
		if action == core.ActionPreview || action == core.ActionClosePreview {
			m.state = Browsing
			err = m.drawBoard()
		}

	case Browsing:
		switch {
		case action == core.ActionPreview:
			m.state = Previewing
			err = m.drawPreview()

		case action.IsCursor():
			dir, _ := action.Direction()
			if m.s.Game.MoveCursor(dir) {
				err = m.drawBoard()
			}

		case action.IsSlide():
			if !m.slide(action) {
				break
			}
			if m.s.Game.Solved() {
				m.state = Solved
				m.recordSolve()
				err = m.drawSolved()
			} else {
				err = m.drawBoard()
			}
		}
	}

	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	return m, nil
}

// slide applies a slide action to the game.
func (m Model) slide(action core.Action) bool {
	if action == core.ActionSlideAny {
		return m.s.Game.SlideAny()
	}
	dir, _ := action.Direction()
	return m.s.Game.Slide(dir)
}

// recordSolve stores the finished game. Storage failures are logged only.
func (m Model) recordSolve() {
	g := m.s.Game
	elapsed := m.now().Sub(m.started)
	m.s.Logger.Info("puzzle solved", "moves", g.Moves(), "duration", elapsed.Round(time.Second))

	if m.s.Store == nil {
		return
	}
	_, err := m.s.Store.SaveSolve(storage.SolveRecord{
		Image:    m.s.Image,
		Level:    g.Level(),
		Moves:    g.Moves(),
		Duration: elapsed,
	})
	if err != nil {
		m.s.Logger.Warn("could not save solve", "error", err)
	}
}

// View implements tea.Model. Frames are drawn by the rasterizer instead.
func (m Model) View() string {
	return ""
}

// frame composes the board with the cursor tile highlighted.
func (m Model) frame() image.Image {
	g := m.s.Game
	b := g.Board()
	n := b.Level()
	cursor := g.Cursor().Index(n)

	cells := make([]tiles.Cell, n*n)
	for i := range cells {
		cells[i] = tiles.Cell{Tile: int(b.Index(i)), Variant: tiles.Plain}
		if i == cursor {
			cells[i].Variant = tiles.Highlighted
		}
	}
	return m.s.Tiles.Compose(cells)
}

func (m Model) drawBoard() error {
	return m.draw(m.frame(), m.movesText())
}

func (m Model) drawPreview() error {
	return m.draw(m.s.Tiles.Complete(), "preview, "+m.movesText())
}

func (m Model) drawSolved() error {
	return m.draw(m.s.Tiles.Complete(), fmt.Sprintf("solved in %d moves, press any key", m.s.Game.Moves()))
}

func (m Model) movesText() string {
	text := fmt.Sprintf("moves: %d", m.s.Game.Moves())
	if m.s.Best > 0 {
		text += fmt.Sprintf("  best: %d", m.s.Best)
	}
	return text
}

// draw writes one frame at the top-left corner followed by the status line.
// An encoder that fails on a frame is logged and play goes on.
func (m Model) draw(img image.Image, status string) error {
	if _, err := io.WriteString(m.s.Out, cursorHome); err != nil {
		return err
	}

	err := m.s.Raster.Render(m.ctx, m.s.Out, img)
	if errors.Is(err, raster.ErrEncoderFailed) {
		m.s.Logger.Warn("frame not drawn", "error", err)
		err = nil
	}
	if err != nil {
		return err
	}

	_, err = io.WriteString(m.s.Out, m.statusLine(status))
	return err
}
