package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jerch/sixel-puzzle/internal/storage"
)

// Records layout constants
const (
	maxRecords = 100 // Max records to load per level
	dateFormat = "Jan 02 15:04"
)

// RecordSource is the part of the store the records view reads.
type RecordSource interface {
	TopSolves(level, limit int) ([]storage.SolveRecord, error)
	Stats() ([]storage.LevelStats, error)
}

// RecordsKeyMap defines the key bindings for the records view.
type RecordsKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.PrevLevel, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RecordsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextLevel, k.PrevLevel, k.Quit},
	}
}

// DefaultRecordsKeyMap returns default key bindings.
func DefaultRecordsKeyMap() RecordsKeyMap {
	return RecordsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("right/tab", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("left", "prev level"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RecordsModel is the Bubble Tea model for browsing solve records.
type RecordsModel struct {
	source      RecordSource
	levels      []storage.LevelStats // Levels with at least one solve
	levelCursor int
	records     []storage.SolveRecord
	table       table.Model
	help        help.Model
	keys        RecordsKeyMap
	width       int
	height      int
	err         error
	quitting    bool
}

// NewRecordsModel creates a records view starting at the given level,
// or at the smallest solved level if that one has no records.
func NewRecordsModel(source RecordSource, level, width, height int) RecordsModel {
	h := help.New()
	h.ShowAll = false

	m := RecordsModel{
		source: source,
		keys:   DefaultRecordsKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()

	m.levels, m.err = source.Stats()
	for i, st := range m.levels {
		if st.Level == level {
			m.levelCursor = i
		}
	}
	m.loadRecords()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *RecordsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Moves", Width: 8},
		{Title: "Time", Width: 10},
		{Title: "Image", Width: 20},
		{Title: "Date", Width: 14},
	}

	// Give the image column what is left of a wide terminal
	if extra := m.width - 4 - 58 - 10; extra > 0 {
		columns[3].Width += min(extra, 30)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)), // Leave room for title, tabs, help and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Level returns the level currently shown, 0 if there are none.
func (m RecordsModel) Level() int {
	if len(m.levels) == 0 {
		return 0
	}
	return m.levels[m.levelCursor].Level
}

// Records returns the records currently shown.
func (m RecordsModel) Records() []storage.SolveRecord {
	return m.records
}

// loadRecords loads the records of the selected level.
func (m *RecordsModel) loadRecords() {
	m.records = nil
	if level := m.Level(); level > 0 {
		records, err := m.source.TopSolves(level, maxRecords)
		if err != nil {
			m.err = err
		} else {
			m.records = records
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current records.
func (m *RecordsModel) updateTableRows() {
	m.table.SetRows(RecordRows(m.records))
	m.table.GotoTop()
}

// RecordRows formats records as table rows ranked in order.
func RecordRows(records []storage.SolveRecord) []table.Row {
	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Moves),
			FormatDuration(r.Duration),
			filepath.Base(r.Image),
			r.CreatedAt.Local().Format(dateFormat),
		}
	}
	return rows
}

// Init initializes the records model.
func (m RecordsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the records view.
func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextLevel):
			if len(m.levels) > 0 {
				m.levelCursor = (m.levelCursor + 1) % len(m.levels)
				m.loadRecords()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevLevel):
			if len(m.levels) > 0 {
				m.levelCursor = (m.levelCursor + len(m.levels) - 1) % len(m.levels)
				m.loadRecords()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the records view.
func (m RecordsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "BEST SOLVES"
	if level := m.Level(); level > 0 {
		title = fmt.Sprintf("BEST SOLVES - %dx%d", level, level)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTabs renders one tab per solved level with its summary.
func (m RecordsModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.levels))
	for i, st := range m.levels {
		label := fmt.Sprintf("%dx%d (%d)", st.Level, st.Level, st.Solves)
		if i == m.levelCursor {
			tabs[i] = activeTabStyle.Render(label)
		} else {
			tabs[i] = tabStyle.Render(label)
		}
	}
	return strings.Join(tabs, " ")
}

// renderTableContent renders the table or empty message.
func (m RecordsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.err != nil {
		return emptyStyle.Render(fmt.Sprintf("Could not read records:\n%v", m.err))
	}
	if len(m.records) == 0 {
		return emptyStyle.Render("No solves recorded yet.\nFinish a puzzle to set a record!")
	}
	return m.table.View()
}

// RunRecords runs the records view on the current terminal.
func RunRecords(source RecordSource, level, width, height int) error {
	model := NewRecordsModel(source, level, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

// FormatDuration renders a solve time as m:ss, or h:mm:ss past an hour.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	mins := int(d/time.Minute) % 60
	secs := int(d/time.Second) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mins, secs)
	}
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text
}
