package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Sessions browser layout constants
const (
	minWidthForSidebar = 90 // Minimum width to show the runs sidebar
	sidebarWidth       = 26 // Width of the runs sidebar
	shortIDLen         = 8  // Session ID characters shown in the table
)

// SessionsKeyMap defines the key bindings for the sessions browser.
type SessionsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Verify key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SessionsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Verify, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k SessionsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Verify, k.Quit},
	}
}

// DefaultSessionsKeyMap returns default key bindings.
func DefaultSessionsKeyMap() SessionsKeyMap {
	return SessionsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Verify: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter", "replay"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// VerifyFunc replays the session with the given ID and returns a one-line
// verdict.
type VerifyFunc func(id string) (string, error)

// SessionsModel is the Bubble Tea model for browsing recorded sessions.
type SessionsModel struct {
	sessions    []storage.Session
	verify      VerifyFunc
	verdict     string
	verdictErr  bool
	table       table.Model
	help        help.Model
	keys        SessionsKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewSessionsModel creates a browser over the given sessions, newest first.
// verify may be nil, in which case replay is unavailable.
func NewSessionsModel(sessions []storage.Session, verify VerifyFunc, width, height int) SessionsModel {
	h := help.New()
	h.ShowAll = false

	m := SessionsModel{
		sessions:    sessions,
		verify:      verify,
		keys:        DefaultSessionsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates a new table sized to the current window.
func (m *SessionsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Session", Width: shortIDLen},
		{Title: "User", Width: 10},
		{Title: "Started", Width: 12},
		{Title: "Runs", Width: 5},
		{Title: "Best", Width: 6},
	}

	// Give spare width to the user column
	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if extra := tableWidth - used; extra > 0 {
		columns[1].Width += min(extra, 12)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
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

// updateTableRows fills the table from the loaded sessions.
func (m *SessionsModel) updateTableRows() {
	rows := make([]table.Row, len(m.sessions))
	for i, s := range m.sessions {
		rows[i] = table.Row{
			shortID(s.ID),
			s.User,
			s.StartedAt.Format("Jan 02 15:04"),
			fmt.Sprintf("%d", len(s.Runs)),
			fmt.Sprintf("%d", BestMeters(s.Runs)),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Selected returns the highlighted session, if any.
func (m SessionsModel) Selected() (storage.Session, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.sessions) {
		return storage.Session{}, false
	}
	return m.sessions[i], true
}

// Verdict returns the result of the last replay, if any.
func (m SessionsModel) Verdict() string {
	return m.verdict
}

// Init initializes the sessions model.
func (m SessionsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the sessions browser.
func (m SessionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Verify):
			m.runVerify()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			m.verdict = ""
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *SessionsModel) runVerify() {
	sess, ok := m.Selected()
	if !ok || m.verify == nil {
		return
	}
	verdict, err := m.verify(sess.ID)
	if err != nil {
		m.verdict = err.Error()
		m.verdictErr = true
		return
	}
	m.verdict = verdict
	m.verdictErr = false
}

// View renders the sessions browser.
func (m SessionsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("RECORDED SESSIONS", m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := boxStyle.Render(m.renderTableContent())

	if m.showSidebar && len(m.sessions) > 0 {
		sidebar := boxStyle.Width(sidebarWidth).Render(m.renderRuns())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tableRendered, "  ", sidebar))
	} else {
		b.WriteString(tableRendered)
	}
	b.WriteString("\n")

	if m.verdict != "" {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
		if m.verdictErr {
			style = style.Foreground(lipgloss.Color("9"))
		}
		b.WriteString(style.Render(m.verdict))
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m SessionsModel) renderTableContent() string {
	if len(m.sessions) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No sessions recorded yet.\nPlay a game to record one!")
	}
	return m.table.View()
}

// renderRuns lists the runs of the highlighted session.
func (m SessionsModel) renderRuns() string {
	sess, ok := m.Selected()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString("Runs\n")
	b.WriteString(strings.Repeat("-", sidebarWidth-4))
	b.WriteString("\n")
	if len(sess.Runs) == 0 {
		b.WriteString("none")
		return b.String()
	}
	for _, r := range sess.Runs {
		mark := ""
		if !r.Finished {
			mark = " *"
		}
		fmt.Fprintf(&b, "#%-3d %6d m%s\n", r.Index+1, r.Meters, mark)
	}
	return strings.TrimRight(b.String(), "\n")
}

// BestMeters returns the highest distance over runs, or zero.
func BestMeters(runs []storage.RunResult) int {
	best := 0
	for _, r := range runs {
		best = max(best, r.Meters)
	}
	return best
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
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

// RunSessions runs the sessions browser and blocks until the user quits.
func RunSessions(sessions []storage.Session, verify VerifyFunc, width, height int) error {
	model := NewSessionsModel(sessions, verify, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
