// Package tui is the terminal front end. It renders snapshots from the
// session and translates keystrokes into engine actions; all game logic
// stays behind the reducer.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/streetbook/internal/engine"
	"github.com/lox/streetbook/internal/session"
)

type tab int

const (
	tabGames tab = iota
	tabMissions
	tabBook
	tabDebts
	tabCount
)

var tabNames = [tabCount]string{"Games", "Missions", "Book", "Debts"}

// Model is the Bubble Tea model for a local game.
type Model struct {
	session *session.Session
	logger  *log.Logger

	state *engine.GameState

	logViewport viewport.Model

	tab      tab
	cursor   int
	quitting bool

	width       int
	height      int
	initialized bool
}

func New(sess *session.Session, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	return &Model{
		session:     sess,
		logger:      logger.WithPrefix("tui"),
		state:       sess.State(),
		logViewport: vp,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// dispatch runs an action through the session and refreshes the snapshot.
func (m *Model) dispatch(action engine.Action) {
	m.state = m.session.Dispatch(context.Background(), action)
	m.clampCursor()
	m.refreshLog()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	if key == "ctrl+c" {
		m.quitting = true
		return tea.Sequence(tea.ClearScreen, tea.Quit)
	}

	// The non-payer modal captures everything until resolved.
	if m.state.PendingNonPayer != nil {
		m.handlePopupKey(key)
		return nil
	}

	if m.state.IsGameOver {
		switch key {
		case "n":
			m.dispatch(engine.NewGame{})
		case "q", "esc":
			m.quitting = true
			return tea.Sequence(tea.ClearScreen, tea.Quit)
		}
		return nil
	}

	switch key {
	case "q", "esc":
		m.quitting = true
		return tea.Sequence(tea.ClearScreen, tea.Quit)

	case "tab":
		m.tab = (m.tab + 1) % tabCount
		m.cursor = 0
	case "shift+tab":
		m.tab = (m.tab + tabCount - 1) % tabCount
		m.cursor = 0

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.cursorMax() {
			m.cursor++
		}

	case "left", "-":
		if m.tab == tabGames {
			m.adjustLine(-0.5)
		}
	case "right", "+", "=":
		if m.tab == tabGames {
			m.adjustLine(0.5)
		}

	case "enter", " ":
		m.activate()

	case "r":
		m.dispatch(engine.Rest{})
	case "e":
		m.dispatch(engine.EndDay{})
	case "s":
		m.dispatch(engine.SimulateGames{})

	case "pgup":
		m.logViewport.HalfPageUp()
	case "pgdown":
		m.logViewport.HalfPageDown()
	}

	return nil
}

func (m *Model) handlePopupKey(key string) {
	popup := m.state.PendingNonPayer

	choice := engine.CollectionChoice("")
	switch key {
	case "1":
		choice = engine.LetSlide
	case "2":
		choice = engine.Pressure
	case "3":
		choice = engine.Enforce
	case "4":
		choice = engine.CutOff
	default:
		return
	}

	m.dispatch(engine.HandleNonPayer{CustomerID: popup.CustomerID, Choice: choice})
}

// activate runs the tab-specific action on the highlighted row.
func (m *Model) activate() {
	switch m.tab {
	case tabMissions:
		if m.cursor < len(m.state.AvailableMissions) {
			m.dispatch(engine.DoMission{MissionID: m.state.AvailableMissions[m.cursor].ID})
		}
	case tabDebts:
		if m.cursor < len(m.state.Debts) {
			m.dispatch(engine.CollectDebt{CustomerID: m.state.Debts[m.cursor].CustomerID})
		}
	}
}

func (m *Model) adjustLine(delta float64) {
	games := m.state.WeekGames()
	if m.cursor >= len(games) {
		return
	}
	g := games[m.cursor]
	m.dispatch(engine.SetLine{GameID: g.ID, Line: g.YourLine + delta})
}

func (m *Model) cursorMax() int {
	switch m.tab {
	case tabGames:
		return max(0, len(m.state.WeekGames())-1)
	case tabMissions:
		return max(0, len(m.state.AvailableMissions)-1)
	case tabBook:
		return max(0, len(m.state.Customers)-1)
	case tabDebts:
		return max(0, len(m.state.Debts)-1)
	}
	return 0
}

func (m *Model) clampCursor() {
	if m.cursor > m.cursorMax() {
		m.cursor = m.cursorMax()
	}
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.state.PendingNonPayer != nil {
		return m.centeredOverlay(m.renderPopup())
	}
	if m.state.IsGameOver {
		return m.centeredOverlay(m.renderGameOver())
	}

	header := m.renderHeader()
	tabs := m.renderTabs()
	help := m.renderHelp()

	chromeHeight := lipgloss.Height(header) + lipgloss.Height(tabs) + lipgloss.Height(help)
	bodyHeight := max(1, m.height-chromeHeight-2)

	contentWidth := max(1, m.width*3/5-2)
	logWidth := max(1, m.width-contentWidth-4)

	contentStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(contentWidth).
		Height(bodyHeight)

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(bodyHeight)

	m.logViewport.Width = logWidth
	m.logViewport.Height = bodyHeight
	if !m.initialized {
		m.refreshLog()
		m.initialized = true
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		contentStyle.Render(m.renderContent()),
		logStyle.Render(m.logViewport.View()),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, body, help)
}

func (m *Model) centeredOverlay(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
