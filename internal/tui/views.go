package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/streetbook/internal/book"
	"github.com/lox/streetbook/internal/engine"
	"github.com/lox/streetbook/internal/lines"
)

func (m *Model) renderHeader() string {
	s := m.state

	day := fmt.Sprintf("Week %d, Day %d", s.Week, s.Day)
	if s.Day == 7 {
		day += " (GAME DAY)"
	}

	stats := fmt.Sprintf("  %s  |  Energy %d/%d  |  ", money(s.Bankroll), s.Energy, s.MaxEnergy)

	return TitleStyle.Render("STREETBOOK") + "  " +
		InfoStyle.Render(day) +
		StatusStyle.Render(stats) +
		HeatStyle.Render(fmt.Sprintf("Heat %d", s.Heat))
}

func (m *Model) renderTabs() string {
	var parts []string
	for i, name := range tabNames {
		label := name
		switch tab(i) {
		case tabMissions:
			label = fmt.Sprintf("%s (%d)", name, len(m.state.AvailableMissions))
		case tabDebts:
			if n := len(m.state.Debts); n > 0 {
				label = fmt.Sprintf("%s (%d)", name, n)
			}
		}
		if tab(i) == m.tab {
			parts = append(parts, ActiveTabStyle.Render(label))
		} else {
			parts = append(parts, TabStyle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m *Model) renderHelp() string {
	var help string
	switch {
	case m.state.Day == 7:
		help = "s simulate games • tab switch • q quit"
	case m.tab == tabGames:
		help = "↑↓ select • ←/→ move line ±0.5 • r rest • e end day • tab switch • q quit"
	case m.tab == tabMissions:
		help = "↑↓ select • enter run mission • r rest • e end day • tab switch • q quit"
	case m.tab == tabDebts:
		help = "↑↓ select • enter collect • r rest • e end day • tab switch • q quit"
	default:
		help = "↑↓ scroll • r rest • e end day • tab switch • q quit"
	}
	return HelpStyle.Render(help)
}

func (m *Model) renderContent() string {
	switch m.tab {
	case tabGames:
		return m.renderGames()
	case tabMissions:
		return m.renderMissions()
	case tabBook:
		return m.renderBook()
	case tabDebts:
		return m.renderDebts()
	}
	return ""
}

func (m *Model) renderGames() string {
	var b strings.Builder
	games := m.state.WeekGames()

	for i, g := range games {
		home := m.state.Team(g.HomeID)
		away := m.state.Team(g.AwayID)
		if home == nil || away == nil {
			continue
		}

		line := fmt.Sprintf("%s (%s) @ %s (%s)",
			away.FullName(), away.RecordString(),
			home.FullName(), home.RecordString())

		var detail string
		if g.IsComplete() {
			detail = fmt.Sprintf("  FINAL: %s %d - %s %d",
				away.Abbreviation, g.Final.Away, home.Abbreviation, g.Final.Home)
		} else {
			detail = fmt.Sprintf("  Your line: %s %s",
				home.Abbreviation,
				lines.FormatSpread(g.YourLine, lines.Home))
			// The market number is inside information: scouting buys it.
			if m.state.ScoutedThisWeek {
				detail += fmt.Sprintf("  (market %s)", lines.FormatSpread(g.MarketLine, lines.Home))
			}
			if handle := m.gameHandle(g.ID); handle > 0 {
				detail += fmt.Sprintf("  handle %s", money(handle))
			}
		}

		row := line + "\n" + detail
		if i == m.cursor {
			row = SelectedStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")

		for _, n := range g.News {
			if n.IsRevealed {
				b.WriteString(NewsStyle.Render("    » " + n.Headline))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	if len(games) == 0 {
		b.WriteString(InfoStyle.Render("No games scheduled."))
	}
	return b.String()
}

// gameHandle sums the open action on one game.
func (m *Model) gameHandle(gameID string) int {
	total := 0
	for _, bet := range m.state.Bets {
		if bet.GameID == gameID && bet.Result == lines.Ungraded {
			total += bet.Amount
		}
	}
	return total
}

func (m *Model) renderMissions() string {
	var b strings.Builder

	for i, mission := range m.state.AvailableMissions {
		title := mission.Title
		if mission.Location != "" {
			title += InfoStyle.Render("  @ " + mission.Location)
		}

		var costs []string
		if mission.EnergyCost > 0 {
			costs = append(costs, fmt.Sprintf("%d energy", mission.EnergyCost))
		}
		if mission.MoneyCost > 0 {
			costs = append(costs, money(mission.MoneyCost))
		}
		if mission.Risk > 0 {
			costs = append(costs, fmt.Sprintf("%.0f%% risk", mission.Risk*100))
		}
		cost := "free"
		if len(costs) > 0 {
			cost = strings.Join(costs, ", ")
		}

		row := fmt.Sprintf("%s\n  %s\n  %s", title, mission.Description, WarningStyle.Render(cost))
		if i == m.cursor {
			row = SelectedStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n\n")
	}

	if len(m.state.AvailableMissions) == 0 {
		b.WriteString(InfoStyle.Render("Nothing doing today. Rest up or end the day."))
	}
	return b.String()
}

func (m *Model) renderBook() string {
	var b strings.Builder

	for i, c := range m.state.Customers {
		status := ""
		if !c.IsActive {
			status = LossStyle.Render("  [cut off]")
		}

		row := fmt.Sprintf("%s  %s%s\n  max bet %s, pays %.0f%% of the time",
			c.Name, InfoStyle.Render(book.TypeLabel(c.Type)), status,
			money(c.MaxBet), c.Reliability*100)
		if i == m.cursor {
			row = SelectedStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n\n")
	}
	return b.String()
}

func (m *Model) renderDebts() string {
	var b strings.Builder

	for i, d := range m.state.Debts {
		name := "Unknown"
		if c := m.state.Customer(d.CustomerID); c != nil {
			name = c.Name
		}

		row := fmt.Sprintf("%s owes %s", name, money(d.Amount))
		if d.Location != "" {
			row += InfoStyle.Render("  @ " + d.Location)
		}
		if d.Attempts > 0 {
			row += WarningStyle.Render(fmt.Sprintf("  (dodged you %dx)", d.Attempts))
		}
		if i == m.cursor {
			row = SelectedStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	if len(m.state.Debts) == 0 {
		b.WriteString(InfoStyle.Render("Nobody owes you. Enjoy it while it lasts."))
	}
	return b.String()
}

func (m *Model) renderPopup() string {
	popup := m.state.PendingNonPayer

	var b strings.Builder
	b.WriteString(DangerStyle.Render(fmt.Sprintf("%s won't pay the %s they owe!", popup.CustomerName, money(popup.Amount))))
	b.WriteString("\n\n")
	b.WriteString("1) Talk it out       they pay, no strings\n")
	b.WriteString("2) Apply pressure    1 energy, +5 heat, usually works\n")
	b.WriteString("3) Send the muscle   2 energy, +15 heat, always works\n")
	b.WriteString("4) Cut them off      eat the loss, lose the customer\n")

	return PopupStyle.Render(b.String())
}

func (m *Model) renderGameOver() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("GAME OVER"))
	b.WriteString("\n\n")
	b.WriteString(m.state.GameOverReason)
	b.WriteString("\n\n")

	profit := m.state.Bankroll - m.state.StartingBankroll
	if profit >= 0 {
		b.WriteString(WinStyle.Render(fmt.Sprintf("Final: %s (+%s)", money(m.state.Bankroll), money(profit))))
	} else {
		b.WriteString(LossStyle.Render(fmt.Sprintf("Final: %s (%s)", money(m.state.Bankroll), money(profit))))
	}
	b.WriteString("\n\n")
	b.WriteString(HelpStyle.Render("n new game • q quit"))

	return GameOverStyle.Render(b.String())
}

// refreshLog rebuilds the log viewport, newest entries at the bottom.
func (m *Model) refreshLog() {
	var b strings.Builder
	lastDay := 0

	for _, entry := range m.state.Log {
		if entry.Day != lastDay {
			lastDay = entry.Day
			b.WriteString("\n")
		}
		b.WriteString(levelStyle(entry.Level).Render(entry.Message))
		b.WriteString("\n")
	}

	m.logViewport.SetContent(b.String())
	m.logViewport.GotoBottom()
}

func levelStyle(level engine.LogLevel) lipgloss.Style {
	switch level {
	case engine.LogWin:
		return WinStyle
	case engine.LogLoss:
		return LossStyle
	case engine.LogWarning:
		return WarningStyle
	case engine.LogDanger:
		return DangerStyle
	case engine.LogNews:
		return NewsStyle
	default:
		return InfoStyle
	}
}

func money(amount int) string {
	if amount < 0 {
		return fmt.Sprintf("-$%d", -amount)
	}
	return fmt.Sprintf("$%d", amount)
}
