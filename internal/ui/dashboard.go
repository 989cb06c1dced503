package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"helpdesk_client/internal/listing"
	"helpdesk_client/internal/models"
)

type dashState struct {
	entries []menuEntry
	cursor  int
	tickets []models.Ticket
	loading bool
}

// recentTickets returns the most recent tickets opened within the last
// days, newest id first, capped at limit. Tickets whose opening date
// cannot be parsed are excluded rather than guessed at.
func recentTickets(tickets []models.Ticket, days, limit int, now time.Time) []models.Ticket {
	cutoff := now.AddDate(0, 0, -days)
	recent := make([]models.Ticket, 0, limit)
	for _, t := range tickets {
		opened, ok := parseWhen(t.OpenedAt)
		if !ok || opened.Before(cutoff) {
			continue
		}
		recent = append(recent, t)
	}
	listing.SortTicketsByIDDesc(recent)
	if len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}

// parseWhen accepts the timestamp shapes the API emits.
func parseWhen(iso string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, iso); err == nil {
			return t, true
		}
	}
	if len(iso) >= 10 {
		if t, err := time.Parse("2006-01-02", iso[:10]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (m Model) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.dash.cursor > 0 {
			m.dash.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.dash.cursor < len(m.dash.entries)-1 {
			m.dash.cursor++
		}
	case key.Matches(keyMsg, m.keys.Refresh):
		m.dash.loading = true
		return m, m.loadTicketsCmd(m.nextGen())
	case key.Matches(keyMsg, m.keys.Select):
		if len(m.dash.entries) == 0 {
			return m, nil
		}
		return m.openScreen(m.dash.entries[m.dash.cursor].screen)
	}
	return m, nil
}

// openScreen enters a menu destination, starting its load.
func (m Model) openScreen(screen Screen) (tea.Model, tea.Cmd) {
	m.clearNotices()
	switch screen {
	case ScreenTickets:
		return m.openTickets()
	case ScreenNewTicket:
		return m.openForm()
	case ScreenUsers:
		return m.openUsers()
	case ScreenReports:
		return m.openReports()
	case ScreenArticles:
		return m.openArticles()
	}
	return m, nil
}

func (m Model) viewDashboard() string {
	if m.dash.loading {
		return m.spinner.View() + " carregando painel..."
	}

	open := len(listing.TicketFilter{Status: models.StatusOpen}.Apply(m.dash.tickets))
	inProgress := len(listing.TicketFilter{Status: models.StatusInProgress}.Apply(m.dash.tickets))
	resolved := len(listing.TicketFilter{Status: models.StatusResolved}.Apply(m.dash.tickets))

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.statCard("Abertos", open, m.theme.StatusOpen),
		m.statCard("Em Andamento", inProgress, m.theme.StatusInProgress),
		m.statCard("Resolvidos", resolved, m.theme.StatusResolved),
	)

	var menu strings.Builder
	for i, entry := range m.dash.entries {
		line := "  " + entry.label
		if i == m.dash.cursor {
			line = lipgloss.NewStyle().
				Foreground(m.theme.SelectedForeground).
				Background(m.theme.SelectedBackground).
				Render("> " + entry.label)
		}
		menu.WriteString(line + "\n")
	}

	recents := recentTickets(m.dash.tickets, m.cfg.UI.RecentDays, m.cfg.UI.RecentLimit, time.Now())
	var recentLines strings.Builder
	recentLines.WriteString(lipgloss.NewStyle().Bold(true).Render("Chamados recentes") + "\n")
	if len(recents) == 0 {
		recentLines.WriteString(lipgloss.NewStyle().Foreground(m.theme.FaintText).
			Render(fmt.Sprintf("nenhum chamado nos últimos %d dias", m.cfg.UI.RecentDays)))
	}
	for _, t := range recents {
		status := lipgloss.NewStyle().Foreground(m.theme.StatusColor(t.Status)).Render(statusLabel(t.Status))
		recentLines.WriteString(fmt.Sprintf("#%d  %-40.40s %s\n", t.ID, t.Title, status))
	}

	return lipgloss.JoinVertical(lipgloss.Left, cards, "", menu.String(), recentLines.String())
}

func (m Model) statCard(label string, value int, color lipgloss.Color) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderColor).
		Padding(0, 2).
		Render(fmt.Sprintf("%s\n%s", label,
			lipgloss.NewStyle().Foreground(color).Bold(true).Render(fmt.Sprintf("%d", value))))
}

// statusLabel renders an empty status as the open default.
func statusLabel(status string) string {
	if status == "" {
		return models.StatusOpen
	}
	return status
}
