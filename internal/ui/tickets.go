package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"helpdesk_client/internal/listing"
	"helpdesk_client/internal/models"
)

// statusCycle and priorityCycle are the values the quick filters step
// through; "" means no filtering on that predicate.
var statusCycle = []string{"", models.StatusOpen, models.StatusInProgress, models.StatusResolved, models.StatusClosed}
var priorityCycle = []string{"", "baixa", "media", "alta"}

type ticketsState struct {
	all      []models.Ticket
	filtered []models.Ticket

	filter      listing.TicketFilter
	filterInput textinput.Model
	filtering   bool
	statusIdx   int
	priorityIdx int

	pager   *listing.Paginator
	cursor  int
	loading bool
}

func (m Model) openTickets() (tea.Model, tea.Cmd) {
	if m.tickets.pager == nil {
		m.tickets.pager = listing.NewPaginator(m.cfg.UI.TicketsPerPage)
		input := textinput.New()
		input.Placeholder = "id ou título"
		input.CharLimit = 80
		input.Width = 30
		m.tickets.filterInput = input
	}
	m.screen = ScreenTickets
	m.tickets.loading = true
	return m, m.loadTicketsCmd(m.nextGen())
}

func (m Model) handleTicketsLoaded(msg ticketsLoadedMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case ScreenDashboard:
		m.dash.loading = false
		if msg.err != nil {
			return m.remoteError(msg.err)
		}
		m.dash.tickets = msg.tickets

	case ScreenTickets:
		m.tickets.loading = false
		if msg.err != nil {
			return m.remoteError(msg.err)
		}
		listing.SortTicketsByIDDesc(msg.tickets)
		m.tickets.all = msg.tickets
		m.applyTicketFilter()
	}
	return m, nil
}

// applyTicketFilter recomputes the filtered list. The page resets to 1:
// the criteria changed underneath the view.
func (m *Model) applyTicketFilter() {
	m.tickets.filter.Query = m.tickets.filterInput.Value()
	m.tickets.filter.Status = statusCycle[m.tickets.statusIdx]
	m.tickets.filter.Priority = priorityCycle[m.tickets.priorityIdx]
	m.tickets.filtered = m.tickets.filter.Apply(m.tickets.all)
	m.tickets.pager.Reset(len(m.tickets.filtered))
	m.tickets.cursor = 0
}

func (m Model) updateTickets(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)

	if m.tickets.filtering {
		if isKey {
			switch {
			case key.Matches(keyMsg, m.keys.Back), key.Matches(keyMsg, m.keys.Select):
				m.tickets.filtering = false
				m.tickets.filterInput.Blur()
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.tickets.filterInput, cmd = m.tickets.filterInput.Update(msg)
		m.applyTicketFilter()
		return m, cmd
	}

	if !isKey {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Filter):
		m.tickets.filtering = true
		return m, m.tickets.filterInput.Focus()

	case key.Matches(keyMsg, m.keys.CycleStatus):
		m.tickets.statusIdx = (m.tickets.statusIdx + 1) % len(statusCycle)
		m.applyTicketFilter()

	case key.Matches(keyMsg, m.keys.CyclePriority):
		m.tickets.priorityIdx = (m.tickets.priorityIdx + 1) % len(priorityCycle)
		m.applyTicketFilter()

	case key.Matches(keyMsg, m.keys.Refresh):
		m.tickets.loading = true
		return m, m.loadTicketsCmd(m.nextGen())

	case key.Matches(keyMsg, m.keys.Up):
		if m.tickets.cursor > 0 {
			m.tickets.cursor--
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.tickets.cursor < len(m.currentTicketPage())-1 {
			m.tickets.cursor++
		}

	case key.Matches(keyMsg, m.keys.PrevPage):
		m.tickets.pager.Prev()
		m.tickets.cursor = 0

	case key.Matches(keyMsg, m.keys.NextPage):
		m.tickets.pager.Next()
		m.tickets.cursor = 0

	case key.Matches(keyMsg, m.keys.Select):
		page := m.currentTicketPage()
		if m.tickets.cursor < len(page) {
			return m.openDetail(page[m.tickets.cursor].ID)
		}

	case key.Matches(keyMsg, m.keys.Back):
		return m.openDashboard()
	}
	return m, nil
}

func (m Model) currentTicketPage() []models.Ticket {
	return listing.PageOf(m.tickets.pager, m.tickets.filtered)
}

func (m Model) viewTickets() string {
	if m.tickets.loading {
		return m.spinner.View() + " carregando chamados..."
	}

	var b strings.Builder

	filterLine := fmt.Sprintf("busca: %s", m.tickets.filterInput.View())
	if status := statusCycle[m.tickets.statusIdx]; status != "" {
		filterLine += "  status: " + status
	}
	if priority := priorityCycle[m.tickets.priorityIdx]; priority != "" {
		filterLine += "  urgência: " + priority
	}
	b.WriteString(lipgloss.NewStyle().Foreground(m.theme.FaintText).Render(filterLine) + "\n\n")

	page := m.currentTicketPage()
	if len(page) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(m.theme.FaintText).Render("nenhum chamado encontrado") + "\n")
	}
	for i, t := range page {
		status := lipgloss.NewStyle().Foreground(m.theme.StatusColor(t.Status)).
			Render(fmt.Sprintf("%-13.13s", statusLabel(t.Status)))
		priority := lipgloss.NewStyle().Foreground(m.theme.PriorityColor(t.Priority)).
			Render(fmt.Sprintf("%-8.8s", priorityLabel(t.Priority)))
		row := fmt.Sprintf("#%-6d %s %s %-10.10s %s", t.ID, status, priority, t.CategoryName(), t.Title)
		if i == m.tickets.cursor {
			row = lipgloss.NewStyle().
				Foreground(m.theme.SelectedForeground).
				Background(m.theme.SelectedBackground).
				Render(row)
		}
		b.WriteString(row + "\n")
	}

	b.WriteString("\n" + lipgloss.NewStyle().Foreground(m.theme.HelpText).
		Render(fmt.Sprintf("Página %d de %d (%d chamados)",
			m.tickets.pager.Page(), m.tickets.pager.TotalPages(), len(m.tickets.filtered))))
	return b.String()
}

// priorityLabel renders an empty priority as the medium default.
func priorityLabel(priority string) string {
	if priority == "" {
		return "média"
	}
	return priority
}
