package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"helpdesk_client/internal/models"
)

// statusOptions are the transitions offered on the detail screen.
var statusOptions = []string{
	models.StatusInProgress,
	models.StatusResolved,
	models.StatusClosed,
	models.StatusOpen,
}

type detailState struct {
	ticketID int64
	ticket   models.Ticket
	comments []models.Comment
	loading  bool

	commentInput textinput.Model
	commenting   bool

	statusIdx int
	picking   bool

	assignInput textinput.Model
	assigning   bool
}

func newDetailState(ticketID int64) detailState {
	comment := textinput.New()
	comment.Placeholder = "escreva um comentário"
	comment.CharLimit = 500
	comment.Width = 60

	assign := textinput.New()
	assign.Placeholder = "id do técnico"
	assign.CharLimit = 12
	assign.Width = 16

	return detailState{
		ticketID:     ticketID,
		loading:      true,
		commentInput: comment,
		assignInput:  assign,
	}
}

func (m Model) openDetail(id int64) (tea.Model, tea.Cmd) {
	m.screen = ScreenTicketDetail
	m.clearNotices()
	m.detail = newDetailState(id)
	return m, m.loadTicketCmd(m.nextGen(), id)
}

func (m Model) handleTicketLoaded(msg ticketLoadedMsg) (tea.Model, tea.Cmd) {
	m.detail.loading = false
	if msg.err != nil {
		return m.remoteError(msg.err)
	}
	m.detail.ticket = msg.ticket
	m.detail.comments = msg.comments
	return m, nil
}

func (m Model) handleCommentPosted(msg commentPostedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.remoteError(msg.err)
	}
	m.setInfo("comentário registrado")
	m.detail.loading = true
	return m, m.loadTicketCmd(m.nextGen(), m.detail.ticketID)
}

func (m Model) handleStatusUpdated(msg statusUpdatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.remoteError(msg.err)
	}
	m.setInfo("status atualizado")
	m.detail.loading = true
	return m, m.loadTicketCmd(m.nextGen(), m.detail.ticketID)
}

func (m Model) handleAssignResult(msg assignResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.remoteError(msg.err)
	}
	m.setInfo("chamado atribuído")
	m.detail.loading = true
	return m, m.loadTicketCmd(m.nextGen(), m.detail.ticketID)
}

func (m Model) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)

	switch {
	case m.detail.commenting:
		if isKey {
			switch {
			case key.Matches(keyMsg, m.keys.Back):
				m.detail.commenting = false
				m.detail.commentInput.Blur()
				return m, nil
			case key.Matches(keyMsg, m.keys.Select):
				text := strings.TrimSpace(m.detail.commentInput.Value())
				if text == "" {
					return m, nil
				}
				m.detail.commenting = false
				m.detail.commentInput.Blur()
				m.detail.commentInput.SetValue("")
				return m, m.postCommentCmd(m.gen, m.detail.ticketID, text)
			}
		}
		var cmd tea.Cmd
		m.detail.commentInput, cmd = m.detail.commentInput.Update(msg)
		return m, cmd

	case m.detail.picking:
		if !isKey {
			return m, nil
		}
		switch {
		case key.Matches(keyMsg, m.keys.Back):
			m.detail.picking = false
		case key.Matches(keyMsg, m.keys.Up):
			if m.detail.statusIdx > 0 {
				m.detail.statusIdx--
			}
		case key.Matches(keyMsg, m.keys.Down):
			if m.detail.statusIdx < len(statusOptions)-1 {
				m.detail.statusIdx++
			}
		case key.Matches(keyMsg, m.keys.Select):
			m.detail.picking = false
			return m, m.updateStatusCmd(m.gen, m.detail.ticketID, statusOptions[m.detail.statusIdx])
		}
		return m, nil

	case m.detail.assigning:
		if isKey {
			switch {
			case key.Matches(keyMsg, m.keys.Back):
				m.detail.assigning = false
				m.detail.assignInput.Blur()
				return m, nil
			case key.Matches(keyMsg, m.keys.Select):
				id, err := strconv.ParseInt(strings.TrimSpace(m.detail.assignInput.Value()), 10, 64)
				if err != nil {
					m.setInfo("informe o id numérico do técnico")
					return m, nil
				}
				m.detail.assigning = false
				m.detail.assignInput.Blur()
				return m, m.assignTicketCmd(m.gen, m.detail.ticketID, id)
			}
		}
		var cmd tea.Cmd
		m.detail.assignInput, cmd = m.detail.assignInput.Update(msg)
		return m, cmd
	}

	if !isKey {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Comment):
		m.detail.commenting = true
		return m, m.detail.commentInput.Focus()

	case key.Matches(keyMsg, m.keys.ChangeStatus):
		if m.user.Role.Can(models.CapUpdateStatus) {
			m.detail.picking = true
		}

	case key.Matches(keyMsg, m.keys.Assign):
		if m.user.Role.Can(models.CapAssignTickets) {
			m.detail.assigning = true
			return m, m.detail.assignInput.Focus()
		}

	case key.Matches(keyMsg, m.keys.Download):
		if len(m.detail.ticket.Attachments) > 0 {
			dir := fmt.Sprintf("downloads/chamado_%d", m.detail.ticketID)
			return m, saveAttachmentsCmd(m.detail.ticket, dir)
		}

	case key.Matches(keyMsg, m.keys.Refresh):
		m.detail.loading = true
		return m, m.loadTicketCmd(m.nextGen(), m.detail.ticketID)

	case key.Matches(keyMsg, m.keys.Back):
		return m.openTickets()
	}
	return m, nil
}

func (m Model) viewDetail() string {
	if m.detail.loading {
		return m.spinner.View() + " carregando chamado..."
	}

	t := m.detail.ticket
	faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)
	bold := lipgloss.NewStyle().Bold(true)

	var b strings.Builder
	b.WriteString(bold.Render(fmt.Sprintf("Chamado #%d — %s", t.ID, t.Title)) + "\n")

	status := lipgloss.NewStyle().Foreground(m.theme.StatusColor(t.Status)).Render(statusLabel(t.Status))
	priority := lipgloss.NewStyle().Foreground(m.theme.PriorityColor(t.Priority)).Render(priorityLabel(t.Priority))
	b.WriteString(fmt.Sprintf("%s  ·  urgência %s  ·  %s  ·  aberto em %s\n\n",
		status, priority, t.CategoryName(), shortDate(t.OpenedAt)))

	b.WriteString(t.Description + "\n")

	if t.SuggestedResolution != "" {
		b.WriteString("\n" + bold.Render("Sugestão automática") + "\n")
		b.WriteString(t.SuggestedResolution + "\n")
	}

	if len(t.Attachments) > 0 {
		b.WriteString("\n" + bold.Render("Anexos") + "\n")
		for _, attachment := range t.Attachments {
			b.WriteString("  " + attachment.Name + "\n")
		}
	}

	b.WriteString("\n" + bold.Render(fmt.Sprintf("Comentários (%d)", len(m.detail.comments))) + "\n")
	for _, comment := range m.detail.comments {
		b.WriteString(faint.Render(fmt.Sprintf("%s — %s", comment.AuthorName, shortDate(comment.CreatedAt))) + "\n")
		b.WriteString("  " + comment.Text + "\n")
	}

	switch {
	case m.detail.commenting:
		b.WriteString("\n" + m.detail.commentInput.View())
	case m.detail.picking:
		b.WriteString("\n" + bold.Render("Novo status:") + "\n")
		for i, option := range statusOptions {
			marker := "  "
			if i == m.detail.statusIdx {
				marker = "> "
			}
			b.WriteString(marker + option + "\n")
		}
	case m.detail.assigning:
		b.WriteString("\n" + bold.Render("Atribuir a:") + " " + m.detail.assignInput.View())
	}
	return b.String()
}

// shortDate renders the date prefix of an ISO timestamp.
func shortDate(iso string) string {
	if when, ok := parseWhen(iso); ok {
		return when.Format("02/01/2006")
	}
	if iso == "" {
		return "-"
	}
	return iso
}
