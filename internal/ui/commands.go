package ui

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"helpdesk_client/internal/models"
	"helpdesk_client/internal/report"
)

// Gateway commands. Each one runs a single remote call off the Update
// goroutine and reports back with a typed message. There is no
// cancellation and no automatic retry: a failed call surfaces its
// error once and the previous screen content stays rendered.

func (m Model) healthCheckCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return healthResultMsg{up: client.HealthCheck()}
	}
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		user, err := client.Login(email, password)
		return loginResultMsg{user: user, err: err}
	}
}

// loadTicketsCmd fetches the role-appropriate ticket list: the global
// queue for technicians and admins, the session user's own otherwise.
func (m Model) loadTicketsCmd(gen uint64) tea.Cmd {
	client := m.client
	global := m.user.Role.Can(models.CapManageAllTickets)
	return func() tea.Msg {
		var (
			tickets []models.Ticket
			err     error
		)
		if global {
			tickets, err = client.ListAllTickets()
		} else {
			tickets, err = client.ListMyTickets()
		}
		return ticketsLoadedMsg{gen: gen, tickets: tickets, err: err}
	}
}

// loadTicketCmd fetches one ticket and its comment thread.
func (m Model) loadTicketCmd(gen uint64, id int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ticket, err := client.GetTicket(id)
		if err != nil {
			return ticketLoadedMsg{gen: gen, err: err}
		}
		comments, err := client.ListComments(id)
		if err != nil {
			return ticketLoadedMsg{gen: gen, err: err}
		}
		return ticketLoadedMsg{gen: gen, ticket: ticket, comments: comments}
	}
}

func (m Model) postCommentCmd(gen uint64, ticketID int64, text string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		_, err := client.PostComment(ticketID, text)
		return commentPostedMsg{gen: gen, err: err}
	}
}

func (m Model) createTicketCmd(gen uint64, title, description, category, urgency string, attachments []string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ticket, err := client.CreateTicket(title, description, category, urgency, attachments)
		return ticketCreatedMsg{gen: gen, ticket: ticket, err: err}
	}
}

func (m Model) updateStatusCmd(gen uint64, ticketID int64, status string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return statusUpdatedMsg{gen: gen, err: client.UpdateTicketStatus(ticketID, status)}
	}
}

func (m Model) assignTicketCmd(gen uint64, ticketID, technicianID int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return assignResultMsg{gen: gen, err: client.AssignTicket(ticketID, technicianID)}
	}
}

// saveAttachmentsCmd decodes the ticket's inline attachments into dir.
// URL-only attachments have no local content and are skipped.
func saveAttachmentsCmd(ticket models.Ticket, dir string) tea.Cmd {
	return func() tea.Msg {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return attachmentsSavedMsg{err: err}
		}
		count := 0
		for _, attachment := range ticket.Attachments {
			if attachment.Data == "" {
				continue
			}
			content, err := base64.StdEncoding.DecodeString(attachment.Data)
			if err != nil {
				return attachmentsSavedMsg{err: fmt.Errorf("anexo %s corrompido: %w", attachment.Name, err)}
			}
			path := filepath.Join(dir, filepath.Base(attachment.Name))
			if err := os.WriteFile(path, content, 0644); err != nil {
				return attachmentsSavedMsg{err: err}
			}
			count++
		}
		return attachmentsSavedMsg{dir: dir, count: count}
	}
}

func (m Model) loadUsersCmd(gen uint64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		users, err := client.ListUsers()
		return usersLoadedMsg{gen: gen, users: users, err: err}
	}
}

func (m Model) updateUserCmd(gen uint64, id, fullName string, profileID int, active bool) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return userSavedMsg{gen: gen, err: client.UpdateUser(id, fullName, profileID, active)}
	}
}

func (m Model) deactivateUserCmd(gen uint64, id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return userSavedMsg{gen: gen, err: client.DeactivateUser(id)}
	}
}

func (m Model) loadReportCmd(gen uint64, start, end string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		r, err := client.Report(start, end)
		return reportLoadedMsg{gen: gen, report: r, err: err}
	}
}

func exportReportCmd(path string, r models.Report, categories []report.CategoryTotal) tea.Cmd {
	return func() tea.Msg {
		return exportDoneMsg{path: path, err: report.ExportPDF(path, r, categories)}
	}
}

func (m Model) loadArticlesCmd(gen uint64, term string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		articles, err := client.ListArticles(term, 0)
		return articlesLoadedMsg{gen: gen, articles: articles, err: err}
	}
}

func (m Model) loadArticleCmd(gen uint64, id int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		article, err := client.GetArticle(id)
		return articleLoadedMsg{gen: gen, article: article, err: err}
	}
}
