package api

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"helpdesk_client/internal/models"
	"helpdesk_client/internal/normalize"
	"helpdesk_client/internal/relevance"
)

// ListMyTickets fetches the session user's own tickets.
func (c *Client) ListMyTickets() ([]models.Ticket, error) {
	raw, err := c.doJSON(http.MethodGet, "/api/chamados/meus", nil, c.timeouts.Normal, true)
	if err != nil {
		return nil, err
	}
	return ticketsFromPayload(raw), nil
}

// ListAllTickets fetches every ticket (admin and technician screens).
func (c *Client) ListAllTickets() ([]models.Ticket, error) {
	raw, err := c.doJSON(http.MethodGet, "/api/chamados/todos", nil, c.timeouts.Normal, true)
	if err != nil {
		return nil, err
	}
	return ticketsFromPayload(raw), nil
}

// GetTicket fetches one ticket by id. The direct route sometimes
// returns the ticket without its attachments; when that happens the
// role-appropriate list is scanned as a fallback and the richer record
// wins. The direct result is kept when the fallback finds nothing.
func (c *Client) GetTicket(id int64) (models.Ticket, error) {
	var direct *models.Ticket

	raw, err := c.doJSON(http.MethodGet, fmt.Sprintf("/api/chamados/%d", id), nil, c.timeouts.Light, true)
	if err == nil {
		if m := normalize.Map(raw); m != nil {
			t := models.TicketFromMap(m)
			if len(t.Attachments) > 0 {
				return t, nil
			}
			direct = &t
		}
	} else if errors.Is(err, ErrUnauthenticated) {
		return models.Ticket{}, err
	}

	var list []models.Ticket
	var listErr error
	if user, ok := c.CurrentUser(); ok && user.Role.Can(models.CapManageAllTickets) {
		list, listErr = c.ListAllTickets()
	} else {
		list, listErr = c.ListMyTickets()
	}
	if listErr == nil {
		for _, t := range list {
			if t.ID == id && (len(t.Attachments) > 0 || direct == nil) {
				return t, nil
			}
		}
	}

	if direct != nil {
		return *direct, nil
	}
	if err != nil {
		return models.Ticket{}, err
	}
	if listErr != nil {
		return models.Ticket{}, listErr
	}
	return models.Ticket{}, fmt.Errorf("chamado %d não encontrado", id)
}

// CreateTicket opens a new ticket. The local relevance filter runs
// first and blocks the submission before any network traffic; category
// and urgency are translated to the labels the API expects; attachment
// files are read from disk and embedded as base64 (the API takes no
// multipart uploads). Returns the created ticket, which carries the
// new id and the AI-suggested resolution when the server produced one.
func (c *Client) CreateTicket(title, description, category, urgency string, attachmentPaths []string) (models.Ticket, error) {
	if !c.Authenticated() {
		return models.Ticket{}, ErrUnauthenticated
	}

	ok, reason := relevance.Check(title, description)
	if !ok {
		return models.Ticket{}, fmt.Errorf("chamado rejeitado pelo filtro local: %s", reason)
	}

	categoryID, found := models.CategoryIDByName[strings.ToLower(category)]
	if !found {
		categoryID = 5
	}
	urgencyLabel, found := models.PriorityLabelByName[strings.ToLower(urgency)]
	if !found {
		urgencyLabel = "Média"
	}

	attachments := make([]map[string]string, 0, len(attachmentPaths))
	for _, path := range attachmentPaths {
		content, err := os.ReadFile(path)
		if err != nil {
			// A missing or unreadable file does not sink the ticket.
			log.Printf("anexo ignorado %s: %v", path, err)
			continue
		}
		attachments = append(attachments, map[string]string{
			"Nome":  filepath.Base(path),
			"Dados": base64.StdEncoding.EncodeToString(content),
		})
	}

	payload := map[string]any{
		"titulo":       title,
		"descricao":    description,
		"id_categoria": categoryID,
		"urgencia":     urgencyLabel,
		"anexos":       attachments,
	}

	raw, err := c.doJSON(http.MethodPost, "/api/chamados", payload, c.timeouts.Upload, true)
	if err != nil {
		return models.Ticket{}, err
	}
	c.metrics.IncTicketsCreated()

	created := models.TicketFromMap(normalize.Map(raw))
	return created, nil
}

// UpdateTicketStatus changes a ticket's status.
func (c *Client) UpdateTicketStatus(id int64, status string) error {
	payload := map[string]string{"status": status}
	_, err := c.doJSON(http.MethodPut, fmt.Sprintf("/api/chamados/%d", id), payload, c.timeouts.Light, true)
	return err
}

// AssignTicket assigns a ticket to a technician.
func (c *Client) AssignTicket(id int64, technicianID int64) error {
	payload := map[string]int64{"idTecnico": technicianID}
	_, err := c.doJSON(http.MethodPut, fmt.Sprintf("/api/chamados/%d/atribuir", id), payload, c.timeouts.Light, true)
	return err
}
