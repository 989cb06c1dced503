package api

import (
	"fmt"
	"net/http"

	"helpdesk_client/internal/listing"
	"helpdesk_client/internal/models"
	"helpdesk_client/internal/normalize"
)

// ListComments fetches a ticket's comments, ordered oldest-first —
// the order the detail screen renders them in.
func (c *Client) ListComments(ticketID int64) ([]models.Comment, error) {
	path := fmt.Sprintf("/api/chamados/%d/comentarios", ticketID)
	raw, err := c.doJSON(http.MethodGet, path, nil, c.timeouts.Light, true)
	if err != nil {
		return nil, err
	}

	list, _ := normalize.Normalize(raw).([]any)
	comments := make([]models.Comment, 0, len(list))
	for _, entry := range list {
		if m, ok := entry.(map[string]any); ok {
			comments = append(comments, models.CommentFromMap(m))
		}
	}
	listing.SortCommentsByCreation(comments)
	return comments, nil
}

// PostComment adds a comment to a ticket and returns the stored record.
func (c *Client) PostComment(ticketID int64, text string) (models.Comment, error) {
	path := fmt.Sprintf("/api/chamados/%d/comentarios", ticketID)
	payload := map[string]string{"comentario": text}
	raw, err := c.doJSON(http.MethodPost, path, payload, c.timeouts.Light, true)
	if err != nil {
		return models.Comment{}, err
	}
	c.metrics.IncCommentsPosted()
	return models.CommentFromMap(normalize.Map(raw)), nil
}
