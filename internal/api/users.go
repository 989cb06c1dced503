package api

import (
	"fmt"
	"net/http"

	"helpdesk_client/internal/models"
	"helpdesk_client/internal/normalize"
)

// ListUsers fetches every user account. Requires the admin profile on
// the server side; a 403 surfaces as a StatusError.
func (c *Client) ListUsers() ([]models.User, error) {
	raw, err := c.doJSON(http.MethodGet, "/api/usuarios", nil, c.timeouts.Normal, true)
	if err != nil {
		return nil, err
	}

	list, _ := normalize.Normalize(raw).([]any)
	users := make([]models.User, 0, len(list))
	for _, entry := range list {
		if m, ok := entry.(map[string]any); ok {
			user := models.UserFromMap(m)
			user.Role = models.RoleFromID(user.ProfileID)
			users = append(users, user)
		}
	}
	return users, nil
}

// UpdateUser rewrites a user's name, profile and active flag.
func (c *Client) UpdateUser(id string, fullName string, profileID int, active bool) error {
	payload := map[string]any{
		"nome_completo": fullName,
		"id_perfil":     profileID,
		"ativo":         active,
	}
	_, err := c.doJSON(http.MethodPut, "/api/usuarios/"+id, payload, c.timeouts.Light, true)
	return err
}

// DeactivateUser marks an account inactive. The API models this as a
// delete; the record survives for history.
func (c *Client) DeactivateUser(id string) error {
	_, err := c.doJSON(http.MethodDelete, "/api/usuarios/"+id, nil, c.timeouts.Light, true)
	return err
}

// Report fetches the managerial report. Empty start/end use the
// server's default period; otherwise they are ISO dates.
func (c *Client) Report(start, end string) (models.Report, error) {
	path := "/api/relatorios/chamados"
	if start != "" || end != "" {
		path = fmt.Sprintf("%s?dataInicio=%s&dataFim=%s", path, start, end)
	}
	raw, err := c.doJSON(http.MethodGet, path, nil, c.timeouts.Normal, true)
	if err != nil {
		return models.Report{}, err
	}
	return models.ReportFromMap(normalize.Map(raw)), nil
}
