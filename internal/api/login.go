package api

import (
	"errors"
	"fmt"
	"net/http"

	"helpdesk_client/internal/models"
	"helpdesk_client/internal/normalize"
)

// Login authenticates and establishes the session. The flow is
// all-or-nothing: the credential exchange yields a token, the token is
// stored, and the caller's own profile is fetched with it. If the
// profile fetch fails the token is discarded and the whole operation
// fails — a session with a token but no profile is never left live.
func (c *Client) Login(email, password string) (models.User, error) {
	c.metrics.IncLoginAttempts()

	payload := map[string]string{"email": email, "password": password}
	raw, err := c.doJSON(http.MethodPost, "/api/auth/login", payload, c.timeouts.Normal, false)
	if err != nil {
		return models.User{}, fmt.Errorf("falha no login: %w", err)
	}

	response := normalize.Map(raw)
	token, _ := response["token"].(string)
	if token == "" {
		return models.User{}, errors.New("token não recebido")
	}

	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	profileRaw, err := c.doJSON(http.MethodGet, "/api/auth/me", nil, c.timeouts.Normal, true)
	if err != nil {
		c.Logout()
		return models.User{}, fmt.Errorf("erro ao buscar perfil: %w", err)
	}

	profile := normalize.Map(profileRaw)
	user := models.UserFromMap(profile)

	// The profile endpoint sometimes omits the email; backfill from
	// the login response's user object, then from the submitted email.
	if user.Email == "" {
		if loginUser, ok := response["user"].(map[string]any); ok {
			if e, ok := loginUser["email"].(string); ok {
				user.Email = e
			}
		}
	}
	if user.Email == "" {
		user.Email = email
	}

	// Some payloads carry the role id under "role" instead of
	// idPerfil; unknown or absent ids resolve to collaborator.
	if user.ProfileID == 0 {
		if roleID, ok := profile["role"].(float64); ok {
			user.ProfileID = int(roleID)
		}
	}
	user.Role = models.RoleFromID(user.ProfileID)
	if profile["ativo"] == nil {
		// The account just authenticated; absence of the flag means
		// the endpoint simply doesn't report it.
		user.Active = true
	}

	c.mu.Lock()
	c.currentUser = &user
	c.mu.Unlock()

	return user, nil
}
