// Package api is the session gateway: the single choke point between
// the screens and the remote helpdesk service. It owns the bearer
// token and current-user profile for the process lifetime, applies the
// response normalizer to every payload, and converts every failure
// mode into an error value — nothing panics past this boundary.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"helpdesk_client/internal/metrics"
	"helpdesk_client/internal/models"
	"helpdesk_client/internal/normalize"
)

// ErrUnauthenticated is returned when an operation requires a session
// token and none is present. The request is not attempted.
var ErrUnauthenticated = errors.New("não autenticado")

// StatusError reports a reachable server that rejected the request.
type StatusError struct {
	Code int
	// Detail is the server's error description when the body carried
	// one ("detail" field), otherwise "".
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("erro %d: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("erro %d", e.Code)
}

// IsAuthFailure reports whether err is a 401/403 rejection. The UI
// treats these as "not authenticated" and forces re-login: the token
// is a single unrenewable credential, there is no refresh.
func IsAuthFailure(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == http.StatusUnauthorized || statusErr.Code == http.StatusForbidden
	}
	return errors.Is(err, ErrUnauthenticated)
}

// Timeouts are the per-call-weight network timeouts. Zero fields get
// defaults.
type Timeouts struct {
	Light  time.Duration // single-record fetches, small mutations
	Normal time.Duration // list fetches, login
	Upload time.Duration // ticket creation with inline attachments
	Health time.Duration // unauthenticated reachability probe
}

func (t Timeouts) withDefaults() Timeouts {
	if t.Light == 0 {
		t.Light = 10 * time.Second
	}
	if t.Normal == 0 {
		t.Normal = 20 * time.Second
	}
	if t.Upload == 0 {
		t.Upload = 60 * time.Second
	}
	if t.Health == 0 {
		t.Health = 5 * time.Second
	}
	return t
}

// Client is the API gateway. The session pair (token, current user) is
// written only by Login and Logout, which run on the UI goroutine;
// worker goroutines read it under the lock when a call starts and must
// not cache it beyond that call.
type Client struct {
	httpClient *http.Client
	timeouts   Timeouts
	metrics    *metrics.Metrics

	mu          sync.RWMutex
	baseURL     string
	token       string
	currentUser *models.User
}

// NewClient creates a gateway for the service at baseURL.
func NewClient(baseURL string, timeouts Timeouts, m *metrics.Metrics) *Client {
	if m == nil {
		m = metrics.NewMetrics()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		timeouts:   timeouts.withDefaults(),
		metrics:    m,
	}
}

// BaseURL returns the service address the gateway targets.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL retargets the gateway. Used by the login screen's address
// override; calls already in flight keep the address they started with.
func (c *Client) SetBaseURL(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = url
}

// Authenticated reports whether a session token is present.
func (c *Client) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

// CurrentUser returns the session profile resolved at login.
func (c *Client) CurrentUser() (models.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.currentUser == nil {
		return models.User{}, false
	}
	return *c.currentUser, true
}

// Logout clears the session. Subsequent authenticated operations fail
// with ErrUnauthenticated until the next login.
func (c *Client) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.currentUser = nil
}

// sessionToken snapshots the token for the duration of one call.
func (c *Client) sessionToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// doJSON performs one request and decodes the response body. When auth
// is set and no token is held, it fails immediately without touching
// the network. Any 2xx status is success; other statuses become a
// StatusError carrying the code and the server's "detail" message when
// present. An empty success body decodes to nil.
func (c *Client) doJSON(method, path string, body any, timeout time.Duration, auth bool) (any, error) {
	token := ""
	if auth {
		token = c.sessionToken()
		if token == "" {
			return nil, ErrUnauthenticated
		}
	}

	start := time.Now()
	c.metrics.IncAPIRequests()
	defer func() {
		c.metrics.UpdateLatency(time.Since(start))
	}()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			c.metrics.IncAPIErrors()
			return nil, fmt.Errorf("erro ao serializar requisição: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL()+path, reader)
	if err != nil {
		c.metrics.IncAPIErrors()
		return nil, fmt.Errorf("erro ao criar requisição: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.IncAPIErrors()
		return nil, fmt.Errorf("falha de comunicação com o servidor: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.IncAPIErrors()
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.IncAPIErrors()
		return nil, &StatusError{Code: resp.StatusCode, Detail: errorDetail(raw)}
	}

	if len(raw) == 0 {
		return nil, nil
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		c.metrics.IncAPIErrors()
		return nil, fmt.Errorf("resposta inválida do servidor: %w", err)
	}
	return decoded, nil
}

// errorDetail extracts the "detail" field from an error body.
func errorDetail(raw []byte) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return body.Detail
}

// ticketsFromPayload normalizes a list payload into tickets.
func ticketsFromPayload(payload any) []models.Ticket {
	list, ok := normalize.Normalize(payload).([]any)
	if !ok {
		return nil
	}
	tickets := make([]models.Ticket, 0, len(list))
	for _, entry := range list {
		if m, ok := entry.(map[string]any); ok {
			tickets = append(tickets, models.TicketFromMap(m))
		}
	}
	return tickets
}

// HealthCheck probes the service root without authentication. The
// body is ignored: only reachability and a success status matter.
func (c *Client) HealthCheck() bool {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeouts.Health)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL()+"/", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}
