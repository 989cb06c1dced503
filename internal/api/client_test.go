package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"helpdesk_client/internal/metrics"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	ts := httptest.NewServer(handler)
	c := NewClient(ts.URL, Timeouts{
		Light:  2 * time.Second,
		Normal: 2 * time.Second,
		Upload: 2 * time.Second,
		Health: 2 * time.Second,
	}, metrics.NewMetrics())
	c.httpClient = ts.Client()
	return c, ts
}

// authenticate establishes a session directly, bypassing the login
// endpoint, for tests that exercise authenticated operations.
func authenticate(c *Client) {
	c.mu.Lock()
	c.token = "test-token"
	c.mu.Unlock()
}

func TestUnauthenticatedOperationsNeverTouchTheNetwork(t *testing.T) {
	var hits int64
	c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
	}))
	defer ts.Close()

	if _, err := c.ListAllTickets(); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("want ErrUnauthenticated, got %v", err)
	}
	if _, err := c.CreateTicket("t", "d", "hardware", "alta", nil); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("CreateTicket: want ErrUnauthenticated, got %v", err)
	}
	if _, err := c.ListUsers(); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("ListUsers: want ErrUnauthenticated, got %v", err)
	}

	if got := atomic.LoadInt64(&hits); got != 0 {
		t.Fatalf("server was hit %d times by unauthenticated operations", got)
	}
}

func TestStatusErrorCarriesCode(t *testing.T) {
	c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "sem permissão"}`, http.StatusForbidden)
	}))
	defer ts.Close()
	authenticate(c)

	_, err := c.ListUsers()
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("want StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusForbidden {
		t.Fatalf("code = %d, want 403", statusErr.Code)
	}
	if statusErr.Detail != "sem permissão" {
		t.Fatalf("detail = %q", statusErr.Detail)
	}
	if !IsAuthFailure(err) {
		t.Fatalf("403 must count as an authorization failure")
	}
}

func TestTransportFailureIsAnError(t *testing.T) {
	c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // connection refused from here on
	authenticate(c)

	if _, err := c.ListMyTickets(); err == nil {
		t.Fatalf("want a transport error against a closed server")
	}
}

func TestMalformedSuccessBodyIsAnError(t *testing.T) {
	c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("isto não é JSON"))
	}))
	defer ts.Close()
	authenticate(c)

	if _, err := c.ListMyTickets(); err == nil {
		t.Fatalf("want an error for a malformed success body")
	}
}

func TestRequestsCarryBearerToken(t *testing.T) {
	var gotAuth string
	c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()
	authenticate(c)

	if _, err := c.ListAllTickets(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
}

func TestSetBaseURLRedirectsRequests(t *testing.T) {
	var oldHits, newHits int64
	c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&oldHits, 1)
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()
	authenticate(c)

	ts2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&newHits, 1)
		w.Write([]byte(`[]`))
	}))
	defer ts2.Close()

	c.SetBaseURL(ts2.URL)
	if c.BaseURL() != ts2.URL {
		t.Fatalf("BaseURL = %q, want %q", c.BaseURL(), ts2.URL)
	}

	if _, err := c.ListAllTickets(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atomic.LoadInt64(&oldHits) != 0 || atomic.LoadInt64(&newHits) != 1 {
		t.Fatalf("requests went to the wrong server: old=%d new=%d", oldHits, newHits)
	}
}

func TestHealthCheck(t *testing.T) {
	c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok")) // health ignores non-JSON bodies
	}))
	defer ts.Close()

	if !c.HealthCheck() {
		t.Fatalf("healthy server reported as down")
	}

	ts.Close()
	if c.HealthCheck() {
		t.Fatalf("closed server reported as healthy")
	}
}
