// Package metrics holds the process-local counters the client keeps
// about its own behavior.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics counts gateway activity for the running session.
type Metrics struct {
	LoginAttempts  int64
	TicketsCreated int64
	CommentsPosted int64
	APIRequests    int64
	APIErrors      int64
	AverageLatency time.Duration
	mu             sync.RWMutex
}

// NewMetrics creates an empty metrics set.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// IncLoginAttempts counts a login submission.
func (m *Metrics) IncLoginAttempts() { atomic.AddInt64(&m.LoginAttempts, 1) }

// IncTicketsCreated counts a successfully created ticket.
func (m *Metrics) IncTicketsCreated() { atomic.AddInt64(&m.TicketsCreated, 1) }

// IncCommentsPosted counts a successfully posted comment.
func (m *Metrics) IncCommentsPosted() { atomic.AddInt64(&m.CommentsPosted, 1) }

// IncAPIRequests counts an outgoing API request.
func (m *Metrics) IncAPIRequests() { atomic.AddInt64(&m.APIRequests, 1) }

// IncAPIErrors counts a failed API request.
func (m *Metrics) IncAPIErrors() { atomic.AddInt64(&m.APIErrors, 1) }

// UpdateLatency folds a request duration into the moving average.
func (m *Metrics) UpdateLatency(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.AverageLatency == 0 {
		m.AverageLatency = d
	} else {
		m.AverageLatency = (m.AverageLatency + d) / 2
	}
}

// Snapshot returns the current counters for logging on exit.
func (m *Metrics) Snapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"login_attempts":  atomic.LoadInt64(&m.LoginAttempts),
		"tickets_created": atomic.LoadInt64(&m.TicketsCreated),
		"comments_posted": atomic.LoadInt64(&m.CommentsPosted),
		"api_requests":    atomic.LoadInt64(&m.APIRequests),
		"api_errors":      atomic.LoadInt64(&m.APIErrors),
		"average_latency": m.AverageLatency.String(),
	}
}
