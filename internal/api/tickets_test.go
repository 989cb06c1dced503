package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"helpdesk_client/internal/models"
)

func TestGetTicketUnauthenticatedFailsFast(t *testing.T) {
	var hits int64
	c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
	}))
	defer ts.Close()

	if _, err := c.GetTicket(5); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("want ErrUnauthenticated, got %v", err)
	}
	if got := atomic.LoadInt64(&hits); got != 0 {
		t.Fatalf("server was hit %d times without a session", got)
	}
}

func TestListTicketsNormalizesLegacyPayload(t *testing.T) {
	c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chamados/todos" {
			t.Fatalf("path = %s", r.URL.Path)
		}
		io.WriteString(w, `[
			{"IdChamado": 12, "Titulo": "Sem rede", "Status": "Aberto", "IdCategoria": 3},
			{"idChamado": 9, "titulo": "Mouse quebrado", "status": "fechado", "idCategoria": 1}
		]`)
	}))
	defer ts.Close()
	authenticate(c)

	tickets, err := c.ListAllTickets()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tickets) != 2 {
		t.Fatalf("got %d tickets", len(tickets))
	}
	if tickets[0].ID != 12 || tickets[0].Title != "Sem rede" || tickets[0].CategoryID != 3 {
		t.Fatalf("first ticket not normalized: %#v", tickets[0])
	}
	if tickets[0].CategoryName() != "rede" {
		t.Fatalf("category name = %q", tickets[0].CategoryName())
	}
}

func TestCreateTicketBlockedLocallyBeforeAnyRequest(t *testing.T) {
	var hits int64
	c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
	}))
	defer ts.Close()
	authenticate(c)

	_, err := c.CreateTicket("Pizza do aniversário", "comprar bolo", "outros", "baixa", nil)
	if err == nil {
		t.Fatalf("off-topic ticket must be rejected")
	}
	if !strings.Contains(err.Error(), "pizza") {
		t.Fatalf("rejection reason should name the term: %v", err)
	}
	if atomic.LoadInt64(&hits) != 0 {
		t.Fatalf("local rejection still reached the server")
	}
}

func TestCreateTicketPayloadAndResponse(t *testing.T) {
	dir := t.TempDir()
	attachment := filepath.Join(dir, "print.log")
	if err := os.WriteFile(attachment, []byte("erro 42"), 0644); err != nil {
		t.Fatalf("attachment fixture: %v", err)
	}

	var payload map[string]any
	c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/chamados" {
			t.Fatalf("%s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("payload decode: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"IdChamado": 501, "ResolucaoIA_Sugerida": "Reinicie o spooler."}`)
	}))
	defer ts.Close()
	authenticate(c)

	ticket, err := c.CreateTicket("Impressora não liga", "erro ao imprimir", "hardware", "media",
		[]string{attachment, filepath.Join(dir, "inexistente.txt")})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if payload["id_categoria"] != float64(1) {
		t.Fatalf("id_categoria = %v, want 1 (hardware)", payload["id_categoria"])
	}
	if payload["urgencia"] != "Média" {
		t.Fatalf("urgencia = %v, want the API label Média", payload["urgencia"])
	}
	attachments, _ := payload["anexos"].([]any)
	if len(attachments) != 1 {
		t.Fatalf("unreadable attachment must be skipped, payload has %d", len(attachments))
	}
	entry := attachments[0].(map[string]any)
	if entry["Nome"] != "print.log" || entry["Dados"] == "" {
		t.Fatalf("attachment entry: %#v", entry)
	}

	if ticket.ID != 501 {
		t.Fatalf("created id = %d", ticket.ID)
	}
	if ticket.SuggestedResolution != "Reinicie o spooler." {
		t.Fatalf("suggested resolution = %q", ticket.SuggestedResolution)
	}
}

func TestGetTicketPrefersListRecordWithAttachments(t *testing.T) {
	c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/chamados/7":
			// Direct route drops the attachments.
			io.WriteString(w, `{"IdChamado": 7, "Titulo": "Tela azul"}`)
		case "/api/chamados/meus":
			io.WriteString(w, `[{"IdChamado": 7, "Titulo": "Tela azul",
				"Anexos": [{"Nome": "dump.txt", "Dados": "QQ=="}]}]`)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer ts.Close()
	authenticate(c)

	ticket, err := c.GetTicket(7)
	if err != nil {
		t.Fatalf("GetTicket: %v", err)
	}
	if len(ticket.Attachments) != 1 || ticket.Attachments[0].Name != "dump.txt" {
		t.Fatalf("fallback record not used: %#v", ticket.Attachments)
	}
}

func TestGetTicketDirectRouteWins(t *testing.T) {
	c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chamados/9" {
			t.Fatalf("direct route with attachments must not trigger the fallback, got %s", r.URL.Path)
		}
		io.WriteString(w, `{"IdChamado": 9, "Anexos": [{"Url": "http://f/a.png"}]}`)
	}))
	defer ts.Close()
	authenticate(c)

	ticket, err := c.GetTicket(9)
	if err != nil {
		t.Fatalf("GetTicket: %v", err)
	}
	if len(ticket.Attachments) != 1 {
		t.Fatalf("attachments = %#v", ticket.Attachments)
	}
}

func TestListCommentsSortedOldestFirst(t *testing.T) {
	c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[
			{"IdInteracao": 2, "Comentario": "depois", "DataHora": "2025-02-01T08:00:00"},
			{"IdInteracao": 1, "Comentario": "antes", "DataHora": "2025-01-01T08:00:00"}
		]`)
	}))
	defer ts.Close()
	authenticate(c)

	comments, err := c.ListComments(7)
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if len(comments) != 2 || comments[0].Text != "antes" {
		t.Fatalf("comments not in ascending order: %#v", comments)
	}
}

func TestReportParsesMixedCasing(t *testing.T) {
	c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("dataInicio"); got != "2025-01-01" {
			t.Fatalf("dataInicio = %q", got)
		}
		io.WriteString(w, `{
			"Periodo": {"Inicio": "2025-01-01", "Fim": "2025-02-01"},
			"Metricas": {"TotalChamados": 10, "TotalAbertos": 4, "TotalResolvidos": 6},
			"PorCategoria": [{"CategoriaId": 1, "Quantidade": 7}, {"categoriaId": 3, "quantidade": 3}]
		}`)
	}))
	defer ts.Close()
	authenticate(c)

	report, err := c.Report("2025-01-01", "2025-02-01")
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if report.Metrics.Total != 10 || report.Metrics.Open != 4 || report.Metrics.Resolved != 6 {
		t.Fatalf("metrics: %#v", report.Metrics)
	}
	if len(report.ByCategory) != 2 || report.ByCategory[1].CategoryID != 3 {
		t.Fatalf("breakdown: %#v", report.ByCategory)
	}
	if report.Period.Start != "2025-01-01" {
		t.Fatalf("period: %#v", report.Period)
	}
}

func TestListUsersResolvesRoles(t *testing.T) {
	c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[
			{"id": "u1", "NomeCompleto": "Ana", "IdPerfil": 1, "Ativo": true},
			{"id": "u2", "NomeCompleto": "Bia", "IdPerfil": 3, "Ativo": false}
		]`)
	}))
	defer ts.Close()
	authenticate(c)

	users, err := c.ListUsers()
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("got %d users", len(users))
	}
	if users[0].Role != models.RoleAdmin {
		t.Fatalf("profile id 1 must resolve to admin, got %q", users[0].Role)
	}
	if users[1].Active {
		t.Fatalf("inactive flag lost")
	}
}
