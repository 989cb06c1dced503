package ui

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"helpdesk_client/internal/api"
	"helpdesk_client/internal/config"
	"helpdesk_client/internal/models"
	"helpdesk_client/internal/prefs"
)

// testModel builds a model whose gateway points at nothing; tests
// inject result messages directly instead of running commands.
func testModel(t *testing.T, role models.Role) Model {
	t.Helper()
	preferences, err := prefs.New(filepath.Join(t.TempDir(), "prefs.json"))
	if err != nil {
		t.Fatalf("prefs: %v", err)
	}
	client := api.NewClient("http://127.0.0.1:1", api.Timeouts{}, nil)
	m := New(client, config.NewConfig(), preferences)
	m.user = models.User{FullName: "Teste", Role: role}
	return m
}

func TestStaleTicketLoadIsDiscarded(t *testing.T) {
	m := testModel(t, models.RoleAdmin)
	model, _ := m.openTickets()
	m = model.(Model)

	// A result from a generation that was superseded must not land.
	model, _ = m.Update(ticketsLoadedMsg{gen: m.gen - 1, tickets: []models.Ticket{{ID: 99}}})
	m = model.(Model)
	if !m.tickets.loading {
		t.Fatalf("stale result cleared the loading state")
	}
	if len(m.tickets.all) != 0 {
		t.Fatalf("stale result populated the list: %#v", m.tickets.all)
	}

	// The current generation lands normally.
	model, _ = m.Update(ticketsLoadedMsg{gen: m.gen, tickets: []models.Ticket{{ID: 1}, {ID: 7}}})
	m = model.(Model)
	if m.tickets.loading {
		t.Fatalf("current result did not clear the loading state")
	}
	if len(m.tickets.filtered) != 2 || m.tickets.filtered[0].ID != 7 {
		t.Fatalf("tickets not loaded newest-first: %#v", m.tickets.filtered)
	}
}

func TestReloadInvalidatesInFlightResult(t *testing.T) {
	m := testModel(t, models.RoleAdmin)
	model, _ := m.openTickets()
	m = model.(Model)
	firstGen := m.gen

	// A refresh starts a new generation before the first load returns.
	model, _ = m.updateTickets(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = model.(Model)
	if m.gen == firstGen {
		t.Fatalf("refresh did not start a new generation")
	}

	model, _ = m.Update(ticketsLoadedMsg{gen: firstGen, tickets: []models.Ticket{{ID: 42}}})
	m = model.(Model)
	if len(m.tickets.all) != 0 {
		t.Fatalf("superseded load still landed")
	}
}

func TestMenuEntriesFollowCapabilities(t *testing.T) {
	labels := func(role models.Role) map[string]bool {
		found := map[string]bool{}
		for _, entry := range menuEntries(role) {
			found[entry.label] = true
		}
		return found
	}

	collaborator := labels(models.RoleCollaborator)
	if collaborator["Gerenciar Usuários"] || collaborator["Relatórios"] {
		t.Fatalf("collaborator menu exposes admin actions: %v", collaborator)
	}
	if !collaborator["Meus Chamados"] || !collaborator["Abrir Chamado"] || !collaborator["Base de Conhecimento"] {
		t.Fatalf("collaborator menu lost base entries: %v", collaborator)
	}

	admin := labels(models.RoleAdmin)
	if !admin["Gerenciar Usuários"] || !admin["Relatórios"] || !admin["Todos os Chamados"] {
		t.Fatalf("admin menu incomplete: %v", admin)
	}

	technician := labels(models.RoleTechnician)
	if !technician["Todos os Chamados"] {
		t.Fatalf("technician must see the global queue: %v", technician)
	}
	if technician["Gerenciar Usuários"] || technician["Relatórios"] {
		t.Fatalf("technician menu exposes admin-only actions: %v", technician)
	}
}

func TestRecentTicketsWindowAndCap(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tickets := []models.Ticket{
		{ID: 1, OpenedAt: "2025-06-14T09:00:00"},  // inside the window
		{ID: 2, OpenedAt: "2025-06-01T09:00:00"},  // too old
		{ID: 3, OpenedAt: "2025-06-13"},           // date-only form, inside
		{ID: 4, OpenedAt: "quando foi mesmo?"},    // unparseable, excluded
		{ID: 5, OpenedAt: "2025-06-12T23:59:59Z"}, // RFC3339, inside
	}

	recent := recentTickets(tickets, 5, 10, now)
	if len(recent) != 3 {
		t.Fatalf("got %d recent tickets: %#v", len(recent), recent)
	}
	if recent[0].ID != 5 || recent[1].ID != 3 || recent[2].ID != 1 {
		t.Fatalf("recents not newest-id-first: %v, %v, %v", recent[0].ID, recent[1].ID, recent[2].ID)
	}

	// The cap keeps only the highest ids.
	var many []models.Ticket
	for i := 1; i <= 15; i++ {
		many = append(many, models.Ticket{ID: int64(i), OpenedAt: "2025-06-14T00:00:00"})
	}
	capped := recentTickets(many, 5, 10, now)
	if len(capped) != 10 || capped[0].ID != 15 || capped[9].ID != 6 {
		t.Fatalf("cap wrong: len=%d first=%d last=%d", len(capped), capped[0].ID, capped[len(capped)-1].ID)
	}
}

func TestFilterChangeResetsPage(t *testing.T) {
	m := testModel(t, models.RoleAdmin)
	model, _ := m.openTickets()
	m = model.(Model)

	var tickets []models.Ticket
	for i := 1; i <= 12; i++ {
		tickets = append(tickets, models.Ticket{ID: int64(i), Title: fmt.Sprintf("chamado %d", i)})
	}
	model, _ = m.Update(ticketsLoadedMsg{gen: m.gen, tickets: tickets})
	m = model.(Model)

	m.tickets.pager.Next()
	if m.tickets.pager.Page() != 2 {
		t.Fatalf("page = %d after Next", m.tickets.pager.Page())
	}

	// Cycling the status filter must land back on page 1.
	model, _ = m.updateTickets(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = model.(Model)
	if m.tickets.pager.Page() != 1 {
		t.Fatalf("filter change left the view on page %d", m.tickets.pager.Page())
	}
}

func TestAuthFailureForcesRelogin(t *testing.T) {
	m := testModel(t, models.RoleAdmin)
	model, _ := m.openTickets()
	m = model.(Model)

	// The server rejecting the token means the session is over.
	model, _ = m.Update(ticketsLoadedMsg{gen: m.gen, err: &api.StatusError{Code: 401}})
	m = model.(Model)
	if m.screen != ScreenLogin {
		t.Fatalf("rejected credential left the session on screen %d", m.screen)
	}
	if m.errMsg == "" {
		t.Fatalf("forced re-login reported nothing")
	}
	if m.client.Authenticated() {
		t.Fatalf("client session not cleared")
	}
}

func TestPlainFailureStaysOnScreen(t *testing.T) {
	m := testModel(t, models.RoleAdmin)
	model, _ := m.openTickets()
	m = model.(Model)

	model, _ = m.Update(ticketsLoadedMsg{gen: m.gen, err: fmt.Errorf("falha de comunicação")})
	m = model.(Model)
	if m.screen != ScreenTickets {
		t.Fatalf("an ordinary failure must not change screens")
	}
	if m.errMsg == "" {
		t.Fatalf("failure reported nothing")
	}
}

func TestTicketCreatedAfterLeavingFormIsDiscarded(t *testing.T) {
	m := testModel(t, models.RoleCollaborator)
	model, _ := m.openForm()
	m = model.(Model)
	submitGen := m.gen
	m.form.busy = true

	// The user backs out to the dashboard while the upload runs.
	model, _ = m.openDashboard()
	m = model.(Model)

	model, _ = m.Update(ticketCreatedMsg{gen: submitGen, ticket: models.Ticket{ID: 77}})
	m = model.(Model)
	if m.screen != ScreenDashboard {
		t.Fatalf("abandoned creation yanked the view to screen %d", m.screen)
	}
}

func TestTicketCreatedOpensDetail(t *testing.T) {
	m := testModel(t, models.RoleCollaborator)
	model, _ := m.openForm()
	m = model.(Model)
	m.form.busy = true

	model, cmd := m.Update(ticketCreatedMsg{gen: m.gen, ticket: models.Ticket{ID: 77}})
	m = model.(Model)
	if m.screen != ScreenTicketDetail || m.detail.ticketID != 77 {
		t.Fatalf("created ticket did not open its detail: screen=%d id=%d", m.screen, m.detail.ticketID)
	}
	if cmd == nil {
		t.Fatalf("detail load not started")
	}
}

func TestAddressOverrideRetargetsAndPersists(t *testing.T) {
	m := testModel(t, models.RoleCollaborator)

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	m = model.(Model)
	if !m.login.editAddr || m.login.focus != loginAddress {
		t.Fatalf("address editor did not open")
	}

	m.login.address.SetValue("https://homologacao.local")
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(Model)

	if m.client.BaseURL() != "https://homologacao.local" {
		t.Fatalf("gateway still targets %q", m.client.BaseURL())
	}
	if m.prefs.BaseURL() != "https://homologacao.local" {
		t.Fatalf("override not persisted: %q", m.prefs.BaseURL())
	}
	if cmd == nil {
		t.Fatalf("health check against the new server not started")
	}
}

func TestLoginFailureStaysOnLoginScreen(t *testing.T) {
	m := testModel(t, models.RoleCollaborator)

	model, _ := m.Update(loginResultMsg{err: fmt.Errorf("credenciais inválidas")})
	m = model.(Model)
	if m.screen != ScreenLogin {
		t.Fatalf("failed login left the login screen")
	}
	if m.errMsg == "" {
		t.Fatalf("failed login reported nothing")
	}
}

func TestSuccessfulLoginOpensDashboard(t *testing.T) {
	m := testModel(t, models.RoleCollaborator)

	user := models.User{FullName: "Ana", Email: "ana@empresa.com", Role: models.RoleCollaborator}
	model, cmd := m.Update(loginResultMsg{user: user})
	m = model.(Model)

	if m.screen != ScreenDashboard {
		t.Fatalf("login did not open the dashboard")
	}
	if cmd == nil {
		t.Fatalf("dashboard load not started")
	}
	if m.prefs.LastEmail() != "ana@empresa.com" {
		t.Fatalf("last email not recorded: %q", m.prefs.LastEmail())
	}
	if len(m.dash.entries) == 0 {
		t.Fatalf("dashboard menu is empty")
	}
}
