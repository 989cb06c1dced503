// Package ui implements the terminal screens. The Update loop is the
// only mutator of screen state: every gateway call runs inside a
// tea.Cmd and reports back through a typed result message, so worker
// goroutines never touch the model.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"helpdesk_client/internal/api"
	"helpdesk_client/internal/config"
	"helpdesk_client/internal/models"
	"helpdesk_client/internal/prefs"
)

// Screen identifies which view is active.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenDashboard
	ScreenTickets
	ScreenTicketDetail
	ScreenNewTicket
	ScreenUsers
	ScreenReports
	ScreenArticles
	ScreenArticle
)

// menuEntry is one dashboard action. Entries whose capability the
// session role lacks are never built, so the menu itself is the
// visibility gate.
type menuEntry struct {
	label      string
	screen     Screen
	capability models.Capability
}

// menuEntries builds the dashboard menu for a role. Collaborators see
// their own tickets; technicians and admins work the global queue.
func menuEntries(role models.Role) []menuEntry {
	ticketsLabel := "Meus Chamados"
	if role.Can(models.CapManageAllTickets) {
		ticketsLabel = "Todos os Chamados"
	}
	candidates := []menuEntry{
		{label: ticketsLabel, screen: ScreenTickets, capability: models.CapViewOwnTickets},
		{label: "Abrir Chamado", screen: ScreenNewTicket, capability: models.CapCreateTickets},
		{label: "Base de Conhecimento", screen: ScreenArticles, capability: models.CapViewKnowledgeBase},
		{label: "Gerenciar Usuários", screen: ScreenUsers, capability: models.CapManageUsers},
		{label: "Relatórios", screen: ScreenReports, capability: models.CapViewReports},
	}
	entries := make([]menuEntry, 0, len(candidates))
	for _, entry := range candidates {
		if role.Can(entry.capability) {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Model is the top-level bubbletea model.
type Model struct {
	client *api.Client
	prefs  *prefs.Prefs
	cfg    *config.Config
	theme  Theme
	keys   KeyMap

	width  int
	height int

	screen Screen
	user   models.User

	// gen is bumped on every screen load; in-flight results from a
	// previous generation are discarded on arrival.
	gen uint64

	spinner spinner.Model
	errMsg  string
	infoMsg string

	login    loginState
	dash     dashState
	tickets  ticketsState
	detail   detailState
	form     formState
	users    usersState
	reports  reportsState
	articles articlesState
}

// New builds the initial model, positioned on the login screen with
// the last-used email prefilled.
func New(client *api.Client, cfg *config.Config, preferences *prefs.Prefs) Model {
	theme := DefaultTheme

	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(theme.Accent)

	m := Model{
		client:  client,
		prefs:   preferences,
		cfg:     cfg,
		theme:   theme,
		keys:    DefaultKeyMap,
		screen:  ScreenLogin,
		spinner: s,
	}
	m.login = newLoginState(preferences.LastEmail())
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.healthCheckCmd())
}

// stale reports whether a result message belongs to an abandoned load.
func (m Model) stale(gen uint64) bool {
	return gen != m.gen
}

// nextGen starts a new load generation.
func (m *Model) nextGen() uint64 {
	m.gen++
	return m.gen
}

func (m *Model) setError(err error) {
	m.errMsg = err.Error()
	m.infoMsg = ""
}

func (m *Model) setInfo(format string, args ...any) {
	m.infoMsg = fmt.Sprintf(format, args...)
	m.errMsg = ""
}

func (m *Model) clearNotices() {
	m.errMsg = ""
	m.infoMsg = ""
}

// remoteError reports a failed gateway call. A 401/403 means the
// session credential is dead; there is no token refresh, so the only
// way forward is a fresh login.
func (m Model) remoteError(err error) (tea.Model, tea.Cmd) {
	if api.IsAuthFailure(err) {
		model, cmd := m.logout()
		next := model.(Model)
		next.errMsg = "sessão expirada, autentique-se novamente"
		return next, cmd
	}
	m.setError(err)
	return m, nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Logout) && m.screen != ScreenLogin {
			return m.logout()
		}

	case healthResultMsg:
		m.login.serverUp = msg.up
		return m, nil

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case ticketsLoadedMsg:
		if m.stale(msg.gen) {
			return m, nil
		}
		return m.handleTicketsLoaded(msg)

	case ticketLoadedMsg:
		if m.stale(msg.gen) {
			return m, nil
		}
		return m.handleTicketLoaded(msg)

	case commentPostedMsg:
		if m.stale(msg.gen) {
			return m, nil
		}
		return m.handleCommentPosted(msg)

	case statusUpdatedMsg:
		if m.stale(msg.gen) {
			return m, nil
		}
		return m.handleStatusUpdated(msg)

	case assignResultMsg:
		if m.stale(msg.gen) {
			return m, nil
		}
		return m.handleAssignResult(msg)

	case attachmentsSavedMsg:
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.setInfo("%d anexo(s) salvos em %s", msg.count, msg.dir)
		}
		return m, nil

	case ticketCreatedMsg:
		if m.stale(msg.gen) {
			return m, nil
		}
		return m.handleTicketCreated(msg)

	case usersLoadedMsg:
		if m.stale(msg.gen) {
			return m, nil
		}
		return m.handleUsersLoaded(msg)

	case userSavedMsg:
		if m.stale(msg.gen) {
			return m, nil
		}
		return m.handleUserSaved(msg)

	case reportLoadedMsg:
		if m.stale(msg.gen) {
			return m, nil
		}
		return m.handleReportLoaded(msg)

	case exportDoneMsg:
		m.reports.exporting = false
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.setInfo("relatório exportado para %s", msg.path)
		}
		return m, nil

	case articlesLoadedMsg:
		if m.stale(msg.gen) {
			return m, nil
		}
		return m.handleArticlesLoaded(msg)

	case articleLoadedMsg:
		if m.stale(msg.gen) {
			return m, nil
		}
		return m.handleArticleLoaded(msg)
	}

	switch m.screen {
	case ScreenLogin:
		return m.updateLogin(msg)
	case ScreenDashboard:
		return m.updateDashboard(msg)
	case ScreenTickets:
		return m.updateTickets(msg)
	case ScreenTicketDetail:
		return m.updateDetail(msg)
	case ScreenNewTicket:
		return m.updateForm(msg)
	case ScreenUsers:
		return m.updateUsers(msg)
	case ScreenReports:
		return m.updateReports(msg)
	case ScreenArticles:
		return m.updateArticles(msg)
	case ScreenArticle:
		return m.updateArticle(msg)
	}
	return m, nil
}

// logout clears the session and returns to the login screen. The
// generation bump invalidates every in-flight load.
func (m Model) logout() (tea.Model, tea.Cmd) {
	m.client.Logout()
	m.nextGen()
	m.user = models.User{}
	m.clearNotices()
	m.login = newLoginState(m.prefs.LastEmail())
	m.screen = ScreenLogin
	return m, tea.Batch(m.healthCheckCmd(), textinput.Blink)
}

// openDashboard enters the dashboard and reloads its ticket summary.
func (m Model) openDashboard() (tea.Model, tea.Cmd) {
	m.screen = ScreenDashboard
	m.clearNotices()
	m.dash.entries = menuEntries(m.user.Role)
	m.dash.cursor = 0
	m.dash.loading = true
	return m, m.loadTicketsCmd(m.nextGen())
}

func (m Model) View() string {
	var body string
	switch m.screen {
	case ScreenLogin:
		body = m.viewLogin()
	case ScreenDashboard:
		body = m.viewDashboard()
	case ScreenTickets:
		body = m.viewTickets()
	case ScreenTicketDetail:
		body = m.viewDetail()
	case ScreenNewTicket:
		body = m.viewForm()
	case ScreenUsers:
		body = m.viewUsers()
	case ScreenReports:
		body = m.viewReports()
	case ScreenArticles:
		body = m.viewArticles()
	case ScreenArticle:
		body = m.viewArticle()
	}

	sections := []string{m.headerView(), body}
	if notice := m.noticeView(); notice != "" {
		sections = append(sections, notice)
	}
	sections = append(sections, m.footerView())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) headerView() string {
	title := lipgloss.NewStyle().
		Foreground(m.theme.HeaderForeground).
		Background(m.theme.Accent).
		Bold(true).
		Padding(0, 1).
		Render("Helpdesk TI")

	session := ""
	if m.screen != ScreenLogin {
		session = lipgloss.NewStyle().
			Foreground(m.theme.FaintText).
			Padding(0, 1).
			Render(fmt.Sprintf("%s · %s", m.user.FullName, m.user.Role.Label()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, session)
}

func (m Model) noticeView() string {
	if m.errMsg != "" {
		return lipgloss.NewStyle().Foreground(m.theme.ErrorText).Padding(0, 1).Render(m.errMsg)
	}
	if m.infoMsg != "" {
		return lipgloss.NewStyle().Foreground(m.theme.SuccessText).Padding(0, 1).Render(m.infoMsg)
	}
	return ""
}

func (m Model) footerView() string {
	bindings := m.helpBindings()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, fmt.Sprintf("%s %s", b.Help().Key, b.Help().Desc))
	}
	return lipgloss.NewStyle().
		Foreground(m.theme.HelpText).
		Padding(0, 1).
		Render(strings.Join(parts, "  ·  "))
}

// helpBindings returns the footer help for the active screen.
func (m Model) helpBindings() []key.Binding {
	switch m.screen {
	case ScreenLogin:
		return []key.Binding{m.keys.NextField, m.keys.Select, m.keys.Address, m.keys.Quit}
	case ScreenDashboard:
		return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Select, m.keys.Refresh, m.keys.Logout, m.keys.Quit}
	case ScreenTickets:
		return []key.Binding{m.keys.Up, m.keys.Down, m.keys.PrevPage, m.keys.NextPage,
			m.keys.Filter, m.keys.CycleStatus, m.keys.CyclePriority, m.keys.Select, m.keys.Back}
	case ScreenTicketDetail:
		bindings := []key.Binding{m.keys.Comment}
		if m.user.Role.Can(models.CapUpdateStatus) {
			bindings = append(bindings, m.keys.ChangeStatus)
		}
		if m.user.Role.Can(models.CapAssignTickets) {
			bindings = append(bindings, m.keys.Assign)
		}
		if len(m.detail.ticket.Attachments) > 0 {
			bindings = append(bindings, m.keys.Download)
		}
		return append(bindings, m.keys.Back)
	case ScreenNewTicket:
		return []key.Binding{m.keys.NextField, m.keys.Select, m.keys.Back}
	case ScreenUsers:
		return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Edit, m.keys.Deactivate, m.keys.Back}
	case ScreenReports:
		return []key.Binding{m.keys.NextField, m.keys.Select, m.keys.Export, m.keys.Back}
	case ScreenArticles:
		return []key.Binding{m.keys.Up, m.keys.Down, m.keys.PrevPage, m.keys.NextPage,
			m.keys.Filter, m.keys.Select, m.keys.Back}
	case ScreenArticle:
		return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Back}
	}
	return nil
}
