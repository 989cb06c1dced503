package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Login field order: email, password, then the API address when its
// editor is open.
const (
	loginEmail = iota
	loginPassword
	loginAddress
)

type loginState struct {
	inputs   [2]textinput.Model // email, password
	address  textinput.Model
	editAddr bool
	focus    int
	busy     bool
	serverUp bool
}

func newLoginState(lastEmail string) loginState {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Width = 40
	email.SetValue(lastEmail)
	email.Focus()

	password := textinput.New()
	password.Placeholder = "senha"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 120
	password.Width = 40

	address := textinput.New()
	address.Placeholder = "https://servidor"
	address.CharLimit = 200
	address.Width = 40

	// Returning users land on the password field.
	state := loginState{inputs: [2]textinput.Model{email, password}, address: address}
	if lastEmail != "" {
		state.focus = loginPassword
		email.Blur()
		password.Focus()
		state.inputs = [2]textinput.Model{email, password}
	}
	return state
}

func (s *loginState) blurAll() {
	s.inputs[0].Blur()
	s.inputs[1].Blur()
	s.address.Blur()
}

func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Address):
			if m.login.editAddr {
				m.login.editAddr = false
				m.login.blurAll()
				m.login.focus = loginEmail
				return m, m.login.inputs[loginEmail].Focus()
			}
			m.login.editAddr = true
			m.login.address.SetValue(m.client.BaseURL())
			m.login.blurAll()
			m.login.focus = loginAddress
			return m, m.login.address.Focus()

		case key.Matches(keyMsg, m.keys.NextField):
			fields := 2
			if m.login.editAddr {
				fields = 3
			}
			m.login.blurAll()
			m.login.focus = (m.login.focus + 1) % fields
			if m.login.focus == loginAddress {
				return m, m.login.address.Focus()
			}
			return m, m.login.inputs[m.login.focus].Focus()

		case key.Matches(keyMsg, m.keys.Select):
			if m.login.focus == loginAddress {
				return m.applyAddress()
			}
			if m.login.busy {
				return m, nil
			}
			email := strings.TrimSpace(m.login.inputs[0].Value())
			password := m.login.inputs[1].Value()
			if email == "" || password == "" {
				m.setInfo("informe email e senha")
				return m, nil
			}
			m.clearNotices()
			m.login.busy = true
			return m, m.loginCmd(email, password)
		}
	}

	var cmd tea.Cmd
	if m.login.focus == loginAddress {
		m.login.address, cmd = m.login.address.Update(msg)
	} else {
		m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	}
	return m, cmd
}

// applyAddress retargets the gateway and persists the override, then
// re-checks the new server's health.
func (m Model) applyAddress() (tea.Model, tea.Cmd) {
	url := strings.TrimSpace(m.login.address.Value())
	if url == "" {
		m.setInfo("informe o endereço da API")
		return m, nil
	}
	m.client.SetBaseURL(url)
	m.prefs.SetBaseURL(url)
	m.login.editAddr = false
	m.login.blurAll()
	m.login.focus = loginEmail
	m.login.serverUp = false
	m.setInfo("endereço da API atualizado")
	return m, tea.Batch(m.healthCheckCmd(), m.login.inputs[loginEmail].Focus())
}

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.login.busy = false
	if msg.err != nil {
		m.setError(msg.err)
		return m, nil
	}
	m.user = msg.user
	m.prefs.SetLastEmail(msg.user.Email)
	return m.openDashboard()
}

func (m Model) viewLogin() string {
	label := lipgloss.NewStyle().Foreground(m.theme.FaintText)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderColor).
		Padding(1, 2)

	server := label.Render("servidor: verificando...")
	if m.login.serverUp {
		server = lipgloss.NewStyle().Foreground(m.theme.SuccessText).Render("servidor: online")
	}

	lines := []string{
		label.Render("Email"),
		m.login.inputs[0].View(),
		"",
		label.Render("Senha"),
		m.login.inputs[1].View(),
	}
	if m.login.editAddr {
		lines = append(lines, "", label.Render("Endereço da API"), m.login.address.View())
	}
	lines = append(lines, "", server)
	if m.login.busy {
		lines = append(lines, m.spinner.View()+" autenticando...")
	}
	return box.Render(strings.Join(lines, "\n"))
}
