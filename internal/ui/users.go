package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"helpdesk_client/internal/listing"
	"helpdesk_client/internal/models"
)

var roleOptions = []models.Role{models.RoleAdmin, models.RoleTechnician, models.RoleCollaborator}

type usersState struct {
	users   []models.User
	cursor  int
	loading bool

	editing   bool
	nameInput textinput.Model
	roleIdx   int
	active    bool
	editFocus int // 0 name, 1 role, 2 active
}

func (m Model) openUsers() (tea.Model, tea.Cmd) {
	if !m.user.Role.Can(models.CapManageUsers) {
		return m, nil
	}
	m.screen = ScreenUsers
	m.users = usersState{loading: true}
	return m, m.loadUsersCmd(m.nextGen())
}

func (m Model) handleUsersLoaded(msg usersLoadedMsg) (tea.Model, tea.Cmd) {
	m.users.loading = false
	if msg.err != nil {
		return m.remoteError(msg.err)
	}
	listing.SortUsersByName(msg.users)
	m.users.users = msg.users
	if m.users.cursor >= len(msg.users) {
		m.users.cursor = 0
	}
	return m, nil
}

func (m Model) handleUserSaved(msg userSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.remoteError(msg.err)
	}
	m.setInfo("conta atualizada")
	m.users.loading = true
	return m, m.loadUsersCmd(m.nextGen())
}

func (m Model) updateUsers(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)

	if m.users.editing {
		if isKey {
			switch {
			case key.Matches(keyMsg, m.keys.Back):
				m.users.editing = false
				m.users.nameInput.Blur()
				return m, nil

			case key.Matches(keyMsg, m.keys.NextField):
				m.users.editFocus = (m.users.editFocus + 1) % 3
				if m.users.editFocus == 0 {
					return m, m.users.nameInput.Focus()
				}
				m.users.nameInput.Blur()
				return m, nil

			case key.Matches(keyMsg, m.keys.Select):
				return m.saveUserEdit()
			}

			switch m.users.editFocus {
			case 1:
				if key.Matches(keyMsg, m.keys.Up) || key.Matches(keyMsg, m.keys.Down) ||
					key.Matches(keyMsg, m.keys.PrevPage) || key.Matches(keyMsg, m.keys.NextPage) {
					step := 1
					if key.Matches(keyMsg, m.keys.Up) || key.Matches(keyMsg, m.keys.PrevPage) {
						step = len(roleOptions) - 1
					}
					m.users.roleIdx = (m.users.roleIdx + step) % len(roleOptions)
					return m, nil
				}
			case 2:
				if keyMsg.String() == " " {
					m.users.active = !m.users.active
					return m, nil
				}
			}
		}
		if m.users.editFocus == 0 {
			var cmd tea.Cmd
			m.users.nameInput, cmd = m.users.nameInput.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if !isKey {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.users.cursor > 0 {
			m.users.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.users.cursor < len(m.users.users)-1 {
			m.users.cursor++
		}
	case key.Matches(keyMsg, m.keys.Refresh):
		m.users.loading = true
		return m, m.loadUsersCmd(m.nextGen())

	case key.Matches(keyMsg, m.keys.Edit):
		if m.users.cursor < len(m.users.users) {
			selected := m.users.users[m.users.cursor]
			input := textinput.New()
			input.CharLimit = 120
			input.Width = 40
			input.SetValue(selected.FullName)
			input.Focus()
			m.users.nameInput = input
			m.users.roleIdx = roleIndex(selected.Role)
			m.users.active = selected.Active
			m.users.editFocus = 0
			m.users.editing = true
			return m, textinput.Blink
		}

	case key.Matches(keyMsg, m.keys.Deactivate):
		if m.users.cursor < len(m.users.users) {
			return m, m.deactivateUserCmd(m.gen, m.users.users[m.users.cursor].ID)
		}

	case key.Matches(keyMsg, m.keys.Back):
		return m.openDashboard()
	}
	return m, nil
}

func (m Model) saveUserEdit() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.users.nameInput.Value())
	if name == "" {
		m.setInfo("o nome não pode ficar vazio")
		return m, nil
	}
	selected := m.users.users[m.users.cursor]
	m.users.editing = false
	m.users.nameInput.Blur()
	return m, m.updateUserCmd(m.gen, selected.ID, name,
		roleOptions[m.users.roleIdx].ProfileID(), m.users.active)
}

func roleIndex(role models.Role) int {
	for i, option := range roleOptions {
		if option == role {
			return i
		}
	}
	return len(roleOptions) - 1
}

func (m Model) viewUsers() string {
	if m.users.loading {
		return m.spinner.View() + " carregando usuários..."
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Usuários") + "\n\n")

	for i, user := range m.users.users {
		state := "ativo"
		if !user.Active {
			state = "inativo"
		}
		row := fmt.Sprintf("%-30.30s %-12s %-8s %s", user.FullName, user.Role.Label(), state, user.Email)
		if i == m.users.cursor {
			row = lipgloss.NewStyle().
				Foreground(m.theme.SelectedForeground).
				Background(m.theme.SelectedBackground).
				Render(row)
		}
		b.WriteString(row + "\n")
	}

	if m.users.editing {
		label := lipgloss.NewStyle().Foreground(m.theme.FaintText)
		marker := func(field int) string {
			if m.users.editFocus == field {
				return "> "
			}
			return "  "
		}
		active := "[ ] ativo"
		if m.users.active {
			active = "[x] ativo"
		}
		b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("Editar conta") + "\n")
		b.WriteString(marker(0) + label.Render("Nome: ") + m.users.nameInput.View() + "\n")
		b.WriteString(marker(1) + label.Render("Perfil: ") + string(roleOptions[m.users.roleIdx]) + "\n")
		b.WriteString(marker(2) + active + label.Render("  (espaço alterna)") + "\n")
	}
	return b.String()
}
