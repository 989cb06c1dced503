package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"helpdesk_client/internal/relevance"
)

var formCategories = []string{"hardware", "software", "rede", "outros"}
var formUrgencies = []string{"baixa", "media", "alta"}

// Form field order: title, description, attachments, category, urgency.
const (
	fieldTitle = iota
	fieldDescription
	fieldAttachments
	fieldCategory
	fieldUrgency
	fieldCount
)

type formState struct {
	title       textinput.Model
	description textarea.Model
	attachments textinput.Model
	categoryIdx int
	urgencyIdx  int
	focus       int
	busy        bool
}

func newFormState() formState {
	title := textinput.New()
	title.Placeholder = "título do chamado"
	title.CharLimit = 120
	title.Width = 60
	title.Focus()

	description := textarea.New()
	description.Placeholder = "descreva o problema"
	description.SetWidth(60)
	description.SetHeight(5)
	description.CharLimit = 2000

	attachments := textinput.New()
	attachments.Placeholder = "caminhos de arquivos separados por ; (opcional)"
	attachments.CharLimit = 500
	attachments.Width = 60

	return formState{
		title:       title,
		description: description,
		attachments: attachments,
		urgencyIdx:  1, // média
	}
}

func (m Model) openForm() (tea.Model, tea.Cmd) {
	m.screen = ScreenNewTicket
	m.form = newFormState()
	return m, textinput.Blink
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, isKey := msg.(tea.KeyMsg); isKey {
		switch {
		case key.Matches(keyMsg, m.keys.Back):
			return m.openDashboard()

		case key.Matches(keyMsg, m.keys.NextField):
			return m.formAdvanceFocus()

		case key.Matches(keyMsg, m.keys.Select) && m.form.focus != fieldDescription:
			// Enter inside the description inserts a newline instead.
			return m.submitForm()

		case m.form.focus == fieldCategory:
			switch {
			case key.Matches(keyMsg, m.keys.PrevPage), key.Matches(keyMsg, m.keys.Up):
				m.form.categoryIdx = (m.form.categoryIdx + len(formCategories) - 1) % len(formCategories)
				return m, nil
			case key.Matches(keyMsg, m.keys.NextPage), key.Matches(keyMsg, m.keys.Down):
				m.form.categoryIdx = (m.form.categoryIdx + 1) % len(formCategories)
				return m, nil
			}

		case m.form.focus == fieldUrgency:
			switch {
			case key.Matches(keyMsg, m.keys.PrevPage), key.Matches(keyMsg, m.keys.Up):
				m.form.urgencyIdx = (m.form.urgencyIdx + len(formUrgencies) - 1) % len(formUrgencies)
				return m, nil
			case key.Matches(keyMsg, m.keys.NextPage), key.Matches(keyMsg, m.keys.Down):
				m.form.urgencyIdx = (m.form.urgencyIdx + 1) % len(formUrgencies)
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.form.focus {
	case fieldTitle:
		m.form.title, cmd = m.form.title.Update(msg)
	case fieldDescription:
		m.form.description, cmd = m.form.description.Update(msg)
	case fieldAttachments:
		m.form.attachments, cmd = m.form.attachments.Update(msg)
	}
	return m, cmd
}

func (m Model) formAdvanceFocus() (tea.Model, tea.Cmd) {
	m.form.title.Blur()
	m.form.description.Blur()
	m.form.attachments.Blur()

	m.form.focus = (m.form.focus + 1) % fieldCount
	switch m.form.focus {
	case fieldTitle:
		return m, m.form.title.Focus()
	case fieldDescription:
		return m, m.form.description.Focus()
	case fieldAttachments:
		return m, m.form.attachments.Focus()
	}
	return m, nil
}

// submitForm validates the draft and sends it. The relevance filter
// runs here first so an off-topic draft is rejected before any network
// traffic; the HR hint is informational and never blocks.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.form.busy {
		return m, nil
	}
	title := strings.TrimSpace(m.form.title.Value())
	description := strings.TrimSpace(m.form.description.Value())
	if title == "" || description == "" {
		m.setInfo("preencha título e descrição")
		return m, nil
	}

	if ok, reason := relevance.Check(title, description); !ok {
		m.errMsg = "chamado rejeitado pelo filtro local: " + reason
		m.infoMsg = ""
		return m, nil
	}
	m.clearNotices()
	if hint := relevance.RedirectHint(title, description); hint != "" {
		m.setInfo("assunto %q costuma ser tratado pelo RH; o chamado segue mesmo assim", hint)
	}

	var paths []string
	for _, part := range strings.Split(m.form.attachments.Value(), ";") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			paths = append(paths, trimmed)
		}
	}

	m.form.busy = true
	return m, m.createTicketCmd(m.gen, title, description,
		formCategories[m.form.categoryIdx], formUrgencies[m.form.urgencyIdx], paths)
}

func (m Model) handleTicketCreated(msg ticketCreatedMsg) (tea.Model, tea.Cmd) {
	m.form.busy = false
	if msg.err != nil {
		return m.remoteError(msg.err)
	}
	model, cmd := m.openDetail(msg.ticket.ID)
	next := model.(Model)
	next.setInfo("chamado #%d aberto", msg.ticket.ID)
	return next, cmd
}

func (m Model) viewForm() string {
	label := lipgloss.NewStyle().Foreground(m.theme.FaintText)
	picked := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true)

	renderPicker := func(options []string, selected int, focused bool) string {
		parts := make([]string, len(options))
		for i, option := range options {
			if i == selected {
				parts[i] = picked.Render("[" + option + "]")
			} else {
				parts[i] = " " + option + " "
			}
		}
		line := strings.Join(parts, " ")
		if focused {
			line += label.Render("  (←/→ para alternar)")
		}
		return line
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Render("Abrir Chamado"),
		"",
		label.Render("Título"),
		m.form.title.View(),
		"",
		label.Render("Descrição"),
		m.form.description.View(),
		"",
		label.Render("Anexos"),
		m.form.attachments.View(),
		"",
		label.Render("Categoria"),
		renderPicker(formCategories, m.form.categoryIdx, m.form.focus == fieldCategory),
		"",
		label.Render("Urgência"),
		renderPicker(formUrgencies, m.form.urgencyIdx, m.form.focus == fieldUrgency),
	}
	if m.form.busy {
		lines = append(lines, "", m.spinner.View()+" enviando chamado...")
	}
	return strings.Join(lines, "\n")
}
