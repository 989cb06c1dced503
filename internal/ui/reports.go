package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"helpdesk_client/internal/models"
	"helpdesk_client/internal/report"
)

const reportExportPath = "relatorio_chamados.pdf"

type reportsState struct {
	startInput textinput.Model
	endInput   textinput.Model
	focus      int // 0 start date, 1 end date, 2 actions

	report     models.Report
	categories []report.CategoryTotal
	loaded     bool
	loading    bool
	exporting  bool
}

func (m Model) openReports() (tea.Model, tea.Cmd) {
	if !m.user.Role.Can(models.CapViewReports) {
		return m, nil
	}
	start := textinput.New()
	start.Placeholder = "AAAA-MM-DD"
	start.CharLimit = 10
	start.Width = 12

	end := textinput.New()
	end.Placeholder = "AAAA-MM-DD"
	end.CharLimit = 10
	end.Width = 12

	m.screen = ScreenReports
	m.reports = reportsState{startInput: start, endInput: end, focus: 2, loading: true}
	// Empty dates use the server's default period.
	return m, m.loadReportCmd(m.nextGen(), "", "")
}

func (m Model) handleReportLoaded(msg reportLoadedMsg) (tea.Model, tea.Cmd) {
	m.reports.loading = false
	if msg.err != nil {
		return m.remoteError(msg.err)
	}
	m.reports.report = msg.report
	m.reports.categories = report.MergeCategories(msg.report.ByCategory)
	m.reports.loaded = true
	return m, nil
}

func (m Model) updateReports(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey {
		switch {
		case key.Matches(keyMsg, m.keys.Back):
			return m.openDashboard()

		case key.Matches(keyMsg, m.keys.NextField):
			m.reports.startInput.Blur()
			m.reports.endInput.Blur()
			m.reports.focus = (m.reports.focus + 1) % 3
			switch m.reports.focus {
			case 0:
				return m, m.reports.startInput.Focus()
			case 1:
				return m, m.reports.endInput.Focus()
			}
			return m, nil

		case key.Matches(keyMsg, m.keys.Select):
			m.reports.loading = true
			return m, m.loadReportCmd(m.nextGen(),
				strings.TrimSpace(m.reports.startInput.Value()),
				strings.TrimSpace(m.reports.endInput.Value()))

		case m.reports.focus == 2 && key.Matches(keyMsg, m.keys.Export):
			if !m.reports.loaded || m.reports.exporting {
				return m, nil
			}
			m.reports.exporting = true
			return m, exportReportCmd(reportExportPath, m.reports.report, m.reports.categories)
		}
	}

	var cmd tea.Cmd
	switch m.reports.focus {
	case 0:
		m.reports.startInput, cmd = m.reports.startInput.Update(msg)
	case 1:
		m.reports.endInput, cmd = m.reports.endInput.Update(msg)
	}
	return m, cmd
}

func (m Model) viewReports() string {
	label := lipgloss.NewStyle().Foreground(m.theme.FaintText)
	bold := lipgloss.NewStyle().Bold(true)

	var b strings.Builder
	b.WriteString(bold.Render("Relatório de Chamados") + "\n\n")
	b.WriteString(label.Render("Início: ") + m.reports.startInput.View() +
		label.Render("   Fim: ") + m.reports.endInput.View() + "\n\n")

	if m.reports.loading {
		b.WriteString(m.spinner.View() + " gerando relatório...")
		return b.String()
	}
	if !m.reports.loaded {
		return b.String()
	}

	metrics := m.reports.report.Metrics
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.statCard("Total", metrics.Total, m.theme.Accent),
		m.statCard("Em Aberto", metrics.Open, m.theme.StatusOpen),
		m.statCard("Resolvidos", metrics.Resolved, m.theme.StatusResolved),
	)
	b.WriteString(cards + "\n\n")

	b.WriteString(bold.Render("Por categoria") + "\n")
	for _, row := range m.reports.categories {
		b.WriteString(fmt.Sprintf("%-12s %4d  %s\n", row.Name, row.Count, bar(row.Count, m.reports.categories)))
	}

	if m.reports.exporting {
		b.WriteString("\n" + m.spinner.View() + " exportando PDF...")
	}
	return b.String()
}

// bar renders a proportional block bar scaled against the largest row.
func bar(count int, rows []report.CategoryTotal) string {
	max := 0
	for _, row := range rows {
		if row.Count > max {
			max = row.Count
		}
	}
	if max == 0 {
		return ""
	}
	width := count * 30 / max
	return strings.Repeat("█", width)
}
