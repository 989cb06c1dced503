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

type articlesState struct {
	all      []models.Article
	filtered []models.Article

	termInput textinput.Model
	searching bool

	pager   *listing.Paginator
	cursor  int
	loading bool

	article        models.Article
	articleLoading bool
	scroll         int
}

func (m Model) openArticles() (tea.Model, tea.Cmd) {
	if m.articles.pager == nil {
		m.articles.pager = listing.NewPaginator(m.cfg.UI.ArticlesPerPage)
		input := textinput.New()
		input.Placeholder = "termo de busca"
		input.CharLimit = 80
		input.Width = 30
		m.articles.termInput = input
	}
	m.screen = ScreenArticles
	m.articles.loading = true
	return m, m.loadArticlesCmd(m.nextGen(), "")
}

func (m Model) handleArticlesLoaded(msg articlesLoadedMsg) (tea.Model, tea.Cmd) {
	m.articles.loading = false
	if msg.err != nil {
		return m.remoteError(msg.err)
	}
	m.articles.all = msg.articles
	m.applyArticleFilter()
	return m, nil
}

func (m *Model) applyArticleFilter() {
	filter := listing.ArticleFilter{Term: m.articles.termInput.Value()}
	m.articles.filtered = filter.Apply(m.articles.all)
	m.articles.pager.Reset(len(m.articles.filtered))
	m.articles.cursor = 0
}

func (m Model) updateArticles(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)

	if m.articles.searching {
		if isKey {
			switch {
			case key.Matches(keyMsg, m.keys.Back):
				m.articles.searching = false
				m.articles.termInput.Blur()
				return m, nil
			case key.Matches(keyMsg, m.keys.Select):
				// Run the search on the server too; the local filter
				// already narrowed the loaded list while typing.
				m.articles.searching = false
				m.articles.termInput.Blur()
				m.articles.loading = true
				return m, m.loadArticlesCmd(m.nextGen(), strings.TrimSpace(m.articles.termInput.Value()))
			}
		}
		var cmd tea.Cmd
		m.articles.termInput, cmd = m.articles.termInput.Update(msg)
		m.applyArticleFilter()
		return m, cmd
	}

	if !isKey {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Filter):
		m.articles.searching = true
		return m, m.articles.termInput.Focus()

	case key.Matches(keyMsg, m.keys.Refresh):
		m.articles.loading = true
		return m, m.loadArticlesCmd(m.nextGen(), strings.TrimSpace(m.articles.termInput.Value()))

	case key.Matches(keyMsg, m.keys.Up):
		if m.articles.cursor > 0 {
			m.articles.cursor--
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.articles.cursor < len(m.currentArticlePage())-1 {
			m.articles.cursor++
		}

	case key.Matches(keyMsg, m.keys.PrevPage):
		m.articles.pager.Prev()
		m.articles.cursor = 0

	case key.Matches(keyMsg, m.keys.NextPage):
		m.articles.pager.Next()
		m.articles.cursor = 0

	case key.Matches(keyMsg, m.keys.Select):
		page := m.currentArticlePage()
		if m.articles.cursor < len(page) {
			m.screen = ScreenArticle
			m.articles.articleLoading = true
			m.articles.scroll = 0
			return m, m.loadArticleCmd(m.nextGen(), page[m.articles.cursor].ID)
		}

	case key.Matches(keyMsg, m.keys.Back):
		return m.openDashboard()
	}
	return m, nil
}

func (m Model) currentArticlePage() []models.Article {
	return listing.PageOf(m.articles.pager, m.articles.filtered)
}

func (m Model) handleArticleLoaded(msg articleLoadedMsg) (tea.Model, tea.Cmd) {
	m.articles.articleLoading = false
	if msg.err != nil {
		return m.remoteError(msg.err)
	}
	m.articles.article = msg.article
	return m, nil
}

func (m Model) updateArticle(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.articles.scroll > 0 {
			m.articles.scroll--
		}
	case key.Matches(keyMsg, m.keys.Down):
		m.articles.scroll++
	case key.Matches(keyMsg, m.keys.Back):
		m.screen = ScreenArticles
	}
	return m, nil
}

func (m Model) viewArticles() string {
	if m.articles.loading {
		return m.spinner.View() + " carregando artigos..."
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Base de Conhecimento") + "\n")
	b.WriteString(lipgloss.NewStyle().Foreground(m.theme.FaintText).
		Render("busca: "+m.articles.termInput.View()) + "\n\n")

	page := m.currentArticlePage()
	if len(page) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(m.theme.FaintText).Render("nenhum artigo encontrado") + "\n")
	}
	for i, article := range page {
		row := fmt.Sprintf("#%-5d %-50.50s %s", article.ID, article.Title,
			models.CategoryNameByID[article.CategoryID])
		if i == m.articles.cursor {
			row = lipgloss.NewStyle().
				Foreground(m.theme.SelectedForeground).
				Background(m.theme.SelectedBackground).
				Render(row)
		}
		b.WriteString(row + "\n")
	}

	b.WriteString("\n" + lipgloss.NewStyle().Foreground(m.theme.HelpText).
		Render(fmt.Sprintf("Página %d de %d (%d artigos)",
			m.articles.pager.Page(), m.articles.pager.TotalPages(), len(m.articles.filtered))))
	return b.String()
}

func (m Model) viewArticle() string {
	if m.articles.articleLoading {
		return m.spinner.View() + " carregando artigo..."
	}

	article := m.articles.article
	faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(article.Title) + "\n")
	b.WriteString(faint.Render(fmt.Sprintf("%s · %s", shortDate(article.CreatedAt),
		models.CategoryNameByID[article.CategoryID])) + "\n")
	if article.Keywords != "" {
		b.WriteString(faint.Render("palavras-chave: "+article.Keywords) + "\n")
	}
	b.WriteString("\n")

	// Manual scroll window over the content lines.
	lines := strings.Split(article.Content, "\n")
	window := 14
	start := m.articles.scroll
	if start > len(lines)-1 {
		start = len(lines) - 1
	}
	if start < 0 {
		start = 0
	}
	end := start + window
	if end > len(lines) {
		end = len(lines)
	}
	b.WriteString(strings.Join(lines[start:end], "\n"))
	if end < len(lines) {
		b.WriteString("\n" + faint.Render("..."))
	}
	return b.String()
}
