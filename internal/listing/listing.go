// Package listing implements the in-memory filtering, sorting and
// pagination shared by the list screens. Every screen fetches its full
// list from the gateway, then narrows it client-side: filters compose
// conjunctively, sorts are stable, and the paginator clamps navigation
// instead of erroring.
package listing

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"helpdesk_client/internal/models"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases s and strips diacritics, so "Média" matches "media"
// and "Em Análise" matches "em analise".
func Fold(s string) string {
	lowered := strings.ToLower(s)
	folded, _, err := transform.String(foldTransformer, lowered)
	if err != nil {
		return lowered
	}
	return folded
}

// canonicalStatus folds the legacy status labels the API still emits
// on old tickets into their current equivalents.
func canonicalStatus(folded string) string {
	return strings.ReplaceAll(folded, "em analise", "em andamento")
}

// canonicalPriority folds the legacy priority labels.
func canonicalPriority(folded string) string {
	return strings.ReplaceAll(folded, "critica", "alta")
}

// TicketFilter holds the four independent predicates of the ticket
// browser. Empty fields match everything; non-empty fields must all
// match (conjunction).
type TicketFilter struct {
	// Query matches as a substring of the ticket id or title.
	Query string
	// Status matches as a substring of the ticket status.
	Status string
	// Category matches as a substring of the category name.
	Category string
	// Priority matches as a substring of the ticket priority.
	Priority string
}

// Matches reports whether the ticket passes every set predicate.
func (f TicketFilter) Matches(t models.Ticket) bool {
	if query := Fold(strings.TrimSpace(f.Query)); query != "" {
		id := strconv.FormatInt(t.ID, 10)
		if !strings.Contains(Fold(t.Title), query) && !strings.Contains(id, query) {
			return false
		}
	}
	if status := canonicalStatus(Fold(f.Status)); status != "" {
		ticketStatus := canonicalStatus(Fold(t.Status))
		if ticketStatus == "" {
			ticketStatus = models.StatusOpen
		}
		if !strings.Contains(ticketStatus, status) {
			return false
		}
	}
	if category := Fold(f.Category); category != "" {
		if !strings.Contains(Fold(t.CategoryName()), category) {
			return false
		}
	}
	if priority := canonicalPriority(Fold(f.Priority)); priority != "" {
		ticketPriority := canonicalPriority(Fold(t.Priority))
		if ticketPriority == "" {
			ticketPriority = "media"
		}
		if !strings.Contains(ticketPriority, priority) {
			return false
		}
	}
	return true
}

// Apply returns the tickets matching the filter, preserving order.
func (f TicketFilter) Apply(tickets []models.Ticket) []models.Ticket {
	result := make([]models.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if f.Matches(t) {
			result = append(result, t)
		}
	}
	return result
}

// ArticleFilter narrows knowledge-base lists by a free-text term over
// title, keywords and content.
type ArticleFilter struct {
	Term string
}

// Matches reports whether the article contains the term.
func (f ArticleFilter) Matches(a models.Article) bool {
	term := Fold(strings.TrimSpace(f.Term))
	if term == "" {
		return true
	}
	return strings.Contains(Fold(a.Title), term) ||
		strings.Contains(Fold(a.Keywords), term) ||
		strings.Contains(Fold(a.Content), term)
}

// Apply returns the articles matching the filter, preserving order.
func (f ArticleFilter) Apply(articles []models.Article) []models.Article {
	result := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if f.Matches(a) {
			result = append(result, a)
		}
	}
	return result
}

// SortTicketsByIDDesc orders tickets most-recent-first by numeric id.
// The sort is stable: tickets with equal ids keep their relative order.
func SortTicketsByIDDesc(tickets []models.Ticket) {
	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].ID > tickets[j].ID
	})
}

// SortUsersByName orders users alphabetically by folded full name.
func SortUsersByName(users []models.User) {
	sort.SliceStable(users, func(i, j int) bool {
		return Fold(users[i].FullName) < Fold(users[j].FullName)
	})
}

// SortCommentsByCreation orders comments oldest-first, the order the
// detail screen renders them in.
func SortCommentsByCreation(comments []models.Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt < comments[j].CreatedAt
	})
}
