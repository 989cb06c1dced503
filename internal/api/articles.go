package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"helpdesk_client/internal/models"
	"helpdesk_client/internal/normalize"
)

// ListArticles fetches knowledge-base articles, optionally narrowed by
// a search term and category id (0 means all categories).
func (c *Client) ListArticles(term string, categoryID int) ([]models.Article, error) {
	query := url.Values{}
	if term != "" {
		query.Set("termo", term)
	}
	if categoryID != 0 {
		query.Set("categoria", strconv.Itoa(categoryID))
	}
	path := "/api/artigos"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	raw, err := c.doJSON(http.MethodGet, path, nil, c.timeouts.Light, true)
	if err != nil {
		return nil, err
	}

	list, _ := normalize.Normalize(raw).([]any)
	articles := make([]models.Article, 0, len(list))
	for _, entry := range list {
		if m, ok := entry.(map[string]any); ok {
			articles = append(articles, models.ArticleFromMap(m))
		}
	}
	return articles, nil
}

// GetArticle fetches one article by id.
func (c *Client) GetArticle(id int64) (models.Article, error) {
	raw, err := c.doJSON(http.MethodGet, fmt.Sprintf("/api/artigos/%d", id), nil, c.timeouts.Light, true)
	if err != nil {
		return models.Article{}, err
	}
	return models.ArticleFromMap(normalize.Map(raw)), nil
}
