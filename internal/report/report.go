// Package report turns the raw managerial report payload into the
// rows the screens and the PDF export present.
package report

import (
	"sort"

	"helpdesk_client/internal/models"
)

// CategoryTotal is one merged, named row of the category breakdown.
type CategoryTotal struct {
	Name  string
	Count int
}

// MergeCategories resolves category ids to names, folds the legacy
// printer category into hardware, and sums duplicates. Rows come back
// sorted by count descending, name ascending on ties, so the table and
// the chart render deterministically.
func MergeCategories(rows []models.CategoryCount) []CategoryTotal {
	merged := make(map[string]int)
	for _, row := range rows {
		name, ok := models.CategoryNameByID[row.CategoryID]
		if !ok {
			name = "outros"
		}
		if name == "impressora" {
			name = "hardware"
		}
		merged[name] += row.Count
	}

	totals := make([]CategoryTotal, 0, len(merged))
	for name, count := range merged {
		totals = append(totals, CategoryTotal{Name: name, Count: count})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Count != totals[j].Count {
			return totals[i].Count > totals[j].Count
		}
		return totals[i].Name < totals[j].Name
	})
	return totals
}
