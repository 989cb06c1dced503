package listing

// Paginator slices an already-filtered list into fixed-size pages.
// Pages are 1-based. Navigating past either end is a no-op, never an
// error, and the page resets to 1 whenever the filtered total changes
// (filter criteria changed underneath the view).
type Paginator struct {
	pageSize int
	page     int
	total    int
}

// NewPaginator creates a paginator with the given page size. Sizes
// below 1 are treated as 1.
func NewPaginator(pageSize int) *Paginator {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Paginator{pageSize: pageSize, page: 1}
}

// Reset records a new filtered total and returns to page 1.
func (p *Paginator) Reset(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
	p.page = 1
}

// Page returns the current 1-based page number.
func (p *Paginator) Page() int { return p.page }

// TotalPages returns the page count for the current total; at least 1
// so "Página 1 de 1" renders for empty lists.
func (p *Paginator) TotalPages() int {
	if p.total == 0 {
		return 1
	}
	pages := p.total / p.pageSize
	if p.total%p.pageSize != 0 {
		pages++
	}
	return pages
}

// SetPage moves to the given page if it is within bounds. Out-of-range
// requests leave the current page unchanged.
func (p *Paginator) SetPage(page int) {
	if page >= 1 && page <= p.TotalPages() {
		p.page = page
	}
}

// Next advances one page, clamped at the last page.
func (p *Paginator) Next() { p.SetPage(p.page + 1) }

// Prev steps back one page, clamped at page 1.
func (p *Paginator) Prev() { p.SetPage(p.page - 1) }

// Bounds returns the [start, end) slice indexes of the current page.
func (p *Paginator) Bounds() (int, int) {
	start := (p.page - 1) * p.pageSize
	if start > p.total {
		start = p.total
	}
	end := start + p.pageSize
	if end > p.total {
		end = p.total
	}
	return start, end
}

// PageOf returns the current page's slice of items. The caller passes
// the same filtered list the total was reset with.
func PageOf[T any](p *Paginator, items []T) []T {
	start, end := p.Bounds()
	if start >= len(items) {
		return nil
	}
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
