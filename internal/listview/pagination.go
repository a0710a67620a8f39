package listview

import "fmt"

// DefaultPageSize is used when a page size is missing or invalid.
const DefaultPageSize = 20

// Window is the page currently shown. Page is 1-based.
type Window struct {
	Page     int
	PageSize int
}

func (w Window) normalize() Window {
	if w.Page < 1 {
		w.Page = 1
	}
	if w.PageSize < 1 {
		w.PageSize = DefaultPageSize
	}
	return w
}

// Paginate returns the rows of one page. It never returns more than PageSize
// rows and returns an empty slice for pages past the end.
func Paginate[R any](rows []R, w Window) []R {
	w = w.normalize()
	start := (w.Page - 1) * w.PageSize
	if start >= len(rows) {
		return []R{}
	}
	end := start + w.PageSize
	if end > len(rows) {
		end = len(rows)
	}
	page := make([]R, end-start)
	copy(page, rows[start:end])
	return page
}

// TotalPages returns the page count for count rows; never less than 1.
func TotalPages(count, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if count <= 0 {
		return 1
	}
	return (count + pageSize - 1) / pageSize
}

// Pager holds the pagination window of a listing.
type Pager struct {
	w Window
}

// NewPager creates a pager on page 1.
func NewPager(pageSize int) *Pager {
	return &Pager{w: Window{Page: 1, PageSize: pageSize}.normalize()}
}

// Window returns the current window.
func (p *Pager) Window() Window {
	return p.w
}

// Page returns the current 1-based page.
func (p *Pager) Page() int {
	return p.w.Page
}

// PageSize returns the current page size.
func (p *Pager) PageSize() int {
	return p.w.PageSize
}

// SetPage moves to page, clamped to [1, TotalPages(count)].
func (p *Pager) SetPage(page, count int) {
	total := TotalPages(count, p.w.PageSize)
	switch {
	case page < 1:
		page = 1
	case page > total:
		page = total
	}
	p.w.Page = page
}

// Next moves forward one page if there is one.
func (p *Pager) Next(count int) bool {
	if p.w.Page >= TotalPages(count, p.w.PageSize) {
		return false
	}
	p.w.Page++
	return true
}

// Prev moves back one page if there is one.
func (p *Pager) Prev() bool {
	if p.w.Page <= 1 {
		return false
	}
	p.w.Page--
	return true
}

// SetPageSize changes the page size and resets to page 1.
func (p *Pager) SetPageSize(size int) {
	p.w = Window{Page: 1, PageSize: size}.normalize()
}

// Reset returns to page 1.
func (p *Pager) Reset() {
	p.w.Page = 1
}

// TotalPages returns the page count for count rows.
func (p *Pager) TotalPages(count int) int {
	return TotalPages(count, p.w.PageSize)
}

// Range returns the 1-based bounds of the current page. An empty collection
// reports 0, 0, 0.
func (p *Pager) Range(count int) (from, to, total int) {
	if count <= 0 {
		return 0, 0, 0
	}
	start := (p.w.Page - 1) * p.w.PageSize
	if start >= count {
		return 0, 0, count
	}
	end := start + p.w.PageSize
	if end > count {
		end = count
	}
	return start + 1, end, count
}

// Label renders the "showing X-Y of Z" footer.
func (p *Pager) Label(count int) string {
	from, to, total := p.Range(count)
	return fmt.Sprintf("showing %d-%d of %d", from, to, total)
}
