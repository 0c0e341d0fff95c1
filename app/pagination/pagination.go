package pagination

import "strconv"

// PerPage is the fixed feed page size.
const PerPage = 10

// Window describes one page of an ordered sequence of Total items.
type Window struct {
	Number      int   `json:"number"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	PerPage     int   `json:"per_page"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// Offset is the index of the first item on the page.
func (w Window) Offset() int {
	return (w.Number - 1) * w.PerPage
}

// Limit is the maximum number of items on the page.
func (w Window) Limit() int {
	return w.PerPage
}

// Compute resolves a requested page against total items. Pages below 1 map to
// the first page and pages past the end map to the last one; an empty
// sequence still has a single, empty first page.
func Compute(total int64, perPage, requested int) Window {
	if perPage <= 0 {
		perPage = PerPage
	}
	if total < 0 {
		total = 0
	}

	pages := int((total + int64(perPage) - 1) / int64(perPage))
	if pages < 1 {
		pages = 1
	}

	number := requested
	if number < 1 {
		number = 1
	}
	if number > pages {
		number = pages
	}

	return Window{
		Number:      number,
		TotalPages:  pages,
		TotalItems:  total,
		PerPage:     perPage,
		HasNext:     number < pages,
		HasPrevious: number > 1,
	}
}

// ParsePage reads a raw page parameter; anything that is not a positive
// integer means the first page.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Page is a window together with the items it selects.
type Page[T any] struct {
	Window
	Items []T `json:"items"`
}

// Paginate slices an in-memory ordered sequence.
func Paginate[T any](items []T, perPage, requested int) Page[T] {
	w := Compute(int64(len(items)), perPage, requested)
	start := w.Offset()
	end := start + w.Limit()
	if end > len(items) {
		end = len(items)
	}
	if start > end {
		start = end
	}
	return Page[T]{Window: w, Items: items[start:end]}
}
