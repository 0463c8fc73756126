// Package pagination slices ordered result sets into fixed-size pages.
//
// Page tokens come straight from the query string and are never an error:
// anything non-numeric falls back to the first page, anything out of range
// (including zero and negatives) falls back to the last page.
package pagination

import "strconv"

// Ellipsis marks collapsed runs of page numbers in an elided range.
const Ellipsis = "…"

// Elided range shape: a window around the current page plus boundary pages.
const (
	onEachSide = 2
	onEnds     = 1
)

// Paginator computes page windows over a result set of a known size.
type Paginator struct {
	total   int
	perPage int
}

// New creates a Paginator for total items at perPage items per page.
func New(total, perPage int) *Paginator {
	if perPage <= 0 {
		panic("pagination: perPage must be positive")
	}
	if total < 0 {
		total = 0
	}
	return &Paginator{total: total, perPage: perPage}
}

// NumPages returns the page count. An empty result set still has one
// (empty) page.
func (p *Paginator) NumPages() int {
	if p.total == 0 {
		return 1
	}
	return (p.total + p.perPage - 1) / p.perPage
}

// Page resolves a raw page token to the page that will actually be served.
// Non-numeric or missing tokens resolve to page 1; numeric tokens below 1 or
// beyond the last page resolve to the last page.
func (p *Paginator) Page(token string) Page {
	number, err := strconv.Atoi(token)
	if err != nil {
		number = 1
	} else if number < 1 || number > p.NumPages() {
		number = p.NumPages()
	}
	return p.pageAt(number)
}

func (p *Paginator) pageAt(number int) Page {
	offset := (number - 1) * p.perPage
	limit := p.perPage
	if offset+limit > p.total {
		limit = p.total - offset
		if limit < 0 {
			limit = 0
		}
	}
	return Page{
		Number:      number,
		Offset:      offset,
		Limit:       limit,
		PerPage:     p.perPage,
		TotalItems:  p.total,
		TotalPages:  p.NumPages(),
		HasPrevious: number > 1,
		HasNext:     number < p.NumPages(),
	}
}

// Page is one served page: the SQL window to fetch and the metadata the
// rendering layer needs for page controls.
type Page struct {
	Number      int  `json:"number"`
	Offset      int  `json:"-"`
	Limit       int  `json:"-"`
	PerPage     int  `json:"per_page"`
	TotalItems  int  `json:"total_items"`
	TotalPages  int  `json:"total_pages"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

// ElidedRange returns the page-number sequence for compact page controls: a
// window of two pages on each side of the current page plus one page at each
// end, with collapsed gaps marked by Ellipsis.
func (pg Page) ElidedRange() []string {
	num := pg.TotalPages
	cur := pg.Number

	if num <= (onEachSide+onEnds)*2 {
		return pageRun(1, num)
	}

	var out []string
	if cur > (1+onEachSide+onEnds)+1 {
		out = append(out, pageRun(1, onEnds)...)
		out = append(out, Ellipsis)
		out = append(out, pageRun(cur-onEachSide, cur)...)
	} else {
		out = append(out, pageRun(1, cur)...)
	}

	if cur < (num-onEachSide-onEnds)-1 {
		out = append(out, pageRun(cur+1, cur+onEachSide)...)
		out = append(out, Ellipsis)
		out = append(out, pageRun(num-onEnds+1, num)...)
	} else {
		out = append(out, pageRun(cur+1, num)...)
	}
	return out
}

func pageRun(from, to int) []string {
	var run []string
	for n := from; n <= to; n++ {
		run = append(run, strconv.Itoa(n))
	}
	return run
}
