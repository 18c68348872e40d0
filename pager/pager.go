// Package pager computes page numbers and links for paginated listings.
package pager

import "strconv"

// Link is a single pager entry.
type Link struct {
	Page   int
	Href   string
	Active bool
}

// Pager describes the position of the current page within Total pages.
// Page one lives at Base; page n > 1 lives at Base + n + "/".
type Pager struct {
	Current int
	Total   int
	Base    string
}

// PageCount returns how many pages total items fill at perPage per page.
// An empty listing still has one page.
func PageCount(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

// Offset returns the index of the first item on page.
func Offset(page, perPage int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * perPage
}

// New returns a Pager with current clamped to [1, total].
func New(current, total int, base string) Pager {
	if total < 1 {
		total = 1
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}
	return Pager{Current: current, Total: total, Base: base}
}

// PageURL returns the href of page n.
func (p Pager) PageURL(n int) string {
	if n <= 1 {
		return p.Base
	}
	return p.Base + strconv.Itoa(n) + "/"
}

func (p Pager) HasPrev() bool { return p.Current > 1 }

func (p Pager) HasNext() bool { return p.Current != p.Total }

func (p Pager) PrevURL() string { return p.PageURL(p.Current - 1) }

func (p Pager) NextURL() string { return p.PageURL(p.Current + 1) }

// Window returns the numbered links around the current page in ascending
// order. Two pages are shown either side of the current one; on the first
// and last pages a third is added on the open side so the window keeps its
// width.
func (p Pager) Window() []Link {
	c, n := p.Current, p.Total
	var pages []int
	if c == n && c-3 >= 1 {
		pages = append(pages, c-3)
	}
	if c-2 >= 1 {
		pages = append(pages, c-2)
	}
	if c > 1 {
		pages = append(pages, c-1)
	}
	pages = append(pages, c)
	if c != n {
		pages = append(pages, c+1)
	}
	if c+2 <= n {
		pages = append(pages, c+2)
	}
	if c == 1 && c+3 <= n {
		pages = append(pages, c+3)
	}

	links := make([]Link, 0, len(pages))
	for _, pg := range pages {
		if pg == c {
			links = append(links, Link{Page: pg, Href: "#", Active: true})
			continue
		}
		links = append(links, Link{Page: pg, Href: p.PageURL(pg)})
	}
	return links
}
