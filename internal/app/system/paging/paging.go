// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the number of posts shown per feed page.
// Every feed (global, group, author, followed) pages with this size.
const PageSize = 10

// ParsePage extracts the 1-based "page" query parameter.
// Returns 1 if not present, invalid, or below 1. Values beyond the last
// page are clamped later, once the total is known (see Clamp).
func ParsePage(r *http.Request) int {
	s := query.Get(r, "page")
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// PageCount returns how many pages a result set of total items spans.
// An empty set still has one (empty) page so handlers always render page 1.
func PageCount(total int64) int {
	return pageCountWithSize(total, PageSize)
}

func pageCountWithSize(total int64, pageSize int) int {
	if total <= 0 {
		return 1
	}
	pages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return pages
}

// Clamp pins a requested page into [1, PageCount(total)]. Requesting a page
// past the end is not an error; the caller gets the last page instead.
func Clamp(page int, total int64) int {
	if page < 1 {
		return 1
	}
	if last := PageCount(total); page > last {
		return last
	}
	return page
}

// Skip returns the number of documents to skip for a (clamped) page.
func Skip(page int) int64 {
	if page < 1 {
		page = 1
	}
	return int64(page-1) * PageSize
}

// Limit returns the fetch limit for one page as int64 for Mongo Find().SetLimit().
func Limit() int64 { return int64(PageSize) }

// Page holds one page of results plus the metadata list templates need.
type Page[T any] struct {
	Items   []T
	Number  int   // 1-based page number actually served (after clamping)
	Pages   int   // total page count (>= 1)
	Total   int64 // total item count across all pages
	HasPrev bool
	HasNext bool
	Prev    int
	Next    int
}

// Build assembles a Page from a fetched slice and the total count.
// page must already be clamped; items is the slice for exactly that page.
func Build[T any](items []T, page int, total int64) Page[T] {
	pages := PageCount(total)
	p := Page[T]{
		Items:  items,
		Number: page,
		Pages:  pages,
		Total:  total,
	}
	if page > 1 {
		p.HasPrev = true
		p.Prev = page - 1
	}
	if page < pages {
		p.HasNext = true
		p.Next = page + 1
	}
	return p
}

// SlicePage pages an in-memory slice. Used by stores that have already
// fetched a full result set and by tests; Mongo-backed feeds use Skip/Limit
// instead.
func SlicePage[T any](all []T, page int) Page[T] {
	total := int64(len(all))
	page = Clamp(page, total)
	start := int(Skip(page))
	if start > len(all) {
		start = len(all)
	}
	end := start + PageSize
	if end > len(all) {
		end = len(all)
	}
	return Build(all[start:end], page, total)
}
