package filter

import "fmt"

const DefaultWindowSize = 5

type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalCount int
	TotalPages int
}

// TotalPages is ceil(total/pageSize).
func TotalPages(total, pageSize int) int {
	if total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Paginate returns the 1-indexed page of items. Page numbers outside
// [1, TotalPages] are clamped, so a shrinking result set never yields an
// empty page while rows remain. pageSize must be positive.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		panic(fmt.Sprintf("filter: non-positive page size %d", pageSize))
	}

	total := len(items)
	pages := TotalPages(total, pageSize)
	page = ClampPage(page, pages)

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      items[start:end:end],
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: pages,
	}
}

// ClampPage bounds page to [1, max(totalPages, 1)].
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// PageWindow lists up to size page numbers centred on current.
func PageWindow(current, totalPages, size int) []int {
	if size <= 0 {
		size = DefaultWindowSize
	}
	start := current - size/2
	if start < 1 {
		start = 1
	}
	end := start + size - 1
	if end > totalPages {
		end = totalPages
	}

	pages := make([]int, 0, size)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}
