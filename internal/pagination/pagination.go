// Package pagination slices an ordered, materialized sequence into
// fixed-size pages. Out-of-range page numbers clamp to the nearest valid
// page instead of failing.
package pagination

import (
	"math"
	"strconv"
)

// LastPage requests the final page whatever the sequence length is.
// ParsePage returns it for page parameters that cannot be parsed.
const LastPage = math.MaxInt

// Page is one chunk of a sequence plus position metadata.
type Page[T any] struct {
	Items      []T
	Number     int
	Size       int
	TotalItems int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

// ParsePage interprets a raw page query parameter. A missing parameter
// means the first page; an unparseable one clamps to the last page.
func ParsePage(raw string) int {
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return LastPage
	}
	return n
}

// Paginate splits items into pages of the given size and returns the
// requested 1-indexed page. Requests below range clamp to the first page,
// above range to the last. An empty sequence yields a single empty page.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size < 1 {
		size = 1
	}

	total := len(items)
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	} else if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      items[start:end],
		Number:     page,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}
