package pagination

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequence(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestPaginateSizesAndConcatenation(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 25, 100} {
		for _, size := range []int{1, 3, 10} {
			t.Run(fmt.Sprintf("n=%d/size=%d", n, size), func(t *testing.T) {
				items := sequence(n)

				wantPages := (n + size - 1) / size
				if wantPages < 1 {
					wantPages = 1
				}

				concat := []int{}
				for p := 1; p <= wantPages; p++ {
					page := Paginate(items, p, size)
					assert.Equal(t, wantPages, page.TotalPages)
					assert.Equal(t, n, page.TotalItems)
					assert.Equal(t, p, page.Number)

					if p < wantPages {
						assert.Len(t, page.Items, size)
					} else {
						assert.LessOrEqual(t, len(page.Items), size)
					}
					assert.Equal(t, p > 1, page.HasPrev)
					assert.Equal(t, p < wantPages, page.HasNext)

					concat = append(concat, page.Items...)
				}

				// Concatenating every page reproduces the sequence exactly.
				assert.Equal(t, items, concat)
			})
		}
	}
}

func TestPaginateClampsOutOfRange(t *testing.T) {
	items := sequence(13)

	first := Paginate(items, 1, 10)
	require.Len(t, first.Items, 10)

	second := Paginate(items, 2, 10)
	require.Len(t, second.Items, 3)
	assert.False(t, second.HasNext)

	// Page 3 of a 2-page sequence clamps to page 2's content.
	third := Paginate(items, 3, 10)
	assert.Equal(t, 2, third.Number)
	assert.Equal(t, second.Items, third.Items)

	// Below range clamps to the first page.
	below := Paginate(items, 0, 10)
	assert.Equal(t, 1, below.Number)
	assert.Equal(t, first.Items, below.Items)

	last := Paginate(items, LastPage, 10)
	assert.Equal(t, 2, last.Number)
}

func TestPaginateEmptySequence(t *testing.T) {
	page := Paginate([]int{}, 1, 10)

	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.TotalPages)
	assert.False(t, page.HasPrev)
	assert.False(t, page.HasNext)
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, ParsePage(""))
	assert.Equal(t, 3, ParsePage("3"))
	assert.Equal(t, -2, ParsePage("-2"))
	// Unparseable values clamp to the last page.
	assert.Equal(t, LastPage, ParsePage("abc"))
	assert.Equal(t, LastPage, ParsePage("1.5"))
}
