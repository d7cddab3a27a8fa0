package paging

import (
	"github.com/parodee/goapi/base/math"
)

// Page describes one resolved page of a sequence. TotalPages is never
// below 1 and Current is always clamped into [1, TotalPages], so an
// out-of-range request degrades to a valid page instead of an error.
type Page struct {
	Current    int
	Size       int
	Total      int
	TotalPages int
	Start      int
	End        int
}

// Paginate resolves a requested page against a total item count.
// Start/End are slice bounds into the full sequence.
func Paginate(total, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := math.MaxInt(1, math.CeilDiv(total, pageSize))
	current := math.MinInt(math.MaxInt(1, page), totalPages)
	start := math.MinInt((current-1)*pageSize, total)
	end := math.MinInt(start+pageSize, total)
	return Page{
		Current:    current,
		Size:       pageSize,
		Total:      total,
		TotalPages: totalPages,
		Start:      start,
		End:        end,
	}
}

// Window returns up to max page numbers centered on current, clamped to
// [1, totalPages]. Near either edge the window shifts to keep its width.
func Window(current, totalPages, max int) []int {
	if max < 1 || totalPages < 1 {
		return nil
	}
	if totalPages <= max {
		pages := make([]int, totalPages)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}

	half := max / 2
	start := current - half
	end := current + (max - half - 1)
	if start < 1 {
		start = 1
		end = max
	}
	if end > totalPages {
		end = totalPages
		start = totalPages - max + 1
	}

	pages := make([]int, 0, max)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}
