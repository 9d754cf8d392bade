// internal/catalog/window.go
package catalog

// Ellipsis is the sentinel PageNumbers emits for a gap between the
// contiguous window and the first or last page.
const Ellipsis = -1

// PageMeta describes the pagination state the render layer shows next
// to the table.
type PageMeta struct {
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
	TotalItems int `json:"total_items"`
}

// HasPrev reports whether a previous page exists.
func (m PageMeta) HasPrev() bool { return m.Page > 1 }

// HasNext reports whether a next page exists.
func (m PageMeta) HasNext() bool { return m.Page < m.TotalPages }

// Meta computes the pagination metadata for the current view.
func (s *Store) Meta() PageMeta {
	return PageMeta{
		Page:       s.page.Page,
		TotalPages: totalPages(len(s.view), s.page.PerPage),
		TotalItems: len(s.view),
	}
}

func totalPages(n, per int) int {
	if n == 0 || per <= 0 {
		return 0
	}
	return (n + per - 1) / per
}

// Page returns the visible slice of the view. Overrun clips to an empty
// slice rather than failing; the store's clamping normally prevents it.
func (s *Store) Page() []Product {
	start := (s.page.Page - 1) * s.page.PerPage
	if start < 0 || start >= len(s.view) {
		return nil
	}
	end := start + s.page.PerPage
	if end > len(s.view) {
		end = len(s.view)
	}
	return append([]Product(nil), s.view[start:end]...)
}

// GoTo moves the cursor to page n, clamped to [1, TotalPages].
// Out-of-range targets are a no-op at the nearest bound, not an error.
func (s *Store) GoTo(n int) {
	total := totalPages(len(s.view), s.page.PerPage)
	if total == 0 {
		s.page.Page = 1
		return
	}
	if n < 1 {
		n = 1
	}
	if n > total {
		n = total
	}
	s.page.Page = n
}

// Next advances one page when one exists.
func (s *Store) Next() { s.GoTo(s.page.Page + 1) }

// Prev steps back one page when one exists.
func (s *Store) Prev() { s.GoTo(s.page.Page - 1) }

// PageNumbers returns the page buttons the render layer shows: up to 5
// contiguous numbers centered on the current page, widened at the
// boundary so exactly 5 appear whenever TotalPages >= 5, with the first
// and last page always present and Ellipsis marking a gap.
func (s *Store) PageNumbers() []int {
	total := totalPages(len(s.view), s.page.PerPage)
	if total == 0 {
		return nil
	}
	cur := s.page.Page

	start := cur - 2
	if start < 1 {
		start = 1
	}
	end := cur + 2
	if end > total {
		end = total
	}
	if end-start < 4 {
		if start == 1 {
			end = start + 4
			if end > total {
				end = total
			}
		} else {
			start = end - 4
			if start < 1 {
				start = 1
			}
		}
	}

	var nums []int
	if start > 1 {
		nums = append(nums, 1)
		if start > 2 {
			nums = append(nums, Ellipsis)
		}
	}
	for i := start; i <= end; i++ {
		nums = append(nums, i)
	}
	if end < total {
		if end < total-1 {
			nums = append(nums, Ellipsis)
		}
		nums = append(nums, total)
	}
	return nums
}
