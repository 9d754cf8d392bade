// internal/catalog/window_test.go
package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func loadN(t require.TestingT, n int) *Store {
	records := make([]Product, n)
	for i := range records {
		records[i] = Product{ID: int64(i + 1), Title: "p", Price: 1}
	}
	s := NewStore()
	require.NoError(t, s.Load(records))
	return s
}

func TestPaginationCoversTheView(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 100).Draw(t, "n")
		per := rapid.IntRange(1, 20).Draw(t, "per")

		s := loadN(t, n)
		s.SetPerPage(per)

		meta := s.Meta()
		wantPages := 0
		if n > 0 {
			wantPages = (n + per - 1) / per
		}
		require.Equal(t, wantPages, meta.TotalPages)
		require.Equal(t, n, meta.TotalItems)

		// Walking every page revisits each record exactly once, and the
		// last page holds the remainder.
		seen := 0
		for page := 1; page <= meta.TotalPages; page++ {
			s.GoTo(page)
			got := len(s.Page())
			if page < meta.TotalPages {
				require.Equal(t, per, got)
			} else {
				require.Equal(t, n-per*(meta.TotalPages-1), got)
			}
			seen += got
		}
		require.Equal(t, n, seen)
	})
}

func TestGoToClampsInsteadOfFailing(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 100).Draw(t, "n")
		per := rapid.IntRange(1, 20).Draw(t, "per")
		target := rapid.IntRange(-5, 120).Draw(t, "target")

		s := loadN(t, n)
		s.SetPerPage(per)
		s.GoTo(target)

		meta := s.Meta()
		require.GreaterOrEqual(t, meta.Page, 1)
		require.LessOrEqual(t, meta.Page, meta.TotalPages)
		require.NotEmpty(t, s.Page())
	})
}

func TestTwelveRecordsAcrossTwoPages(t *testing.T) {
	s := loadN(t, 12)

	assert.Len(t, s.Page(), 10)
	meta := s.Meta()
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, 2, meta.TotalPages)
	assert.Equal(t, 12, meta.TotalItems)
	assert.True(t, meta.HasNext())
	assert.False(t, meta.HasPrev())

	s.Next()
	assert.Len(t, s.Page(), 2)
	meta = s.Meta()
	assert.Equal(t, 2, meta.Page)
	assert.False(t, meta.HasNext(), "next control must disable on the last page")

	// Advancing past the end is a no-op, not an error.
	s.Next()
	assert.Equal(t, 2, s.Meta().Page)
}

func TestEmptyViewHidesPagination(t *testing.T) {
	s := loadN(t, 3)
	s.SetSearch("zzz-no-such-title")

	assert.Empty(t, s.View())
	assert.Empty(t, s.Page())
	meta := s.Meta()
	assert.Equal(t, 0, meta.TotalPages)
	assert.Equal(t, 0, meta.TotalItems)
	assert.Nil(t, s.PageNumbers())
}

func TestPageNumbersWindow(t *testing.T) {
	cases := []struct {
		name string
		n    int
		page int
		want []int
	}{
		{"all pages fit", 30, 1, []int{1, 2, 3}},
		{"exactly five", 50, 3, []int{1, 2, 3, 4, 5}},
		{"left edge widens", 120, 1, []int{1, 2, 3, 4, 5, Ellipsis, 12}},
		{"second page", 120, 2, []int{1, 2, 3, 4, 5, Ellipsis, 12}},
		{"middle keeps both ends", 120, 6, []int{1, Ellipsis, 4, 5, 6, 7, 8, Ellipsis, 12}},
		{"right edge widens", 120, 12, []int{1, Ellipsis, 8, 9, 10, 11, 12}},
		{"near right edge", 120, 11, []int{1, Ellipsis, 8, 9, 10, 11, 12}},
		{"no gap when adjacent", 70, 4, []int{1, 2, 3, 4, 5, 6, 7}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := loadN(t, tc.n)
			s.GoTo(tc.page)
			assert.Equal(t, tc.want, s.PageNumbers())
		})
	}
}
