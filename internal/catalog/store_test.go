// internal/catalog/store_test.go
package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []Product {
	return []Product{
		{ID: 1, Title: "Wool Sweater", Price: 40, Category: Category{ID: 1, Name: "Clothes"}},
		{ID: 2, Title: "Steel Mug", Price: 12, Category: Category{ID: 2, Name: "Kitchen"}},
		{ID: 3, Title: "Wool Socks", Price: 8, Category: Category{ID: 1, Name: "Clothes"}},
		{ID: 4, Title: "Desk Lamp", Price: 25, Category: Category{ID: 3, Name: "Office"}},
	}
}

func TestLoadResetsQueryAndPage(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load(sampleRecords()))
	s.SetSearch("wool")
	s.SortBy(SortPrice)
	s.GoTo(1)

	require.NoError(t, s.Load(sampleRecords()))
	assert.Equal(t, QuerySpec{}, s.Query())
	assert.Equal(t, 1, s.PageState().Page)
	assert.Equal(t, []int64{1, 2, 3, 4}, viewIDs(s), "load order survives")
}

func TestLoadIsAllOrNothing(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load(sampleRecords()))

	var loadErr *LoadError
	err := s.Load([]Product{
		{ID: 9, Title: "fine", Price: 1},
		{ID: 10, Price: 1}, // no title
	})
	require.ErrorAs(t, err, &loadErr)

	err = s.Load([]Product{{Title: "no id", Price: 1}})
	require.ErrorAs(t, err, &loadErr)

	// The previous catalog survives a rejected load.
	assert.Len(t, s.All(), 4)
}

func TestApplyUpdatePatchesWithoutResorting(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load(sampleRecords()))
	s.SortBy(SortPrice)
	require.Equal(t, []int64{3, 2, 4, 1}, viewIDs(s))

	// Raising the socks' price would re-rank them under a re-sort; the
	// patched row must keep its position instead.
	updated := Product{ID: 3, Title: "Wool Socks", Price: 99, Category: Category{ID: 1, Name: "Clothes"}}
	require.NoError(t, s.ApplyUpdate(updated))

	assert.Equal(t, []int64{3, 2, 4, 1}, viewIDs(s))
	got, ok := s.Find(3)
	require.True(t, ok)
	assert.Equal(t, 99.0, got.Price)
}

func TestApplyUpdateUnknownIDIsNotFound(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load(sampleRecords()))
	err := s.ApplyUpdate(Product{ID: 77, Title: "ghost", Price: 1})
	require.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, s.All(), 4)
}

func TestApplyCreatePrependsAndReruns(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load(sampleRecords()))
	s.SetSearch("wool")
	require.Equal(t, []int64{1, 3}, viewIDs(s))

	// A created record that matches the active filter lands where the
	// pipeline puts it; one that does not stays out of the view.
	s.ApplyCreate(Product{ID: 99, Title: "Wool Hat", Price: 15})
	assert.Equal(t, int64(99), s.All()[0].ID, "create prepends to the full set")
	assert.Equal(t, []int64{99, 1, 3}, viewIDs(s))
	assert.Equal(t, 1, s.PageState().Page)

	s.ApplyCreate(Product{ID: 100, Title: "Granite Paperweight", Price: 30})
	assert.Equal(t, int64(100), s.All()[0].ID)
	assert.Equal(t, []int64{99, 1, 3}, viewIDs(s), "non-matching create is filtered out")
}

func TestSetPerPageReturnsToFirstPage(t *testing.T) {
	s := loadN(t, 25)
	s.GoTo(3)
	require.Equal(t, 3, s.PageState().Page)

	s.SetPerPage(5)
	assert.Equal(t, 1, s.PageState().Page)
	assert.Equal(t, 5, s.Meta().TotalPages)
	assert.Len(t, s.Page(), 5)

	s.SetPerPage(0)
	assert.Equal(t, 5, s.PageState().PerPage, "non-positive size is ignored")
}

func TestViewIsAlwaysASubsetOfAll(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load(sampleRecords()))
	s.SetSearch("o")
	s.SortBy(SortTitle)

	ids := map[int64]bool{}
	for _, p := range s.All() {
		ids[p.ID] = true
	}
	for _, p := range s.View() {
		assert.True(t, ids[p.ID])
	}
}
