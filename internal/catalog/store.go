// internal/catalog/store.go
package catalog

import "fmt"

// DefaultPerPage matches the viewer's initial page size.
const DefaultPerPage = 10

// Store owns the full record set and the derived view. The view is
// never mutated independently: it is recomputed from the record set and
// the active QuerySpec, except for the positional patch ApplyUpdate
// performs. Store is not safe for concurrent use; a single owner must
// serialize access.
type Store struct {
	all   []Product
	view  []Product
	query QuerySpec
	page  PageState
}

// NewStore returns an empty store at page 1.
func NewStore() *Store {
	return &Store{page: PageState{Page: 1, PerPage: DefaultPerPage}}
}

// Load replaces the full record set, resets the QuerySpec to an empty
// search with no sort, and returns to page 1. Load is all-or-nothing:
// a record missing its id or title rejects the whole batch.
func (s *Store) Load(records []Product) error {
	for i, p := range records {
		if p.ID == 0 {
			return &LoadError{Reason: fmt.Sprintf("record %d has no id", i)}
		}
		if p.Title == "" {
			return &LoadError{Reason: fmt.Sprintf("record %d (id %d) has no title", i, p.ID)}
		}
	}
	s.all = append([]Product(nil), records...)
	s.query = QuerySpec{}
	s.page.Page = 1
	s.recompute()
	return nil
}

// ApplyUpdate replaces the record matching p.ID in the full set and,
// when present, patches the view in place at its current position. The
// view is NOT re-sorted: an edit must not make the row jump.
func (s *Store) ApplyUpdate(p Product) error {
	idx := -1
	for i := range s.all {
		if s.all[i].ID == p.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("apply update for id %d: %w", p.ID, ErrNotFound)
	}
	s.all[idx] = p
	for i := range s.view {
		if s.view[i].ID == p.ID {
			s.view[i] = p
			break
		}
	}
	return nil
}

// ApplyCreate prepends the confirmed record and rebuilds the view so the
// new record participates in the current filter and sort.
func (s *Store) ApplyCreate(p Product) {
	s.all = append([]Product{p}, s.all...)
	s.recompute()
}

// SetSearch installs a new search term and rebuilds the view.
func (s *Store) SetSearch(term string) {
	s.query.Search = term
	s.recompute()
}

// SortBy activates a sort column. Selecting the active column flips the
// direction; selecting a new one resets it to ascending.
func (s *Store) SortBy(f SortField) {
	if f == SortNone {
		return
	}
	if s.query.SortField == f {
		if s.query.SortDir == Asc {
			s.query.SortDir = Desc
		} else {
			s.query.SortDir = Asc
		}
	} else {
		s.query.SortField = f
		s.query.SortDir = Asc
	}
	s.recompute()
}

// SetPerPage changes the page size and returns to page 1. Non-positive
// sizes are ignored.
func (s *Store) SetPerPage(n int) {
	if n <= 0 {
		return
	}
	s.page.PerPage = n
	s.page.Page = 1
}

// recompute rebuilds the view and resets the page cursor: a filter or
// sort change invalidates the current page position.
func (s *Store) recompute() {
	s.view = recomputeView(s.all, s.query)
	s.page.Page = 1
}

// Query returns the active QuerySpec.
func (s *Store) Query() QuerySpec { return s.query }

// PageState returns the current page cursor.
func (s *Store) PageState() PageState { return s.page }

// All returns a copy of the full record set in insertion order.
func (s *Store) All() []Product {
	return append([]Product(nil), s.all...)
}

// View returns a copy of the filtered, sorted view.
func (s *Store) View() []Product {
	return append([]Product(nil), s.view...)
}

// ViewLen reports the number of records in the view.
func (s *Store) ViewLen() int { return len(s.view) }

// Find returns the record with the given id from the full set.
func (s *Store) Find(id int64) (Product, bool) {
	for i := range s.all {
		if s.all[i].ID == id {
			return s.all[i], true
		}
	}
	return Product{}, false
}
