// internal/catalog/query.go
package catalog

import (
	"sort"
	"strings"
)

// recomputeView derives the filtered and sorted view from the full
// record set. It is a pure function of its inputs.
func recomputeView(all []Product, q QuerySpec) []Product {
	term := strings.ToLower(q.Search)
	view := make([]Product, 0, len(all))
	for _, p := range all {
		if term == "" || strings.Contains(strings.ToLower(p.Title), term) {
			view = append(view, p)
		}
	}
	if q.SortField != SortNone {
		// Unstable on purpose: ties carry no ordering promise, and
		// desc reverses the comparator's sense rather than the output.
		sort.Slice(view, lessFunc(view, q))
	}
	return view
}

func lessFunc(view []Product, q QuerySpec) func(i, j int) bool {
	switch q.SortField {
	case SortPrice:
		if q.SortDir == Desc {
			return func(i, j int) bool { return view[i].Price > view[j].Price }
		}
		return func(i, j int) bool { return view[i].Price < view[j].Price }
	default: // SortTitle
		if q.SortDir == Desc {
			return func(i, j int) bool {
				return strings.ToLower(view[i].Title) > strings.ToLower(view[j].Title)
			}
		}
		return func(i, j int) bool {
			return strings.ToLower(view[i].Title) < strings.ToLower(view[j].Title)
		}
	}
}
