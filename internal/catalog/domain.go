// internal/catalog/domain.go
package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports an update whose target id is absent from the
	// store. Callers log it; it is never shown to the user.
	ErrNotFound = errors.New("product not found in store")
)

// Category is the remote service's category reference.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Product is one catalog record. Identity is ID, assigned by the remote
// service; every other field is mutable.
type Product struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Images      []string `json:"images"`
}

// CategoryName returns the category label or "N/A" when the reference
// is empty.
func (p Product) CategoryName() string {
	if p.Category.Name == "" {
		return "N/A"
	}
	return p.Category.Name
}

// FirstImage returns the first image URL, or the empty string.
func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// SortField selects the column an active sort compares on.
type SortField int

const (
	SortNone SortField = iota
	SortTitle
	SortPrice
)

func (f SortField) String() string {
	switch f {
	case SortTitle:
		return "title"
	case SortPrice:
		return "price"
	default:
		return "none"
	}
}

// ParseSortField maps the wire/UI name of a sort column.
func ParseSortField(s string) (SortField, error) {
	switch s {
	case "title":
		return SortTitle, nil
	case "price":
		return SortPrice, nil
	}
	return SortNone, fmt.Errorf("unknown sort field %q", s)
}

// SortDir is the comparator sense of an active sort.
type SortDir int

const (
	Asc SortDir = iota
	Desc
)

func (d SortDir) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// QuerySpec is the active search term plus sort field and direction.
// The view is always a pure function of the full record set and this.
type QuerySpec struct {
	Search    string
	SortField SortField
	SortDir   SortDir
}

// PageState is the current page cursor over the view.
type PageState struct {
	Page    int
	PerPage int
}

// LoadError reports a rejected bulk load. The initial render treats it
// as fatal: the table stays hidden and the user must reload.
type LoadError struct {
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load products: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("load products: %s", e.Reason)
}

func (e *LoadError) Unwrap() error { return e.Err }
