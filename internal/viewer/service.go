// internal/viewer/service.go
package viewer

import (
	"context"
	"io"

	"prodview/internal/catalog"
	"prodview/internal/remote"
)

// Snapshot is one frame of render input: the visible page plus the
// metadata around it. Render surfaces consume it read-only.
type Snapshot struct {
	Records     []catalog.Product `json:"records"`
	Meta        catalog.PageMeta  `json:"meta"`
	PageNumbers []int             `json:"page_numbers"`
	Search      string            `json:"search"`
	SortField   string            `json:"sort_field"`
	SortDir     string            `json:"sort_dir"`
	PerPage     int               `json:"per_page"`

	UpdatePending bool `json:"update_pending"`
	CreatePending bool `json:"create_pending"`
}

// Service is the single owner of the catalog state. Every operation is
// an event on its internal loop; render surfaces never touch the store.
type Service interface {
	// Load fetches the bulk source and replaces the catalog. Fatal to
	// the initial render on failure.
	Load(ctx context.Context) error

	Snapshot() Snapshot

	Search(term string)
	SortBy(f catalog.SortField)
	SetPerPage(n int)
	GoTo(page int)
	Next()
	Prev()

	// SaveEdit and CreateProduct block until the remote call resolves.
	// Validation failures and single-flight rejections return before
	// any network activity; a remote failure comes back in the Outcome.
	SaveEdit(ctx context.Context, d remote.EditDraft) (remote.Outcome, error)
	CreateProduct(ctx context.Context, d remote.CreateDraft) (remote.Outcome, error)

	// ExportPage writes the visible page as CSV and returns the
	// timestamped filename to serve it under.
	ExportPage(w io.Writer) (string, error)

	Close()
}
