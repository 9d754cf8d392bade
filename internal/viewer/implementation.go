// internal/viewer/implementation.go
package viewer

import (
	"context"
	"io"
	"time"

	"prodview/internal/catalog"
	"prodview/internal/export"
	"prodview/internal/loader"
	"prodview/internal/remote"
)

// service owns a goroutine that serializes every state transition, so
// the store needs no locks: commands go in through a channel and run
// one at a time. Network calls happen on the caller's goroutine between
// the begin and resolve events, keeping the loop responsive while a
// request is in flight.
type service struct {
	source string
	store  *catalog.Store
	ctrl   *remote.Controller

	cmds chan func()
	quit chan struct{}
}

// NewService builds the viewer service around a bulk load source and
// the remote products API, and starts its event loop.
func NewService(source string, api remote.API) Service {
	store := catalog.NewStore()
	s := &service{
		source: source,
		store:  store,
		ctrl:   remote.NewController(api, store),
		cmds:   make(chan func()),
		quit:   make(chan struct{}),
	}
	go s.loop()
	return s
}

func (s *service) loop() {
	for {
		select {
		case fn := <-s.cmds:
			fn()
		case <-s.quit:
			return
		}
	}
}

// run executes fn on the event loop and waits for it.
func (s *service) run(fn func()) {
	done := make(chan struct{})
	select {
	case s.cmds <- func() { fn(); close(done) }:
		<-done
	case <-s.quit:
	}
}

func (s *service) Close() { close(s.quit) }

func (s *service) Load(ctx context.Context) error {
	records, err := loader.Fetch(ctx, s.source)
	if err != nil {
		return err
	}
	var loadErr error
	s.run(func() { loadErr = s.store.Load(records) })
	return loadErr
}

func (s *service) Snapshot() Snapshot {
	var snap Snapshot
	s.run(func() { snap = s.snapshotLocked() })
	return snap
}

// snapshotLocked must run on the event loop.
func (s *service) snapshotLocked() Snapshot {
	q := s.store.Query()
	return Snapshot{
		Records:       s.store.Page(),
		Meta:          s.store.Meta(),
		PageNumbers:   s.store.PageNumbers(),
		Search:        q.Search,
		SortField:     q.SortField.String(),
		SortDir:       q.SortDir.String(),
		PerPage:       s.store.PageState().PerPage,
		UpdatePending: s.ctrl.Pending(remote.ActionUpdate),
		CreatePending: s.ctrl.Pending(remote.ActionCreate),
	}
}

func (s *service) Search(term string) { s.run(func() { s.store.SetSearch(term) }) }

func (s *service) SortBy(f catalog.SortField) { s.run(func() { s.store.SortBy(f) }) }

func (s *service) SetPerPage(n int) { s.run(func() { s.store.SetPerPage(n) }) }

func (s *service) GoTo(page int) { s.run(func() { s.store.GoTo(page) }) }

func (s *service) Next() { s.run(func() { s.store.Next() }) }

func (s *service) Prev() { s.run(func() { s.store.Prev() }) }

func (s *service) SaveEdit(ctx context.Context, d remote.EditDraft) (remote.Outcome, error) {
	return s.perform(ctx, func() (*remote.Call, error) { return s.ctrl.BeginUpdate(d) })
}

func (s *service) CreateProduct(ctx context.Context, d remote.CreateDraft) (remote.Outcome, error) {
	return s.perform(ctx, func() (*remote.Call, error) { return s.ctrl.BeginCreate(d) })
}

// perform runs the begin/do/resolve cycle of one remote action: begin
// and resolve are loop events, the call itself runs here so other
// events interleave freely while the network is waiting.
func (s *service) perform(ctx context.Context, begin func() (*remote.Call, error)) (remote.Outcome, error) {
	var call *remote.Call
	var beginErr error
	s.run(func() { call, beginErr = begin() })
	if beginErr != nil {
		return remote.Outcome{}, beginErr
	}

	comp := call.Do(ctx)

	var out remote.Outcome
	s.run(func() { out = s.ctrl.Resolve(comp) })
	return out, nil
}

func (s *service) ExportPage(w io.Writer) (string, error) {
	var page []catalog.Product
	s.run(func() { page = s.store.Page() })
	if err := export.Write(w, page); err != nil {
		return "", err
	}
	return export.Filename(time.Now()), nil
}
