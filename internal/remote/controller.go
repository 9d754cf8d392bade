// internal/remote/controller.go
package remote

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"prodview/internal/catalog"
	"prodview/internal/clients"
)

var (
	// ErrBusy rejects a second submit while one is already in flight for
	// the same action. The frontends also disable the control.
	ErrBusy = errors.New("a request for this action is already pending")
)

// Success banner lifetimes. Presentation detail, kept here so both
// render surfaces agree.
const (
	UpdateBannerFor = 3 * time.Second
	CreateBannerFor = 2 * time.Second
)

// Action names a logical user action with its own single-flight slot.
type Action int

const (
	ActionUpdate Action = iota
	ActionCreate
)

func (a Action) String() string {
	if a == ActionCreate {
		return "create"
	}
	return "update"
}

// ValidationError is a local precondition failure, raised before any
// network activity. The form stays open and the message names the field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// API is the slice of the products client the controller needs.
type API interface {
	Update(ctx context.Context, id int64, req clients.UpdateRequest) (*catalog.Product, error)
	Create(ctx context.Context, req clients.CreateRequest) (*catalog.Product, error)
}

// EditDraft is the pending edit of an existing record.
type EditDraft struct {
	TargetID    int64
	Title       string
	Price       float64
	Description string
}

// CreateDraft is the pending contents of the creation form.
type CreateDraft struct {
	Title       string
	Price       float64
	Description string
	CategoryID  int64
	ImageURL    string
}

// Call is a prepared remote request. Run it off the event loop and feed
// the Completion back in through Resolve.
type Call struct {
	Action Action
	Token  uuid.UUID
	run    func(ctx context.Context) (*catalog.Product, error)
}

// Do executes the remote request. It never touches the store; only
// Resolve mutates state, back on the event loop.
func (c *Call) Do(ctx context.Context) Completion {
	p, err := c.run(ctx)
	return Completion{Action: c.Action, Token: c.Token, Product: p, Err: err}
}

// Completion is the result of a finished Call.
type Completion struct {
	Action  Action
	Token   uuid.UUID
	Product *catalog.Product
	Err     error
}

// Outcome is what Resolve tells the render layer.
type Outcome struct {
	Action  Action
	Product *catalog.Product
	Err     error
	// Stale marks a completion whose attempt token was superseded; it
	// was dropped without touching the store.
	Stale bool
}

// Controller enforces the per-action state machine
// Idle -> Pending -> {Success, Failure} -> Idle around the remote API.
// Each attempt carries a token; a completion whose token is no longer
// current is dropped, so a late response never clobbers the store after
// the user moved on. Begin and Resolve must run on the owning event
// loop; only Call.Do runs concurrently, and it is side-effect free.
type Controller struct {
	api     API
	store   *catalog.Store
	pending map[Action]uuid.UUID
}

// NewController wires the controller to its transport and store.
func NewController(api API, store *catalog.Store) *Controller {
	return &Controller{
		api:     api,
		store:   store,
		pending: make(map[Action]uuid.UUID),
	}
}

// Pending reports whether an attempt is in flight for the action, which
// is when the initiating control stays disabled.
func (c *Controller) Pending(a Action) bool {
	_, ok := c.pending[a]
	return ok
}

// BeginUpdate validates the draft and opens the edit-save flight.
// Validation failures and ErrBusy short-circuit before any network
// activity.
func (c *Controller) BeginUpdate(d EditDraft) (*Call, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if err := validPrice(d.Price); err != nil {
		return nil, err
	}
	if c.Pending(ActionUpdate) {
		return nil, ErrBusy
	}

	token := uuid.New()
	c.pending[ActionUpdate] = token
	req := clients.UpdateRequest{
		Title:       title,
		Price:       d.Price,
		Description: strings.TrimSpace(d.Description),
	}
	id := d.TargetID
	return &Call{
		Action: ActionUpdate,
		Token:  token,
		run: func(ctx context.Context) (*catalog.Product, error) {
			return c.api.Update(ctx, id, req)
		},
	}, nil
}

// BeginCreate validates the draft and opens the create-submit flight.
func (c *Controller) BeginCreate(d CreateDraft) (*Call, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if err := validPrice(d.Price); err != nil {
		return nil, err
	}
	if d.CategoryID <= 0 {
		return nil, &ValidationError{Field: "categoryId", Reason: "must be a positive integer"}
	}
	if c.Pending(ActionCreate) {
		return nil, ErrBusy
	}

	images := []string{placeholderImage}
	if url := strings.TrimSpace(d.ImageURL); url != "" {
		images = []string{url}
	}
	token := uuid.New()
	c.pending[ActionCreate] = token
	req := clients.CreateRequest{
		Title:       title,
		Price:       d.Price,
		Description: strings.TrimSpace(d.Description),
		CategoryID:  d.CategoryID,
		Images:      images,
	}
	return &Call{
		Action: ActionCreate,
		Token:  token,
		run: func(ctx context.Context) (*catalog.Product, error) {
			return c.api.Create(ctx, req)
		},
	}, nil
}

const placeholderImage = "https://via.placeholder.com/300?text=No+Image"

// Resolve closes the flight a completion belongs to and reconciles the
// store. A stale token resolves to a dropped Outcome with no mutation.
// On success the server record is canonical: updates patch the view in
// place, creates prepend and re-run the query pipeline. A failed call
// applies nothing; the caller keeps the draft for a manual retry.
func (c *Controller) Resolve(comp Completion) Outcome {
	current, ok := c.pending[comp.Action]
	if !ok || current != comp.Token {
		return Outcome{Action: comp.Action, Stale: true}
	}
	delete(c.pending, comp.Action)

	if comp.Err != nil {
		return Outcome{Action: comp.Action, Err: comp.Err}
	}

	switch comp.Action {
	case ActionCreate:
		c.store.ApplyCreate(*comp.Product)
	default:
		if err := c.store.ApplyUpdate(*comp.Product); err != nil {
			// Store desync: log it, do not surface. The remote accepted
			// the edit; the record is simply absent locally.
			log.Printf("remote: %v", err)
		}
	}
	return Outcome{Action: comp.Action, Product: comp.Product}
}

func validPrice(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return &ValidationError{Field: "price", Reason: "must be a finite number"}
	}
	if p <= 0 {
		return &ValidationError{Field: "price", Reason: "must be positive"}
	}
	return nil
}
