// Package dashboard drives the staff order dashboard: fetch, project, render, transition, re-fetch.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"orderdesk/internal/auth"
	"orderdesk/internal/model"
	"orderdesk/internal/view"

	"github.com/rs/zerolog"
)

// State is the controller's lifecycle position.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateDisplaying
	StateMutating
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateDisplaying:
		return "displaying"
	case StateMutating:
		return "mutating"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrNotDisplaying is returned when an action is requested before the first successful load.
var ErrNotDisplaying = errors.New("dashboard has not loaded any orders yet")

// ErrNotConfirmed is returned when the user declines a return confirmation.
var ErrNotConfirmed = model.ErrConfirmationRequired.WithMessage("return was not confirmed")

// OrderSource is the order service as seen by the dashboard.
type OrderSource interface {
	ListOrders(ctx context.Context) ([]model.Order, error)
	ApplyTransition(ctx context.Context, id string, requested model.Status) (*model.Order, error)
}

// Screen is what a Renderer draws.
type Screen struct {
	View   model.View
	Orders []model.Order
	Counts map[model.View]int
}

// Renderer draws a screen. The layout is up to the implementation.
type Renderer interface {
	Render(screen Screen) error
}

// Confirmer asks the user to confirm a transition that needs it.
type Confirmer interface {
	Confirm(ctx context.Context, order model.Order, to model.Status) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, order model.Order, to model.Status) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, order model.Order, to model.Status) (bool, error) {
	return f(ctx, order, to)
}

// Controller owns the selected view and the last fetched order set.
// Operations are serialised: at most one fetch or mutation runs at a time.
type Controller struct {
	source    OrderSource
	renderer  Renderer
	confirmer Confirmer
	logger    zerolog.Logger

	mu       sync.Mutex
	session  *auth.Session
	state    State
	selected model.View
	orders   []model.Order
}

// NewController creates a controller for an authorised session. The initial view is Pending.
func NewController(
	source OrderSource,
	renderer Renderer,
	confirmer Confirmer,
	session *auth.Session,
	logger zerolog.Logger,
) *Controller {
	return &Controller{
		source:    source,
		renderer:  renderer,
		confirmer: confirmer,
		session:   session,
		state:     StateIdle,
		selected:  model.ViewPending,
		logger:    logger.With().Str("component", "dashboard").Logger(),
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Selected returns the selected view.
func (c *Controller) Selected() model.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// Load fetches every order and renders the selected view.
// On failure the previous snapshot and state are kept.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.authorize(); err != nil {
		return err
	}
	return c.load(ctx)
}

// Select switches the view and re-renders from the cached snapshot without fetching.
func (c *Controller) Select(v model.View) ([]model.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.authorize(); err != nil {
		return nil, err
	}
	if c.state != StateDisplaying {
		return nil, ErrNotDisplaying
	}

	c.selected = v
	return c.render()
}

// Current returns the projection of the selected view.
func (c *Controller) Current() []model.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	return view.Project(c.orders, c.selected)
}

// Counts returns the per-view badge counts of the snapshot.
func (c *Controller) Counts() map[model.View]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return view.Counts(c.orders)
}

// Actions lists the transitions offered for order.
func (c *Controller) Actions(order model.Order) []model.Status {
	next, ok := model.NormalizeStatus(string(order.Status)).Next()
	if !ok {
		return []model.Status{}
	}
	return []model.Status{next}
}

// Transition requests a status change for one order. Returns require a positive
// confirmation before anything is sent. On success the order set is re-fetched and
// re-rendered; on failure the displayed snapshot is left untouched and the error returned.
func (c *Controller) Transition(ctx context.Context, id string, to model.Status) (*model.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.authorize(); err != nil {
		return nil, err
	}
	if c.state != StateDisplaying {
		return nil, ErrNotDisplaying
	}

	if to.RequiresConfirmation() {
		if c.confirmer == nil {
			return nil, model.ErrConfirmationRequired
		}
		confirmed, err := c.confirmer.Confirm(ctx, c.find(id), to)
		if err != nil {
			return nil, fmt.Errorf("confirmation failed: %w", err)
		}
		if !confirmed {
			c.logger.Info().Str("order_id", id).Str("to", string(to)).Msg("transition cancelled by user")
			return nil, ErrNotConfirmed
		}
	}

	c.state = StateMutating
	updated, err := c.source.ApplyTransition(ctx, id, to)
	if err != nil {
		c.state = StateDisplaying
		c.logger.Warn().
			Err(err).
			Str("order_id", id).
			Str("to", string(to)).
			Msg("status update did not take effect")
		return nil, err
	}

	if err := c.load(ctx); err != nil {
		return updated, fmt.Errorf("status updated but reload failed: %w", err)
	}

	return updated, nil
}

// Logout clears the session. Every later call fails with model.ErrUnauthorized.
func (c *Controller) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.session = nil
	c.orders = nil
	c.state = StateIdle
}

func (c *Controller) authorize() error {
	if !c.session.Authorized() {
		return model.ErrUnauthorized
	}
	return nil
}

// load must be called with c.mu held.
func (c *Controller) load(ctx context.Context) error {
	prev := c.state
	c.state = StateLoading

	orders, err := c.source.ListOrders(ctx)
	if err != nil {
		if prev == StateMutating {
			prev = StateDisplaying
		}
		c.state = prev
		c.logger.Error().Err(err).Msg("failed to load orders")
		return err
	}

	c.orders = orders
	c.state = StateDisplaying

	if _, err := c.render(); err != nil {
		return err
	}
	return nil
}

// render must be called with c.mu held.
func (c *Controller) render() ([]model.Order, error) {
	current := view.Project(c.orders, c.selected)
	if c.renderer == nil {
		return current, nil
	}

	screen := Screen{
		View:   c.selected,
		Orders: current,
		Counts: view.Counts(c.orders),
	}
	if err := c.renderer.Render(screen); err != nil {
		return nil, fmt.Errorf("failed to render dashboard: %w", err)
	}
	return current, nil
}

func (c *Controller) find(id string) model.Order {
	for _, o := range c.orders {
		if o.ID == id {
			return o
		}
	}
	return model.Order{ID: id}
}
