package checkout

import (
	"context"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"storefront-orders/internal/domain"
	"storefront-orders/internal/i18n"
)

// CartProvider exposes the in-progress cart owned by the cart collaborator.
type CartProvider interface {
	Items() []domain.CartItem
	Total() float64
	Clear()
}

// DraftStore is the local fallback used when remote delivery is unavailable.
type DraftStore interface {
	AppendOrder(ctx context.Context, order domain.OrderDraft) error
}

// Presenter receives the single terminal outcome of each submission attempt.
// OrderAccepted implies the landing-view navigation; OrderFailed implies the
// submission control is interactive again.
type Presenter interface {
	OrderAccepted(message string)
	OrderFailed(message string)
}

type endpointResolver interface {
	Resolve(ctx context.Context) (string, bool)
}

type orderSubmitter interface {
	Submit(ctx context.Context, url string, draft domain.OrderDraft) bool
}

// Coordinator owns the submission workflow: validation, draft construction,
// endpoint resolution, remote delivery and the local fallback. At most one
// attempt is in flight per coordinator; each accepted attempt surfaces
// exactly one terminal outcome.
type Coordinator struct {
	Resolver  endpointResolver
	Submitter orderSubmitter
	Cart      CartProvider
	Drafts    DraftStore
	Presenter Presenter
	Messages  i18n.Lookup
	Logger    *log.Logger
	// Now overrides the draft timestamp source in tests.
	Now func() time.Time

	mu       sync.Mutex
	inFlight bool
}

// Submit runs one user-initiated submission attempt. It returns false when a
// previous attempt is still in flight and the event was dropped; in every
// other case it returns true after reporting a terminal outcome.
func (c *Coordinator) Submit(ctx context.Context, in FormInput) bool {
	if !c.begin() {
		c.logger().Printf("coordinator: submission already in flight, ignoring")
		return false
	}
	defer c.end()

	items := c.Cart.Items()
	if key, ok := validate(in, items); !ok {
		c.Presenter.OrderFailed(i18n.Resolve(c.Messages, key))
		return true
	}

	draft := domain.NewOrderDraft(
		strings.TrimSpace(in.FullName),
		strings.TrimSpace(in.Phone),
		strings.TrimSpace(in.City),
		strings.TrimSpace(in.Notes),
		items,
		c.Cart.Total(),
		c.now(),
	)

	if c.deliver(ctx, draft) {
		c.succeed()
		return true
	}

	if err := c.Drafts.AppendOrder(ctx, draft); err != nil {
		c.logger().Printf("coordinator: local fallback error=%v", err)
		c.Presenter.OrderFailed(i18n.Resolve(c.Messages, i18n.KeyOrderFailed))
		return true
	}
	c.logger().Printf("coordinator: order saved locally")
	c.succeed()
	return true
}

// deliver resolves the endpoint and attempts remote delivery. Any unexpected
// failure collapses to false so the fallback path still runs and the
// in-flight guard still clears.
func (c *Coordinator) deliver(ctx context.Context, draft domain.OrderDraft) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger().Printf("coordinator: delivery panic=%v", r)
			ok = false
		}
	}()

	url, found := c.Resolver.Resolve(ctx)
	if !found {
		return false
	}
	return c.Submitter.Submit(ctx, url, draft)
}

func (c *Coordinator) succeed() {
	c.Cart.Clear()
	c.Presenter.OrderAccepted(i18n.Resolve(c.Messages, i18n.KeyOrderAccepted))
}

func (c *Coordinator) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return false
	}
	c.inFlight = true
	return true
}

func (c *Coordinator) end() {
	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()
}

// InFlight reports whether an attempt is currently active.
func (c *Coordinator) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

func (c *Coordinator) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Coordinator) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.New(io.Discard, "", 0)
}
