// Package checkout implements the two-step checkout flow: shipping details,
// then payment selection, then an explicit completion that records the order
// and empties the cart.
package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/xenking/maison-storefront/internal/domain/cart"
)

// Step identifies the current checkout step.
type Step string

const (
	StepShipping Step = "shipping-details"
	StepPayment  Step = "payment-selection"
)

// Method is the selected payment method. No method actually charges
// anything; completion is asserted by the user.
type Method string

const (
	MethodCard    Method = "card"
	MethodUPI     Method = "upi"
	MethodInstant Method = "instant"
)

// Sentinel errors for flow-order violations.
var (
	ErrNotAtPayment  = errors.New("checkout is not at the payment step")
	ErrNotAtShipping = errors.New("checkout is not at the shipping step")
	ErrUnknownMethod = errors.New("unknown payment method")
)

// ShippingDetails holds the fields collected at the first step. Presence
// validation is a form-layer concern; the orchestrator stores what it gets.
type ShippingDetails struct {
	FirstName string
	LastName  string
	Email     string
	Address   string
}

// Order is the record written when checkout completes. Orders live in
// memory only and carry a status field, though nothing here ever advances
// it past Pending.
type Order struct {
	ID       string
	Lines    []cart.Line
	Totals   cart.Totals
	Method   Method
	Customer string
	Status   string
	PlacedAt time.Time
}

// Repository records completed orders.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	List(ctx context.Context) ([]Order, error)
}

// Orchestrator drives the linear shipping -> payment -> complete sequence.
// There is no retry or rollback: once Complete is invoked the order is
// recorded and the cart is cleared, whatever the chosen method.
type Orchestrator struct {
	cart    *cart.Engine
	pricing cart.Pricing
	orders  Repository
	now     func() time.Time

	mu       sync.Mutex
	step     Step
	shipping ShippingDetails
	method   Method
}

// New returns an Orchestrator positioned at the shipping step with the
// card method preselected.
func New(c *cart.Engine, pricing cart.Pricing, orders Repository) *Orchestrator {
	return &Orchestrator{
		cart:    c,
		pricing: pricing,
		orders:  orders,
		now:     time.Now,
		step:    StepShipping,
		method:  MethodCard,
	}
}

// State is a snapshot of checkout progress.
type State struct {
	Step     Step
	Shipping ShippingDetails
	Method   Method
}

// State returns the current checkout snapshot.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return State{Step: o.step, Shipping: o.shipping, Method: o.method}
}

// Start discards any prior progress and re-enters the shipping step.
// Navigating away and back begins a fresh checkout.
func (o *Orchestrator) Start() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.reset()
}

// SubmitShipping stores the shipping details and advances to the payment
// step. It fails if checkout has already advanced.
func (o *Orchestrator) SubmitShipping(d ShippingDetails) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.step != StepShipping {
		return ErrNotAtShipping
	}
	o.shipping = d
	o.step = StepPayment
	return nil
}

// Back returns from payment selection to the shipping step, keeping the
// details already entered.
func (o *Orchestrator) Back() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.step != StepPayment {
		return ErrNotAtPayment
	}
	o.step = StepShipping
	return nil
}

// SelectMethod records the payment method choice.
func (o *Orchestrator) SelectMethod(m Method) error {
	switch m {
	case MethodCard, MethodUPI, MethodInstant:
	default:
		return errors.Wrapf(ErrUnknownMethod, "method %q", m)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.step != StepPayment {
		return ErrNotAtPayment
	}
	o.method = m
	return nil
}

// Complete finalizes the checkout: it snapshots the cart into an order,
// records it, clears the cart, and resets the flow for the next purchase.
// "Payment" always succeeds; there is no transaction to fail. Product
// stock is intentionally left untouched.
func (o *Orchestrator) Complete(ctx context.Context) (*Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.step != StepPayment {
		return nil, ErrNotAtPayment
	}

	ord := &Order{
		ID:       uuid.New().String(),
		Lines:    o.cart.Lines(),
		Totals:   o.cart.Totals(o.pricing),
		Method:   o.method,
		Customer: customerName(o.shipping),
		Status:   "Pending",
		PlacedAt: o.now(),
	}
	if err := o.orders.Create(ctx, ord); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	o.cart.Clear()
	o.reset()
	return ord, nil
}

// reset re-arms the flow. Caller holds o.mu.
func (o *Orchestrator) reset() {
	o.step = StepShipping
	o.shipping = ShippingDetails{}
	o.method = MethodCard
}

func customerName(d ShippingDetails) string {
	switch {
	case d.FirstName != "" && d.LastName != "":
		return d.FirstName + " " + d.LastName
	case d.FirstName != "":
		return d.FirstName
	default:
		return d.LastName
	}
}
