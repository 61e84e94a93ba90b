package checkout

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/maison-storefront/internal/domain/cart"
	"github.com/xenking/maison-storefront/internal/domain/catalog"
)

// --- Mock implementations ---

type mockOrderRepo struct {
	orders []Order
	err    error
}

func (m *mockOrderRepo) Create(_ context.Context, o *Order) error {
	if m.err != nil {
		return m.err
	}
	m.orders = append(m.orders, *o)
	return nil
}

func (m *mockOrderRepo) List(_ context.Context) ([]Order, error) {
	return m.orders, nil
}

// --- Helpers ---

func newFilledCart(t *testing.T) *cart.Engine {
	t.Helper()
	e := cart.New()
	p := catalog.Product{
		ID:       "p1",
		Name:     "Midnight Silk Wrap Dress",
		Price:    decimal.RequireFromString("15750.00"),
		Category: "Dresses",
		Sizes:    []string{"S", "M"},
		Stock:    12,
	}
	require.NoError(t, e.Add(p, "M"))
	return e
}

func newOrchestrator(t *testing.T, e *cart.Engine) (*Orchestrator, *mockOrderRepo) {
	t.Helper()
	repo := &mockOrderRepo{}
	return New(e, cart.DefaultPricing(), repo), repo
}

func toPayment(t *testing.T, o *Orchestrator) {
	t.Helper()
	require.NoError(t, o.SubmitShipping(ShippingDetails{
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     "asha@example.com",
		Address:   "12 Marine Drive",
	}))
}

// --- Tests ---

func TestInitialState(t *testing.T) {
	o, _ := newOrchestrator(t, newFilledCart(t))

	s := o.State()
	assert.Equal(t, StepShipping, s.Step)
	assert.Equal(t, MethodCard, s.Method)
}

func TestSubmitShipping_Advances(t *testing.T) {
	o, _ := newOrchestrator(t, newFilledCart(t))

	toPayment(t, o)

	s := o.State()
	assert.Equal(t, StepPayment, s.Step)
	assert.Equal(t, "Asha", s.Shipping.FirstName)
}

func TestSubmitShipping_TwiceFails(t *testing.T) {
	o, _ := newOrchestrator(t, newFilledCart(t))
	toPayment(t, o)

	err := o.SubmitShipping(ShippingDetails{FirstName: "Other"})
	require.ErrorIs(t, err, ErrNotAtShipping)
}

func TestBack_KeepsShippingDetails(t *testing.T) {
	o, _ := newOrchestrator(t, newFilledCart(t))
	toPayment(t, o)

	require.NoError(t, o.Back())

	s := o.State()
	assert.Equal(t, StepShipping, s.Step)
	assert.Equal(t, "Asha", s.Shipping.FirstName)
}

func TestBack_FromShippingFails(t *testing.T) {
	o, _ := newOrchestrator(t, newFilledCart(t))

	require.ErrorIs(t, o.Back(), ErrNotAtPayment)
}

func TestSelectMethod(t *testing.T) {
	o, _ := newOrchestrator(t, newFilledCart(t))
	toPayment(t, o)

	require.NoError(t, o.SelectMethod(MethodUPI))
	assert.Equal(t, MethodUPI, o.State().Method)
}

func TestSelectMethod_Unknown(t *testing.T) {
	o, _ := newOrchestrator(t, newFilledCart(t))
	toPayment(t, o)

	err := o.SelectMethod(Method("crypto"))
	require.ErrorIs(t, err, ErrUnknownMethod)
}

func TestSelectMethod_BeforePaymentStep(t *testing.T) {
	o, _ := newOrchestrator(t, newFilledCart(t))

	require.ErrorIs(t, o.SelectMethod(MethodUPI), ErrNotAtPayment)
}

func TestComplete_RecordsOrderAndClearsCart(t *testing.T) {
	e := newFilledCart(t)
	o, repo := newOrchestrator(t, e)
	toPayment(t, o)

	ord, err := o.Complete(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, ord.ID)
	assert.Equal(t, "Asha Rao", ord.Customer)
	assert.Equal(t, "Pending", ord.Status)
	require.Len(t, ord.Lines, 1)
	assert.True(t, decimal.RequireFromString("18250.00").Equal(ord.Totals.Total))

	require.Len(t, repo.orders, 1)
	assert.Empty(t, e.Lines(), "completion must clear the cart")
}

func TestComplete_ClearsCartForEveryMethod(t *testing.T) {
	for _, m := range []Method{MethodCard, MethodUPI, MethodInstant} {
		t.Run(string(m), func(t *testing.T) {
			e := newFilledCart(t)
			o, _ := newOrchestrator(t, e)
			toPayment(t, o)
			require.NoError(t, o.SelectMethod(m))

			_, err := o.Complete(context.Background())
			require.NoError(t, err)
			assert.Empty(t, e.Lines())
		})
	}
}

func TestComplete_BeforePaymentStepFails(t *testing.T) {
	e := newFilledCart(t)
	o, _ := newOrchestrator(t, e)

	_, err := o.Complete(context.Background())
	require.ErrorIs(t, err, ErrNotAtPayment)
	assert.Len(t, e.Lines(), 1, "failed completion must not clear the cart")
}

func TestComplete_ResetsFlow(t *testing.T) {
	e := newFilledCart(t)
	o, _ := newOrchestrator(t, e)
	toPayment(t, o)
	require.NoError(t, o.SelectMethod(MethodInstant))

	_, err := o.Complete(context.Background())
	require.NoError(t, err)

	s := o.State()
	assert.Equal(t, StepShipping, s.Step)
	assert.Equal(t, MethodCard, s.Method)
	assert.Empty(t, s.Shipping.FirstName)
}

func TestComplete_EmptyCartTotalIsFlatFee(t *testing.T) {
	e := cart.New()
	o, _ := newOrchestrator(t, e)
	toPayment(t, o)

	ord, err := o.Complete(context.Background())
	require.NoError(t, err)

	assert.True(t, ord.Totals.Subtotal.IsZero())
	assert.True(t, decimal.RequireFromString("2500").Equal(ord.Totals.Total))
}

func TestComplete_DoesNotTouchStock(t *testing.T) {
	// Purchases never decrement stock; the cart carries a snapshot and the
	// catalog product is untouched.
	p := catalog.Product{
		ID:       "p1",
		Name:     "Shadow Denim Jacket",
		Price:    decimal.RequireFromString("7400.00"),
		Category: "Outerwear",
		Sizes:    []string{"M"},
		Stock:    5,
	}
	e := cart.New()
	require.NoError(t, e.Add(p, "M"))

	o, _ := newOrchestrator(t, e)
	toPayment(t, o)
	_, err := o.Complete(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, p.Stock)
}

func TestComplete_RepositoryError(t *testing.T) {
	e := newFilledCart(t)
	repo := &mockOrderRepo{err: errors.New("log full")}
	o := New(e, cart.DefaultPricing(), repo)
	toPayment(t, o)

	_, err := o.Complete(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create order")
	assert.Len(t, e.Lines(), 1, "cart must survive a failed order write")
}
