package cart

import "github.com/shopspring/decimal"

// Default pricing rule: a flat shipping fee that is waived only when the
// subtotal strictly exceeds the free-shipping threshold. Subtotal exactly at
// the threshold still pays the fee.
var (
	DefaultFreeShippingThreshold = decimal.NewFromInt(40000)
	DefaultShippingFee           = decimal.NewFromInt(2500)
)

// Pricing holds the shipping rule applied when computing totals.
type Pricing struct {
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
}

// DefaultPricing returns the boutique's standard shipping rule.
func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: DefaultFreeShippingThreshold,
		ShippingFee:           DefaultShippingFee,
	}
}

// Totals is the derived pricing of a cart. It is recomputed on every read
// and never cached, so it cannot go stale after a mutation.
type Totals struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// Totals computes subtotal, shipping, and total over the current lines
// using the given pricing rule. The sum is commutative, so line order does
// not affect the result.
func (e *Engine) Totals(pricing Pricing) Totals {
	e.mu.Lock()
	defer e.mu.Unlock()

	subtotal := decimal.Zero
	for _, l := range e.lines {
		subtotal = subtotal.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}

	shipping := pricing.ShippingFee
	if subtotal.GreaterThan(pricing.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}
}
