package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/maison-storefront/internal/domain/checkout"
)

// CheckoutState reports the current step, shipping details, method, and
// totals. When UPI is selected the payment link and QR image URL for the
// current total ride along.
func (h *Handler) CheckoutState(w http.ResponseWriter, _ *http.Request) {
	h.writeCheckout(w)
}

// StartCheckout discards prior progress and re-enters the shipping step.
func (h *Handler) StartCheckout(w http.ResponseWriter, _ *http.Request) {
	h.flow.Start()
	h.writeCheckout(w)
}

// SubmitShipping stores the shipping form and advances to payment.
func (h *Handler) SubmitShipping(w http.ResponseWriter, r *http.Request) {
	var d checkout.ShippingDetails
	err := decodeBody(r, func(dec *jx.Decoder, key string) error {
		switch key {
		case "firstName":
			v, err := dec.Str()
			d.FirstName = v
			return err
		case "lastName":
			v, err := dec.Str()
			d.LastName = v
			return err
		case "email":
			v, err := dec.Str()
			d.Email = v
			return err
		case "address":
			v, err := dec.Str()
			d.Address = v
			return err
		default:
			return dec.Skip()
		}
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.flow.SubmitShipping(d); err != nil {
		h.writeCheckoutError(w, err)
		return
	}
	h.writeCheckout(w)
}

// CheckoutBack returns from payment to the shipping step, keeping the
// entered details.
func (h *Handler) CheckoutBack(w http.ResponseWriter, _ *http.Request) {
	if err := h.flow.Back(); err != nil {
		h.writeCheckoutError(w, err)
		return
	}
	h.writeCheckout(w)
}

// SelectMethod switches the payment method at the payment step.
func (h *Handler) SelectMethod(w http.ResponseWriter, r *http.Request) {
	var method string
	err := decodeBody(r, func(d *jx.Decoder, key string) error {
		if key != "method" {
			return d.Skip()
		}
		v, err := d.Str()
		method = v
		return err
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.flow.SelectMethod(checkout.Method(method)); err != nil {
		h.writeCheckoutError(w, err)
		return
	}
	h.writeCheckout(w)
}

// CompleteCheckout records the order, clears the cart, and resets the flow.
// No payment is verified for any method.
func (h *Handler) CompleteCheckout(w http.ResponseWriter, r *http.Request) {
	order, err := h.flow.Complete(r.Context())
	if err != nil {
		h.writeCheckoutError(w, err)
		return
	}

	var e jx.Encoder
	encodeOrder(&e, *order)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(e.Bytes())
}

// ListOrders returns every recorded order, oldest first.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list orders")
		return
	}

	var e jx.Encoder
	e.Arr(func(e *jx.Encoder) {
		for _, o := range orders {
			encodeOrder(e, o)
		}
	})
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(e.Bytes())
}

func (h *Handler) writeCheckout(w http.ResponseWriter) {
	state := h.flow.State()
	totals := h.cart.Totals(h.pricing)

	writeObj(w, http.StatusOK, func(e *jx.Encoder) {
		e.Field("step", func(e *jx.Encoder) { e.Str(string(state.Step)) })
		e.Field("method", func(e *jx.Encoder) { e.Str(string(state.Method)) })
		e.Field("shipping", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("firstName", func(e *jx.Encoder) { e.Str(state.Shipping.FirstName) })
				e.Field("lastName", func(e *jx.Encoder) { e.Str(state.Shipping.LastName) })
				e.Field("email", func(e *jx.Encoder) { e.Str(state.Shipping.Email) })
				e.Field("address", func(e *jx.Encoder) { e.Str(state.Shipping.Address) })
			})
		})
		e.Field("totals", func(e *jx.Encoder) { encodeTotals(e, totals) })
		if state.Method == checkout.MethodUPI {
			e.Field("payment", func(e *jx.Encoder) {
				e.Obj(func(e *jx.Encoder) {
					e.Field("link", func(e *jx.Encoder) { e.Str(h.payment.Link(totals.Total)) })
					e.Field("qrImageUrl", func(e *jx.Encoder) { e.Str(h.payment.QRImageURL(totals.Total)) })
				})
			})
		}
	})
}

// writeCheckoutError maps flow errors onto HTTP statuses.
func (h *Handler) writeCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrNotAtShipping), errors.Is(err, checkout.ErrNotAtPayment):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, checkout.ErrUnknownMethod):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "checkout failure")
	}
}
