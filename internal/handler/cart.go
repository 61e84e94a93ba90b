package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/maison-storefront/internal/domain/cart"
)

// GetCart returns the cart lines, derived totals, and total unit count.
func (h *Handler) GetCart(w http.ResponseWriter, _ *http.Request) {
	h.writeCart(w, http.StatusOK)
}

// AddCartItem puts one unit of (productId, size) into the cart, snapshotting
// the product's current name, price, and image on first add.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var productID, size string
	err := decodeBody(r, func(d *jx.Decoder, key string) error {
		switch key {
		case "productId":
			v, err := d.Str()
			productID = v
			return err
		case "size":
			v, err := d.Str()
			size = v
			return err
		default:
			return d.Skip()
		}
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.catalog.Get(r.Context(), productID)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}

	if err := h.cart.Add(*p, size); err != nil {
		if errors.Is(err, cart.ErrUnknownSize) {
			writeError(w, http.StatusUnprocessableEntity, "size not offered for product")
			return
		}
		writeError(w, http.StatusInternalServerError, "add to cart")
		return
	}

	h.writeCart(w, http.StatusOK)
}

// SetCartQuantity sets the quantity on an existing line. Values below one
// clamp to one; an absent line is left untouched.
func (h *Handler) SetCartQuantity(w http.ResponseWriter, r *http.Request) {
	var quantity int
	err := decodeBody(r, func(d *jx.Decoder, key string) error {
		if key != "quantity" {
			return d.Skip()
		}
		v, err := d.Int()
		quantity = v
		return err
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.cart.SetQuantity(chi.URLParam(r, "id"), chi.URLParam(r, "size"), quantity)
	h.writeCart(w, http.StatusOK)
}

// RemoveCartItem drops the (id, size) line regardless of its quantity.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	h.cart.Remove(chi.URLParam(r, "id"), chi.URLParam(r, "size"))
	h.writeCart(w, http.StatusOK)
}

// writeCart renders the whole cart. Every mutation answers with the fresh
// state so the client never needs a follow-up read.
func (h *Handler) writeCart(w http.ResponseWriter, status int) {
	lines := h.cart.Lines()
	totals := h.cart.Totals(h.pricing)

	writeObj(w, status, func(e *jx.Encoder) {
		e.Field("lines", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, l := range lines {
					encodeLine(e, l)
				}
			})
		})
		e.Field("totals", func(e *jx.Encoder) { encodeTotals(e, totals) })
		e.Field("count", func(e *jx.Encoder) { e.Int(h.cart.Count()) })
	})
}
