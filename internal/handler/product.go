package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/maison-storefront/internal/domain/catalog"
)

// ListProducts returns the full catalog in insertion order.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list products")
		return
	}

	var e jx.Encoder
	e.Arr(func(e *jx.Encoder) {
		for _, p := range products {
			encodeProduct(e, p)
		}
	})
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(e.Bytes())
}

// GetProduct returns a single product by ID.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}

	var e jx.Encoder
	encodeProduct(&e, *p)
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(e.Bytes())
}

// ProductAdvice returns styling advice for the product. The advisory call
// never fails; upstream trouble yields a fixed fallback string.
func (h *Handler) ProductAdvice(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}

	advice := h.stylist.Advice(r.Context(), p.Name, p.Category)
	writeObj(w, http.StatusOK, func(e *jx.Encoder) {
		e.Field("advice", func(e *jx.Encoder) { e.Str(advice) })
	})
}

// AddProduct creates a new catalog entry. An omitted ID is generated.
func (h *Handler) AddProduct(w http.ResponseWriter, r *http.Request) {
	p, err := decodeProduct(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.catalog.Add(r.Context(), p)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}

	var e jx.Encoder
	encodeProduct(&e, *created)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(e.Bytes())
}

// UpdateProduct replaces the stored product. The path ID wins over any ID
// carried in the body. Updating an unknown ID is a silent no-op.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	p, err := decodeProduct(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p.ID = chi.URLParam(r, "id")

	if err := h.catalog.Update(r.Context(), p); err != nil {
		h.writeCatalogError(w, err)
		return
	}

	var e jx.Encoder
	encodeProduct(&e, p)
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(e.Bytes())
}

// RemoveProduct deletes a product. Removing an unknown ID is a no-op; lines
// already in the cart keep their snapshot.
func (h *Handler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeCatalogError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeCatalogError maps catalog errors onto HTTP statuses.
func (h *Handler) writeCatalogError(w http.ResponseWriter, err error) {
	var vErr *catalog.ValidationError
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, catalog.ErrDuplicateID):
		writeError(w, http.StatusConflict, "product id already exists")
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, vErr.Error())
	default:
		writeError(w, http.StatusInternalServerError, "catalog failure")
	}
}

// decodeProduct reads a product payload from the request body.
func decodeProduct(r *http.Request) (catalog.Product, error) {
	var p catalog.Product
	err := decodeBody(r, func(d *jx.Decoder, key string) error {
		switch key {
		case "id":
			v, err := d.Str()
			p.ID = v
			return err
		case "name":
			v, err := d.Str()
			p.Name = v
			return err
		case "price":
			v, err := d.Float64()
			if err != nil {
				return err
			}
			p.Price = decimal.NewFromFloat(v)
			return nil
		case "category":
			v, err := d.Str()
			p.Category = v
			return err
		case "description":
			v, err := d.Str()
			p.Description = v
			return err
		case "image":
			v, err := d.Str()
			p.Image = v
			return err
		case "sizes":
			return d.Arr(func(d *jx.Decoder) error {
				v, err := d.Str()
				if err != nil {
					return err
				}
				p.Sizes = append(p.Sizes, v)
				return nil
			})
		case "stock":
			v, err := d.Int()
			p.Stock = v
			return err
		default:
			return d.Skip()
		}
	})
	return p, err
}
