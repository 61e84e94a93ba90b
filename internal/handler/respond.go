package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/maison-storefront/internal/domain/cart"
	"github.com/xenking/maison-storefront/internal/domain/catalog"
	"github.com/xenking/maison-storefront/internal/domain/checkout"
)

// maxBodyBytes bounds request bodies; every payload here is a small form.
const maxBodyBytes = 1 << 20

// writeObj encodes a single JSON object built by fn and writes it with the
// given status.
func writeObj(w http.ResponseWriter, status int, fn func(e *jx.Encoder)) {
	var e jx.Encoder
	e.Obj(fn)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// writeError writes the canonical error body {code, message}.
func writeError(w http.ResponseWriter, status int, message string) {
	writeObj(w, status, func(e *jx.Encoder) {
		e.Field("code", func(e *jx.Encoder) { e.Int(status) })
		e.Field("message", func(e *jx.Encoder) { e.Str(message) })
	})
}

// decodeBody reads the request body and walks its top-level object, calling
// fn for each key. Unknown keys must be skipped by fn.
func decodeBody(r *http.Request, fn func(d *jx.Decoder, key string) error) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return errors.Wrap(err, "read body")
	}
	d := jx.DecodeBytes(body)
	if err := d.Obj(fn); err != nil {
		return errors.Wrap(err, "decode body")
	}
	return nil
}

func encodeProduct(e *jx.Encoder, p catalog.Product) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(p.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(p.Name) })
		e.Field("price", func(e *jx.Encoder) { e.Float64(p.Price.InexactFloat64()) })
		e.Field("category", func(e *jx.Encoder) { e.Str(p.Category) })
		e.Field("description", func(e *jx.Encoder) { e.Str(p.Description) })
		e.Field("image", func(e *jx.Encoder) { e.Str(p.Image) })
		e.Field("sizes", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, s := range p.Sizes {
					e.Str(s)
				}
			})
		})
		e.Field("stock", func(e *jx.Encoder) { e.Int(p.Stock) })
	})
}

func encodeLine(e *jx.Encoder, l cart.Line) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("productId", func(e *jx.Encoder) { e.Str(l.ProductID) })
		e.Field("size", func(e *jx.Encoder) { e.Str(l.Size) })
		e.Field("name", func(e *jx.Encoder) { e.Str(l.Name) })
		e.Field("price", func(e *jx.Encoder) { e.Float64(l.Price.InexactFloat64()) })
		e.Field("image", func(e *jx.Encoder) { e.Str(l.Image) })
		e.Field("quantity", func(e *jx.Encoder) { e.Int(l.Quantity) })
		e.Field("lineTotal", func(e *jx.Encoder) { e.Float64(l.Total().InexactFloat64()) })
	})
}

func encodeTotals(e *jx.Encoder, t cart.Totals) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("subtotal", func(e *jx.Encoder) { e.Float64(t.Subtotal.InexactFloat64()) })
		e.Field("shipping", func(e *jx.Encoder) { e.Float64(t.Shipping.InexactFloat64()) })
		e.Field("total", func(e *jx.Encoder) { e.Float64(t.Total.InexactFloat64()) })
	})
}

func encodeOrder(e *jx.Encoder, o checkout.Order) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(o.ID) })
		e.Field("status", func(e *jx.Encoder) { e.Str(o.Status) })
		e.Field("method", func(e *jx.Encoder) { e.Str(string(o.Method)) })
		e.Field("placedAt", func(e *jx.Encoder) { e.Str(o.PlacedAt.Format(time.RFC3339)) })
		e.Field("customer", func(e *jx.Encoder) { e.Str(o.Customer) })
		e.Field("lines", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, l := range o.Lines {
					encodeLine(e, l)
				}
			})
		})
		e.Field("totals", func(e *jx.Encoder) { encodeTotals(e, o.Totals) })
	})
}
