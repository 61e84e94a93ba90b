// Package cart implements the single-session shopping bag: a set of
// (product, size) lines with quantities and derived pricing totals.
package cart

import (
	"sync"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/maison-storefront/internal/domain/catalog"
)

// ErrUnknownSize is returned when a size label is not offered for the product.
var ErrUnknownSize = errors.New("size not offered for product")

// Line is one (product, size) selection. Name, Price, and Image are a
// snapshot taken when the line was first added; later catalog edits do not
// reprice lines already in the bag.
type Line struct {
	ProductID string
	Size      string
	Name      string
	Price     decimal.Decimal
	Image     string
	Quantity  int
}

// Total is the line's snapshot price multiplied by its quantity.
func (l Line) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Engine holds the cart lines for the session. All methods are safe for
// concurrent use; the HTTP layer introduces concurrent callers even though
// the logical session is single.
type Engine struct {
	mu    sync.Mutex
	lines []Line
}

// New returns an empty cart engine.
func New() *Engine {
	return &Engine{}
}

// Add puts one unit of (product, size) into the cart. If a line with the
// same (id, size) pair already exists its quantity is incremented; a line
// is never duplicated. The size must be one of the product's offered
// labels. Stock is deliberately not checked or decremented.
func (e *Engine) Add(p catalog.Product, size string) error {
	if !p.HasSize(size) {
		return errors.Wrapf(ErrUnknownSize, "product %s size %q", p.ID, size)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if i := e.find(p.ID, size); i >= 0 {
		e.lines[i].Quantity++
		return nil
	}

	e.lines = append(e.lines, Line{
		ProductID: p.ID,
		Size:      size,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Quantity:  1,
	})
	return nil
}

// Remove deletes the (id, size) line. Removing an absent line is a no-op.
func (e *Engine) Remove(id, size string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if i := e.find(id, size); i >= 0 {
		e.lines = append(e.lines[:i], e.lines[i+1:]...)
	}
}

// SetQuantity sets the quantity of the (id, size) line, clamped to a
// minimum of 1. Setting quantity on an absent line is a no-op: it neither
// creates the line nor reports an error.
func (e *Engine) SetQuantity(id, size string, q int) {
	if q < 1 {
		q = 1
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if i := e.find(id, size); i >= 0 {
		e.lines[i].Quantity = q
	}
}

// Lines returns a snapshot copy of the current cart lines.
func (e *Engine) Lines() []Line {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Line, len(e.lines))
	copy(out, e.lines)
	return out
}

// Count returns the total number of units across all lines.
func (e *Engine) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := 0
	for _, l := range e.lines {
		n += l.Quantity
	}
	return n
}

// Clear removes every line from the cart.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lines = nil
}

// find returns the index of the (id, size) line, or -1. Caller holds e.mu.
func (e *Engine) find(id, size string) int {
	for i := range e.lines {
		if e.lines[i].ProductID == id && e.lines[i].Size == size {
			return i
		}
	}
	return -1
}
