package catalog

import (
	"context"
	"slices"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Categories is the fixed set of product categories the boutique sells.
// "All" is a presentation-layer filter value, not a category.
var Categories = []string{"Dresses", "Knitwear", "Outerwear", "Bottoms", "Skirts"}

// Sentinel errors for catalog operations.
var (
	ErrNotFound    = errors.New("product not found")
	ErrDuplicateID = errors.New("product id already exists")
)

// ValidationError indicates a product failed field validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid product " + e.Field + ": " + e.Reason
}

// Product represents a catalog item available for purchase.
type Product struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Category    string
	Description string
	Image       string
	Sizes       []string
	Stock       int
}

// HasSize reports whether the given size label is offered for this product.
func (p Product) HasSize(size string) bool {
	return slices.Contains(p.Sizes, size)
}

// Validate checks the field constraints the store enforces on every write:
// a name, a non-negative price, a known category, at least one size label,
// and a non-negative stock count.
func (p Product) Validate() error {
	if p.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if p.Price.IsNegative() {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if !slices.Contains(Categories, p.Category) {
		return &ValidationError{Field: "category", Reason: "unknown category " + p.Category}
	}
	if len(p.Sizes) == 0 {
		return &ValidationError{Field: "sizes", Reason: "at least one size is required"}
	}
	if p.Stock < 0 {
		return &ValidationError{Field: "stock", Reason: "must not be negative"}
	}
	return nil
}

// Store defines the catalog operations. List returns products in insertion
// order. Add generates an ID when none is supplied and rejects duplicates.
// Update and Remove are silent no-ops when no product matches the ID.
type Store interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Add(ctx context.Context, p Product) (*Product, error)
	Update(ctx context.Context, p Product) error
	Remove(ctx context.Context, id string) error
}
