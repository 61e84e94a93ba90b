// Package seed provides the embedded boutique catalog loaded at startup.
package seed

import (
	_ "embed"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/maison-storefront/internal/domain/catalog"
)

// products contains the initial catalog as shipped with the demo.
//
//go:embed products.json
var products []byte

type productJSON struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Sizes       []string        `json:"sizes"`
	Stock       int             `json:"stock"`
}

// Products decodes the embedded catalog.
func Products() ([]catalog.Product, error) {
	var raw []productJSON
	if err := json.Unmarshal(products, &raw); err != nil {
		return nil, errors.Wrap(err, "parse embedded products")
	}

	out := make([]catalog.Product, len(raw))
	for i, p := range raw {
		out[i] = catalog.Product{
			ID:          p.ID,
			Name:        p.Name,
			Price:       p.Price,
			Category:    p.Category,
			Description: p.Description,
			Image:       p.Image,
			Sizes:       p.Sizes,
			Stock:       p.Stock,
		}
	}
	return out, nil
}
