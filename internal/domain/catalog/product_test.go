package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProduct() Product {
	return Product{
		ID:       "1",
		Name:     "Midnight Silk Wrap Dress",
		Price:    decimal.RequireFromString("15750.00"),
		Category: "Dresses",
		Sizes:    []string{"XS", "S", "M", "L"},
		Stock:    12,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validProduct().Validate())
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Product)
		field  string
	}{
		{"empty name", func(p *Product) { p.Name = "" }, "name"},
		{"negative price", func(p *Product) { p.Price = decimal.NewFromInt(-1) }, "price"},
		{"unknown category", func(p *Product) { p.Category = "Shoes" }, "category"},
		{"no sizes", func(p *Product) { p.Sizes = nil }, "sizes"},
		{"negative stock", func(p *Product) { p.Stock = -1 }, "stock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(&p)

			err := p.Validate()
			require.Error(t, err)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestHasSize(t *testing.T) {
	p := validProduct()
	assert.True(t, p.HasSize("M"))
	assert.False(t, p.HasSize("XXL"))
	assert.False(t, p.HasSize("m"), "size labels are case-sensitive")
}
