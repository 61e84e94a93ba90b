package seed

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducts(t *testing.T) {
	products, err := Products()
	require.NoError(t, err)
	require.Len(t, products, 12)

	seen := make(map[string]bool, len(products))
	for _, p := range products {
		assert.False(t, seen[p.ID], "duplicate seed id %s", p.ID)
		seen[p.ID] = true
		assert.NoError(t, p.Validate(), "seed product %s", p.ID)
	}

	first := products[0]
	assert.Equal(t, "Midnight Silk Wrap Dress", first.Name)
	assert.True(t, first.Price.Equal(decimal.RequireFromString("15750.00")))
	assert.Equal(t, []string{"XS", "S", "M", "L"}, first.Sizes)
}
