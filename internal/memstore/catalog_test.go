package memstore

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/maison-storefront/internal/domain/catalog"
	"github.com/xenking/maison-storefront/internal/domain/checkout"
)

func newTestProduct(id, name string) catalog.Product {
	return catalog.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.RequireFromString("9950.00"),
		Category: "Bottoms",
		Image:    "img.jpg",
		Sizes:    []string{"26", "28"},
		Stock:    20,
	}
}

func TestCatalogStore_SeedAndList(t *testing.T) {
	s, err := NewCatalogStore(newTestProduct("p1", "Trousers"), newTestProduct("p2", "Shirt"))
	require.NoError(t, err)

	got, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "p2", got[1].ID)
}

func TestCatalogStore_Get(t *testing.T) {
	s, err := NewCatalogStore(newTestProduct("p1", "Trousers"))
	require.NoError(t, err)

	p, err := s.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Trousers", p.Name)

	_, err = s.Get(context.Background(), "ghost")
	require.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestCatalogStore_AddGeneratesID(t *testing.T) {
	s, err := NewCatalogStore()
	require.NoError(t, err)

	p := newTestProduct("", "Trousers")
	added, err := s.Add(context.Background(), p)
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
}

func TestCatalogStore_AddRejectsDuplicateID(t *testing.T) {
	s, err := NewCatalogStore(newTestProduct("p1", "Trousers"))
	require.NoError(t, err)

	_, err = s.Add(context.Background(), newTestProduct("p1", "Other"))
	require.ErrorIs(t, err, catalog.ErrDuplicateID)
}

func TestCatalogStore_AddValidates(t *testing.T) {
	s, err := NewCatalogStore()
	require.NoError(t, err)

	bad := newTestProduct("p1", "Trousers")
	bad.Price = decimal.RequireFromString("-1")
	_, err = s.Add(context.Background(), bad)

	var vErr *catalog.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "price", vErr.Field)

	noSizes := newTestProduct("p2", "Shirt")
	noSizes.Sizes = nil
	_, err = s.Add(context.Background(), noSizes)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "sizes", vErr.Field)
}

func TestCatalogStore_Update(t *testing.T) {
	s, err := NewCatalogStore(newTestProduct("p1", "Trousers"))
	require.NoError(t, err)

	updated := newTestProduct("p1", "Wide Trousers")
	updated.Stock = 3
	require.NoError(t, s.Update(context.Background(), updated))

	p, err := s.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Wide Trousers", p.Name)
	assert.Equal(t, 3, p.Stock)
}

func TestCatalogStore_UpdateUnknownIDIsNoOp(t *testing.T) {
	s, err := NewCatalogStore(newTestProduct("p1", "Trousers"))
	require.NoError(t, err)

	require.NoError(t, s.Update(context.Background(), newTestProduct("ghost", "Nothing")))

	got, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Trousers", got[0].Name)
}

func TestCatalogStore_Remove(t *testing.T) {
	s, err := NewCatalogStore(newTestProduct("p1", "Trousers"), newTestProduct("p2", "Shirt"))
	require.NoError(t, err)

	require.NoError(t, s.Remove(context.Background(), "p1"))
	require.NoError(t, s.Remove(context.Background(), "ghost"))

	got, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p2", got[0].ID)
}

func TestOrderLog(t *testing.T) {
	l := NewOrderLog()

	require.NoError(t, l.Create(context.Background(), &checkout.Order{ID: "o1", Status: "Pending"}))
	require.NoError(t, l.Create(context.Background(), &checkout.Order{ID: "o2", Status: "Pending"}))

	got, err := l.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "o1", got[0].ID)
	assert.Equal(t, "o2", got[1].ID)
}
