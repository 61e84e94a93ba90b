// Package memstore provides the in-memory repositories backing the
// storefront. All state lives for the lifetime of the process; nothing is
// persisted.
package memstore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/xenking/maison-storefront/internal/domain/catalog"
)

var _ catalog.Store = (*CatalogStore)(nil)

// CatalogStore implements catalog.Store over a mutex-guarded slice,
// preserving insertion order for listings.
type CatalogStore struct {
	mu       sync.RWMutex
	products []catalog.Product
}

// NewCatalogStore returns a store seeded with the given products. Seed
// products are validated like any other write.
func NewCatalogStore(seed ...catalog.Product) (*CatalogStore, error) {
	s := &CatalogStore{}
	for _, p := range seed {
		if _, err := s.Add(context.Background(), p); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// List returns all products in insertion order.
func (s *CatalogStore) List(_ context.Context) ([]catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]catalog.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

// Get returns the product with the given id.
func (s *CatalogStore) Get(_ context.Context, id string) (*catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.find(id); i >= 0 {
		p := s.products[i]
		return &p, nil
	}
	return nil, catalog.ErrNotFound
}

// Add validates and stores a new product. When the id is empty one is
// generated; a supplied id must be unique across the store.
func (s *CatalogStore) Add(_ context.Context, p catalog.Product) (*catalog.Product, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.find(p.ID) >= 0 {
		return nil, catalog.ErrDuplicateID
	}
	s.products = append(s.products, p)
	return &p, nil
}

// Update replaces the stored record matching p.ID. Updating an unknown id
// is a silent no-op; validation still applies to the incoming record.
func (s *CatalogStore) Update(_ context.Context, p catalog.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.find(p.ID); i >= 0 {
		s.products[i] = p
	}
	return nil
}

// Remove deletes the product with the given id; absent ids are a no-op.
func (s *CatalogStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.find(id); i >= 0 {
		s.products = append(s.products[:i], s.products[i+1:]...)
	}
	return nil
}

// find returns the index of the product with the given id, or -1.
// Caller holds s.mu.
func (s *CatalogStore) find(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}
