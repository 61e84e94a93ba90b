package memstore

import (
	"context"
	"sync"

	"github.com/xenking/maison-storefront/internal/domain/checkout"
)

var _ checkout.Repository = (*OrderLog)(nil)

// OrderLog records completed orders in memory, newest last.
type OrderLog struct {
	mu     sync.RWMutex
	orders []checkout.Order
}

// NewOrderLog returns an empty order log.
func NewOrderLog() *OrderLog {
	return &OrderLog{}
}

// Create appends the order to the log.
func (l *OrderLog) Create(_ context.Context, o *checkout.Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.orders = append(l.orders, *o)
	return nil
}

// List returns a snapshot of all recorded orders.
func (l *OrderLog) List(_ context.Context) ([]checkout.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]checkout.Order, len(l.orders))
	copy(out, l.orders)
	return out, nil
}
