package memory

import (
	"context"
	"sync"

	"github.com/go-faster/errors"

	"github.com/xenking/oolio-kart-cart/internal/domain/order"
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository.
type OrderRepository struct {
	mu   sync.RWMutex
	byID map[string]*order.Order
}

// NewOrderRepository returns an empty OrderRepository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{byID: make(map[string]*order.Order)}
}

// Create stores o. Reusing an ID is an error.
func (r *OrderRepository) Create(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[o.ID]; ok {
		return errors.Errorf("order %q already exists", o.ID)
	}
	r.byID[o.ID] = o
	return nil
}

// GetByID returns the stored order, or order.ErrNotFound.
func (r *OrderRepository) GetByID(_ context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	return o, nil
}
