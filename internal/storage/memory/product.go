// Package memory provides in-process implementations of the domain
// repositories. Values are shared by pointer: a *product.Product handed out
// by ProductRepository is the same instance carts decrement stock on.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/xenking/oolio-kart-cart/internal/domain/product"
)

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository implements product.Repository over a name-keyed map.
type ProductRepository struct {
	mu     sync.RWMutex
	byName map[string]*product.Product
	order  []string
}

// NewProductRepository returns a repository seeded with products. A later
// product replaces an earlier one with the same name.
func NewProductRepository(products ...*product.Product) *ProductRepository {
	r := &ProductRepository{byName: make(map[string]*product.Product, len(products))}
	for _, p := range products {
		r.Put(p)
	}
	return r
}

// Put inserts or replaces a product, keeping the position of a replaced one.
func (r *ProductRepository) Put(p *product.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[p.Name]; !ok {
		r.order = append(r.order, p.Name)
	}
	r.byName[p.Name] = p
}

// List returns all products in insertion order.
func (r *ProductRepository) List(_ context.Context) ([]*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*product.Product, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out, nil
}

// GetByName returns the shared product handle, or product.ErrNotFound.
func (r *ProductRepository) GetByName(_ context.Context, name string) (*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byName[name]
	if !ok {
		return nil, product.ErrNotFound
	}
	return p, nil
}

// Names returns the product names in insertion order.
func (r *ProductRepository) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.order)
}
