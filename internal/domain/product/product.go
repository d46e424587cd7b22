package product

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when a requested product does not exist.
	ErrNotFound = errors.New("product not found")
	// ErrEmptyName is returned by New when the product has no name.
	ErrEmptyName = errors.New("product name required")
	// ErrNegativePrice is returned by New for a price below zero.
	ErrNegativePrice = errors.New("price cannot be negative")
	// ErrNegativeStock is returned by New for a stock below zero.
	ErrNegativeStock = errors.New("stock cannot be negative")
)

// Product represents a catalog item available for purchase.
//
// Carts hold *Product handles and decrement Stock in place, so a single
// Product value is shared by every cart that references it.
type Product struct {
	Name  string
	Price decimal.Decimal
	Stock int
}

// New creates a Product after validating its attributes.
func New(name string, price decimal.Decimal, stock int) (*Product, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if price.IsNegative() {
		return nil, errors.Wrapf(ErrNegativePrice, "product %s", name)
	}
	if stock < 0 {
		return nil, errors.Wrapf(ErrNegativeStock, "product %s", name)
	}
	return &Product{Name: name, Price: price, Stock: stock}, nil
}

// Repository defines read operations for the product catalog.
type Repository interface {
	List(ctx context.Context) ([]*Product, error)
	GetByName(ctx context.Context, name string) (*Product, error)
}
