package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested order does not exist.
var ErrNotFound = errors.New("order not found")

// Order is an immutable snapshot of a checked-out cart.
type Order struct {
	ID         string
	Lines      []Line
	Subtotal   decimal.Decimal
	Discounts  decimal.Decimal
	Total      decimal.Decimal
	CouponCode string
	CreatedAt  time.Time
}

// Line is a single cart item frozen at checkout time.
type Line struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// Total returns the line total.
func (l Line) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
}
