package coupon

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/oolio-kart-cart/internal/domain/cart"
)

// DiscountType enumerates the supported coupon discount strategies.
type DiscountType string

const (
	// DiscountPercentage takes a percentage off the subtotal.
	DiscountPercentage DiscountType = "percentage"
	// DiscountFixed takes a fixed amount off, capped at the subtotal.
	DiscountFixed DiscountType = "fixed"
	// DiscountFreeLowest removes the unit price of the cheapest item.
	DiscountFreeLowest DiscountType = "free_lowest"
)

var (
	// ErrInvalidCoupon is returned when a coupon code is unknown.
	ErrInvalidCoupon = errors.New("invalid coupon code")
	// ErrCouponExpired is returned after a coupon's ValidUntil.
	ErrCouponExpired = errors.New("coupon expired")
	// ErrCouponNotYetValid is returned before a coupon's ValidFrom.
	ErrCouponNotYetValid = errors.New("coupon not yet valid")
	// ErrCouponUsageLimitReached is returned when a coupon has exhausted its allowed uses.
	ErrCouponUsageLimitReached = errors.New("coupon usage limit reached")
	// ErrMinItemsNotMet is returned when the cart holds fewer units than MinItems.
	ErrMinItemsNotMet = errors.New("cart below coupon minimum items")
	// ErrMinTotalNotMet is returned when the cart subtotal is below MinTotal.
	ErrMinTotalNotMet = errors.New("cart below coupon minimum total")
	// ErrInvalidRule is returned for a rule whose value cannot be applied.
	ErrInvalidRule = errors.New("invalid coupon rule")
)

// Rule defines a coupon's discount behaviour and eligibility constraints.
//
// MinItems counts units, not distinct products. MinTotal is compared with
// the subtotal inclusively, like Cart.ApplyConditionalDiscount. A zero
// MaxDiscount or MaxUses means no limit.
type Rule struct {
	Code         string
	DiscountType DiscountType
	Value        decimal.Decimal
	MinItems     int
	MinTotal     decimal.Decimal
	Description  string
	ValidFrom    *time.Time
	ValidUntil   *time.Time
	MaxUses      int
	Uses         int
	MaxDiscount  decimal.Decimal
}

// Discount holds the computed discount amount and a human-readable description.
type Discount struct {
	Amount      decimal.Decimal
	Description string
}

// Item is a cart line as seen by discount calculation.
type Item struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// ItemsFromCart snapshots the lines of c in cart order.
func ItemsFromCart(c *cart.Cart) []Item {
	lines := c.Items()
	items := make([]Item, len(lines))
	for i, line := range lines {
		items[i] = Item{
			Name:     line.Product.Name,
			Price:    line.Product.Price,
			Quantity: line.Quantity,
		}
	}
	return items
}

// Repository provides lookup and mutation of coupon rules.
type Repository interface {
	FindByCode(ctx context.Context, code string) (*Rule, error)
	IncrementUses(ctx context.Context, code string) error
}
