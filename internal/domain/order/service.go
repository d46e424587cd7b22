package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xenking/oolio-kart-cart/internal/domain/cart"
	"github.com/xenking/oolio-kart-cart/internal/domain/coupon"
)

// ErrEmptyCart is returned when checking out a cart with no items.
var ErrEmptyCart = errors.New("cart is empty")

// PlaceOrderRequest holds the input for placing an order.
type PlaceOrderRequest struct {
	Cart       *cart.Cart
	CouponCode string
}

// Service turns carts into persisted orders.
type Service struct {
	coupons coupon.Validator
	orders  Repository
	now     func() time.Time
}

// NewService creates an order Service with the required domain dependencies.
func NewService(coupons coupon.Validator, orders Repository) *Service {
	return &Service{
		coupons: coupons,
		orders:  orders,
		now:     time.Now,
	}
}

// PlaceOrder snapshots the cart, applies the coupon when one is given,
// persists the order and returns it. The coupon use is counted only after
// the order is stored. The cart itself is left untouched.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	if req.Cart == nil || req.Cart.Len() == 0 {
		return nil, ErrEmptyCart
	}

	items := coupon.ItemsFromCart(req.Cart)
	lines := make([]Line, len(items))
	subtotal := decimal.Zero
	for i, item := range items {
		lines[i] = Line{Name: item.Name, Price: item.Price, Quantity: item.Quantity}
		subtotal = subtotal.Add(lines[i].Total())
	}

	discountAmount := decimal.Zero
	if req.CouponCode != "" {
		discount, err := s.coupons.Validate(ctx, req.CouponCode, req.Cart)
		if err != nil {
			return nil, errors.Wrap(err, "validate coupon")
		}
		discountAmount = discount.Amount
	}

	// Total = subtotal - discount, floored at zero and rounded to 2 decimal places.
	total := subtotal.Sub(discountAmount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	o := &Order{
		ID:         uuid.New().String(),
		Lines:      lines,
		Subtotal:   subtotal.Round(2),
		Discounts:  discountAmount.Round(2),
		Total:      total.Round(2),
		CouponCode: req.CouponCode,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}
	if req.CouponCode != "" {
		if err := s.coupons.Redeem(ctx, req.CouponCode); err != nil {
			return nil, errors.Wrapf(err, "redeem coupon for order %s", o.ID)
		}
	}

	return o, nil
}
