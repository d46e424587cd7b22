package order

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/oolio-kart-cart/internal/domain/cart"
	"github.com/xenking/oolio-kart-cart/internal/domain/coupon"
	"github.com/xenking/oolio-kart-cart/internal/domain/product"
)

// --- Mock implementations ---

type mockCouponValidator struct {
	discount  *coupon.Discount
	err       error
	redeemErr error
	gotCode   string
	gotCart   *cart.Cart
	redeemed  []string
}

func (m *mockCouponValidator) Validate(_ context.Context, code string, c *cart.Cart) (*coupon.Discount, error) {
	m.gotCode = code
	m.gotCart = c
	return m.discount, m.err
}

func (m *mockCouponValidator) Redeem(_ context.Context, code string) error {
	m.redeemed = append(m.redeemed, code)
	return m.redeemErr
}

type mockOrderRepo struct {
	lastOrder *Order
	err       error
}

func (m *mockOrderRepo) Create(_ context.Context, o *Order) error {
	m.lastOrder = o
	return m.err
}

func (m *mockOrderRepo) GetByID(_ context.Context, id string) (*Order, error) {
	if m.lastOrder == nil || m.lastOrder.ID != id {
		return nil, ErrNotFound
	}
	return m.lastOrder, nil
}

// --- Helpers ---

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func newTestCart(t *testing.T) *cart.Cart {
	t.Helper()

	c := cart.New()
	require.NoError(t, c.Add(&product.Product{Name: "Laptop", Price: d("3800"), Stock: 50}, 1))
	require.NoError(t, c.Add(&product.Product{Name: "Tablet", Price: d("800"), Stock: 50}, 3))
	require.NoError(t, c.Add(&product.Product{Name: "Audifonos", Price: d("200"), Stock: 80}, 2))
	return c
}

// --- Tests ---

func TestPlaceOrder_EmptyCart(t *testing.T) {
	svc := NewService(&mockCouponValidator{}, &mockOrderRepo{})

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{Cart: cart.New()})
	require.ErrorIs(t, err, ErrEmptyCart)

	_, err = svc.PlaceOrder(context.Background(), PlaceOrderRequest{})
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrder_NoCoupon(t *testing.T) {
	cv := &mockCouponValidator{}
	repo := &mockOrderRepo{}
	svc := NewService(cv, repo)
	c := newTestCart(t)

	o, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{Cart: c})

	require.NoError(t, err)
	assert.NotEmpty(t, o.ID)
	assert.Same(t, o, repo.lastOrder)
	assert.Empty(t, cv.gotCode, "validator must not be called without a code")
	assert.True(t, d("6600").Equal(o.Subtotal))
	assert.True(t, decimal.Zero.Equal(o.Discounts))
	assert.True(t, d("6600").Equal(o.Total))
	require.Len(t, o.Lines, 3)
	assert.Equal(t, "Tablet", o.Lines[1].Name)
	assert.Equal(t, 3, o.Lines[1].Quantity)
	// Checkout does not consume the cart.
	assert.Equal(t, 3, c.Len())
}

func TestPlaceOrder_WithCoupon(t *testing.T) {
	cv := &mockCouponValidator{
		discount: &coupon.Discount{Amount: d("660"), Description: "10% off"},
	}
	svc := NewService(cv, &mockOrderRepo{})
	c := newTestCart(t)

	o, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		Cart:       c,
		CouponCode: "SAVE10",
	})

	require.NoError(t, err)
	assert.Equal(t, "SAVE10", cv.gotCode)
	assert.Same(t, c, cv.gotCart)
	assert.Equal(t, []string{"SAVE10"}, cv.redeemed)
	assert.True(t, d("5940").Equal(o.Total))
	assert.True(t, d("660").Equal(o.Discounts))
	assert.Equal(t, "SAVE10", o.CouponCode)
}

func TestPlaceOrder_InvalidCoupon(t *testing.T) {
	repo := &mockOrderRepo{}
	cv := &mockCouponValidator{err: coupon.ErrInvalidCoupon}
	svc := NewService(cv, repo)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		Cart:       newTestCart(t),
		CouponCode: "BOGUS",
	})

	require.ErrorIs(t, err, coupon.ErrInvalidCoupon)
	assert.Nil(t, repo.lastOrder)
	assert.Empty(t, cv.redeemed)
}

func TestPlaceOrder_DiscountFlooredAtZero(t *testing.T) {
	cv := &mockCouponValidator{
		discount: &coupon.Discount{Amount: d("99999"), Description: "huge discount"},
	}
	svc := NewService(cv, &mockOrderRepo{})

	o, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		Cart:       newTestCart(t),
		CouponCode: "HUGE",
	})

	require.NoError(t, err)
	assert.True(t, decimal.Zero.Equal(o.Total))
	assert.True(t, d("99999").Equal(o.Discounts))
}

func TestPlaceOrder_OrderCreateError(t *testing.T) {
	cv := &mockCouponValidator{discount: &coupon.Discount{Amount: d("660")}}
	svc := NewService(cv, &mockOrderRepo{err: errors.New("write failed")})

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		Cart:       newTestCart(t),
		CouponCode: "SAVE10",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "create order")
	assert.Equal(t, "SAVE10", cv.gotCode)
	// The coupon use is not consumed when the order is not stored.
	assert.Empty(t, cv.redeemed)
}

func TestPlaceOrder_RedeemError(t *testing.T) {
	cv := &mockCouponValidator{
		discount:  &coupon.Discount{Amount: d("660")},
		redeemErr: coupon.ErrCouponUsageLimitReached,
	}
	repo := &mockOrderRepo{}
	svc := NewService(cv, repo)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		Cart:       newTestCart(t),
		CouponCode: "SAVE10",
	})

	require.ErrorIs(t, err, coupon.ErrCouponUsageLimitReached)
	require.NotNil(t, repo.lastOrder)
	assert.Contains(t, err.Error(), "redeem coupon for order "+repo.lastOrder.ID)
}

func TestPlaceOrder_NoCouponSkipsRedeem(t *testing.T) {
	cv := &mockCouponValidator{}
	svc := NewService(cv, &mockOrderRepo{})

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{Cart: newTestCart(t)})

	require.NoError(t, err)
	assert.Empty(t, cv.redeemed)
}

func TestOrder_MarshalJSON(t *testing.T) {
	o := &Order{
		ID: "ord-1",
		Lines: []Line{
			{Name: "Laptop", Price: d("3800"), Quantity: 1},
			{Name: "Cable", Price: d("9.99"), Quantity: 3},
		},
		Subtotal:   d("3829.97"),
		Discounts:  d("9"),
		Total:      d("3820.97"),
		CouponCode: "OVER9000",
		CreatedAt:  time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
	}

	data, err := o.MarshalJSON()

	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "ord-1",
		"lines": [
			{"name": "Laptop", "price": "3800.00", "quantity": 1, "total": "3800.00"},
			{"name": "Cable", "price": "9.99", "quantity": 3, "total": "29.97"}
		],
		"subtotal": "3829.97",
		"discounts": "9.00",
		"total": "3820.97",
		"coupon_code": "OVER9000",
		"created_at": "2025-06-15T12:00:00Z"
	}`, string(data))
}

func TestOrder_MarshalJSONWithoutCoupon(t *testing.T) {
	o := &Order{ID: "ord-2", CreatedAt: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}

	data, err := o.MarshalJSON()

	require.NoError(t, err)
	assert.NotContains(t, string(data), "coupon_code")
	assert.Contains(t, string(data), `"lines":[]`)
}
