package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/oolio-kart-cart/internal/domain/cart"
	"github.com/xenking/oolio-kart-cart/internal/domain/coupon"
	"github.com/xenking/oolio-kart-cart/internal/domain/order"
	"github.com/xenking/oolio-kart-cart/internal/domain/product"
)

func TestProductRepository(t *testing.T) {
	ctx := context.Background()
	laptop := &product.Product{Name: "Laptop", Price: decimal.NewFromInt(3800), Stock: 50}
	tablet := &product.Product{Name: "Tablet", Price: decimal.NewFromInt(800), Stock: 50}
	repo := NewProductRepository(laptop, tablet)

	got, err := repo.GetByName(ctx, "Laptop")
	require.NoError(t, err)
	assert.Same(t, laptop, got)

	_, err = repo.GetByName(ctx, "laptop")
	require.ErrorIs(t, err, product.ErrNotFound)

	// Replacing keeps the original position.
	cheaper := &product.Product{Name: "Laptop", Price: decimal.NewFromInt(3500), Stock: 5}
	repo.Put(cheaper)
	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Same(t, cheaper, list[0])
	assert.Equal(t, []string{"Laptop", "Tablet"}, repo.Names())
}

func TestProductRepository_SharedStock(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(&product.Product{Name: "Tablet", Price: decimal.NewFromInt(800), Stock: 10})

	first, second := cart.New(), cart.New()
	p, err := repo.GetByName(ctx, "Tablet")
	require.NoError(t, err)
	require.NoError(t, first.Add(p, 4))

	p, err = repo.GetByName(ctx, "Tablet")
	require.NoError(t, err)
	require.ErrorIs(t, second.Add(p, 6), cart.ErrInsufficientStock)
	require.NoError(t, second.Add(p, 5))
	assert.Equal(t, 1, p.Stock)
}

func TestCouponRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCouponRepository(coupon.Rule{
		Code:         "HappyHours",
		DiscountType: coupon.DiscountPercentage,
		Value:        decimal.NewFromInt(18),
	})

	rule, err := repo.FindByCode(ctx, "HAPPYHOURS")
	require.NoError(t, err)
	assert.Zero(t, rule.Uses)

	require.NoError(t, repo.IncrementUses(ctx, "happyhours"))
	rule, err = repo.FindByCode(ctx, "happyhours")
	require.NoError(t, err)
	assert.Equal(t, 1, rule.Uses)

	_, err = repo.FindByCode(ctx, "NOPE")
	require.ErrorIs(t, err, coupon.ErrInvalidCoupon)
	require.ErrorIs(t, repo.IncrementUses(ctx, "NOPE"), coupon.ErrInvalidCoupon)
}

func TestCouponRepository_IncrementStopsAtLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewCouponRepository(coupon.Rule{Code: "TWICE", MaxUses: 2})

	require.NoError(t, repo.IncrementUses(ctx, "twice"))
	require.NoError(t, repo.IncrementUses(ctx, "twice"))
	require.ErrorIs(t, repo.IncrementUses(ctx, "twice"), coupon.ErrCouponUsageLimitReached)

	rule, err := repo.FindByCode(ctx, "TWICE")
	require.NoError(t, err)
	assert.Equal(t, 2, rule.Uses)
}

func TestCouponRepository_UsageLimitThroughValidator(t *testing.T) {
	ctx := context.Background()
	repo := NewCouponRepository(coupon.Rule{
		Code:         "ONCE",
		DiscountType: coupon.DiscountFixed,
		Value:        decimal.NewFromInt(5),
		MaxUses:      1,
	})
	v := coupon.NewRepoValidator(repo)
	c := cart.New()
	require.NoError(t, c.Add(&product.Product{Name: "Tablet", Price: decimal.NewFromInt(800), Stock: 5}, 1))

	// Validation alone does not consume the coupon.
	_, err := v.Validate(ctx, "once", c)
	require.NoError(t, err)
	_, err = v.Validate(ctx, "once", c)
	require.NoError(t, err)

	require.NoError(t, v.Redeem(ctx, "ONCE"))
	_, err = v.Validate(ctx, "ONCE", c)
	require.ErrorIs(t, err, coupon.ErrCouponUsageLimitReached)
}

func TestOrderRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()
	o := &order.Order{ID: "ord-1", Total: decimal.NewFromInt(10)}

	require.NoError(t, repo.Create(ctx, o))
	require.Error(t, repo.Create(ctx, o))

	got, err := repo.GetByID(ctx, "ord-1")
	require.NoError(t, err)
	assert.Same(t, o, got)

	_, err = repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, order.ErrNotFound)
}
