package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/go-faster/errors"

	"github.com/xenking/oolio-kart-cart/internal/domain/coupon"
)

var _ coupon.Repository = (*CouponRepository)(nil)

// CouponRepository implements coupon.Repository. Codes are matched
// case-insensitively.
type CouponRepository struct {
	mu     sync.Mutex
	byCode map[string]coupon.Rule
}

// NewCouponRepository returns a repository seeded with rules.
func NewCouponRepository(rules ...coupon.Rule) *CouponRepository {
	r := &CouponRepository{byCode: make(map[string]coupon.Rule, len(rules))}
	for _, rule := range rules {
		r.byCode[strings.ToUpper(rule.Code)] = rule
	}
	return r
}

// FindByCode returns a copy of the rule, or coupon.ErrInvalidCoupon when
// the code is unknown.
func (r *CouponRepository) FindByCode(_ context.Context, code string) (*coupon.Rule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rule, ok := r.byCode[strings.ToUpper(code)]
	if !ok {
		return nil, coupon.ErrInvalidCoupon
	}
	return &rule, nil
}

// IncrementUses counts one redemption of code. It fails with
// coupon.ErrCouponUsageLimitReached instead of going past MaxUses.
func (r *CouponRepository) IncrementUses(_ context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToUpper(code)
	rule, ok := r.byCode[key]
	if !ok {
		return errors.Wrapf(coupon.ErrInvalidCoupon, "increment uses of %q", code)
	}
	if rule.MaxUses > 0 && rule.Uses >= rule.MaxUses {
		return coupon.ErrCouponUsageLimitReached
	}
	rule.Uses++
	r.byCode[key] = rule
	return nil
}
