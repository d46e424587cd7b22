package coupon

import (
	"time"

	"github.com/go-faster/errors"
)

// Eligible returns nil when rule can be applied to items at now, or the
// first requirement that is not met. Window bounds are inclusive.
func (r *Rule) Eligible(now time.Time, items []Item) error {
	if r.ValidFrom != nil && now.Before(*r.ValidFrom) {
		return ErrCouponNotYetValid
	}
	if r.ValidUntil != nil && now.After(*r.ValidUntil) {
		return ErrCouponExpired
	}
	if r.MaxUses > 0 && r.Uses >= r.MaxUses {
		return ErrCouponUsageLimitReached
	}
	if n := totalQuantity(items); r.MinItems > 0 && n < r.MinItems {
		return errors.Wrapf(ErrMinItemsNotMet, "%d of %d units", n, r.MinItems)
	}
	if subtotal := calcSubtotal(items); subtotal.LessThan(r.MinTotal) {
		return errors.Wrapf(ErrMinTotalNotMet, "subtotal %s, need %s", subtotal, r.MinTotal)
	}
	return nil
}
