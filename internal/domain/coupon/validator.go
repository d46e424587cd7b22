package coupon

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"github.com/xenking/oolio-kart-cart/internal/domain/cart"
)

// Validator prices a coupon against a cart and records redemptions.
//
// Validate has no side effects. Redeem is called separately once the
// order carrying the discount has been stored, so a failed checkout does
// not consume a use.
type Validator interface {
	Validate(ctx context.Context, code string, c *cart.Cart) (*Discount, error)
	Redeem(ctx context.Context, code string) error
}

// RepoValidator implements Validator on top of a Repository.
type RepoValidator struct {
	repo Repository
	now  func() time.Time
}

// NewRepoValidator creates a RepoValidator backed by the given Repository.
func NewRepoValidator(repo Repository) *RepoValidator {
	return &RepoValidator{repo: repo, now: time.Now}
}

// Validate resolves code, checks the rule against the cart contents and
// returns the discount it grants.
func (v *RepoValidator) Validate(ctx context.Context, code string, c *cart.Cart) (*Discount, error) {
	rule, err := v.repo.FindByCode(ctx, code)
	switch {
	case errors.Is(err, ErrInvalidCoupon):
		return nil, ErrInvalidCoupon
	case err != nil:
		return nil, errors.Wrap(err, "lookup coupon")
	}

	items := ItemsFromCart(c)
	if err := rule.Eligible(v.now(), items); err != nil {
		return nil, errors.Wrapf(err, "coupon %s", rule.Code)
	}

	d, err := Apply(rule, items)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Redeem counts one use of code.
func (v *RepoValidator) Redeem(ctx context.Context, code string) error {
	if err := v.repo.IncrementUses(ctx, code); err != nil {
		return errors.Wrap(err, "increment coupon uses")
	}
	return nil
}
