package coupon

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Apply calculates the discount for the given rule and items. Eligibility
// is not checked here, see Rule.Eligible.
func Apply(rule *Rule, items []Item) (Discount, error) {
	subtotal := calcSubtotal(items)

	var amount decimal.Decimal
	switch rule.DiscountType {
	case DiscountPercentage:
		if rule.Value.IsNegative() || rule.Value.GreaterThan(hundred) {
			return Discount{}, errors.Wrapf(ErrInvalidRule, "percentage %s out of range", rule.Value)
		}
		amount = subtotal.Mul(rule.Value).Div(hundred)
	case DiscountFixed:
		if rule.Value.IsNegative() {
			return Discount{}, errors.Wrapf(ErrInvalidRule, "negative fixed value %s", rule.Value)
		}
		amount = decimal.Min(rule.Value, subtotal)
	case DiscountFreeLowest:
		amount = findLowestUnitPrice(items)
	default:
		return Discount{}, errors.Errorf("unsupported discount type: %q", rule.DiscountType)
	}

	if rule.MaxDiscount.IsPositive() {
		amount = decimal.Min(amount, rule.MaxDiscount)
	}

	return Discount{
		Amount:      amount.Round(2),
		Description: rule.Description,
	}, nil
}

func calcSubtotal(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

func totalQuantity(items []Item) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// findLowestUnitPrice returns zero for no items.
func findLowestUnitPrice(items []Item) decimal.Decimal {
	if len(items) == 0 {
		return decimal.Zero
	}
	lowest := items[0].Price
	for _, item := range items[1:] {
		if item.Price.LessThan(lowest) {
			lowest = item.Price
		}
	}
	return lowest
}
