package cart

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ApplyDiscount returns the cart total reduced by pct percent. Both bounds
// of [0, 100] are valid. The result is not rounded.
func (c *Cart) ApplyDiscount(pct decimal.Decimal) (decimal.Decimal, error) {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return decimal.Zero, ErrInvalidPercentage
	}
	total := c.Total()
	return total.Sub(total.Mul(pct).Div(hundred)), nil
}

// ApplyConditionalDiscount applies pct only when the total reaches minimum
// (inclusive). Below the threshold the plain total is returned and pct is
// not validated.
func (c *Cart) ApplyConditionalDiscount(pct, minimum decimal.Decimal) (decimal.Decimal, error) {
	total := c.Total()
	if total.LessThan(minimum) {
		return total, nil
	}
	return c.ApplyDiscount(pct)
}
