package cart

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/oolio-kart-cart/internal/domain/product"
)

// Item pairs a shared product with the quantity held in a cart.
// Quantity is always at least 1 while the item belongs to a cart.
type Item struct {
	Product  *product.Product
	Quantity int
}

// Total returns the line total: price times quantity.
func (i *Item) Total() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
