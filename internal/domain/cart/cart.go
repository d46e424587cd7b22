// Package cart implements an in-memory shopping cart over shared products.
//
// Products are identified by name: two *product.Product values with the same
// Name are treated as the same catalog entry. Adding reserves stock by
// decrementing Product.Stock; removing, updating and clearing never give
// stock back. A Cart is not safe for concurrent use.
package cart

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/xenking/oolio-kart-cart/internal/domain/product"
)

// Cart is an ordered collection of items, one per product name.
type Cart struct {
	items  []*Item
	byName map[string]*Item
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{byName: make(map[string]*Item)}
}

// Add puts qty units of p into the cart, merging with an existing item of
// the same name. The product must hold strictly more than qty units: asking
// for exactly the remaining stock fails.
func (c *Cart) Add(p *product.Product, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	// Stock is checked against the product already held, not the argument.
	if item, ok := c.byName[p.Name]; ok {
		if item.Product.Stock <= qty {
			return &InsufficientStockError{Name: item.Product.Name, Stock: item.Product.Stock}
		}
		item.Quantity += qty
		item.Product.Stock -= qty
		return nil
	}

	if p.Stock <= qty {
		return &InsufficientStockError{Name: p.Name, Stock: p.Stock}
	}
	item := &Item{Product: p, Quantity: qty}
	c.items = append(c.items, item)
	c.byName[p.Name] = item
	p.Stock -= qty
	return nil
}

// Remove takes qty units of p out of the cart. Removing exactly the held
// quantity drops the item. Stock is not restored.
func (c *Cart) Remove(p *product.Product, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	item, ok := c.byName[p.Name]
	if !ok {
		return &ProductNotFoundError{Name: p.Name}
	}

	switch {
	case item.Quantity > qty:
		item.Quantity -= qty
	case item.Quantity == qty:
		c.drop(p.Name)
	default:
		return ErrExcessRemoval
	}
	return nil
}

// UpdateQuantity sets the held quantity of p to qty. Zero drops the item.
// Stock is left untouched whether the quantity grows or shrinks.
func (c *Cart) UpdateQuantity(p *product.Product, qty int) error {
	if qty < 0 {
		return ErrNegativeQuantity
	}

	item, ok := c.byName[p.Name]
	if !ok {
		return &ProductNotFoundError{Name: p.Name}
	}

	if qty == 0 {
		c.drop(p.Name)
		return nil
	}
	item.Quantity = qty
	return nil
}

// Total returns the sum of all line totals, zero for an empty cart.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Total())
	}
	return total
}

// Count returns the number of units in the cart, summed over all items.
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

// Len returns the number of distinct items.
func (c *Cart) Len() int {
	return len(c.items)
}

// Items returns the items in insertion order. The slice is a copy; the
// *Item values are the cart's own and reflect later mutations.
func (c *Cart) Items() []*Item {
	return slices.Clone(c.items)
}

// Item returns the item held for the named product.
func (c *Cart) Item(name string) (*Item, bool) {
	item, ok := c.byName[name]
	return item, ok
}

// Clear empties the cart. Stock is not restored.
func (c *Cart) Clear() {
	c.items = nil
	clear(c.byName)
}

func (c *Cart) drop(name string) {
	c.items = slices.DeleteFunc(c.items, func(item *Item) bool {
		return item.Product.Name == name
	})
	delete(c.byName, name)
}
