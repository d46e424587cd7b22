package cart

import (
	"slices"
	"strings"
)

// SortCriterion selects the ordering used by Sorted.
type SortCriterion string

const (
	// SortByName orders items by product name, byte-wise and case-sensitive.
	SortByName SortCriterion = "name"
	// SortByPrice orders items by ascending unit price.
	SortByPrice SortCriterion = "price"
)

// ParseSortCriterion maps a user supplied key to a SortCriterion. The
// Spanish keys "nombre" and "precio" are accepted as aliases.
func ParseSortCriterion(s string) (SortCriterion, error) {
	switch s {
	case "name", "nombre":
		return SortByName, nil
	case "price", "precio":
		return SortByPrice, nil
	default:
		return "", &InvalidCriterionError{Criterion: s}
	}
}

func byName(a, b *Item) int {
	return strings.Compare(a.Product.Name, b.Product.Name)
}

func byPrice(a, b *Item) int {
	return a.Product.Price.Cmp(b.Product.Price)
}

// Sorted returns a stably sorted copy of the items. The cart's own order is
// left unchanged.
func (c *Cart) Sorted(by SortCriterion) ([]*Item, error) {
	var cmp func(a, b *Item) int
	switch by {
	case SortByName:
		cmp = byName
	case SortByPrice:
		cmp = byPrice
	default:
		return nil, &InvalidCriterionError{Criterion: string(by)}
	}

	items := slices.Clone(c.items)
	slices.SortStableFunc(items, cmp)
	return items, nil
}
