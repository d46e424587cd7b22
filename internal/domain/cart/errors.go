package cart

import (
	"fmt"

	"github.com/go-faster/errors"
)

// Sentinel errors for cart operations.
var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrProductNotFound   = errors.New("product not found in cart")
	ErrExcessRemoval     = errors.New("removal quantity exceeds quantity in cart")
	ErrNegativeQuantity  = errors.New("quantity cannot be negative")
	ErrInvalidQuantity   = errors.New("quantity must be greater than 0")
	ErrInvalidPercentage = errors.New("percentage must be between 0 and 100")
	ErrInvalidCriterion  = errors.New("invalid sort criterion")
)

// InsufficientStockError indicates a product cannot cover the requested
// quantity. Stock is the amount left at the time of the call.
type InsufficientStockError struct {
	Name  string
	Stock int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("quantity exceeds stock of %s, only %d units available", e.Name, e.Stock)
}

// Is reports ErrInsufficientStock as a match.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// ProductNotFoundError indicates the cart holds no item for the product.
type ProductNotFoundError struct {
	Name string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found in cart", e.Name)
}

// Is reports ErrProductNotFound as a match.
func (e *ProductNotFoundError) Is(target error) bool {
	return target == ErrProductNotFound
}

// InvalidCriterionError indicates an unknown sort criterion.
type InvalidCriterionError struct {
	Criterion string
}

func (e *InvalidCriterionError) Error() string {
	return fmt.Sprintf("Criterio '%s' invalido", e.Criterion)
}

// Is reports ErrInvalidCriterion as a match.
func (e *InvalidCriterionError) Is(target error) bool {
	return target == ErrInvalidCriterion
}
