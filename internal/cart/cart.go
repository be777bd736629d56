// Package cart implements the shopping cart state machine. The transition
// functions in this file are pure; Store adds single-writer access and
// on-change hooks used for persistence.
package cart

import (
	"fmt"

	"shoe-storefront/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrSizeRequired    = domain.NewValidationError("size required")
	ErrSizeUnavailable = domain.NewValidationError("size not offered for this product")
	ErrQuantityLimit   = domain.NewValidationError(fmt.Sprintf("at most %d of one item per order", domain.MaxLineQuantity))
)

// AddLine adds one unit of product in the given size. An existing line for the
// same (product, size) pair has its quantity incremented instead of being duplicated.
// Products without sizes ignore the size argument.
func AddLine(c domain.Cart, product *domain.Product, size string) (domain.Cart, error) {
	if len(product.Sizes) > 0 {
		if size == "" {
			return c, ErrSizeRequired
		}
		if !product.HasSize(size) {
			return c, ErrSizeUnavailable
		}
	} else {
		size = ""
	}

	next := clone(c)
	for i := range next {
		if next[i].Matches(product.ID, size) {
			if next[i].Quantity >= domain.MaxLineQuantity {
				return c, ErrQuantityLimit
			}
			next[i].Quantity++
			return guarded(c, next)
		}
	}

	return guarded(c, append(next, domain.CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Brand:     product.Brand,
		Image:     product.Image,
		Size:      size,
		Quantity:  1,
	}))
}

// RemoveLine drops the line matching (productID, size). Absent lines are a no-op.
func RemoveLine(c domain.Cart, productID uuid.UUID, size string) domain.Cart {
	next := make(domain.Cart, 0, len(c))
	for _, line := range c {
		if line.Matches(productID, size) {
			continue
		}
		next = append(next, line)
	}
	return next
}

// SetQuantity sets the quantity of the matching line, clamped to 1..MaxLineQuantity
func SetQuantity(c domain.Cart, productID uuid.UUID, size string, quantity int) (domain.Cart, error) {
	quantity = ClampQuantity(quantity)

	next := clone(c)
	for i := range next {
		if next[i].Matches(productID, size) {
			next[i].Quantity = quantity
		}
	}
	return guarded(c, next)
}

// ClampQuantity bounds a requested line quantity to 1..MaxLineQuantity
func ClampQuantity(quantity int) int {
	switch {
	case quantity < 1:
		return 1
	case quantity > domain.MaxLineQuantity:
		return domain.MaxLineQuantity
	}
	return quantity
}

// Subtotal is the sum of price x quantity over all lines
func Subtotal(c domain.Cart) (int64, error) {
	return c.Subtotal()
}

// ItemCount is the sum of quantities over all lines
func ItemCount(c domain.Cart) int {
	count := 0
	for _, line := range c {
		count += line.Quantity
	}
	return count
}

// guarded returns next unless its subtotal overflows, in which case prev is kept
func guarded(prev, next domain.Cart) (domain.Cart, error) {
	if _, err := next.Subtotal(); err != nil {
		return prev, err
	}
	return next, nil
}

func clone(c domain.Cart) domain.Cart {
	next := make(domain.Cart, len(c))
	copy(next, c)
	return next
}
