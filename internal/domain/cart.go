package domain

import (
	"math"

	"github.com/google/uuid"
)

// MaxLineQuantity caps the quantity of a single cart line
const MaxLineQuantity = 99

// ErrAmountOverflow is returned when a cart or order amount does not fit in an int64
var ErrAmountOverflow = NewValidationError("order amount is too large")

// CartLine is one (product, size) pairing in the cart. Display fields are
// captured when the line is added and are not refreshed from the catalog.
type CartLine struct {
	ProductID uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Brand     string    `json:"brand"`
	Image     string    `json:"image"`
	Size      string    `json:"size,omitempty"`
	Quantity  int       `json:"quantity"`
}

// Matches reports whether the line belongs to the given (product, size) pair
func (l CartLine) Matches(productID uuid.UUID, size string) bool {
	return l.ProductID == productID && l.Size == size
}

// LineTotal is price multiplied by quantity. ok is false for negative inputs and
// for products that do not fit in an int64.
func (l CartLine) LineTotal() (total int64, ok bool) {
	if l.Price < 0 || l.Quantity < 0 {
		return 0, false
	}
	q := int64(l.Quantity)
	if q != 0 && l.Price > math.MaxInt64/q {
		return 0, false
	}
	return l.Price * q, true
}

// Cart is an ordered sequence of lines; order only matters for display
type Cart []CartLine

// Subtotal is the sum of line totals, or ErrAmountOverflow when it cannot be represented
func (c Cart) Subtotal() (int64, error) {
	var sum int64
	for _, line := range c {
		lt, ok := line.LineTotal()
		if !ok || sum > math.MaxInt64-lt {
			return 0, ErrAmountOverflow
		}
		sum += lt
	}
	return sum, nil
}
