package checkout

import (
	"math"

	"shoe-storefront/internal/domain"
)

// DeliveryFee is charged on every order. Delivery is currently free.
const DeliveryFee int64 = 0

// Totals is the order summary shown beside the checkout form
type Totals struct {
	Subtotal    int64 `json:"subtotal"`
	ItemCount   int   `json:"itemCount"`
	DeliveryFee int64 `json:"deliveryFee"`
	Total       int64 `json:"total"`
}

// ComputeTotals sums the cart. It fails with domain.ErrAmountOverflow when an
// amount cannot be represented.
func ComputeTotals(c domain.Cart) (Totals, error) {
	subtotal, err := c.Subtotal()
	if err != nil {
		return Totals{}, err
	}
	if subtotal > math.MaxInt64-DeliveryFee {
		return Totals{}, domain.ErrAmountOverflow
	}

	t := Totals{Subtotal: subtotal, DeliveryFee: DeliveryFee, Total: subtotal + DeliveryFee}
	for _, line := range c {
		t.ItemCount += line.Quantity
	}
	return t, nil
}
