package events

import (
	"time"

	"shoe-storefront/internal/domain"

	"github.com/google/uuid"
)

const OrderPlacedQueue = "order.placed"

// OrderPlacedItem is one purchased line in an OrderPlaced event
type OrderPlacedItem struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
	Price     int64     `json:"price"`
	Size      *string   `json:"size"`
}

type OrderPlaced struct {
	EventType     string               `json:"eventType"`
	OrderID       uuid.UUID            `json:"orderId"`
	CustomerEmail string               `json:"customerEmail"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
	Amount        int64                `json:"amount"`
	Items         []OrderPlacedItem    `json:"items"`
	Timestamp     time.Time            `json:"timestamp"`
}

// NewOrderPlaced builds the event announcing o
func NewOrderPlaced(o *domain.Order, at time.Time) OrderPlaced {
	ev := OrderPlaced{
		EventType:     "OrderPlaced",
		OrderID:       o.ID,
		CustomerEmail: o.CustomerEmail,
		PaymentMethod: o.PaymentMethod,
		Amount:        o.Amount,
		Items:         make([]OrderPlacedItem, 0, len(o.Items)),
		Timestamp:     at.UTC(),
	}

	for _, it := range o.Items {
		ev.Items = append(ev.Items, OrderPlacedItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Size:      it.Size,
		})
	}

	return ev
}
