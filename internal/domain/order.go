package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is how the customer intends to pay
type PaymentMethod string

const (
	PayOnDelivery PaymentMethod = "pay_on_delivery"
	PayNow        PaymentMethod = "pay_now"
)

// OrderStatus is the fulfilment state of an order
type OrderStatus string

const (
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderCompleted  OrderStatus = "Completed"
	OrderCancelled  OrderStatus = "Cancelled"
)

func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderProcessing, OrderShipped, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// DeliveryAddress holds the address fields collected at checkout
type DeliveryAddress struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	State    string `json:"state"`
	LGA      string `json:"lga"`
	Landmark string `json:"landmark"`
	Notes    string `json:"notes"`
}

// OrderItem is a snapshot of a cart line at submission time
type OrderItem struct {
	ProductID uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Quantity  int       `json:"quantity"`
	Size      *string   `json:"size"`
	Image     string    `json:"image"`
}

// Order represents a submitted checkout
type Order struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	CustomerName    string          `json:"customer_name" db:"customer_name"`
	CustomerEmail   string          `json:"customer_email" db:"customer_email"`
	CustomerPhone   string          `json:"customer_phone" db:"customer_phone"`
	DeliveryAddress DeliveryAddress `json:"delivery_address" db:"delivery_address"`
	PaymentMethod   PaymentMethod   `json:"payment_method" db:"payment_method"`
	Items           []OrderItem     `json:"items" db:"items"`
	Amount          int64           `json:"amount" db:"amount"`
	Status          OrderStatus     `json:"status" db:"status"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}
