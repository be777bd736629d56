package checkout

import (
	"context"
	"time"

	"shoe-storefront/internal/cart"
	"shoe-storefront/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart = domain.NewValidationError("cart is empty")
)

// OrderStore persists submitted orders
type OrderStore interface {
	Create(ctx context.Context, order *domain.Order) error
}

// Publisher announces placed orders to downstream consumers
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, order *domain.Order) error
}

type Service struct {
	orders    OrderStore
	publisher Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(orders OrderStore, publisher Publisher, logger *zap.Logger) *Service {
	return &Service{
		orders:    orders,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// BuildOrder snapshots the form and cart into a new order
func BuildOrder(f Form, c domain.Cart, now time.Time) (*domain.Order, error) {
	totals, err := ComputeTotals(c)
	if err != nil {
		return nil, err
	}
	f = f.Normalize()

	items := make([]domain.OrderItem, 0, len(c))
	for _, line := range c {
		item := domain.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Image:     line.Image,
		}
		if line.Size != "" {
			size := line.Size
			item.Size = &size
		}
		items = append(items, item)
	}

	return &domain.Order{
		ID:            uuid.New(),
		CustomerName:  f.FullName,
		CustomerEmail: f.Email,
		CustomerPhone: f.Phone,
		DeliveryAddress: domain.DeliveryAddress{
			Address1: f.Address1,
			Address2: f.Address2,
			City:     f.City,
			State:    f.State,
			LGA:      f.LGA,
			Landmark: f.Landmark,
			Notes:    f.Notes,
		},
		PaymentMethod: f.PaymentMethod,
		Items:         items,
		Amount:        totals.Total,
		Status:        domain.OrderProcessing,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Submit places an order for the cart held by store. The cart is cleared only
// after the order store acknowledges the order; on any failure it is left as is.
func (s *Service) Submit(ctx context.Context, f Form, store *cart.Store) (*domain.Order, error) {
	if errs := Validate(f); len(errs) > 0 {
		return nil, &domain.ValidationError{Message: "checkout form is invalid", Fields: errs}
	}

	lines := store.Cart()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	order, err := BuildOrder(f, lines, s.now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error("Failed to place order",
			zap.String("email", order.CustomerEmail),
			zap.Error(err),
		)
		return nil, &domain.CollaboratorError{Op: "place order", Err: err}
	}

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.Int64("amount", order.Amount),
		zap.Int("items", len(order.Items)),
	)

	if _, err := store.Clear(ctx); err != nil {
		s.logger.Error("Failed to clear cart after order", zap.String("order_id", order.ID.String()), zap.Error(err))
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrderPlaced(ctx, order); err != nil {
			s.logger.Warn("Failed to publish order placed event", zap.String("order_id", order.ID.String()), zap.Error(err))
		}
	}

	return order, nil
}
