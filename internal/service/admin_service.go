package service

import (
	"context"

	"shoe-storefront/internal/domain"
	"shoe-storefront/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DashboardStats are the headline numbers of the admin overview
type DashboardStats struct {
	Products  int   `json:"products"`
	Orders    int   `json:"orders"`
	Customers int   `json:"customers"`
	Revenue   int64 `json:"revenue"`
}

// CustomerSummary aggregates the orders placed under one customer identity
type CustomerSummary struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Orders     int    `json:"orders"`
	TotalSpent int64  `json:"totalSpent"`
}

// AdminService backs the admin dashboard and order management
type AdminService interface {
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	OrdersForCustomer(ctx context.Context, email string) ([]*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error)
	Stats(ctx context.Context) (*DashboardStats, error)
	Customers(ctx context.Context) ([]CustomerSummary, error)
}

type adminService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	logger   *zap.Logger
}

func NewAdminService(products repository.ProductRepository, orders repository.OrderRepository, logger *zap.Logger) AdminService {
	return &adminService{products: products, orders: orders, logger: logger}
}

func (s *adminService) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, &domain.CollaboratorError{Op: "list orders", Err: err}
	}
	return orders, nil
}

// OrdersForCustomer is the order history shown on a customer's profile
func (s *adminService) OrdersForCustomer(ctx context.Context, email string) ([]*domain.Order, error) {
	orders, err := s.orders.ListByEmail(ctx, email)
	if err != nil {
		return nil, &domain.CollaboratorError{Op: "list customer orders", Err: err}
	}
	return orders, nil
}

func (s *adminService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, &domain.ValidationError{
			Message: "invalid order status",
			Fields:  map[string]string{"status": "Status must be one of Processing, Shipped, Completed, Cancelled."},
		}
	}

	order, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", id.String()),
		zap.String("status", string(status)),
	)
	return order, nil
}

func (s *adminService) Stats(ctx context.Context) (*DashboardStats, error) {
	productCount, err := s.products.Count(ctx)
	if err != nil {
		return nil, &domain.CollaboratorError{Op: "count products", Err: err}
	}

	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, &domain.CollaboratorError{Op: "list orders", Err: err}
	}

	stats := &DashboardStats{
		Products:  productCount,
		Orders:    len(orders),
		Customers: len(summarizeCustomers(orders)),
	}
	for _, o := range orders {
		stats.Revenue += o.Amount
	}

	return stats, nil
}

func (s *adminService) Customers(ctx context.Context) ([]CustomerSummary, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, &domain.CollaboratorError{Op: "list orders", Err: err}
	}
	return summarizeCustomers(orders), nil
}

// customerKey identifies a customer by email, falling back to the name on orders without one
func customerKey(o *domain.Order) string {
	if o.CustomerEmail != "" {
		return o.CustomerEmail
	}
	return o.CustomerName
}

// summarizeCustomers groups orders by customer in first-seen order
func summarizeCustomers(orders []*domain.Order) []CustomerSummary {
	index := map[string]int{}
	summaries := []CustomerSummary{}

	for _, o := range orders {
		key := customerKey(o)
		i, ok := index[key]
		if !ok {
			i = len(summaries)
			index[key] = i
			summaries = append(summaries, CustomerSummary{Name: o.CustomerName, Email: o.CustomerEmail})
		}
		summaries[i].Orders++
		summaries[i].TotalSpent += o.Amount
	}

	return summaries
}
