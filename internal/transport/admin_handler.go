package transport

import (
	"errors"
	"net/http"

	"shoe-storefront/internal/domain"
	"shoe-storefront/internal/middleware"
	"shoe-storefront/internal/repository"
	"shoe-storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductRequest is the admin product editor payload
type ProductRequest struct {
	Name             string   `json:"name" validate:"required"`
	Brand            string   `json:"brand"`
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Gender           string   `json:"gender"`
	Price            int64    `json:"price" validate:"gte=0"`
	Stock            int      `json:"stock" validate:"gte=0"`
	Status           string   `json:"status"`
	Sizes            []string `json:"sizes"`
	Image            string   `json:"image"`
	ShortDescription string   `json:"shortDescription"`
}

func (p ProductRequest) input() service.ProductInput {
	return service.ProductInput{
		Name:             p.Name,
		Brand:            p.Brand,
		Category:         p.Category,
		Type:             domain.ShoeType(p.Type),
		Gender:           domain.Gender(p.Gender),
		Price:            p.Price,
		Stock:            p.Stock,
		Status:           domain.StockStatus(p.Status),
		Sizes:            p.Sizes,
		Image:            p.Image,
		ShortDescription: p.ShortDescription,
	}
}

// StatusRequest moves an order to a new fulfilment status
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AdminHandler serves the admin dashboard
type AdminHandler struct {
	catalog service.CatalogService
	admin   service.AdminService
	logger  *zap.Logger
}

func NewAdminHandler(catalog service.CatalogService, admin service.AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		catalog: catalog,
		admin:   admin,
		logger:  logger,
	}
}

// RegisterRoutes mounts the admin routes behind authentication and the admin role check
func (h *AdminHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(adminMiddleware)

		r.Post("/products", h.CreateProduct)
		r.Put("/products/{productID}", h.UpdateProduct)
		r.Delete("/products/{productID}", h.DeleteProduct)

		r.Get("/orders", h.ListOrders)
		r.Patch("/orders/{orderID}/status", h.UpdateOrderStatus)

		r.Get("/stats", h.Stats)
		r.Get("/customers", h.Customers)
	})
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), req.input())
	if err != nil {
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "productID")
	if !ok {
		return
	}
	var req ProductRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	product, err := h.catalog.UpdateProduct(r.Context(), id, req.input())
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "productID")
	if !ok {
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListOrders lists every order, or one customer's orders with ?email=
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	var (
		orders []*domain.Order
		err    error
	)
	if email := r.URL.Query().Get("email"); email != "" {
		orders, err = h.admin.OrdersForCustomer(r.Context(), email)
	} else {
		orders, err = h.admin.ListOrders(r.Context())
	}
	if err != nil {
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "orderID")
	if !ok {
		return
	}
	var req StatusRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	order, err := h.admin.UpdateOrderStatus(r.Context(), id, domain.OrderStatus(req.Status))
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
			return
		}
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.Stats(r.Context())
	if err != nil {
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) Customers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.admin.Customers(r.Context())
	if err != nil {
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, customers)
}
