package transport

import (
	"context"
	"net/http"

	"shoe-storefront/internal/cart"
	"shoe-storefront/internal/checkout"
	"shoe-storefront/internal/domain"
	"shoe-storefront/internal/middleware"
	"shoe-storefront/internal/storage"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OrderPlacer submits a checkout form against a session cart
type OrderPlacer interface {
	Submit(ctx context.Context, f checkout.Form, store *cart.Store) (*domain.Order, error)
}

// FormCheck is the result of validating a checkout form without submitting it
type FormCheck struct {
	Valid  bool              `json:"valid"`
	Fields map[string]string `json:"fields"`
}

// CheckoutHandler serves the checkout page
type CheckoutHandler struct {
	orders OrderPlacer
	store  storage.Store
	logger *zap.Logger
}

func NewCheckoutHandler(orders OrderPlacer, store storage.Store, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		orders: orders,
		store:  store,
		logger: logger,
	}
}

func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/checkout", func(r chi.Router) {
		r.Get("/summary", h.Summary)
		r.Post("/validate", h.Validate)
		r.Post("/", h.Submit)
	})
}

func (h *CheckoutHandler) openCart(w http.ResponseWriter, r *http.Request) (*cart.Store, bool) {
	sid, ok := sessionID(w, r)
	if !ok {
		return nil, false
	}
	store, err := cart.Open(r.Context(), h.store, sid, h.logger)
	if err != nil {
		middleware.RespondWithDomainError(w, err, h.logger)
		return nil, false
	}
	return store, true
}

func decodeForm(w http.ResponseWriter, r *http.Request) (checkout.Form, bool) {
	form := checkout.EmptyForm()
	if err := middleware.DecodeJSON(r, &form); err != nil {
		middleware.RespondWithValidationErrors(w, middleware.FormatValidationErrors(err))
		return form, false
	}
	return form, true
}

// Summary returns the cart lines and totals shown beside the form
func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	store, ok := h.openCart(w, r)
	if !ok {
		return
	}
	respondWithCart(w, store.Cart(), h.logger)
}

// Validate reports field errors without placing an order
func (h *CheckoutHandler) Validate(w http.ResponseWriter, r *http.Request) {
	form, ok := decodeForm(w, r)
	if !ok {
		return
	}

	fields := checkout.Validate(form)
	middleware.RespondWithJSON(w, http.StatusOK, FormCheck{Valid: len(fields) == 0, Fields: fields})
}

// Submit places the order and empties the session cart
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	form, ok := decodeForm(w, r)
	if !ok {
		return
	}
	store, ok := h.openCart(w, r)
	if !ok {
		return
	}

	order, err := h.orders.Submit(r.Context(), form, store)
	if err != nil {
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, order)
}
