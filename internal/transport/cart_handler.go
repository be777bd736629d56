package transport

import (
	"errors"
	"net/http"

	"shoe-storefront/internal/cart"
	"shoe-storefront/internal/checkout"
	"shoe-storefront/internal/domain"
	"shoe-storefront/internal/middleware"
	"shoe-storefront/internal/repository"
	"shoe-storefront/internal/service"
	"shoe-storefront/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddLineRequest adds one unit of a product in a size
type AddLineRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Size      string `json:"size"`
}

// SetQuantityRequest sets the quantity of an existing line. Quantities below 1 are
// clamped to 1; quantities above the per-line maximum are rejected.
type SetQuantityRequest struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity" validate:"lte=99"`
}

// CartView is the cart as rendered by the cart drawer
type CartView struct {
	Items  domain.Cart     `json:"items"`
	Totals checkout.Totals `json:"totals"`
}

func viewOf(c domain.Cart) (CartView, error) {
	if c == nil {
		c = domain.Cart{}
	}
	totals, err := checkout.ComputeTotals(c)
	if err != nil {
		return CartView{}, err
	}
	return CartView{Items: c, Totals: totals}, nil
}

// respondWithCart writes the cart view, or the domain error when its totals cannot be computed
func respondWithCart(w http.ResponseWriter, c domain.Cart, logger *zap.Logger) {
	view, err := viewOf(c)
	if err != nil {
		middleware.RespondWithDomainError(w, err, logger)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, view)
}

// CartHandler exposes the session cart
type CartHandler struct {
	catalog service.CatalogService
	store   storage.Store
	logger  *zap.Logger
}

func NewCartHandler(catalog service.CatalogService, store storage.Store, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		catalog: catalog,
		store:   store,
		logger:  logger,
	}
}

func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Delete("/", h.Clear)
		r.Post("/lines", h.AddLine)
		r.Patch("/lines/{productID}", h.SetQuantity)
		r.Delete("/lines/{productID}", h.RemoveLine)
	})
}

// open hydrates the session cart, writing the error response itself on failure
func (h *CartHandler) open(w http.ResponseWriter, r *http.Request) (*cart.Store, bool) {
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

func (h *CartHandler) respond(w http.ResponseWriter, c domain.Cart, err error) {
	if err != nil {
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}
	respondWithCart(w, c, h.logger)
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	store, ok := h.open(w, r)
	if !ok {
		return
	}
	respondWithCart(w, store.Cart(), h.logger)
}

// AddLine adds a product in a size, incrementing the quantity when the pair is already in the cart
func (h *CartHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	var req AddLineRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	product, err := h.catalog.Get(r.Context(), uuid.MustParse(req.ProductID))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	store, ok := h.open(w, r)
	if !ok {
		return
	}

	c, err := store.AddLine(r.Context(), product, req.Size)
	h.respond(w, c, err)
}

func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := uuidParam(w, r, "productID")
	if !ok {
		return
	}
	var req SetQuantityRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	store, ok := h.open(w, r)
	if !ok {
		return
	}

	c, err := store.SetQuantity(r.Context(), productID, req.Size, req.Quantity)
	h.respond(w, c, err)
}

// RemoveLine removes the line for a product; the size is taken from the size query parameter
func (h *CartHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	productID, ok := uuidParam(w, r, "productID")
	if !ok {
		return
	}

	store, ok := h.open(w, r)
	if !ok {
		return
	}

	c, err := store.RemoveLine(r.Context(), productID, r.URL.Query().Get("size"))
	h.respond(w, c, err)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	store, ok := h.open(w, r)
	if !ok {
		return
	}

	c, err := store.Clear(r.Context())
	h.respond(w, c, err)
}
