package transport

import (
	"errors"
	"net/http"
	"strconv"

	"shoe-storefront/internal/domain"
	"shoe-storefront/internal/middleware"
	"shoe-storefront/internal/recent"
	"shoe-storefront/internal/repository"
	"shoe-storefront/internal/service"
	"shoe-storefront/internal/storage"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductHandler serves the storefront catalog
type ProductHandler struct {
	catalog   service.CatalogService
	store     storage.Store
	recentMax int
	logger    *zap.Logger
}

func NewProductHandler(catalog service.CatalogService, store storage.Store, recentMax int, logger *zap.Logger) *ProductHandler {
	if recentMax <= 0 {
		recentMax = recent.MaxItems
	}
	return &ProductHandler{
		catalog:   catalog,
		store:     store,
		recentMax: recentMax,
		logger:    logger,
	}
}

func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/latest", h.Latest)
		r.Get("/search", h.Search)
		r.Get("/{productID}", h.Get)
	})
}

// parseBrowseQuery reads filter and paging parameters. Absent values fall back to
// the catalog defaults.
func parseBrowseQuery(r *http.Request) (service.BrowseQuery, []middleware.ValidationError) {
	q := r.URL.Query()
	var errs []middleware.ValidationError

	price := func(name string) *int64 {
		raw := q.Get(name)
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			errs = append(errs, middleware.ValidationError{Field: name, Message: "Value must be a non-negative whole number"})
			return nil
		}
		return &v
	}

	query := service.BrowseQuery{
		Criteria: domain.FilterCriteria{
			Type:   q.Get("type"),
			Gender: q.Get("gender"),
			Brand:  q.Get("brand"),
		},
		MinPrice: price("min_price"),
		MaxPrice: price("max_price"),
	}

	var err error
	if query.Page, err = intQuery(r, "page", 1); err != nil {
		errs = append(errs, middleware.ValidationError{Field: "page", Message: "Value must be a whole number"})
	}
	if query.PageSize, err = intQuery(r, "page_size", 0); err != nil || query.PageSize < 0 {
		errs = append(errs, middleware.ValidationError{Field: "page_size", Message: "Value must be a positive whole number"})
	}

	return query, errs
}

// List returns one page of the filtered catalog with its page window and brand list
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query, errs := parseBrowseQuery(r)
	if len(errs) > 0 {
		middleware.RespondWithValidationErrors(w, errs)
		return
	}

	page, err := h.catalog.Browse(r.Context(), query)
	if err != nil {
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, page)
}

func (h *ProductHandler) Latest(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit", 0)
	if err != nil {
		middleware.RespondWithValidationErrors(w, []middleware.ValidationError{{Field: "limit", Message: "Value must be a whole number"}})
		return
	}

	products, err := h.catalog.Latest(r.Context(), limit)
	if err != nil {
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Search is the quick search behind the header search box
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.QuickSearch(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Get returns a product and records it in the session's recently viewed list.
// Recording is best effort; the product is returned even when it fails.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "productID")
	if !ok {
		return
	}

	product, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	if sid, ok := middleware.GetSessionID(r.Context()); ok {
		buffer := recent.NewBuffer(h.store, sid, h.recentMax, h.logger)
		if _, err := buffer.Record(r.Context(), product); err != nil {
			h.logger.Warn("Failed to record recently viewed product",
				zap.String("product_id", id.String()),
				zap.Error(err),
			)
		}
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}
