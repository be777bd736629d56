package transport

import (
	"errors"
	"net/http"

	"shoe-storefront/internal/domain"
	"shoe-storefront/internal/favourites"
	"shoe-storefront/internal/middleware"
	"shoe-storefront/internal/recent"
	"shoe-storefront/internal/repository"
	"shoe-storefront/internal/service"
	"shoe-storefront/internal/storage"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ToggleResponse reports whether the product is a favourite after the toggle
type ToggleResponse struct {
	Favourite bool                    `json:"favourite"`
	Items     []domain.FavouriteEntry `json:"items"`
}

// ShelfHandler serves the per-session recently viewed and favourites lists
type ShelfHandler struct {
	catalog   service.CatalogService
	store     storage.Store
	recentMax int
	logger    *zap.Logger
}

func NewShelfHandler(catalog service.CatalogService, store storage.Store, recentMax int, logger *zap.Logger) *ShelfHandler {
	if recentMax <= 0 {
		recentMax = recent.MaxItems
	}
	return &ShelfHandler{
		catalog:   catalog,
		store:     store,
		recentMax: recentMax,
		logger:    logger,
	}
}

func (h *ShelfHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/recently-viewed", func(r chi.Router) {
		r.Get("/", h.ListRecent)
		r.Delete("/", h.ClearRecent)
		r.Delete("/{productID}", h.RemoveRecent)
	})
	r.Route("/api/favourites", func(r chi.Router) {
		r.Get("/", h.ListFavourites)
		r.Post("/{productID}", h.ToggleFavourite)
		r.Delete("/{productID}", h.RemoveFavourite)
	})
}

func (h *ShelfHandler) buffer(w http.ResponseWriter, r *http.Request) (*recent.Buffer, bool) {
	sid, ok := sessionID(w, r)
	if !ok {
		return nil, false
	}
	return recent.NewBuffer(h.store, sid, h.recentMax, h.logger), true
}

func (h *ShelfHandler) favourites(w http.ResponseWriter, r *http.Request) (*favourites.List, bool) {
	sid, ok := sessionID(w, r)
	if !ok {
		return nil, false
	}
	return favourites.NewList(h.store, sid, h.logger), true
}

func (h *ShelfHandler) respond(w http.ResponseWriter, v interface{}, err error) {
	if err != nil {
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, v)
}

func (h *ShelfHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	buffer, ok := h.buffer(w, r)
	if !ok {
		return
	}
	entries, err := buffer.List(r.Context())
	h.respond(w, entries, err)
}

func (h *ShelfHandler) RemoveRecent(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "productID")
	if !ok {
		return
	}
	buffer, ok := h.buffer(w, r)
	if !ok {
		return
	}
	entries, err := buffer.Remove(r.Context(), id)
	h.respond(w, entries, err)
}

func (h *ShelfHandler) ClearRecent(w http.ResponseWriter, r *http.Request) {
	buffer, ok := h.buffer(w, r)
	if !ok {
		return
	}
	if err := buffer.Clear(r.Context()); err != nil {
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ShelfHandler) ListFavourites(w http.ResponseWriter, r *http.Request) {
	list, ok := h.favourites(w, r)
	if !ok {
		return
	}
	entries, err := list.Entries(r.Context())
	h.respond(w, entries, err)
}

// ToggleFavourite adds the product to favourites, or removes it when already saved
func (h *ShelfHandler) ToggleFavourite(w http.ResponseWriter, r *http.Request) {
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

	list, ok := h.favourites(w, r)
	if !ok {
		return
	}

	saved, entries, err := list.Toggle(r.Context(), product)
	h.respond(w, ToggleResponse{Favourite: saved, Items: entries}, err)
}

func (h *ShelfHandler) RemoveFavourite(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "productID")
	if !ok {
		return
	}
	list, ok := h.favourites(w, r)
	if !ok {
		return
	}
	entries, err := list.Remove(r.Context(), id)
	h.respond(w, entries, err)
}
