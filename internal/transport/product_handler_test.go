package transport

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"shoe-storefront/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pageBody struct {
	Items     []domain.Product      `json:"items"`
	Total     int                   `json:"total"`
	Page      int                   `json:"page"`
	PageCount int                   `json:"pageCount"`
	Window    []interface{}         `json:"window"`
	Brands    []string              `json:"brands"`
	Criteria  domain.FilterCriteria `json:"criteria"`
}

func fourteenSneakers() []*domain.Product {
	products := make([]*domain.Product, 0, 14)
	for i := 0; i < 14; i++ {
		brand := "Nike"
		if i%2 == 1 {
			brand = "Adidas"
		}
		products = append(products, sneaker(fmt.Sprintf("Runner %02d", i), brand, int64(20000+i*1000), "41", "42"))
	}
	return products
}

func TestProductHandler_ListPagesWithDefaults(t *testing.T) {
	h := newHarness(t, fourteenSneakers()...)

	w := h.do(t, http.MethodGet, "/api/products?page=3", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	var page pageBody
	decodeBody(t, w, &page)
	assert.Equal(t, 14, page.Total)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 3, page.PageCount)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, []string{"Adidas", "Nike"}, page.Brands)
	assert.Equal(t, domain.AllTypes, page.Criteria.Type)
	assert.Equal(t, int64(800000), page.Criteria.PriceRange.Max)
}

func TestProductHandler_ListFilters(t *testing.T) {
	h := newHarness(t, fourteenSneakers()...)

	w := h.do(t, http.MethodGet, "/api/products?brand=Nike&min_price=25000&page_size=10", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	var page pageBody
	decodeBody(t, w, &page)
	for _, p := range page.Items {
		assert.Equal(t, "Nike", p.Brand)
		assert.GreaterOrEqual(t, p.Price, int64(25000))
	}
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, []string{"Adidas", "Nike"}, page.Brands)
}

func TestProductHandler_ListRejectsBadQuery(t *testing.T) {
	h := newHarness(t, fourteenSneakers()...)

	tests := []struct {
		name  string
		query string
	}{
		{"non-numeric price", "?min_price=cheap"},
		{"negative price", "?max_price=-1"},
		{"non-numeric page", "?page=two"},
		{"inverted range", "?min_price=50000&max_price=1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := h.do(t, http.MethodGet, "/api/products"+tt.query, nil, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestProductHandler_PagePastEndIsEmpty(t *testing.T) {
	h := newHarness(t, fourteenSneakers()...)

	w := h.do(t, http.MethodGet, "/api/products?page=9", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	var page pageBody
	decodeBody(t, w, &page)
	assert.Empty(t, page.Items)
}

func TestProductHandler_HugePageIsEmpty(t *testing.T) {
	h := newHarness(t, fourteenSneakers()...)

	w := h.do(t, http.MethodGet, "/api/products?page=4611686018427387905", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	var page pageBody
	decodeBody(t, w, &page)
	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.PageCount)
}

func TestProductHandler_ExplicitZeroMaxPrice(t *testing.T) {
	h := newHarness(t, fourteenSneakers()...)

	w := h.do(t, http.MethodGet, "/api/products?min_price=0&max_price=0", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	var page pageBody
	decodeBody(t, w, &page)
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, int64(0), page.Criteria.PriceRange.Max)
}

func TestProductHandler_StoreOutageIsUnavailable(t *testing.T) {
	h := newHarness(t, fourteenSneakers()...)
	h.products.Err = errors.New("connection refused")

	assert.Equal(t, http.StatusServiceUnavailable, h.do(t, http.MethodGet, "/api/products", nil, "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, h.do(t, http.MethodGet, "/api/products/search?q=run", nil, "").Code)
}

func TestProductHandler_Search(t *testing.T) {
	h := newHarness(t, fourteenSneakers()...)

	w := h.do(t, http.MethodGet, "/api/products/search?q=runner", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var results []domain.Product
	decodeBody(t, w, &results)
	assert.Len(t, results, 5)

	w = h.do(t, http.MethodGet, "/api/products/search?q=r", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &results)
	assert.Empty(t, results)
}

func TestProductHandler_Latest(t *testing.T) {
	h := newHarness(t, fourteenSneakers()...)

	w := h.do(t, http.MethodGet, "/api/products/latest", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var latest []domain.Product
	decodeBody(t, w, &latest)
	assert.Len(t, latest, 4)

	w = h.do(t, http.MethodGet, "/api/products/latest?limit=2", nil, "")
	decodeBody(t, w, &latest)
	assert.Len(t, latest, 2)
}

func TestProductHandler_GetRecordsRecentlyViewed(t *testing.T) {
	products := fourteenSneakers()
	h := newHarness(t, products...)

	for _, p := range products[:3] {
		require.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/api/products/"+p.ID.String(), nil, "").Code)
	}

	w := h.do(t, http.MethodGet, "/api/recently-viewed", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var entries []domain.RecentlyViewedEntry
	decodeBody(t, w, &entries)
	require.Len(t, entries, 3)
	assert.Equal(t, products[2].ID, entries[0].ID)
	assert.Equal(t, products[0].ID, entries[2].ID)
}

func TestProductHandler_GetUnknownAndMalformedIDs(t *testing.T) {
	h := newHarness(t, fourteenSneakers()...)

	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodGet, "/api/products/"+uuid.NewString(), nil, "").Code)
	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodGet, "/api/products/not-a-uuid", nil, "").Code)
}
