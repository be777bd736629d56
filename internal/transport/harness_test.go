package transport

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"shoe-storefront/internal/checkout"
	"shoe-storefront/internal/domain"
	"shoe-storefront/internal/events"
	"shoe-storefront/internal/middleware"
	"shoe-storefront/internal/repository/repotest"
	"shoe-storefront/internal/service"
	"shoe-storefront/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "transport-test-secret"

type harness struct {
	router   chi.Router
	products *repotest.ProductRepository
	orders   *repotest.OrderRepository
	identity service.IdentityService
	store    storage.Store
	session  string
}

func newHarness(t *testing.T, products ...*domain.Product) *harness {
	return newHarnessWithStore(t, storage.NewMemoryStore(), products...)
}

func newHarnessWithStore(t *testing.T, store storage.Store, products ...*domain.Product) *harness {
	t.Helper()
	logger := zap.NewNop()

	h := &harness{
		products: repotest.NewProductRepository(products...),
		orders:   repotest.NewOrderRepository(),
		store:    store,
		session:  uuid.NewString(),
	}
	h.identity = service.NewIdentityService(repotest.NewUserRepository(), repotest.NewRefreshTokenRepository(), service.TokenConfig{Secret: testSecret})

	catalogSvc := service.NewCatalogService(h.products, service.DefaultCatalogSettings(), logger)
	adminSvc := service.NewAdminService(h.products, h.orders, logger)
	checkoutSvc := checkout.NewService(h.orders, events.NoopPublisher{}, logger)

	r := chi.NewRouter()
	r.Use(middleware.SessionMiddleware(time.Hour, false, logger))
	auth := middleware.AuthMiddleware(testSecret, logger)

	NewUserHandler(h.identity, adminSvc, logger).RegisterRoutes(r, auth)
	NewProductHandler(catalogSvc, store, 0, logger).RegisterRoutes(r)
	NewCartHandler(catalogSvc, store, logger).RegisterRoutes(r)
	NewShelfHandler(catalogSvc, store, 0, logger).RegisterRoutes(r)
	NewCheckoutHandler(checkoutSvc, store, logger).RegisterRoutes(r)
	NewAdminHandler(catalogSvc, adminSvc, logger).RegisterRoutes(r, auth, middleware.RequireAdmin(logger))

	h.router = r
	return h
}

// do sends a request in the harness session. body may be nil, a string or a value to encode.
func (h *harness) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var raw []byte
	switch b := body.(type) {
	case nil:
	case string:
		raw = []byte(b)
	default:
		var err error
		raw, err = json.Marshal(b)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SessionHeader, h.session)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func errorFields(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp middleware.ErrorResponse
	decodeBody(t, w, &resp)
	fields, _ := resp.Error.Details["fields"].(map[string]interface{})
	return fields
}

func tokenFor(t *testing.T, role, email string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uuid.NewString(),
		"email":   email,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func sneaker(name, brand string, price int64, sizes ...string) *domain.Product {
	return &domain.Product{
		ID:     uuid.New(),
		Name:   name,
		Brand:  brand,
		Type:   domain.TypeSneakers,
		Gender: domain.GenderUnisex,
		Price:  price,
		Stock:  10,
		Status: domain.StatusInStock,
		Sizes:  sizes,
		Image:  "/img/" + name + ".jpg",
	}
}
