package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// Requests without an Authorization header never reach the handler
func TestProperty_ProtectedEndpointsRejectMissingTokens(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("requests without authorization header are rejected", prop.ForAll(
		func(pathSuffix string, method string) bool {
			handler := AuthMiddleware(testSecret, zap.NewNop())(okHandler())

			req := httptest.NewRequest(method, "/api/users/"+pathSuffix, nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			return w.Code == http.StatusUnauthorized
		},
		gen.AlphaString(),
		gen.OneConstOf("GET", "POST", "PATCH", "DELETE"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Arbitrary bearer values and headers without the Bearer scheme are rejected
func TestProperty_MalformedTokensAreRejected(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("garbage tokens are rejected with 401", prop.ForAll(
		func(token string, withScheme bool) bool {
			handler := AuthMiddleware(testSecret, zap.NewNop())(okHandler())

			header := token
			if withScheme {
				header = "Bearer " + token
			}
			req := httptest.NewRequest("GET", "/api/users/me", nil)
			req.Header.Set("Authorization", header)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			return w.Code == http.StatusUnauthorized
		},
		gen.AnyString(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Valid tokens put the caller's identity on the request context
func TestProperty_ValidTokensAllowProcessing(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("claims reach the handler", prop.ForAll(
		func(role string, email string) bool {
			userID := uuid.New()
			token := signToken(t, jwt.MapClaims{
				"user_id": userID.String(),
				"role":    role,
				"email":   email,
				"exp":     time.Now().Add(time.Hour).Unix(),
			}, testSecret)

			var gotID uuid.UUID
			var gotRole, gotEmail string
			handler := AuthMiddleware(testSecret, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotID, _ = GetUserID(r.Context())
				gotRole, _ = GetUserRole(r.Context())
				gotEmail, _ = GetUserEmail(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("GET", "/api/users/me", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			return w.Code == http.StatusOK && gotID == userID && gotRole == role && gotEmail == email
		},
		gen.OneConstOf("customer", "admin"),
		gen.RegexMatch(`[a-z]{3,8}@[a-z]{3,8}\.com`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestAuthMiddleware_RejectsExpiredWrongSecretAndBadClaims(t *testing.T) {
	tests := []struct {
		name   string
		claims jwt.MapClaims
		secret string
	}{
		{
			name:   "expired",
			claims: jwt.MapClaims{"user_id": uuid.NewString(), "role": "customer", "exp": time.Now().Add(-time.Hour).Unix()},
			secret: testSecret,
		},
		{
			name:   "wrong secret",
			claims: jwt.MapClaims{"user_id": uuid.NewString(), "role": "customer", "exp": time.Now().Add(time.Hour).Unix()},
			secret: "another-secret",
		},
		{
			name:   "user id is not a uuid",
			claims: jwt.MapClaims{"user_id": "42", "role": "customer", "exp": time.Now().Add(time.Hour).Unix()},
			secret: testSecret,
		},
		{
			name:   "missing role",
			claims: jwt.MapClaims{"user_id": uuid.NewString(), "exp": time.Now().Add(time.Hour).Unix()},
			secret: testSecret,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := AuthMiddleware(testSecret, zap.NewNop())(okHandler())
			req := httptest.NewRequest("GET", "/api/users/me", nil)
			req.Header.Set("Authorization", "Bearer "+signToken(t, tt.claims, tt.secret))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		expect int
	}{
		{"admin", "admin", http.StatusOK},
		{"customer", "customer", http.StatusForbidden},
		{"anonymous", "", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := AuthMiddleware(testSecret, zap.NewNop())(RequireAdmin(zap.NewNop())(okHandler()))
			req := httptest.NewRequest("GET", "/api/admin/stats", nil)
			if tt.role != "" {
				req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{
					"user_id": uuid.NewString(),
					"role":    tt.role,
					"exp":     time.Now().Add(time.Hour).Unix(),
				}, testSecret))
			} else {
				chain = RequireAdmin(zap.NewNop())(okHandler())
			}
			w := httptest.NewRecorder()

			chain.ServeHTTP(w, req)

			assert.Equal(t, tt.expect, w.Code)
		})
	}
}
