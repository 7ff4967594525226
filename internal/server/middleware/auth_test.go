package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/noteful/internal/models"
	"github.com/iudanet/noteful/internal/server/auth"
	"github.com/iudanet/noteful/internal/server/handlers"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError,
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

// jwtValidator adapts a JWTConfig to TokenValidator
type jwtValidator auth.JWTConfig

func (v jwtValidator) ValidateToken(token string) (*auth.Claims, error) {
	return auth.ValidateToken(auth.JWTConfig(v), token)
}

var testJWTConfig = auth.JWTConfig{
	Secret: []byte("test-secret-key"),
	TTL:    15 * time.Minute,
}

var testUser = &models.User{ID: "user123", Username: "testuser", FullName: "Test User"}

// testHandler is a simple handler that checks context values
func testHandler(t *testing.T, expectedUserID, expectedUsername string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := handlers.GetClaims(r.Context())
		require.True(t, ok, "claims should be in context")
		assert.Equal(t, expectedUserID, claims.User.ID)
		assert.Equal(t, expectedUsername, claims.User.Username)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

func mustNotBeCalled(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("Handler should not be called")
	})
}

func TestAuthMiddleware_Success(t *testing.T) {
	token, _, err := auth.GenerateToken(testJWTConfig, testUser)
	require.NoError(t, err)

	authMiddleware := AuthMiddleware(setupTestLogger(), jwtValidator(testJWTConfig))
	wrappedHandler := authMiddleware(testHandler(t, "user123", "testuser"))

	for _, scheme := range []string{"Bearer", "bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", scheme+" "+token)

		w := httptest.NewRecorder()
		wrappedHandler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "OK", w.Body.String())
	}
}

func TestAuthMiddleware_MissingAuthHeader(t *testing.T) {
	authMiddleware := AuthMiddleware(setupTestLogger(), jwtValidator(testJWTConfig))
	wrappedHandler := authMiddleware(mustNotBeCalled(t))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	wrappedHandler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"status":401,"message":"Unauthorized"}`, w.Body.String())
}

func TestAuthMiddleware_InvalidAuthHeaderFormat(t *testing.T) {
	authMiddleware := AuthMiddleware(setupTestLogger(), jwtValidator(testJWTConfig))
	wrappedHandler := authMiddleware(mustNotBeCalled(t))

	tests := []struct {
		name   string
		header string
	}{
		{name: "Missing Bearer prefix", header: "token123"},
		{name: "Wrong scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "Bearer without token", header: "Bearer "},
		{name: "Only Bearer", header: "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("Authorization", tt.header)

			w := httptest.NewRecorder()
			wrappedHandler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	expired, _, err := auth.GenerateToken(auth.JWTConfig{Secret: testJWTConfig.Secret, TTL: -time.Hour}, testUser)
	require.NoError(t, err)

	wrongSecret, _, err := auth.GenerateToken(auth.JWTConfig{Secret: []byte("wrong-secret")}, testUser)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "Malformed token", token: "invalid.token.here"},
		{name: "Random string", token: "randomstring"},
		{name: "Expired token", token: expired},
		{name: "Token with wrong secret", token: wrongSecret},
	}

	authMiddleware := AuthMiddleware(setupTestLogger(), jwtValidator(testJWTConfig))
	wrappedHandler := authMiddleware(mustNotBeCalled(t))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)

			w := httptest.NewRecorder()
			wrappedHandler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"status":401,"message":"Unauthorized"}`, w.Body.String())
		})
	}
}
