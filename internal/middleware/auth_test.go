package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"admedia-backoffice/internal/model"
	"admedia-backoffice/internal/token"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T) *token.Manager {
	t.Helper()

	manager, err := token.NewManager(testSecret, time.Hour)
	require.NoError(t, err)
	return manager
}

func issueFor(t *testing.T, manager *token.Manager, role model.Role) string {
	t.Helper()

	signed, err := manager.Issue(model.User{ID: "u1", Email: "ana@example.com", Role: role})
	require.NoError(t, err)
	return signed
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	manager := newTestManager(t)
	mw := NewAuthMiddleware(manager)

	var capturedUserID string
	protected := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		capturedUserID = claims.UserID()
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/expenses", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), `"code":"UNAUTHORIZED"`)
	})

	t.Run("non-bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token reaches the handler with claims", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
		req.Header.Set("Authorization", "Bearer "+issueFor(t, manager, model.RoleStandard))
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "u1", capturedUserID)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	manager := newTestManager(t)
	mw := NewAuthMiddleware(manager)

	adminOnly := mw.RequireAuth(mw.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	t.Run("standard user is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.Header.Set("Authorization", "Bearer "+issueFor(t, manager, model.RoleStandard))
		rec := httptest.NewRecorder()
		adminOnly.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Body.String(), `"code":"FORBIDDEN"`)
	})

	t.Run("administrator passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.Header.Set("Authorization", "Bearer "+issueFor(t, manager, model.RoleAdministrator))
		rec := httptest.NewRecorder()
		adminOnly.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("no claims in context", func(t *testing.T) {
		bare := mw.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		rec := httptest.NewRecorder()
		bare.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
