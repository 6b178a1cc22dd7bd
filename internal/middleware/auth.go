package middleware

import (
	"context"
	"net/http"
	"strings"

	"admedia-backoffice/internal/model"
	"admedia-backoffice/internal/token"
)

type tokenVerifier interface {
	Verify(tokenString string) *token.Claims
}

type contextKey string

const authClaimsContextKey contextKey = "auth_claims"

type AuthMiddleware struct {
	verifier tokenVerifier
}

func NewAuthMiddleware(verifier tokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth rejects requests without a valid bearer token and stores the
// verified claims on the request context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			writeErrorJSON(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid authorization header")
			return
		}

		claims := m.verifier.Verify(strings.TrimSpace(header[7:]))
		if claims == nil {
			writeErrorJSON(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), authClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			writeErrorJSON(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}

		if !strings.EqualFold(string(claims.Role), string(model.RoleAdministrator)) {
			writeErrorJSON(w, http.StatusForbidden, "FORBIDDEN", "administrator role required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(authClaimsContextKey).(*token.Claims)
	return claims, ok
}
