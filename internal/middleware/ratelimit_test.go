package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitMiddleware_UnlimitedGeneral(t *testing.T) {
	// generalRPM = 0 falls back to the default; authRPM = 1 stays tight.
	mw := NewRateLimitMiddleware(0, 1)

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := mw.Handler(nextHandler)

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest("GET", "/api/expenses", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("Request %d failed with status %d", i, rec.Code)
		}
	}
}

func TestRateLimitMiddleware_LimitedAuth(t *testing.T) {
	mw := NewRateLimitMiddleware(0, 1)

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := mw.Handler(nextHandler)

	// With burst 1, the first login attempt consumes the only token.
	req1 := httptest.NewRequest("POST", "/api/auth/login", nil)
	rec1 := httptest.NewRecorder()
	handler.ServeHTTP(rec1, req1)
	assert.Equal(t, http.StatusOK, rec1.Code)

	req2 := httptest.NewRequest("POST", "/api/auth/login", nil)
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req2)
	assert.Equal(t, http.StatusTooManyRequests, rec2.Code)
}

func TestRateLimitMiddleware_PerClientBuckets(t *testing.T) {
	mw := NewRateLimitMiddleware(0, 1)

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := mw.Handler(nextHandler)

	first := httptest.NewRequest("POST", "/api/auth/login", nil)
	first.Header.Set("X-Forwarded-For", "203.0.113.10")
	rec1 := httptest.NewRecorder()
	handler.ServeHTTP(rec1, first)
	assert.Equal(t, http.StatusOK, rec1.Code)

	// A different client still has its own full bucket.
	second := httptest.NewRequest("POST", "/api/auth/login", nil)
	second.Header.Set("X-Forwarded-For", "203.0.113.11")
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, second)
	assert.Equal(t, http.StatusOK, rec2.Code)
}

func TestExtractClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.0.2.1:50000"
	assert.Equal(t, "192.0.2.1", ExtractClientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", ExtractClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", ExtractClientIP(req))
}
