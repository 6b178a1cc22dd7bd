package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if recovered := recover(); recovered != nil {
				slog.Error("panic recovered", "error", fmt.Sprintf("%v", recovered), "stack", string(debug.Stack()))
				writeErrorJSON(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
