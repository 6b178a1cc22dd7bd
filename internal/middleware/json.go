package middleware

import (
	"encoding/json"
	"net/http"

	"admedia-backoffice/internal/model"
)

// writeErrorJSON emits the standard error envelope for responses produced
// before a request ever reaches a handler.
func writeErrorJSON(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(model.ErrorResponse{
		Error: &model.APIError{
			Code:    code,
			Message: message,
		},
	})
}
