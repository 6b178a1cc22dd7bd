package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"admedia-backoffice/internal/middleware"
	"admedia-backoffice/internal/model"
	"admedia-backoffice/internal/service"
	"admedia-backoffice/pkg/apierror"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	if strings.TrimSpace(payload.Email) == "" || payload.Password == "" {
		writeError(w, apierror.BadRequest("email and password are required", ""))
		return
	}

	signed, user, err := h.service.Login(r.Context(), payload.Email, payload.Password, middleware.ExtractClientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.LoginResponse{Token: signed, User: user.Sanitize()})
}

// Me returns the profile behind the presented token. A valid token whose
// subject no longer exists yields 404.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("authentication required"))
		return
	}

	user, err := h.service.CurrentUser(r.Context(), claims.UserID())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user.Sanitize())
}
