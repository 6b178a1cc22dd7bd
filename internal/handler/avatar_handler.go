package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"admedia-backoffice/internal/middleware"
	"admedia-backoffice/internal/model"
	"admedia-backoffice/internal/service"
	"admedia-backoffice/pkg/apierror"
)

type AvatarHandler struct {
	service       *service.AvatarService
	maxUploadSize int64
}

func NewAvatarHandler(service *service.AvatarService, maxUploadSize int64) *AvatarHandler {
	return &AvatarHandler{service: service, maxUploadSize: maxUploadSize}
}

// Upload accepts a multipart form with an "avatar" file field. Users may
// change their own avatar; administrators may change anyone's.
func (h *AvatarHandler) Upload(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	userID := chi.URLParam(r, "id")
	if userID == "" {
		writeError(w, apierror.BadRequest("user id is required", "id"))
		return
	}

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("authentication required"))
		return
	}
	if claims.UserID() != userID && claims.Role != model.RoleAdministrator {
		writeError(w, apierror.Forbidden("cannot change another user's avatar"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		writeError(w, apierror.New("PAYLOAD_TOO_LARGE", "avatar exceeds the upload limit", "",
			http.StatusRequestEntityTooLarge))
		return
	}

	file, _, err := r.FormFile("avatar")
	if err != nil {
		writeError(w, apierror.BadRequest("avatar file field is required", "avatar"))
		return
	}
	defer file.Close()

	user, err := h.service.Save(r.Context(), userID, file, actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user.Sanitize())
}

// Get streams the stored avatar JPEG.
func (h *AvatarHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		writeError(w, apierror.BadRequest("user id is required", "id"))
		return
	}

	file, err := h.service.Open(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "private, max-age=300")
	_, _ = io.Copy(w, file)
}
