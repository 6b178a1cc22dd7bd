package handler

import (
	"net/http"

	"admedia-backoffice/internal/model"
	"admedia-backoffice/internal/service"
)

type AuditHandler struct {
	service *service.AuditService
}

func NewAuditHandler(service *service.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := model.AuditQuery{
		Action:  query.Get("action"),
		ActorID: query.Get("actor_id"),
		Status:  query.Get("status"),
		Entity:  query.Get("entity"),
		From:    query.Get("from"),
		To:      query.Get("to"),
		Page:    parseIntOrDefault(query.Get("page"), 1),
		Limit:   parseIntOrDefault(query.Get("limit"), 50),
	}

	entries, meta, err := h.service.Query(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.Page[model.AuditEntry]{Items: entries, Meta: meta})
}
