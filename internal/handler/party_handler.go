package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"admedia-backoffice/internal/model"
	"admedia-backoffice/internal/service"
	"admedia-backoffice/pkg/apierror"
)

// PartyHandler serves one counterparty directory; the router mounts one
// instance for clients and one for providers.
type PartyHandler struct {
	service *service.PartyService
}

func NewPartyHandler(service *service.PartyService) *PartyHandler {
	return &PartyHandler{service: service}
}

func (h *PartyHandler) List(w http.ResponseWriter, r *http.Request) {
	parties, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": parties})
}

func (h *PartyHandler) Get(w http.ResponseWriter, r *http.Request) {
	partyID := chi.URLParam(r, "id")
	if partyID == "" {
		writeError(w, apierror.BadRequest("id is required", "id"))
		return
	}

	party, err := h.service.Get(r.Context(), partyID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, party)
}

func (h *PartyHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreatePartyRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	party, err := h.service.Create(r.Context(), payload, actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, party)
}

func (h *PartyHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	partyID := chi.URLParam(r, "id")
	if partyID == "" {
		writeError(w, apierror.BadRequest("id is required", "id"))
		return
	}

	var patch model.PartyPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	party, err := h.service.Update(r.Context(), partyID, patch, actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, party)
}
