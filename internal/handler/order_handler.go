package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"admedia-backoffice/internal/model"
	"admedia-backoffice/internal/service"
	"admedia-backoffice/pkg/apierror"
)

type OrderHandler struct {
	service *service.OrderService
}

func NewOrderHandler(service *service.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := model.AdOrderQuery{
		Search:   query.Get("q"),
		Status:   query.Get("status"),
		Medium:   query.Get("medium"),
		ClientID: query.Get("client_id"),
		From:     query.Get("from"),
		To:       query.Get("to"),
		Page:     parseIntOrDefault(query.Get("page"), 1),
		Limit:    parseIntOrDefault(query.Get("limit"), 50),
	}

	orders, meta, err := h.service.Query(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.Page[model.AdOrder]{Items: orders, Meta: meta})
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		writeError(w, apierror.BadRequest("order id is required", "id"))
		return
	}

	order, err := h.service.Get(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	order, err := h.service.Create(r.Context(), payload, actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		writeError(w, apierror.BadRequest("order id is required", "id"))
		return
	}

	var patch model.AdOrderPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	order, err := h.service.Update(r.Context(), orderID, patch, actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		writeError(w, apierror.BadRequest("order id is required", "id"))
		return
	}

	if err := h.service.Delete(r.Context(), orderID, actorFromRequest(r)); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}
