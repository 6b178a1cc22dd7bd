package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"admedia-backoffice/internal/model"
	"admedia-backoffice/internal/service"
	"admedia-backoffice/pkg/apierror"
)

type ExpenseHandler struct {
	service *service.ExpenseService
}

func NewExpenseHandler(service *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := model.ExpenseQuery{
		Search:     query.Get("q"),
		Status:     query.Get("status"),
		Category:   query.Get("category"),
		ProviderID: query.Get("provider_id"),
		From:       query.Get("from"),
		To:         query.Get("to"),
		Page:       parseIntOrDefault(query.Get("page"), 1),
		Limit:      parseIntOrDefault(query.Get("limit"), 50),
	}

	expenses, meta, err := h.service.Query(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.Page[model.Expense]{Items: expenses, Meta: meta})
}

func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	expenseID := chi.URLParam(r, "id")
	if expenseID == "" {
		writeError(w, apierror.BadRequest("expense id is required", "id"))
		return
	}

	expense, err := h.service.Get(r.Context(), expenseID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, expense)
}

func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	expense, err := h.service.Create(r.Context(), payload, actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, expense)
}

func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	expenseID := chi.URLParam(r, "id")
	if expenseID == "" {
		writeError(w, apierror.BadRequest("expense id is required", "id"))
		return
	}

	var patch model.ExpensePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	expense, err := h.service.Update(r.Context(), expenseID, patch, actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, expense)
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	expenseID := chi.URLParam(r, "id")
	if expenseID == "" {
		writeError(w, apierror.BadRequest("expense id is required", "id"))
		return
	}

	if err := h.service.Delete(r.Context(), expenseID, actorFromRequest(r)); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}
