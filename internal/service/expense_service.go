package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"admedia-backoffice/internal/model"
	"admedia-backoffice/pkg/apierror"
)

type ExpenseStore interface {
	FindByID(ctx context.Context, id string) (model.Expense, error)
	Create(ctx context.Context, e model.Expense) error
	Update(ctx context.Context, e model.Expense) error
	Delete(ctx context.Context, id string) error
	Query(ctx context.Context, q model.ExpenseQuery) ([]model.Expense, model.Meta, error)
}

type ExpenseService struct {
	expenses ExpenseStore
	parties  PartyLookup
	audit    *AuditService
}

func NewExpenseService(expenses ExpenseStore, parties PartyLookup, audit *AuditService) *ExpenseService {
	return &ExpenseService{expenses: expenses, parties: parties, audit: audit}
}

// resolveProvider normalizes a provider reference. Empty means no provider;
// anything else must name an existing party of kind provider, so bad
// references fail here instead of surfacing as constraint violations.
func (s *ExpenseService) resolveProvider(ctx context.Context, raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}

	id := strings.TrimSpace(*raw)
	if id == "" {
		return nil, nil
	}
	if _, err := s.parties.FindByID(ctx, model.PartyProvider, id); err != nil {
		return nil, apierror.BadRequest("unknown provider", id)
	}
	return &id, nil
}

func (s *ExpenseService) Query(ctx context.Context, q model.ExpenseQuery) ([]model.Expense, model.Meta, error) {
	if q.Status != "" && !model.ExpenseStatus(q.Status).Valid() {
		return nil, model.Meta{}, apierror.BadRequest("invalid status filter", q.Status)
	}
	return s.expenses.Query(ctx, q)
}

func (s *ExpenseService) Get(ctx context.Context, id string) (model.Expense, error) {
	return s.expenses.FindByID(ctx, id)
}

func (s *ExpenseService) Create(ctx context.Context, req model.CreateExpenseRequest, actor model.AuditActor) (model.Expense, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return model.Expense{}, apierror.BadRequest("description is required", "description")
	}
	if req.AmountCents <= 0 {
		return model.Expense{}, apierror.BadRequest("amount must be positive", "amount_cents")
	}

	status := model.ExpenseStatus(strings.TrimSpace(req.Status))
	if status == "" {
		status = model.ExpensePending
	}
	if !status.Valid() {
		return model.Expense{}, apierror.BadRequest("invalid status", req.Status)
	}

	providerID, err := s.resolveProvider(ctx, req.ProviderID)
	if err != nil {
		return model.Expense{}, err
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "USD"
	}

	expenseDate := req.ExpenseDate
	if expenseDate.IsZero() {
		expenseDate = time.Now().UTC()
	}

	now := time.Now().UTC()
	expense := model.Expense{
		ID:            uuid.NewString(),
		Description:   description,
		Category:      strings.TrimSpace(req.Category),
		ProviderID:    providerID,
		InvoiceNumber: strings.TrimSpace(req.InvoiceNumber),
		AmountCents:   req.AmountCents,
		Currency:      currency,
		ExpenseDate:   expenseDate,
		Status:        status,
		Notes:         req.Notes,
		CreatedBy:     actor.UserID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.expenses.Create(ctx, expense); err != nil {
		return model.Expense{}, err
	}

	s.audit.Record(ctx, "expense.create", actor, model.AuditOK, "expense", expense.ID,
		map[string]any{"amount_cents": expense.AmountCents, "currency": expense.Currency}, "")
	return expense, nil
}

func (s *ExpenseService) Update(ctx context.Context, id string, patch model.ExpensePatch, actor model.AuditActor) (model.Expense, error) {
	expense, err := s.expenses.FindByID(ctx, id)
	if err != nil {
		return model.Expense{}, err
	}

	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		if description == "" {
			return model.Expense{}, apierror.BadRequest("description cannot be empty", "description")
		}
		expense.Description = description
	}
	if patch.Category != nil {
		expense.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.ProviderID != nil {
		providerID, err := s.resolveProvider(ctx, patch.ProviderID)
		if err != nil {
			return model.Expense{}, err
		}
		expense.ProviderID = providerID
	}
	if patch.InvoiceNumber != nil {
		expense.InvoiceNumber = strings.TrimSpace(*patch.InvoiceNumber)
	}
	if patch.AmountCents != nil {
		if *patch.AmountCents <= 0 {
			return model.Expense{}, apierror.BadRequest("amount must be positive", "amount_cents")
		}
		expense.AmountCents = *patch.AmountCents
	}
	if patch.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*patch.Currency))
		if currency == "" {
			return model.Expense{}, apierror.BadRequest("currency cannot be empty", "currency")
		}
		expense.Currency = currency
	}
	if patch.ExpenseDate != nil {
		expense.ExpenseDate = *patch.ExpenseDate
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return model.Expense{}, apierror.BadRequest("invalid status", string(*patch.Status))
		}
		expense.Status = *patch.Status
	}
	if patch.Notes != nil {
		expense.Notes = *patch.Notes
	}
	expense.UpdatedAt = time.Now().UTC()

	if err := s.expenses.Update(ctx, expense); err != nil {
		return model.Expense{}, err
	}

	s.audit.Record(ctx, "expense.update", actor, model.AuditOK, "expense", expense.ID, nil, "")
	return expense, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id string, actor model.AuditActor) error {
	if err := s.expenses.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, "expense.delete", actor, model.AuditOK, "expense", id, nil, "")
	return nil
}
