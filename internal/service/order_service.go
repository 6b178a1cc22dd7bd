package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"admedia-backoffice/internal/model"
	"admedia-backoffice/pkg/apierror"
)

type OrderStore interface {
	FindByID(ctx context.Context, id string) (model.AdOrder, error)
	Create(ctx context.Context, o model.AdOrder) error
	Update(ctx context.Context, o model.AdOrder) error
	Delete(ctx context.Context, id string) error
	Query(ctx context.Context, q model.AdOrderQuery) ([]model.AdOrder, model.Meta, error)
}

// PartyLookup resolves counterparty references when validating orders.
type PartyLookup interface {
	FindByID(ctx context.Context, kind model.PartyKind, id string) (model.Party, error)
}

type OrderService struct {
	orders  OrderStore
	parties PartyLookup
	audit   *AuditService
}

func NewOrderService(orders OrderStore, parties PartyLookup, audit *AuditService) *OrderService {
	return &OrderService{orders: orders, parties: parties, audit: audit}
}

func (s *OrderService) Query(ctx context.Context, q model.AdOrderQuery) ([]model.AdOrder, model.Meta, error) {
	if q.Status != "" && !model.OrderStatus(q.Status).Valid() {
		return nil, model.Meta{}, apierror.BadRequest("invalid status filter", q.Status)
	}
	if q.Medium != "" && !model.Medium(q.Medium).Valid() {
		return nil, model.Meta{}, apierror.BadRequest("invalid medium filter", q.Medium)
	}
	return s.orders.Query(ctx, q)
}

func (s *OrderService) Get(ctx context.Context, id string) (model.AdOrder, error) {
	return s.orders.FindByID(ctx, id)
}

func (s *OrderService) Create(ctx context.Context, req model.CreateOrderRequest, actor model.AuditActor) (model.AdOrder, error) {
	campaign := strings.TrimSpace(req.Campaign)
	if campaign == "" {
		return model.AdOrder{}, apierror.BadRequest("campaign is required", "campaign")
	}

	clientID := strings.TrimSpace(req.ClientID)
	if clientID == "" {
		return model.AdOrder{}, apierror.BadRequest("client_id is required", "client_id")
	}
	if _, err := s.parties.FindByID(ctx, model.PartyClient, clientID); err != nil {
		return model.AdOrder{}, apierror.BadRequest("unknown client", clientID)
	}

	medium := model.Medium(strings.TrimSpace(req.Medium))
	if !medium.Valid() {
		return model.AdOrder{}, apierror.BadRequest("invalid medium", req.Medium)
	}

	if req.AmountCents <= 0 {
		return model.AdOrder{}, apierror.BadRequest("amount must be positive", "amount_cents")
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() || req.EndDate.Before(req.StartDate) {
		return model.AdOrder{}, apierror.BadRequest("start_date must not be after end_date", "")
	}

	status := model.OrderStatus(strings.TrimSpace(req.Status))
	if status == "" {
		status = model.OrderDraft
	}
	if !status.Valid() {
		return model.AdOrder{}, apierror.BadRequest("invalid status", req.Status)
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "USD"
	}

	now := time.Now().UTC()
	order := model.AdOrder{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		Campaign:    campaign,
		Medium:      medium,
		Placement:   strings.TrimSpace(req.Placement),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		AmountCents: req.AmountCents,
		Currency:    currency,
		Status:      status,
		Notes:       req.Notes,
		CreatedBy:   actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return model.AdOrder{}, err
	}

	s.audit.Record(ctx, "order.create", actor, model.AuditOK, "order", order.ID,
		map[string]any{"client_id": order.ClientID, "campaign": order.Campaign}, "")
	return order, nil
}

func (s *OrderService) Update(ctx context.Context, id string, patch model.AdOrderPatch, actor model.AuditActor) (model.AdOrder, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return model.AdOrder{}, err
	}

	if patch.ClientID != nil {
		clientID := strings.TrimSpace(*patch.ClientID)
		if _, err := s.parties.FindByID(ctx, model.PartyClient, clientID); err != nil {
			return model.AdOrder{}, apierror.BadRequest("unknown client", clientID)
		}
		order.ClientID = clientID
	}
	if patch.Campaign != nil {
		campaign := strings.TrimSpace(*patch.Campaign)
		if campaign == "" {
			return model.AdOrder{}, apierror.BadRequest("campaign cannot be empty", "campaign")
		}
		order.Campaign = campaign
	}
	if patch.Medium != nil {
		if !patch.Medium.Valid() {
			return model.AdOrder{}, apierror.BadRequest("invalid medium", string(*patch.Medium))
		}
		order.Medium = *patch.Medium
	}
	if patch.Placement != nil {
		order.Placement = strings.TrimSpace(*patch.Placement)
	}
	if patch.StartDate != nil {
		order.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		order.EndDate = *patch.EndDate
	}
	if order.EndDate.Before(order.StartDate) {
		return model.AdOrder{}, apierror.BadRequest("start_date must not be after end_date", "")
	}
	if patch.AmountCents != nil {
		if *patch.AmountCents <= 0 {
			return model.AdOrder{}, apierror.BadRequest("amount must be positive", "amount_cents")
		}
		order.AmountCents = *patch.AmountCents
	}
	if patch.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*patch.Currency))
		if currency == "" {
			return model.AdOrder{}, apierror.BadRequest("currency cannot be empty", "currency")
		}
		order.Currency = currency
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return model.AdOrder{}, apierror.BadRequest("invalid status", string(*patch.Status))
		}
		order.Status = *patch.Status
	}
	if patch.Notes != nil {
		order.Notes = *patch.Notes
	}
	order.UpdatedAt = time.Now().UTC()

	if err := s.orders.Update(ctx, order); err != nil {
		return model.AdOrder{}, err
	}

	s.audit.Record(ctx, "order.update", actor, model.AuditOK, "order", order.ID, nil, "")
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id string, actor model.AuditActor) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, "order.delete", actor, model.AuditOK, "order", id, nil, "")
	return nil
}
