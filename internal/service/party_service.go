package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"admedia-backoffice/internal/model"
	"admedia-backoffice/pkg/apierror"
)

type PartyStore interface {
	FindByID(ctx context.Context, kind model.PartyKind, id string) (model.Party, error)
	List(ctx context.Context, kind model.PartyKind) ([]model.Party, error)
	Create(ctx context.Context, p model.Party) error
	Update(ctx context.Context, p model.Party) error
}

// PartyService manages one counterparty directory (clients or providers);
// the app wires two instances over the same table.
type PartyService struct {
	kind    model.PartyKind
	parties PartyStore
	audit   *AuditService
}

func NewPartyService(kind model.PartyKind, parties PartyStore, audit *AuditService) *PartyService {
	return &PartyService{kind: kind, parties: parties, audit: audit}
}

func (s *PartyService) List(ctx context.Context) ([]model.Party, error) {
	return s.parties.List(ctx, s.kind)
}

func (s *PartyService) Get(ctx context.Context, id string) (model.Party, error) {
	return s.parties.FindByID(ctx, s.kind, id)
}

func (s *PartyService) Create(ctx context.Context, req model.CreatePartyRequest, actor model.AuditActor) (model.Party, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.Party{}, apierror.BadRequest("name is required", "name")
	}

	now := time.Now().UTC()
	party := model.Party{
		ID:        uuid.NewString(),
		Kind:      s.kind,
		Name:      name,
		TaxID:     strings.TrimSpace(req.TaxID),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.parties.Create(ctx, party); err != nil {
		if errors.Is(err, model.ErrPartyExists) {
			return model.Party{}, apierror.New("BAD_REQUEST",
				string(s.kind)+" already exists", name, http.StatusBadRequest)
		}
		return model.Party{}, err
	}

	s.audit.Record(ctx, string(s.kind)+".create", actor, model.AuditOK, string(s.kind), party.ID,
		map[string]any{"name": party.Name}, "")
	return party, nil
}

func (s *PartyService) Update(ctx context.Context, id string, patch model.PartyPatch, actor model.AuditActor) (model.Party, error) {
	party, err := s.parties.FindByID(ctx, s.kind, id)
	if err != nil {
		return model.Party{}, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return model.Party{}, apierror.BadRequest("name cannot be empty", "name")
		}
		party.Name = name
	}
	if patch.TaxID != nil {
		party.TaxID = strings.TrimSpace(*patch.TaxID)
	}
	if patch.Email != nil {
		party.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.Phone != nil {
		party.Phone = strings.TrimSpace(*patch.Phone)
	}
	if patch.Active != nil {
		party.Active = *patch.Active
	}
	party.UpdatedAt = time.Now().UTC()

	if err := s.parties.Update(ctx, party); err != nil {
		if errors.Is(err, model.ErrPartyExists) {
			return model.Party{}, apierror.New("BAD_REQUEST",
				string(s.kind)+" already exists", party.Name, http.StatusBadRequest)
		}
		return model.Party{}, err
	}

	s.audit.Record(ctx, string(s.kind)+".update", actor, model.AuditOK, string(s.kind), party.ID, nil, "")
	return party, nil
}
