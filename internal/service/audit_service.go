package service

import (
	"context"
	"log/slog"
	"time"

	"admedia-backoffice/internal/model"
)

// AuditStore is the persistence surface the audit trail needs.
type AuditStore interface {
	Log(ctx context.Context, entry model.AuditEntry) error
	Query(ctx context.Context, q model.AuditQuery) ([]model.AuditEntry, model.Meta, error)
}

type AuditService struct {
	store AuditStore
}

func NewAuditService(store AuditStore) *AuditService {
	return &AuditService{store: store}
}

// Record writes an audit entry. Failures are logged and swallowed: the trail
// must never fail the request that produced it. The write outlives request
// cancellation so denied/failed attempts still land in the trail.
func (s *AuditService) Record(ctx context.Context, action string, actor model.AuditActor, status string, entity string, entityID string, detail any, errText string) {
	if s == nil || s.store == nil {
		return
	}

	entry := model.AuditEntry{
		Action:     action,
		OccurredAt: time.Now().UTC(),
		Actor:      actor,
		Status:     status,
		Entity:     entity,
		EntityID:   entityID,
		Detail:     detail,
		Error:      errText,
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.store.Log(writeCtx, entry); err != nil {
		slog.Warn("audit write failed", "action", action, "error", err)
	}
}

func (s *AuditService) Query(ctx context.Context, q model.AuditQuery) ([]model.AuditEntry, model.Meta, error) {
	return s.store.Query(ctx, q)
}
