package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"admedia-backoffice/internal/model"
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Log(ctx context.Context, entry model.AuditEntry) error {
	var detailJSON []byte
	if entry.Detail != nil {
		var err error
		detailJSON, err = json.Marshal(entry.Detail)
		if err != nil {
			return fmt.Errorf("marshal audit detail: %w", err)
		}
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_entries
		 (action, occurred_at, actor_id, actor_email, actor_role, actor_ip,
		  status, entity, entity_id, detail, error_text)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		entry.Action, entry.OccurredAt,
		entry.Actor.UserID, entry.Actor.Email, entry.Actor.Role, entry.Actor.IP,
		entry.Status, entry.Entity, entry.EntityID, detailJSON, entry.Error)
	if err != nil {
		return fmt.Errorf("log audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) Query(ctx context.Context, q model.AuditQuery) ([]model.AuditEntry, model.Meta, error) {
	where := make([]string, 0)
	args := make([]any, 0)
	argIdx := 1

	if action := strings.TrimSpace(q.Action); action != "" {
		where = append(where, fmt.Sprintf("lower(action) = lower($%d)", argIdx))
		args = append(args, action)
		argIdx++
	}
	if actorID := strings.TrimSpace(q.ActorID); actorID != "" {
		where = append(where, fmt.Sprintf("actor_id = $%d", argIdx))
		args = append(args, actorID)
		argIdx++
	}
	if status := strings.TrimSpace(q.Status); status != "" {
		where = append(where, fmt.Sprintf("lower(status) = lower($%d)", argIdx))
		args = append(args, status)
		argIdx++
	}
	if entity := strings.TrimSpace(q.Entity); entity != "" {
		where = append(where, fmt.Sprintf("lower(entity) = lower($%d)", argIdx))
		args = append(args, entity)
		argIdx++
	}
	if from := strings.TrimSpace(q.From); from != "" {
		where = append(where, fmt.Sprintf("occurred_at >= $%d::timestamptz", argIdx))
		args = append(args, from)
		argIdx++
	}
	if to := strings.TrimSpace(q.To); to != "" {
		where = append(where, fmt.Sprintf("occurred_at <= $%d::timestamptz", argIdx))
		args = append(args, to)
		argIdx++
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	page, limit := normalizePage(q.Page, q.Limit)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM audit_entries %s", whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, model.Meta{}, fmt.Errorf("count audit entries: %w", err)
	}

	dataQuery := fmt.Sprintf(
		`SELECT action, occurred_at, actor_id, actor_email, actor_role, actor_ip,
		        status, entity, entity_id, detail, error_text
		 FROM audit_entries %s
		 ORDER BY occurred_at DESC
		 LIMIT $%d OFFSET $%d`, whereClause, argIdx, argIdx+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, model.Meta{}, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.AuditEntry, 0)
	for rows.Next() {
		var e model.AuditEntry
		var detailJSON []byte

		if err := rows.Scan(
			&e.Action, &e.OccurredAt,
			&e.Actor.UserID, &e.Actor.Email, &e.Actor.Role, &e.Actor.IP,
			&e.Status, &e.Entity, &e.EntityID, &detailJSON, &e.Error,
		); err != nil {
			return nil, model.Meta{}, fmt.Errorf("scan audit entry: %w", err)
		}

		if len(detailJSON) > 0 {
			var detail any
			if jsonErr := json.Unmarshal(detailJSON, &detail); jsonErr == nil {
				e.Detail = detail
			}
		}

		entries = append(entries, e)
	}

	return entries, pageMeta(page, limit, total), rows.Err()
}
