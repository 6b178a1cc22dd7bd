package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"admedia-backoffice/internal/model"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

const orderColumns = `id, client_id, campaign, medium, placement, start_date, end_date,
	        amount_cents, currency, status, notes, created_by, created_at, updated_at`

func scanOrder(row pgx.Row) (model.AdOrder, error) {
	var o model.AdOrder
	err := row.Scan(&o.ID, &o.ClientID, &o.Campaign, &o.Medium, &o.Placement,
		&o.StartDate, &o.EndDate, &o.AmountCents, &o.Currency, &o.Status,
		&o.Notes, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (model.AdOrder, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM ad_orders WHERE id = $1`, id)

	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.AdOrder{}, model.ErrOrderNotFound
	}
	if err != nil {
		return model.AdOrder{}, fmt.Errorf("find ad order by id: %w", err)
	}
	return o, nil
}

func (r *OrderRepository) Create(ctx context.Context, o model.AdOrder) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO ad_orders (id, client_id, campaign, medium, placement,
		                        start_date, end_date, amount_cents, currency,
		                        status, notes, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		o.ID, o.ClientID, o.Campaign, o.Medium, o.Placement,
		o.StartDate, o.EndDate, o.AmountCents, o.Currency,
		o.Status, o.Notes, o.CreatedBy, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create ad order: %w", err)
	}
	return nil
}

func (r *OrderRepository) Update(ctx context.Context, o model.AdOrder) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE ad_orders
		 SET client_id = $2, campaign = $3, medium = $4, placement = $5,
		     start_date = $6, end_date = $7, amount_cents = $8, currency = $9,
		     status = $10, notes = $11, updated_at = $12
		 WHERE id = $1`,
		o.ID, o.ClientID, o.Campaign, o.Medium, o.Placement,
		o.StartDate, o.EndDate, o.AmountCents, o.Currency,
		o.Status, o.Notes, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update ad order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM ad_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ad order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}

// Query filters, orders, and pages ad orders. The search term matches the
// campaign or placement.
func (r *OrderRepository) Query(ctx context.Context, q model.AdOrderQuery) ([]model.AdOrder, model.Meta, error) {
	where := make([]string, 0)
	args := make([]any, 0)
	argIdx := 1

	if search := strings.TrimSpace(q.Search); search != "" {
		where = append(where, fmt.Sprintf(
			"(campaign ILIKE $%d OR placement ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+search+"%")
		argIdx++
	}
	if status := strings.TrimSpace(q.Status); status != "" {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, status)
		argIdx++
	}
	if medium := strings.TrimSpace(q.Medium); medium != "" {
		where = append(where, fmt.Sprintf("medium = $%d", argIdx))
		args = append(args, medium)
		argIdx++
	}
	if clientID := strings.TrimSpace(q.ClientID); clientID != "" {
		where = append(where, fmt.Sprintf("client_id = $%d", argIdx))
		args = append(args, clientID)
		argIdx++
	}
	if from := strings.TrimSpace(q.From); from != "" {
		where = append(where, fmt.Sprintf("start_date >= $%d::date", argIdx))
		args = append(args, from)
		argIdx++
	}
	if to := strings.TrimSpace(q.To); to != "" {
		where = append(where, fmt.Sprintf("end_date <= $%d::date", argIdx))
		args = append(args, to)
		argIdx++
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	page, limit := normalizePage(q.Page, q.Limit)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM ad_orders %s", whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, model.Meta{}, fmt.Errorf("count ad orders: %w", err)
	}

	dataQuery := fmt.Sprintf(
		`SELECT `+orderColumns+` FROM ad_orders %s
		 ORDER BY start_date DESC, created_at DESC
		 LIMIT $%d OFFSET $%d`, whereClause, argIdx, argIdx+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, model.Meta{}, fmt.Errorf("query ad orders: %w", err)
	}
	defer rows.Close()

	items := make([]model.AdOrder, 0)
	for rows.Next() {
		o, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, model.Meta{}, fmt.Errorf("scan ad order: %w", scanErr)
		}
		items = append(items, o)
	}

	return items, pageMeta(page, limit, total), rows.Err()
}
