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

type ExpenseRepository struct {
	pool *pgxpool.Pool
}

func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

const expenseColumns = `id, description, category, provider_id, invoice_number,
	        amount_cents, currency, expense_date, status, notes,
	        created_by, created_at, updated_at`

func scanExpense(row pgx.Row) (model.Expense, error) {
	var e model.Expense
	err := row.Scan(&e.ID, &e.Description, &e.Category, &e.ProviderID, &e.InvoiceNumber,
		&e.AmountCents, &e.Currency, &e.ExpenseDate, &e.Status, &e.Notes,
		&e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (r *ExpenseRepository) FindByID(ctx context.Context, id string) (model.Expense, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id)

	e, err := scanExpense(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Expense{}, model.ErrExpenseNotFound
	}
	if err != nil {
		return model.Expense{}, fmt.Errorf("find expense by id: %w", err)
	}
	return e, nil
}

func (r *ExpenseRepository) Create(ctx context.Context, e model.Expense) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO expenses (id, description, category, provider_id, invoice_number,
		                       amount_cents, currency, expense_date, status, notes,
		                       created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		e.ID, e.Description, e.Category, e.ProviderID, e.InvoiceNumber,
		e.AmountCents, e.Currency, e.ExpenseDate, e.Status, e.Notes,
		e.CreatedBy, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) Update(ctx context.Context, e model.Expense) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE expenses
		 SET description = $2, category = $3, provider_id = $4, invoice_number = $5,
		     amount_cents = $6, currency = $7, expense_date = $8, status = $9,
		     notes = $10, updated_at = $11
		 WHERE id = $1`,
		e.ID, e.Description, e.Category, e.ProviderID, e.InvoiceNumber,
		e.AmountCents, e.Currency, e.ExpenseDate, e.Status, e.Notes, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrExpenseNotFound
	}
	return nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrExpenseNotFound
	}
	return nil
}

// Query filters, orders, and pages expenses. Filters are ANDed; the search
// term matches description or invoice number.
func (r *ExpenseRepository) Query(ctx context.Context, q model.ExpenseQuery) ([]model.Expense, model.Meta, error) {
	where := make([]string, 0)
	args := make([]any, 0)
	argIdx := 1

	if search := strings.TrimSpace(q.Search); search != "" {
		where = append(where, fmt.Sprintf(
			"(description ILIKE $%d OR invoice_number ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+search+"%")
		argIdx++
	}
	if status := strings.TrimSpace(q.Status); status != "" {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, status)
		argIdx++
	}
	if category := strings.TrimSpace(q.Category); category != "" {
		where = append(where, fmt.Sprintf("lower(category) = lower($%d)", argIdx))
		args = append(args, category)
		argIdx++
	}
	if providerID := strings.TrimSpace(q.ProviderID); providerID != "" {
		where = append(where, fmt.Sprintf("provider_id = $%d", argIdx))
		args = append(args, providerID)
		argIdx++
	}
	if from := strings.TrimSpace(q.From); from != "" {
		where = append(where, fmt.Sprintf("expense_date >= $%d::date", argIdx))
		args = append(args, from)
		argIdx++
	}
	if to := strings.TrimSpace(q.To); to != "" {
		where = append(where, fmt.Sprintf("expense_date <= $%d::date", argIdx))
		args = append(args, to)
		argIdx++
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	page, limit := normalizePage(q.Page, q.Limit)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM expenses %s", whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, model.Meta{}, fmt.Errorf("count expenses: %w", err)
	}

	dataQuery := fmt.Sprintf(
		`SELECT `+expenseColumns+` FROM expenses %s
		 ORDER BY expense_date DESC, created_at DESC
		 LIMIT $%d OFFSET $%d`, whereClause, argIdx, argIdx+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, model.Meta{}, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	items := make([]model.Expense, 0)
	for rows.Next() {
		e, scanErr := scanExpense(rows)
		if scanErr != nil {
			return nil, model.Meta{}, fmt.Errorf("scan expense: %w", scanErr)
		}
		items = append(items, e)
	}

	return items, pageMeta(page, limit, total), rows.Err()
}

func normalizePage(page int, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	return page, limit
}

func pageMeta(page int, limit int, total int) model.Meta {
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return model.Meta{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}
