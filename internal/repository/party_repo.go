package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"admedia-backoffice/internal/model"
)

type PartyRepository struct {
	pool *pgxpool.Pool
}

func NewPartyRepository(pool *pgxpool.Pool) *PartyRepository {
	return &PartyRepository{pool: pool}
}

const partyColumns = `id, kind, name, tax_id, email, phone, active, created_at, updated_at`

func scanParty(row pgx.Row) (model.Party, error) {
	var p model.Party
	err := row.Scan(&p.ID, &p.Kind, &p.Name, &p.TaxID, &p.Email, &p.Phone,
		&p.Active, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PartyRepository) FindByID(ctx context.Context, kind model.PartyKind, id string) (model.Party, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+partyColumns+` FROM parties WHERE id = $1 AND kind = $2`, id, kind)

	p, err := scanParty(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Party{}, model.ErrPartyNotFound
	}
	if err != nil {
		return model.Party{}, fmt.Errorf("find party by id: %w", err)
	}
	return p, nil
}

func (r *PartyRepository) List(ctx context.Context, kind model.PartyKind) ([]model.Party, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+partyColumns+` FROM parties WHERE kind = $1 ORDER BY lower(name)`, kind)
	if err != nil {
		return nil, fmt.Errorf("list parties: %w", err)
	}
	defer rows.Close()

	parties := make([]model.Party, 0)
	for rows.Next() {
		p, scanErr := scanParty(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan party: %w", scanErr)
		}
		parties = append(parties, p)
	}
	return parties, rows.Err()
}

func (r *PartyRepository) Create(ctx context.Context, p model.Party) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO parties (id, kind, name, tax_id, email, phone, active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Kind, p.Name, p.TaxID, p.Email, p.Phone, p.Active, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrPartyExists
		}
		return fmt.Errorf("create party: %w", err)
	}
	return nil
}

func (r *PartyRepository) Update(ctx context.Context, p model.Party) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE parties
		 SET name = $2, tax_id = $3, email = $4, phone = $5, active = $6, updated_at = $7
		 WHERE id = $1`,
		p.ID, p.Name, p.TaxID, p.Email, p.Phone, p.Active, p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrPartyExists
		}
		return fmt.Errorf("update party: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPartyNotFound
	}
	return nil
}
