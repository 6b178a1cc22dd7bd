package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"admedia-backoffice/internal/model"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, first_name, last_name, password_hash, role, active,
	        avatar, metadata, created_at, updated_at, last_login_at`

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	var metadata []byte
	err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash,
		&u.Role, &u.Active, &u.Avatar, &metadata, &u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt)
	if err != nil {
		return model.User{}, err
	}

	if len(metadata) > 0 {
		if jsonErr := json.Unmarshal(metadata, &u.Metadata); jsonErr != nil {
			return model.User{}, fmt.Errorf("decode user metadata: %w", jsonErr)
		}
	}

	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (model.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`,
		strings.TrimSpace(email))

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY lower(email)`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		u, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan user: %w", scanErr)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Create(ctx context.Context, u model.User) error {
	var metadata []byte
	if u.Metadata != nil {
		var err error
		metadata, err = json.Marshal(u.Metadata)
		if err != nil {
			return fmt.Errorf("encode user metadata: %w", err)
		}
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, email, first_name, last_name, password_hash, role,
		                    active, avatar, metadata, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		u.ID, u.Email, u.FirstName, u.LastName, u.PasswordHash, u.Role,
		u.Active, u.Avatar, metadata, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrUserAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u model.User) error {
	var metadata []byte
	if u.Metadata != nil {
		var err error
		metadata, err = json.Marshal(u.Metadata)
		if err != nil {
			return fmt.Errorf("encode user metadata: %w", err)
		}
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE users
		 SET email = $2, first_name = $3, last_name = $4, role = $5,
		     active = $6, avatar = $7, metadata = $8, updated_at = $9
		 WHERE id = $1`,
		u.ID, u.Email, u.FirstName, u.LastName, u.Role,
		u.Active, u.Avatar, metadata, u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrUserAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`,
		userID, passwordHash, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET last_login_at = $2 WHERE id = $1`,
		userID, at)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, userID string, avatar string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET avatar = $2, updated_at = $3 WHERE id = $1`,
		userID, avatar, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update avatar: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}
