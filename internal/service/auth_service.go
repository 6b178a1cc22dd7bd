package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"admedia-backoffice/internal/model"
	"admedia-backoffice/internal/token"
)

// UserStore is the narrow repository surface the directory and auth services
// depend on; tests provide an in-memory implementation.
type UserStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, u model.User) error
	Update(ctx context.Context, u model.User) error
	UpdatePassword(ctx context.Context, userID string, passwordHash string) error
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error
	UpdateAvatar(ctx context.Context, userID string, avatar string) error
	Count(ctx context.Context) (int, error)
}

type AuthService struct {
	users  UserStore
	tokens *token.Manager
	audit  *AuditService
}

func NewAuthService(users UserStore, tokens *token.Manager, audit *AuditService) *AuthService {
	return &AuthService{users: users, tokens: tokens, audit: audit}
}

// Login verifies credentials and issues a session token. Every rejection path
// collapses into ErrInvalidCredentials so callers cannot distinguish an
// unknown email from a wrong password or a disabled account.
func (s *AuthService) Login(ctx context.Context, email string, password string, clientIP string) (string, model.User, error) {
	email = strings.TrimSpace(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			s.audit.Record(ctx, "auth.login", model.AuditActor{Email: email, IP: clientIP},
				model.AuditDenied, "user", "", nil, "unknown email")
			return "", model.User{}, model.ErrInvalidCredentials
		}
		return "", model.User{}, fmt.Errorf("login lookup: %w", err)
	}

	actor := model.AuditActor{UserID: user.ID, Email: user.Email, Role: string(user.Role), IP: clientIP}

	if !user.CanLogin() {
		s.audit.Record(ctx, "auth.login", actor, model.AuditDenied, "user", user.ID, nil, "account disabled or passwordless")
		return "", model.User{}, model.ErrInvalidCredentials
	}

	if !CheckPassword(password, *user.PasswordHash) {
		s.audit.Record(ctx, "auth.login", actor, model.AuditDenied, "user", user.ID, nil, "password mismatch")
		return "", model.User{}, model.ErrInvalidCredentials
	}

	// Best-effort bookkeeping: a failed timestamp must not fail the login.
	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		slog.Warn("last-login update failed", "user_id", user.ID, "error", err)
	} else {
		user.LastLoginAt = &now
	}

	signed, err := s.tokens.Issue(user)
	if err != nil {
		return "", model.User{}, fmt.Errorf("issue token: %w", err)
	}

	s.audit.Record(ctx, "auth.login", actor, model.AuditOK, "user", user.ID, nil, "")
	return signed, user, nil
}

// CurrentUser resolves the subject of a verified token back to its record.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (model.User, error) {
	return s.users.FindByID(ctx, userID)
}
