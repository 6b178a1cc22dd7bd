package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"admedia-backoffice/internal/model"
	"admedia-backoffice/pkg/apierror"
)

const minPasswordLength = 8

type UserService struct {
	users UserStore
	audit *AuditService
}

func NewUserService(users UserStore, audit *AuditService) *UserService {
	return &UserService{users: users, audit: audit}
}

func (s *UserService) List(ctx context.Context) ([]model.Profile, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]model.Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Sanitize())
	}
	return profiles, nil
}

func (s *UserService) Get(ctx context.Context, id string) (model.User, error) {
	return s.users.FindByID(ctx, id)
}

// Create validates input, hashes the password, and inserts the record.
// Duplicate emails surface as a generic creation failure; the constraint
// detail stays server-side.
func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest, actor model.AuditActor) (model.User, error) {
	email := strings.TrimSpace(req.Email)
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)

	if email == "" || !strings.Contains(email, "@") {
		return model.User{}, apierror.BadRequest("a valid email is required", "email")
	}
	if firstName == "" || lastName == "" {
		return model.User{}, apierror.BadRequest("first and last name are required", "")
	}
	if len(req.Password) < minPasswordLength {
		return model.User{}, apierror.BadRequest(
			fmt.Sprintf("password must be at least %d characters", minPasswordLength), "password")
	}

	role, ok := model.ParseRole(strings.TrimSpace(req.UserType))
	if !ok {
		return model.User{}, apierror.BadRequest("invalid user type", req.UserType)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: &hash,
		Role:         role,
		Active:       true,
		Metadata:     req.Metadata,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrUserAlreadyExists) {
			s.audit.Record(ctx, "user.create", actor, model.AuditFailed, "user", "", nil, "duplicate email")
			return model.User{}, apierror.New("BAD_REQUEST", "could not create user", "", http.StatusBadRequest)
		}
		return model.User{}, err
	}

	s.audit.Record(ctx, "user.create", actor, model.AuditOK, "user", user.ID,
		map[string]any{"email": user.Email, "role": user.Role}, "")
	return user, nil
}

// Update applies a partial patch; nil fields keep their current value.
func (s *UserService) Update(ctx context.Context, id string, patch model.UserPatch, actor model.AuditActor) (model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}

	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if email == "" || !strings.Contains(email, "@") {
			return model.User{}, apierror.BadRequest("a valid email is required", "email")
		}
		user.Email = email
	}
	if patch.FirstName != nil {
		user.FirstName = strings.TrimSpace(*patch.FirstName)
	}
	if patch.LastName != nil {
		user.LastName = strings.TrimSpace(*patch.LastName)
	}
	if patch.Role != nil {
		if !patch.Role.Valid() {
			return model.User{}, apierror.BadRequest("invalid role", string(*patch.Role))
		}
		user.Role = *patch.Role
	}
	if patch.Active != nil {
		user.Active = *patch.Active
	}
	if patch.Metadata != nil {
		user.Metadata = *patch.Metadata
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, model.ErrUserAlreadyExists) {
			return model.User{}, apierror.New("BAD_REQUEST", "could not update user", "", http.StatusBadRequest)
		}
		return model.User{}, err
	}

	s.audit.Record(ctx, "user.update", actor, model.AuditOK, "user", user.ID, nil, "")
	return user, nil
}

// ResetPassword re-hashes and overwrites. The previous password stops
// working immediately; outstanding session tokens do not (see token package).
func (s *UserService) ResetPassword(ctx context.Context, id string, password string, actor model.AuditActor) error {
	if len(password) < minPasswordLength {
		return apierror.BadRequest(
			fmt.Sprintf("password must be at least %d characters", minPasswordLength), "password")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}

	s.audit.Record(ctx, "user.reset_password", actor, model.AuditOK, "user", id, nil, "")
	return nil
}

// EnsureAdmin seeds an administrator when the directory is empty, so a fresh
// deployment is reachable before any admin action can create users.
func (s *UserService) EnsureAdmin(ctx context.Context, email string, password string) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	now := time.Now().UTC()
	admin := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		FirstName:    "Admin",
		LastName:     "User",
		PasswordHash: &hash,
		Role:         model.RoleAdministrator,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	slog.Warn("seeded default administrator; change its password", "email", email)
	return nil
}
