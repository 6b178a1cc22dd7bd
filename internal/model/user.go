package model

import "time"

// Role is the closed set of authorization levels. The legacy system compared
// free-form role strings; a named type keeps typos out of access checks.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleStandard      Role = "standard"
)

func (r Role) Valid() bool {
	return r == RoleAdministrator || r == RoleStandard
}

// ParseRole normalizes raw input to a Role. Empty input maps to standard;
// anything outside the enumeration reports false.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleAdministrator:
		return RoleAdministrator, true
	case RoleStandard, "":
		return RoleStandard, true
	default:
		return RoleStandard, false
	}
}

// User is the full directory record, password hash included. It never goes
// over the wire directly; see Profile.
type User struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash *string // nil: the user has no password and cannot log in
	Role         Role
	Active       bool
	Avatar       string
	Metadata     map[string]any
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
}

// Profile is the sanitized projection returned to clients.
type Profile struct {
	ID          string         `json:"id"`
	Email       string         `json:"email"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	Role        Role           `json:"role"`
	Active      bool           `json:"active"`
	Avatar      string         `json:"avatar,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
}

// Sanitize strips credential material from a User.
func (u User) Sanitize() Profile {
	return Profile{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		Active:      u.Active,
		Avatar:      u.Avatar,
		Metadata:    u.Metadata,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

// CanLogin reports whether the record is eligible for authentication at all.
// The password itself is verified separately.
func (u User) CanLogin() bool {
	return u.Active && u.PasswordHash != nil && *u.PasswordHash != ""
}

// UserPatch carries a partial update; nil fields are left untouched.
type UserPatch struct {
	Email     *string         `json:"email"`
	FirstName *string         `json:"first_name"`
	LastName  *string         `json:"last_name"`
	Role      *Role           `json:"role"`
	Active    *bool           `json:"active"`
	Metadata  *map[string]any `json:"metadata"`
}
