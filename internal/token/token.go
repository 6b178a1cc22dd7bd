package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"admedia-backoffice/internal/model"
)

// Claims is the identity payload embedded in a session token.
type Claims struct {
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string {
	return c.Subject
}

// Manager signs and verifies session tokens with a shared HMAC secret.
// Tokens are self-contained: verification checks signature and expiry only,
// nothing is stored server-side.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("token secret must be at least 32 characters")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive")
	}

	return &Manager{secret: []byte(secret), ttl: ttl}, nil
}

// Issue mints a signed token for the given user.
func (m *Manager) Issue(user model.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify parses and validates a token. It returns nil on any failure
// (malformed, expired, bad signature); callers treat nil as unauthenticated
// and never learn the cause.
func (m *Manager) Verify(tokenString string) *Claims {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil
	}

	if claims.Subject == "" {
		return nil
	}

	return claims
}
