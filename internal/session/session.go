// Package session issues and resolves login sessions. A session token is an
// HS256 JWT whose jti must also be present in a Backend, so a token stops
// working as soon as it expires or is revoked.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidSession is returned for unknown, malformed, expired or revoked tokens.
var ErrInvalidSession = errors.New("invalid or expired session")

// DefaultTTL applies when no TTL is configured.
const DefaultTTL = 24 * time.Hour

// Store is the session capability handed to request handlers.
type Store interface {
	Create(ctx context.Context, userID uint) (string, error)
	Resolve(ctx context.Context, token string) (uint, error)
	Revoke(ctx context.Context, token string) error
}

// Backend records live session ids.
type Backend interface {
	Put(ctx context.Context, jti string, userID uint, ttl time.Duration) error
	Get(ctx context.Context, jti string) (uint, error)
	Delete(ctx context.Context, jti string) error
}

// Manager implements Store on top of signed tokens and a Backend.
type Manager struct {
	secret  []byte
	ttl     time.Duration
	backend Backend
	now     func() time.Time
}

// NewManager builds a Manager. A non-positive ttl falls back to DefaultTTL.
func NewManager(secret string, ttl time.Duration, backend Backend) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		secret:  []byte(secret),
		ttl:     ttl,
		backend: backend,
		now:     time.Now,
	}
}

// TTL reports the lifetime given to new sessions.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

func (m *Manager) Create(ctx context.Context, userID uint) (string, error) {
	if len(m.secret) == 0 {
		return "", errors.New("session secret not configured")
	}
	if userID == 0 {
		return "", errors.New("cannot create a session for user 0")
	}

	now := m.now()
	jti := uuid.NewString()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ID:        jti,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	if err := m.backend.Put(ctx, jti, userID, m.ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return signed, nil
}

func (m *Manager) Resolve(ctx context.Context, token string) (uint, error) {
	claims, err := m.parse(token)
	if err != nil {
		return 0, ErrInvalidSession
	}

	userID, err := m.backend.Get(ctx, claims.ID)
	if err != nil {
		return 0, err
	}
	if strconv.FormatUint(uint64(userID), 10) != claims.Subject {
		return 0, ErrInvalidSession
	}
	return userID, nil
}

// Revoke removes the session. Revoking an already invalid token is a no-op.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	claims, err := m.parse(token)
	if err != nil {
		return nil
	}
	return m.backend.Delete(ctx, claims.ID)
}

func (m *Manager) parse(token string) (*jwt.RegisteredClaims, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid || claims.ID == "" || claims.Subject == "" {
		return nil, ErrInvalidSession
	}
	return claims, nil
}
