package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnauthenticated is the root of every authentication failure. Callers
// match on it to produce a 401; the wrapping errors below only differ in logs.
var ErrUnauthenticated = errors.New("unauthenticated")

var (
	ErrMissingToken   = fmt.Errorf("%w: missing session token", ErrUnauthenticated)
	ErrInvalidToken   = fmt.Errorf("%w: invalid session token", ErrUnauthenticated)
	ErrSessionExpired = fmt.Errorf("%w: session expired", ErrUnauthenticated)
	ErrTokenRevoked   = fmt.Errorf("%w: session revoked", ErrUnauthenticated)
)

// Session is the verified identity carried by a request's token.
type Session struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	TokenID   string    `json:"-"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
