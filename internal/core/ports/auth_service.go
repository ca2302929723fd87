package ports

import (
	"context"
	"time"

	"github.com/renovatepro/renovate-api/internal/core/domain"
)

// RegisterInput carries a self-registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string // optional, defaults to user
}

// LoginResult is returned after a successful credential check.
type LoginResult struct {
	Token   string
	Session *domain.Session
	User    *domain.User
}

// SessionRevoker is the optional deny-list consulted during verification.
type SessionRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthService issues and verifies sessions.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	VerifySession(ctx context.Context, token string) (*domain.Session, error)
	Logout(ctx context.Context, session *domain.Session) error
	Me(ctx context.Context, session *domain.Session) (*domain.User, error)
}
