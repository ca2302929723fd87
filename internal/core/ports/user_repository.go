package ports

import (
	"context"

	"github.com/renovatepro/renovate-api/internal/core/domain"
)

// ListUsersFilter carries the query parameters for listing users.
type ListUsersFilter struct {
	Role   string // optional
	Search string // optional: partial match on name or email
	PageRequest
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// UpdateByID applies changes atomically and returns the updated user.
	UpdateByID(ctx context.Context, id string, changes domain.UserChanges) (*domain.User, error)
	DeleteByID(ctx context.Context, id string) error
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
}
