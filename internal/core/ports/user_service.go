package ports

import (
	"context"

	"github.com/renovatepro/renovate-api/internal/core/domain"
)

// UserService covers account administration.
type UserService interface {
	ListUsers(ctx context.Context, s *domain.Session, filter ListUsersFilter) (*ListResult[domain.User], error)
	GetUser(ctx context.Context, s *domain.Session, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, s *domain.Session, id string, changes domain.UserChanges) (*domain.User, error)
	DeleteUser(ctx context.Context, s *domain.Session, id string) error
	// ListByRole backs the designer/worker pickers; admins and designers only.
	ListByRole(ctx context.Context, s *domain.Session, role string) ([]*domain.User, error)
	// PromoteToAdmin is an operator action with no session; used by the CLI.
	PromoteToAdmin(ctx context.Context, email string) (*domain.User, error)
}
