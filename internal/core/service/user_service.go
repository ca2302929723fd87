package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/renovatepro/renovate-api/internal/core/domain"
	"github.com/renovatepro/renovate-api/internal/core/ports"
)

var errAdminOnly = fmt.Errorf("%w: admin access required", domain.ErrForbidden)

// UserService covers account administration.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func requireAdmin(s *domain.Session) error {
	if s == nil || s.ID == "" {
		return domain.ErrUnauthenticated
	}
	if !s.IsAdmin() {
		return errAdminOnly
	}
	return nil
}

func (u *UserService) ListUsers(ctx context.Context, s *domain.Session, filter ports.ListUsersFilter) (*ports.ListResult[domain.User], error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}
	if filter.Role != "" && !domain.ValidRole(filter.Role) {
		return nil, &domain.ValidationError{Fields: []string{"role"}, Message: "unknown role filter"}
	}
	filter.PageRequest = normalizePage(filter.PageRequest)
	filter.Search = strings.TrimSpace(filter.Search)

	items, total, err := u.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return newListResult(items, total, filter.PageRequest), nil
}

func (u *UserService) GetUser(ctx context.Context, s *domain.Session, id string) (*domain.User, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}
	return u.repo.FindByID(ctx, id)
}

// UpdateUser changes name, email or role. Passwords are never touched here.
func (u *UserService) UpdateUser(ctx context.Context, s *domain.Session, id string, changes domain.UserChanges) (*domain.User, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}
	if changes.Role != nil && !domain.ValidRole(*changes.Role) {
		return nil, &domain.ValidationError{Fields: []string{"role"}, Message: "role must be one of: user designer worker admin"}
	}
	if changes.Name != nil && strings.TrimSpace(*changes.Name) == "" {
		return nil, domain.NewMissingFieldsError("name")
	}
	if changes.Email != nil {
		email := normalizeEmail(*changes.Email)
		if email == "" {
			return nil, domain.NewMissingFieldsError("email")
		}
		changes.Email = &email
	}
	if changes.Empty() {
		return u.repo.FindByID(ctx, id)
	}

	updated, err := u.repo.UpdateByID(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	u.log.Info().Str("user_id", id).Str("admin_id", s.ID).Msg("user updated")
	return updated, nil
}

func (u *UserService) DeleteUser(ctx context.Context, s *domain.Session, id string) error {
	if err := requireAdmin(s); err != nil {
		return err
	}
	if id == s.ID {
		return &domain.ValidationError{Fields: []string{"id"}, Message: "you cannot delete your own account"}
	}
	if err := u.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	u.log.Info().Str("user_id", id).Str("admin_id", s.ID).Msg("user deleted")
	return nil
}

// ListByRole lists every user holding role, for assignment pickers.
func (u *UserService) ListByRole(ctx context.Context, s *domain.Session, role string) ([]*domain.User, error) {
	if s == nil || s.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if s.Role != domain.RoleAdmin && s.Role != domain.RoleDesigner {
		return nil, fmt.Errorf("%w: only admins and designers can browse users by role", domain.ErrForbidden)
	}
	if !domain.ValidRole(role) {
		return nil, &domain.ValidationError{Fields: []string{"role"}, Message: "role must be one of: user designer worker admin"}
	}

	users, _, err := u.repo.List(ctx, ports.ListUsersFilter{
		Role:        role,
		PageRequest: ports.PageRequest{Page: 1, Limit: 0, SortBy: "name"},
	})
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}

// PromoteToAdmin grants the admin role to the account with email.
func (u *UserService) PromoteToAdmin(ctx context.Context, email string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, domain.NewMissingFieldsError("email")
	}
	user, err := u.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.Role == domain.RoleAdmin {
		return user, nil
	}

	role := domain.RoleAdmin
	updated, err := u.repo.UpdateByID(ctx, user.ID, domain.UserChanges{Role: &role})
	if err != nil {
		return nil, err
	}
	u.log.Info().Str("user_id", updated.ID).Msg("user promoted to admin")
	return updated, nil
}
