package service

import (
	"context"
	"errors"
	"testing"

	"github.com/renovatepro/renovate-api/internal/core/domain"
	"github.com/renovatepro/renovate-api/internal/core/ports"
)

func seededUsers() *stubUserRepo {
	repo := newStubUserRepo()
	for _, u := range []*domain.User{
		{ID: "root", Name: "Root", Email: "root@example.com", Role: domain.RoleAdmin},
		{ID: "d1", Name: "Dana", Email: "dana@example.com", Role: domain.RoleDesigner},
		{ID: "w1", Name: "Walt", Email: "walt@example.com", Role: domain.RoleWorker},
		{ID: "w2", Name: "Wren", Email: "wren@example.com", Role: domain.RoleWorker},
		{ID: "u1", Name: "Uma", Email: "uma@example.com", Role: domain.RoleUser},
	} {
		repo.users[u.ID] = u
	}
	return repo
}

func TestUserService_AdminOnly(t *testing.T) {
	svc := NewUserService(seededUsers(), discardLogger)
	designer := sess("d1", domain.RoleDesigner)

	if _, err := svc.ListUsers(context.Background(), designer, ports.ListUsersFilter{}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("list: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.GetUser(context.Background(), designer, "u1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("get: expected ErrForbidden, got %v", err)
	}
	if err := svc.DeleteUser(context.Background(), nil, "u1"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("delete: expected ErrUnauthenticated, got %v", err)
	}
}

func TestUserService_ListUsers(t *testing.T) {
	svc := NewUserService(seededUsers(), discardLogger)

	res, err := svc.ListUsers(context.Background(), sess("root", domain.RoleAdmin), ports.ListUsersFilter{Role: domain.RoleWorker})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Total != 2 || res.Limit != 10 {
		t.Errorf("unexpected result: total=%d limit=%d", res.Total, res.Limit)
	}
}

func TestUserService_UpdateUser(t *testing.T) {
	svc := NewUserService(seededUsers(), discardLogger)
	admin := sess("root", domain.RoleAdmin)

	u, err := svc.UpdateUser(context.Background(), admin, "u1", domain.UserChanges{Role: ptr(domain.RoleWorker), Email: ptr(" UMA2@example.com")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if u.Role != domain.RoleWorker || u.Email != "uma2@example.com" {
		t.Errorf("unexpected user: %+v", u)
	}

	var verr *domain.ValidationError
	if _, err := svc.UpdateUser(context.Background(), admin, "u1", domain.UserChanges{Role: ptr("owner")}); !errors.As(err, &verr) {
		t.Errorf("expected ValidationError for unknown role, got %v", err)
	}
}

func TestUserService_DeleteUser_NotSelf(t *testing.T) {
	repo := seededUsers()
	svc := NewUserService(repo, discardLogger)
	admin := sess("root", domain.RoleAdmin)

	var verr *domain.ValidationError
	if err := svc.DeleteUser(context.Background(), admin, "root"); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for self-delete, got %v", err)
	}
	if err := svc.DeleteUser(context.Background(), admin, "u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := repo.users["u1"]; ok {
		t.Error("user still stored")
	}
}

func TestUserService_ListByRole(t *testing.T) {
	svc := NewUserService(seededUsers(), discardLogger)

	users, err := svc.ListByRole(context.Background(), sess("d1", domain.RoleDesigner), domain.RoleWorker)
	if err != nil {
		t.Fatalf("designer: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("expected 2 workers, got %d", len(users))
	}

	if _, err := svc.ListByRole(context.Background(), sess("w1", domain.RoleWorker), domain.RoleWorker); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("worker: expected ErrForbidden, got %v", err)
	}
}

func TestUserService_PromoteToAdmin(t *testing.T) {
	repo := seededUsers()
	svc := NewUserService(repo, discardLogger)

	u, err := svc.PromoteToAdmin(context.Background(), "Uma@Example.com")
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if u.Role != domain.RoleAdmin || repo.users["u1"].Role != domain.RoleAdmin {
		t.Errorf("expected admin role, got %q", u.Role)
	}

	if _, err := svc.PromoteToAdmin(context.Background(), "ghost@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
