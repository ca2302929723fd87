package service

import (
	"context"
	"errors"
	"testing"

	"github.com/renovatepro/renovate-api/internal/core/domain"
	"github.com/renovatepro/renovate-api/internal/core/ports"
)

func portfolioInput() ports.CreatePortfolioInput {
	return ports.CreatePortfolioInput{Title: "Loft", Description: "Open plan", ImageURL: "https://img.example.com/1.jpg", Category: "interior"}
}

func TestPortfolioService_Create(t *testing.T) {
	svc := NewPortfolioService(newStubPortfolioRepo(), discardLogger)

	item, err := svc.CreateItem(context.Background(), sess("w1", domain.RoleWorker), portfolioInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Owner != "w1" {
		t.Errorf("expected owner w1, got %q", item.Owner)
	}

	if _, err := svc.CreateItem(context.Background(), sess("u1", domain.RoleUser), portfolioInput()); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for clients, got %v", err)
	}

	var verr *domain.ValidationError
	if _, err := svc.CreateItem(context.Background(), sess("d1", domain.RoleDesigner), ports.CreatePortfolioInput{Title: "x"}); !errors.As(err, &verr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestPortfolioService_UpdateDelete_Ownership(t *testing.T) {
	repo := newStubPortfolioRepo(&domain.PortfolioItem{ID: "p1", Owner: "d1", Title: "Old"})
	svc := NewPortfolioService(repo, discardLogger)

	if _, err := svc.UpdateItem(context.Background(), sess("d2", domain.RoleDesigner), "p1", domain.PortfolioChanges{Title: ptr("Mine now")}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}

	item, err := svc.UpdateItem(context.Background(), sess("d1", domain.RoleDesigner), "p1", domain.PortfolioChanges{Title: ptr("New")})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if item.Title != "New" {
		t.Errorf("expected title New, got %q", item.Title)
	}

	if err := svc.DeleteItem(context.Background(), sess("d2", domain.RoleDesigner), "p1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if err := svc.DeleteItem(context.Background(), sess("root", domain.RoleAdmin), "p1"); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if err := svc.DeleteItem(context.Background(), sess("root", domain.RoleAdmin), "p1"); !errors.Is(err, domain.ErrPortfolioItemNotFound) {
		t.Errorf("expected ErrPortfolioItemNotFound, got %v", err)
	}
}

func TestPortfolioService_List_Scope(t *testing.T) {
	repo := newStubPortfolioRepo(
		&domain.PortfolioItem{ID: "p1", Owner: "d1"},
		&domain.PortfolioItem{ID: "p2", Owner: "d2"},
		&domain.PortfolioItem{ID: "p3", Owner: "d1"},
	)
	svc := NewPortfolioService(repo, discardLogger)

	res, err := svc.ListItems(context.Background(), sess("d1", domain.RoleDesigner), "", ports.PageRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Total != 2 || repo.lastFilter.Owner != "d1" {
		t.Errorf("expected 2 own items, got %d (owner filter %q)", res.Total, repo.lastFilter.Owner)
	}

	res, _ = svc.ListItems(context.Background(), sess("root", domain.RoleAdmin), "", ports.PageRequest{})
	if res.Total != 3 {
		t.Errorf("admin: expected 3 items, got %d", res.Total)
	}
}
