package ports

import (
	"context"

	"github.com/renovatepro/renovate-api/internal/core/domain"
)

// ListPortfolioFilter carries the query parameters for listing portfolio items.
type ListPortfolioFilter struct {
	Owner    string // empty = all owners
	Category string
	PageRequest
}

// PortfolioRepository defines persistence operations for portfolio items.
type PortfolioRepository interface {
	Create(ctx context.Context, item *domain.PortfolioItem) (*domain.PortfolioItem, error)
	FindByID(ctx context.Context, id string) (*domain.PortfolioItem, error)
	UpdateByID(ctx context.Context, id string, changes domain.PortfolioChanges) (*domain.PortfolioItem, error)
	DeleteByID(ctx context.Context, id string) error
	List(ctx context.Context, filter ListPortfolioFilter) ([]*domain.PortfolioItem, int64, error)
}

// CreatePortfolioInput carries the fields of a new portfolio item.
type CreatePortfolioInput struct {
	Title       string
	Description string
	ImageURL    string
	Category    string
}

// PortfolioService applies ownership rules around portfolio persistence.
type PortfolioService interface {
	CreateItem(ctx context.Context, s *domain.Session, in CreatePortfolioInput) (*domain.PortfolioItem, error)
	UpdateItem(ctx context.Context, s *domain.Session, id string, changes domain.PortfolioChanges) (*domain.PortfolioItem, error)
	DeleteItem(ctx context.Context, s *domain.Session, id string) error
	ListItems(ctx context.Context, s *domain.Session, category string, page PageRequest) (*ListResult[domain.PortfolioItem], error)
}
