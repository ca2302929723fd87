package ports

import (
	"context"

	"github.com/renovatepro/renovate-api/internal/core/domain"
)

// ListServicesFilter carries the query parameters for the public catalog.
type ListServicesFilter struct {
	Category string
	Search   string
	PageRequest
}

// CatalogRepository defines persistence operations for catalog services.
type CatalogRepository interface {
	Create(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	FindByID(ctx context.Context, id string) (*domain.Service, error)
	UpdateByID(ctx context.Context, id string, changes domain.ServiceChanges) (*domain.Service, error)
	DeleteByID(ctx context.Context, id string) error
	List(ctx context.Context, filter ListServicesFilter) ([]*domain.Service, int64, error)
}

// CreateServiceInput carries the fields of a new catalog entry.
type CreateServiceInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
}

// CatalogService manages the service catalog. Reads are public; writes need
// an admin or designer session.
type CatalogService interface {
	CreateService(ctx context.Context, s *domain.Session, in CreateServiceInput) (*domain.Service, error)
	GetService(ctx context.Context, id string) (*domain.Service, error)
	UpdateService(ctx context.Context, s *domain.Session, id string, changes domain.ServiceChanges) (*domain.Service, error)
	DeleteService(ctx context.Context, s *domain.Session, id string) error
	ListServices(ctx context.Context, filter ListServicesFilter) (*ListResult[domain.Service], error)
}
