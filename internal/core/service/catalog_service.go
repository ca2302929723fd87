package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/renovatepro/renovate-api/internal/core/domain"
	"github.com/renovatepro/renovate-api/internal/core/ports"
)

// CatalogService manages the services clients can order.
type CatalogService struct {
	repo ports.CatalogRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewCatalogService(repo ports.CatalogRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, log: log, now: time.Now}
}

func canManageCatalog(s *domain.Session) error {
	if s == nil || s.ID == "" {
		return domain.ErrUnauthenticated
	}
	if s.Role == domain.RoleAdmin || s.Role == domain.RoleDesigner {
		return nil
	}
	return fmt.Errorf("%w: only admins and designers can manage services", domain.ErrForbidden)
}

func (c *CatalogService) CreateService(ctx context.Context, s *domain.Session, in ports.CreateServiceInput) (*domain.Service, error) {
	if err := canManageCatalog(s); err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)

	var missing []string
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if in.Description == "" {
		missing = append(missing, "description")
	}
	if in.Category == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return nil, domain.NewMissingFieldsError(missing...)
	}
	if in.Price < 0 {
		return nil, &domain.ValidationError{Fields: []string{"price"}, Message: "price cannot be negative"}
	}

	now := c.now().UTC()
	created, err := c.repo.Create(ctx, &domain.Service{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	c.log.Info().Str("service_id", created.ID).Str("user_id", s.ID).Msg("service created")
	return created, nil
}

func (c *CatalogService) GetService(ctx context.Context, id string) (*domain.Service, error) {
	return c.repo.FindByID(ctx, id)
}

func (c *CatalogService) UpdateService(ctx context.Context, s *domain.Session, id string, changes domain.ServiceChanges) (*domain.Service, error) {
	if err := canManageCatalog(s); err != nil {
		return nil, err
	}
	if changes.Price != nil && *changes.Price < 0 {
		return nil, &domain.ValidationError{Fields: []string{"price"}, Message: "price cannot be negative"}
	}
	if changes.Name != nil && strings.TrimSpace(*changes.Name) == "" {
		return nil, domain.NewMissingFieldsError("name")
	}
	if changes.Empty() {
		return c.repo.FindByID(ctx, id)
	}

	updated, err := c.repo.UpdateByID(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	c.log.Info().Str("service_id", id).Str("user_id", s.ID).Msg("service updated")
	return updated, nil
}

func (c *CatalogService) DeleteService(ctx context.Context, s *domain.Session, id string) error {
	if err := canManageCatalog(s); err != nil {
		return err
	}
	if err := c.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	c.log.Info().Str("service_id", id).Str("user_id", s.ID).Msg("service deleted")
	return nil
}

func (c *CatalogService) ListServices(ctx context.Context, filter ports.ListServicesFilter) (*ports.ListResult[domain.Service], error) {
	filter.PageRequest = normalizePage(filter.PageRequest)
	filter.Search = strings.TrimSpace(filter.Search)

	items, total, err := c.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return newListResult(items, total, filter.PageRequest), nil
}
