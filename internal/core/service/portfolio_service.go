package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/renovatepro/renovate-api/internal/core/authz"
	"github.com/renovatepro/renovate-api/internal/core/domain"
	"github.com/renovatepro/renovate-api/internal/core/ports"
)

var errPortfolioNotYours = fmt.Errorf("%w: you can only change your own portfolio items", domain.ErrForbidden)

type PortfolioService struct {
	repo ports.PortfolioRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewPortfolioService(repo ports.PortfolioRepository, log zerolog.Logger) *PortfolioService {
	return &PortfolioService{repo: repo, log: log, now: time.Now}
}

func (p *PortfolioService) CreateItem(ctx context.Context, s *domain.Session, in ports.CreatePortfolioInput) (*domain.PortfolioItem, error) {
	if err := authz.AuthorizePortfolioCreate(s); err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.Category = strings.TrimSpace(in.Category)

	var missing []string
	if in.Title == "" {
		missing = append(missing, "title")
	}
	if in.Description == "" {
		missing = append(missing, "description")
	}
	if in.ImageURL == "" {
		missing = append(missing, "image_url")
	}
	if in.Category == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return nil, domain.NewMissingFieldsError(missing...)
	}

	now := p.now().UTC()
	created, err := p.repo.Create(ctx, &domain.PortfolioItem{
		Owner:       s.ID,
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Category:    in.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	p.log.Info().Str("item_id", created.ID).Str("user_id", s.ID).Msg("portfolio item created")
	return created, nil
}

func (p *PortfolioService) UpdateItem(ctx context.Context, s *domain.Session, id string, changes domain.PortfolioChanges) (*domain.PortfolioItem, error) {
	if s == nil {
		return nil, domain.ErrUnauthenticated
	}
	item, err := p.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.AuthorizePortfolioWrite(s, item) {
		return nil, errPortfolioNotYours
	}
	if changes.Empty() {
		return item, nil
	}
	return p.repo.UpdateByID(ctx, id, changes)
}

func (p *PortfolioService) DeleteItem(ctx context.Context, s *domain.Session, id string) error {
	if s == nil {
		return domain.ErrUnauthenticated
	}
	item, err := p.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !authz.AuthorizePortfolioWrite(s, item) {
		return errPortfolioNotYours
	}
	if err := p.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	p.log.Info().Str("item_id", id).Str("user_id", s.ID).Msg("portfolio item deleted")
	return nil
}

// ListItems returns the caller's own items, or every item for an admin.
func (p *PortfolioService) ListItems(ctx context.Context, s *domain.Session, category string, page ports.PageRequest) (*ports.ListResult[domain.PortfolioItem], error) {
	owner, err := authz.PortfolioListScope(s)
	if err != nil {
		return nil, err
	}
	page = normalizePage(page)
	items, total, err := p.repo.List(ctx, ports.ListPortfolioFilter{
		Owner:       owner,
		Category:    strings.TrimSpace(category),
		PageRequest: page,
	})
	if err != nil {
		return nil, fmt.Errorf("list portfolio: %w", err)
	}
	return newListResult(items, total, page), nil
}
