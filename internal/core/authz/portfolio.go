package authz

import (
	"fmt"

	"github.com/renovatepro/renovate-api/internal/core/domain"
)

// AuthorizePortfolioCreate allows designers, workers and admins.
func AuthorizePortfolioCreate(s *domain.Session) error {
	if s == nil || s.ID == "" {
		return domain.ErrUnauthenticated
	}
	switch s.Role {
	case domain.RoleAdmin, domain.RoleDesigner, domain.RoleWorker:
		return nil
	}
	return fmt.Errorf("%w: only designers, workers and admins can publish portfolio items", domain.ErrForbidden)
}

// AuthorizePortfolioWrite reports whether s may update or delete item.
func AuthorizePortfolioWrite(s *domain.Session, item *domain.PortfolioItem) bool {
	if s == nil || s.ID == "" || item == nil {
		return false
	}
	return s.Role == domain.RoleAdmin || item.Owner == s.ID
}

// PortfolioListScope returns the owner filter for listing items as s.
// An empty owner means every item.
func PortfolioListScope(s *domain.Session) (owner string, err error) {
	if s == nil || s.ID == "" {
		return "", domain.ErrUnauthenticated
	}
	if s.Role == domain.RoleAdmin {
		return "", nil
	}
	return s.ID, nil
}
