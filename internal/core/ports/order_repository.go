package ports

import (
	"context"

	"github.com/renovatepro/renovate-api/internal/core/domain"
)

// ListOrdersFilter carries all query parameters for listing orders.
// Scope is always set by the service from the caller's session.
type ListOrdersFilter struct {
	Scope  domain.OrderScope
	Status string // optional
	Search string // optional: text match on description, address, client name
	PageRequest
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// UpdateByID applies changes in a single atomic write and returns the
	// stored document.
	UpdateByID(ctx context.Context, id string, changes domain.OrderChanges) (*domain.Order, error)
	DeleteByID(ctx context.Context, id string) error
	List(ctx context.Context, filter ListOrdersFilter) ([]*domain.Order, int64, error)
}

// OrderEventRepository persists the order activity log.
type OrderEventRepository interface {
	InsertEvent(ctx context.Context, event *domain.OrderEvent) error
}
