package ports

import (
	"context"

	"github.com/renovatepro/renovate-api/internal/core/domain"
)

// CreateOrderInput carries the fields of a new order.
type CreateOrderInput struct {
	Service     string
	Description string
	Budget      float64
	Address     string
	ClientName  string
	ClientPhone string
	Designer    string // optional
	Owner       string // optional, admins only
}

// ListOrdersInput carries the caller-supplied list parameters.
type ListOrdersInput struct {
	Status string
	Search string
	PageRequest
}

// OrderService defines use-case operations for orders. Every method takes
// the caller's verified session.
type OrderService interface {
	CreateOrder(ctx context.Context, s *domain.Session, in CreateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, s *domain.Session, id string) (*domain.Order, error)
	UpdateOrder(ctx context.Context, s *domain.Session, id string, changes domain.OrderChanges) (*domain.Order, error)
	DeleteOrder(ctx context.Context, s *domain.Session, id string) error
	ListOrders(ctx context.Context, s *domain.Session, in ListOrdersInput) (*ListResult[domain.Order], error)
}
