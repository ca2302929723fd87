package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/renovatepro/renovate-api/internal/core/authz"
	"github.com/renovatepro/renovate-api/internal/core/domain"
	"github.com/renovatepro/renovate-api/internal/core/ports"
)

// OrderService runs every order operation through the authorizer before it
// touches storage.
type OrderService struct {
	orders  ports.OrderRepository
	events  ports.OrderEventRepository
	catalog ports.CatalogRepository
	policy  authz.OrderPolicy
	log     zerolog.Logger
	now     func() time.Time
}

// NewOrderService wires an OrderService. events may be nil, which disables
// the activity log.
func NewOrderService(
	orders ports.OrderRepository,
	events ports.OrderEventRepository,
	catalog ports.CatalogRepository,
	policy authz.OrderPolicy,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{
		orders:  orders,
		events:  events,
		catalog: catalog,
		policy:  policy,
		log:     log,
		now:     time.Now,
	}
}

func (s *OrderService) CreateOrder(ctx context.Context, sess *domain.Session, in ports.CreateOrderInput) (*domain.Order, error) {
	if err := s.policy.AuthorizeCreate(sess); err != nil {
		return nil, err
	}

	in.Service = strings.TrimSpace(in.Service)
	in.Description = strings.TrimSpace(in.Description)
	in.Address = strings.TrimSpace(in.Address)
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.ClientPhone = strings.TrimSpace(in.ClientPhone)
	in.Designer = strings.TrimSpace(in.Designer)
	in.Owner = strings.TrimSpace(in.Owner)

	var missing []string
	if in.Service == "" {
		missing = append(missing, "service")
	}
	if in.Description == "" {
		missing = append(missing, "description")
	}
	if in.Budget <= 0 {
		missing = append(missing, "budget")
	}
	if in.Address == "" {
		missing = append(missing, "address")
	}
	if in.ClientName == "" {
		missing = append(missing, "client_name")
	}
	if in.ClientPhone == "" {
		missing = append(missing, "client_phone")
	}
	if len(missing) > 0 {
		return nil, domain.NewMissingFieldsError(missing...)
	}

	if err := s.ensureService(ctx, in.Service); err != nil {
		return nil, err
	}

	owner := sess.ID
	if in.Owner != "" && in.Owner != sess.ID {
		if !sess.IsAdmin() {
			return nil, fmt.Errorf("%w: only admins can open orders on behalf of another user", domain.ErrForbidden)
		}
		owner = in.Owner
	}

	now := s.now().UTC()
	order := &domain.Order{
		Owner:       owner,
		Service:     in.Service,
		Designer:    in.Designer,
		Workers:     []string{},
		Status:      domain.StatusPending,
		Description: in.Description,
		Budget:      in.Budget,
		Address:     in.Address,
		ClientName:  in.ClientName,
		ClientPhone: in.ClientPhone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", sess.ID).Msg("failed to create order")
		return nil, err
	}

	s.log.Info().Str("order_id", created.ID).Str("user_id", sess.ID).Msg("order created")
	s.recordEvent(ctx, sess, created, domain.OrderCreated, nil)
	return created, nil
}

func (s *OrderService) GetOrder(ctx context.Context, sess *domain.Session, id string) (*domain.Order, error) {
	if sess == nil {
		return nil, domain.ErrUnauthenticated
	}
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.AuthorizeRead(sess, order); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateOrder applies the subset of changes the caller may write. Fields the
// caller may not write are dropped without error; if nothing survives the
// order is returned as stored.
func (s *OrderService) UpdateOrder(ctx context.Context, sess *domain.Session, id string, changes domain.OrderChanges) (*domain.Order, error) {
	if sess == nil {
		return nil, domain.ErrUnauthenticated
	}
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	decision, err := s.policy.AuthorizeUpdate(sess, order, changes)
	if err != nil {
		s.log.Info().Err(err).Str("order_id", id).Str("user_id", sess.ID).Str("role", sess.Role).Msg("order update rejected")
		return nil, err
	}
	if len(decision.Dropped) > 0 {
		s.log.Debug().Str("order_id", id).Str("capability", string(decision.Capability)).
			Interface("dropped", decision.Dropped).Msg("fields dropped from order update")
	}

	filtered := decision.Changes
	if err := s.validateChanges(ctx, &filtered); err != nil {
		return nil, err
	}
	if filtered.Empty() {
		return order, nil
	}

	updated, err := s.orders.UpdateByID(ctx, id, filtered)
	if err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	s.log.Info().Str("order_id", id).Str("user_id", sess.ID).Str("capability", string(decision.Capability)).Msg("order updated")
	s.recordEvent(ctx, sess, updated, domain.OrderUpdated, filtered.Fields().Sorted())
	return updated, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, sess *domain.Session, id string) error {
	if sess == nil {
		return domain.ErrUnauthenticated
	}
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.AuthorizeDelete(sess, order); err != nil {
		return fmt.Errorf("%w: only the owner or an admin can delete this order", err)
	}
	if err := s.orders.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("order_id", id).Str("user_id", sess.ID).Msg("order deleted")
	s.recordEvent(ctx, sess, order, domain.OrderDeleted, nil)
	return nil
}

// ListOrders returns the caller's scoped page of orders.
func (s *OrderService) ListOrders(ctx context.Context, sess *domain.Session, in ports.ListOrdersInput) (*ports.ListResult[domain.Order], error) {
	scope, err := authz.OrderListScope(sess)
	if err != nil {
		return nil, err
	}
	if in.Status != "" && !domain.OrderStatus(in.Status).Valid() {
		return nil, &domain.ValidationError{Fields: []string{"status"}, Message: "unknown status filter"}
	}

	page := normalizePage(in.PageRequest)
	items, total, err := s.orders.List(ctx, ports.ListOrdersFilter{
		Scope:       scope,
		Status:      in.Status,
		Search:      strings.TrimSpace(in.Search),
		PageRequest: page,
	})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return newListResult(items, total, page), nil
}

// validateChanges checks the values of fields that survived authorization.
func (s *OrderService) validateChanges(ctx context.Context, c *domain.OrderChanges) error {
	if c.Budget != nil && *c.Budget <= 0 {
		return &domain.ValidationError{Fields: []string{string(domain.FieldBudget)}, Message: "budget must be greater than zero"}
	}
	if c.Service != nil {
		if err := s.ensureService(ctx, *c.Service); err != nil {
			return err
		}
	}
	if c.Workers != nil {
		workers := compactIDs(*c.Workers)
		c.Workers = &workers
	}
	return nil
}

func (s *OrderService) ensureService(ctx context.Context, id string) error {
	if s.catalog == nil {
		return nil
	}
	if _, err := s.catalog.FindByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			return &domain.ValidationError{Fields: []string{string(domain.FieldService)}, Message: "service does not exist"}
		}
		return err
	}
	return nil
}

// recordEvent appends to the activity log. Failures are logged only.
func (s *OrderService) recordEvent(ctx context.Context, sess *domain.Session, o *domain.Order, action domain.OrderAction, fields []domain.Field) {
	if s.events == nil || o == nil {
		return
	}
	event := &domain.OrderEvent{
		OrderID:   o.ID,
		Action:    action,
		ActorID:   sess.ID,
		ActorRole: sess.Role,
		Fields:    fields,
		Status:    o.Status,
		Timestamp: s.now().UTC(),
	}
	if err := s.events.InsertEvent(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("order_id", o.ID).Str("action", string(action)).Msg("failed to record order event")
	}
}

// compactIDs trims, drops empties and de-duplicates while keeping order.
func compactIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	return out
}
