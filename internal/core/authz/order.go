package authz

import (
	"fmt"

	"github.com/renovatepro/renovate-api/internal/core/domain"
)

var (
	errEditLocked       = fmt.Errorf("%w: you can only edit an order while it is pending", domain.ErrForbidden)
	errDesignerAssigned = fmt.Errorf("%w: this order already has a designer, only an admin can reassign it", domain.ErrForbidden)
	errOwnerChange      = fmt.Errorf("%w: only admins can change the order's owner", domain.ErrForbidden)
	errNoRelationship   = fmt.Errorf("%w: you are not related to this order", domain.ErrForbidden)
)

// OrderPolicy evaluates order reads and writes. The zero value is the
// permissive policy: any session allowed to write status may set any of the
// four values.
type OrderPolicy struct {
	// StrictTransitions restricts status writes to the graph in
	// domain.OrderStatus.CanTransitionTo. Admins are bound by it too.
	StrictTransitions bool
}

// UpdateDecision is the outcome of an allowed update.
type UpdateDecision struct {
	Capability Capability
	// Changes holds only the submitted fields the capability may write.
	Changes domain.OrderChanges
	// Dropped lists submitted fields that were silently discarded.
	Dropped []domain.Field
}

// AuthorizeUpdate decides whether s may apply changes to o and which subset
// of them survives. Rules run in order; the first failing rule rejects the
// whole request.
func (p OrderPolicy) AuthorizeUpdate(s *domain.Session, o *domain.Order, changes domain.OrderChanges) (UpdateDecision, error) {
	if s == nil || s.ID == "" {
		return UpdateDecision{}, domain.ErrUnauthenticated
	}

	tags := Relate(s, o)

	if tags.Owner && !tags.Admin && o.Status != domain.StatusPending {
		return UpdateDecision{}, errEditLocked
	}

	if changes.Designer != nil && *changes.Designer != "" && *changes.Designer != o.Designer && o.Designer != "" && !tags.Admin {
		return UpdateDecision{}, errDesignerAssigned
	}

	if changes.Owner != nil && !tags.Admin {
		return UpdateDecision{}, errOwnerChange
	}

	if !tags.Any() {
		return UpdateDecision{}, errNoRelationship
	}

	capability := tags.Governing()
	allowed := FieldsFor(capability)
	filtered := changes.Only(allowed)

	if filtered.Status != nil {
		next := *filtered.Status
		if !next.Valid() {
			return UpdateDecision{}, &domain.ValidationError{
				Fields:  []string{string(domain.FieldStatus)},
				Message: fmt.Sprintf("status must be one of: %s %s %s %s", domain.StatusPending, domain.StatusInProgress, domain.StatusCompleted, domain.StatusCancelled),
			}
		}
		if p.StrictTransitions && !o.Status.CanTransitionTo(next) {
			return UpdateDecision{}, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, o.Status, next)
		}
	}

	var dropped []domain.Field
	for _, f := range changes.Fields().Sorted() {
		if !allowed.Has(f) {
			dropped = append(dropped, f)
		}
	}

	return UpdateDecision{Capability: capability, Changes: filtered, Dropped: dropped}, nil
}

// AuthorizeDelete allows the owner, whatever the order's status, or an admin.
func (p OrderPolicy) AuthorizeDelete(s *domain.Session, o *domain.Order) error {
	if s == nil || s.ID == "" {
		return domain.ErrUnauthenticated
	}
	tags := Relate(s, o)
	if tags.Admin || tags.Owner {
		return nil
	}
	return domain.ErrForbidden
}

// AuthorizeRead allows anyone related to the order.
func (p OrderPolicy) AuthorizeRead(s *domain.Session, o *domain.Order) error {
	if s == nil || s.ID == "" {
		return domain.ErrUnauthenticated
	}
	if !Relate(s, o).Any() {
		return domain.ErrForbidden
	}
	return nil
}

// AuthorizeCreate allows clients and admins to open orders.
func (p OrderPolicy) AuthorizeCreate(s *domain.Session) error {
	if s == nil || s.ID == "" {
		return domain.ErrUnauthenticated
	}
	if s.Role == domain.RoleUser || s.Role == domain.RoleAdmin {
		return nil
	}
	return fmt.Errorf("%w: only clients and admins can create orders", domain.ErrForbidden)
}

// OrderListScope returns the implicit filter for listing orders as s.
func OrderListScope(s *domain.Session) (domain.OrderScope, error) {
	if s == nil || s.ID == "" {
		return domain.OrderScope{}, domain.ErrUnauthenticated
	}
	switch s.Role {
	case domain.RoleAdmin:
		return domain.OrderScope{}, nil
	case domain.RoleDesigner:
		return domain.OrderScope{Designer: s.ID}, nil
	case domain.RoleWorker:
		return domain.OrderScope{Worker: s.ID}, nil
	default:
		return domain.OrderScope{Owner: s.ID}, nil
	}
}

// AuthorizeOrderUpdate runs the permissive policy.
func AuthorizeOrderUpdate(s *domain.Session, o *domain.Order, changes domain.OrderChanges) (domain.OrderChanges, error) {
	d, err := OrderPolicy{}.AuthorizeUpdate(s, o, changes)
	return d.Changes, err
}

// AuthorizeOrderDelete reports whether s may delete o.
func AuthorizeOrderDelete(s *domain.Session, o *domain.Order) bool {
	return OrderPolicy{}.AuthorizeDelete(s, o) == nil
}
