package domain

import (
	"errors"
	"slices"
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusInProgress OrderStatus = "in_progress"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// strictTransitions is the transition graph enforced when strict mode is on.
// Completed and cancelled are terminal.
var strictTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrInvalidStatus = errors.New("invalid order status")
var ErrOrderNotFound = errors.New("order not found")

// Valid reports whether s is one of the four known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next follows the strict
// graph. Writing the current status again is always allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	return slices.Contains(strictTransitions[s], next)
}

// Order is the central lifecycle entity: a renovation request owned by a
// client and fulfilled by an optional designer and a set of workers.
type Order struct {
	ID          string      `json:"id"`
	Owner       string      `json:"user"`
	Service     string      `json:"service"`
	Designer    string      `json:"designer,omitempty"`
	Workers     []string    `json:"workers"`
	Status      OrderStatus `json:"status"`
	Description string      `json:"description"`
	Budget      float64     `json:"budget"`
	Address     string      `json:"address"`
	ClientName  string      `json:"client_name"`
	ClientPhone string      `json:"client_phone"`
	StartDate   *time.Time  `json:"start_date,omitempty"`
	EndDate     *time.Time  `json:"end_date,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// HasWorker reports whether userID is in the order's worker set.
func (o *Order) HasWorker(userID string) bool {
	return userID != "" && slices.Contains(o.Workers, userID)
}

// OrderScope restricts an order query to the caller's relationship.
// Empty fields mean no restriction.
type OrderScope struct {
	Owner    string
	Designer string
	Worker   string
}

// Unrestricted reports whether the scope matches every order.
func (s OrderScope) Unrestricted() bool {
	return s.Owner == "" && s.Designer == "" && s.Worker == ""
}

// Matches reports whether o falls inside the scope.
func (s OrderScope) Matches(o *Order) bool {
	if s.Owner != "" && o.Owner != s.Owner {
		return false
	}
	if s.Designer != "" && o.Designer != s.Designer {
		return false
	}
	if s.Worker != "" && !o.HasWorker(s.Worker) {
		return false
	}
	return true
}
