package domain

import (
	"errors"
	"time"
)

var ErrServiceNotFound = errors.New("service not found")

// Service is a catalog entry clients can order. It has no owner.
type Service struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ServiceChanges is a partial update of a catalog entry.
type ServiceChanges struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
}

// Empty reports whether no field is set.
func (c ServiceChanges) Empty() bool {
	return c.Name == nil && c.Description == nil && c.Price == nil && c.Category == nil
}
