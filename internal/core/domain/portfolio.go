package domain

import (
	"errors"
	"time"
)

var ErrPortfolioItemNotFound = errors.New("portfolio item not found")

// PortfolioItem is a showcase entry owned by the designer, worker or admin
// who created it.
type PortfolioItem struct {
	ID          string    `json:"id"`
	Owner       string    `json:"user"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PortfolioChanges is a partial update of a portfolio item's content.
type PortfolioChanges struct {
	Title       *string
	Description *string
	ImageURL    *string
	Category    *string
}

// Empty reports whether no field is set.
func (c PortfolioChanges) Empty() bool {
	return c.Title == nil && c.Description == nil && c.ImageURL == nil && c.Category == nil
}
