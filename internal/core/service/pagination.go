package service

import "github.com/renovatepro/renovate-api/internal/core/ports"

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// normalizePage clamps page and limit to sane values.
func normalizePage(p ports.PageRequest) ports.PageRequest {
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	if p.Page <= 0 {
		p.Page = 1
	}
	return p
}

func newListResult[T any](items []*T, total int64, p ports.PageRequest) *ports.ListResult[T] {
	if items == nil {
		items = []*T{}
	}
	totalPages := 0
	if p.Limit > 0 {
		totalPages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return &ports.ListResult[T]{
		Items:      items,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
	}
}
