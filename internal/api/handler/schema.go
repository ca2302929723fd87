package handler

import (
	"github.com/renovatepro/renovate-api/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listResponse[T any] struct {
	Data       []T                `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// PageQuery holds the paging and ordering query parameters shared by list
// endpoints.
type PageQuery struct {
	Page      int    `query:"page"       json:"page"       validate:"gte=0"`
	Limit     int    `query:"limit"      json:"limit"      validate:"gte=0"`
	SortBy    string `query:"sort_by"    json:"sort_by"`
	SortOrder string `query:"sort_order" json:"sort_order" validate:"omitempty,oneof=asc desc"`
}

// toPageRequest defaults to newest first.
func (q PageQuery) toPageRequest() ports.PageRequest {
	return ports.PageRequest{
		Page:     q.Page,
		Limit:    q.Limit,
		SortBy:   q.SortBy,
		SortDesc: q.SortOrder != "asc",
	}
}

func toListResponse[T any, R any](r *ports.ListResult[T], conv func(*T) R) listResponse[R] {
	items := make([]R, len(r.Items))
	for i, it := range r.Items {
		items[i] = conv(it)
	}
	return listResponse[R]{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}

func identity[T any](v *T) *T { return v }
