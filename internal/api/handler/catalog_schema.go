package handler

import (
	"github.com/renovatepro/renovate-api/internal/core/domain"
	"github.com/renovatepro/renovate-api/internal/core/ports"
)

type createServiceRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"       validate:"gte=0"`
	Category    string  `json:"category"`
}

type updateServiceRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"       validate:"omitempty,gte=0"`
	Category    *string  `json:"category"`
}

type listServicesQuery struct {
	Category string `query:"category" json:"category"`
	Search   string `query:"search"   json:"search"`
	PageQuery
}

func (r createServiceRequest) toInput() ports.CreateServiceInput {
	return ports.CreateServiceInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
	}
}

func (r updateServiceRequest) toChanges() domain.ServiceChanges {
	return domain.ServiceChanges{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
	}
}
