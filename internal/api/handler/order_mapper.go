package handler

import (
	"github.com/renovatepro/renovate-api/internal/core/domain"
	"github.com/renovatepro/renovate-api/internal/core/ports"
)

func toCreateOrderInput(req createOrderRequest) ports.CreateOrderInput {
	return ports.CreateOrderInput{
		Service:     req.Service,
		Description: req.Description,
		Budget:      req.Budget,
		Address:     req.Address,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Designer:    req.Designer,
		Owner:       req.User,
	}
}

func toOrderChanges(req updateOrderRequest) domain.OrderChanges {
	changes := domain.OrderChanges{
		Description: req.Description,
		Budget:      req.Budget,
		Address:     req.Address,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Service:     req.Service,
		Workers:     req.Workers,
		Designer:    req.Designer,
		Owner:       req.User,
	}
	if req.Status != nil {
		st := domain.OrderStatus(*req.Status)
		changes.Status = &st
	}
	return changes
}

func toOrderResponse(o *domain.Order) orderResponse {
	workers := o.Workers
	if workers == nil {
		workers = []string{}
	}
	return orderResponse{
		ID:          o.ID,
		User:        o.Owner,
		Service:     o.Service,
		Designer:    o.Designer,
		Workers:     workers,
		Status:      string(o.Status),
		Description: o.Description,
		Budget:      o.Budget,
		Address:     o.Address,
		ClientName:  o.ClientName,
		ClientPhone: o.ClientPhone,
		StartDate:   o.StartDate,
		EndDate:     o.EndDate,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Links:       orderLinks{Self: "/v1/orders/" + o.ID},
	}
}
