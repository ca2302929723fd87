package handler

import "time"

type createOrderRequest struct {
	Service     string  `json:"service"      validate:"required"`
	Description string  `json:"description"  validate:"required"`
	Budget      float64 `json:"budget"       validate:"gt=0"`
	Address     string  `json:"address"      validate:"required"`
	ClientName  string  `json:"client_name"  validate:"required"`
	ClientPhone string  `json:"client_phone" validate:"required"`
	Designer    string  `json:"designer"`
	// User opens the order on behalf of another account; admins only.
	User string `json:"user"`
}

// updateOrderRequest is a partial update. Absent or null fields are left
// untouched; which of the present fields apply depends on the caller. Values
// are checked only after the caller's fields are filtered, so nothing here
// carries a value rule.
type updateOrderRequest struct {
	Description *string   `json:"description"`
	Budget      *float64  `json:"budget"`
	Address     *string   `json:"address"`
	ClientName  *string   `json:"client_name"`
	ClientPhone *string   `json:"client_phone"`
	Service     *string   `json:"service"`
	Status      *string   `json:"status"`
	Workers     *[]string `json:"workers"`
	Designer    *string   `json:"designer"`
	User        *string   `json:"user"`
}

type listOrdersQuery struct {
	Status string `query:"status" json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Search string `query:"search" json:"search"`
	PageQuery
}

type orderLinks struct {
	Self string `json:"self"`
}

type orderResponse struct {
	ID          string     `json:"id"`
	User        string     `json:"user"`
	Service     string     `json:"service"`
	Designer    string     `json:"designer,omitempty"`
	Workers     []string   `json:"workers"`
	Status      string     `json:"status"`
	Description string     `json:"description"`
	Budget      float64    `json:"budget"`
	Address     string     `json:"address"`
	ClientName  string     `json:"client_name"`
	ClientPhone string     `json:"client_phone"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Links       orderLinks `json:"_links"`
}
