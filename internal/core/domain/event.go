package domain

import "time"

// OrderAction names what happened to an order in its activity log.
type OrderAction string

const (
	OrderCreated OrderAction = "created"
	OrderUpdated OrderAction = "updated"
	OrderDeleted OrderAction = "deleted"
)

// OrderEvent is one entry of an order's activity log.
type OrderEvent struct {
	OrderID   string
	Action    OrderAction
	ActorID   string
	ActorRole string
	Fields    []Field // fields written, for updates
	Status    OrderStatus
	Timestamp time.Time
}
