package domain

import (
	"slices"
	"sort"
)

// Field names an order attribute that a request may try to write.
type Field string

const (
	FieldDescription Field = "description"
	FieldBudget      Field = "budget"
	FieldAddress     Field = "address"
	FieldClientName  Field = "client_name"
	FieldClientPhone Field = "client_phone"
	FieldService     Field = "service"
	FieldStatus      Field = "status"
	FieldWorkers     Field = "workers"
	FieldDesigner    Field = "designer"
	FieldOwner       Field = "user"
)

// FieldSet is an immutable-by-convention set of fields.
type FieldSet map[Field]struct{}

// NewFieldSet returns a set holding fields.
func NewFieldSet(fields ...Field) FieldSet {
	s := make(FieldSet, len(fields))
	for _, f := range fields {
		s[f] = struct{}{}
	}
	return s
}

// Has reports whether f is in the set.
func (s FieldSet) Has(f Field) bool {
	_, ok := s[f]
	return ok
}

// With returns a new set holding s plus extra.
func (s FieldSet) With(extra ...Field) FieldSet {
	out := make(FieldSet, len(s)+len(extra))
	for f := range s {
		out[f] = struct{}{}
	}
	for _, f := range extra {
		out[f] = struct{}{}
	}
	return out
}

// Sorted returns the fields in lexical order.
func (s FieldSet) Sorted() []Field {
	out := make([]Field, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// OrderChanges is a requested partial update. A nil pointer means the field
// was not submitted.
type OrderChanges struct {
	Description *string
	Budget      *float64
	Address     *string
	ClientName  *string
	ClientPhone *string
	Service     *string
	Status      *OrderStatus
	Workers     *[]string
	Designer    *string
	Owner       *string
}

// Fields returns the set of submitted fields.
func (c OrderChanges) Fields() FieldSet {
	s := FieldSet{}
	add := func(present bool, f Field) {
		if present {
			s[f] = struct{}{}
		}
	}
	add(c.Description != nil, FieldDescription)
	add(c.Budget != nil, FieldBudget)
	add(c.Address != nil, FieldAddress)
	add(c.ClientName != nil, FieldClientName)
	add(c.ClientPhone != nil, FieldClientPhone)
	add(c.Service != nil, FieldService)
	add(c.Status != nil, FieldStatus)
	add(c.Workers != nil, FieldWorkers)
	add(c.Designer != nil, FieldDesigner)
	add(c.Owner != nil, FieldOwner)
	return s
}

// Empty reports whether nothing was submitted.
func (c OrderChanges) Empty() bool {
	return len(c.Fields()) == 0
}

// Only returns a copy of c keeping just the fields in allowed.
func (c OrderChanges) Only(allowed FieldSet) OrderChanges {
	var out OrderChanges
	if allowed.Has(FieldDescription) {
		out.Description = c.Description
	}
	if allowed.Has(FieldBudget) {
		out.Budget = c.Budget
	}
	if allowed.Has(FieldAddress) {
		out.Address = c.Address
	}
	if allowed.Has(FieldClientName) {
		out.ClientName = c.ClientName
	}
	if allowed.Has(FieldClientPhone) {
		out.ClientPhone = c.ClientPhone
	}
	if allowed.Has(FieldService) {
		out.Service = c.Service
	}
	if allowed.Has(FieldStatus) {
		out.Status = c.Status
	}
	if allowed.Has(FieldWorkers) {
		out.Workers = c.Workers
	}
	if allowed.Has(FieldDesigner) {
		out.Designer = c.Designer
	}
	if allowed.Has(FieldOwner) {
		out.Owner = c.Owner
	}
	return out
}

// ApplyTo writes the submitted fields onto o. Used by in-memory stores and
// to compute the response when the backing store cannot return the document.
func (c OrderChanges) ApplyTo(o *Order) {
	if c.Description != nil {
		o.Description = *c.Description
	}
	if c.Budget != nil {
		o.Budget = *c.Budget
	}
	if c.Address != nil {
		o.Address = *c.Address
	}
	if c.ClientName != nil {
		o.ClientName = *c.ClientName
	}
	if c.ClientPhone != nil {
		o.ClientPhone = *c.ClientPhone
	}
	if c.Service != nil {
		o.Service = *c.Service
	}
	if c.Status != nil {
		o.Status = *c.Status
	}
	if c.Workers != nil {
		o.Workers = slices.Clone(*c.Workers)
	}
	if c.Designer != nil {
		o.Designer = *c.Designer
	}
	if c.Owner != nil {
		o.Owner = *c.Owner
	}
}
