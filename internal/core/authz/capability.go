// Package authz holds the role-capability table and the authorizers that
// decide, per request, what a session may read or write on an order or a
// portfolio item. Everything here is pure: no I/O, no clock, no logging.
package authz

import "github.com/renovatepro/renovate-api/internal/core/domain"

// Capability is the relationship that governs what a session may write on a
// specific order.
type Capability string

const (
	CapNone     Capability = "none"
	CapWorker   Capability = "assigned_worker"
	CapOwner    Capability = "owner"
	CapDesigner Capability = "assigned_designer"
	CapAdmin    Capability = "admin"
)

var (
	ownerFields    = domain.NewFieldSet(domain.FieldDescription, domain.FieldBudget, domain.FieldAddress, domain.FieldClientName, domain.FieldClientPhone, domain.FieldService)
	designerFields = ownerFields.With(domain.FieldStatus, domain.FieldWorkers)
	adminFields    = designerFields.With(domain.FieldDesigner, domain.FieldOwner)
	workerFields   = domain.NewFieldSet(domain.FieldStatus)
)

// capabilityTable is the maximum writable field set per capability.
var capabilityTable = map[Capability]domain.FieldSet{
	CapAdmin:    adminFields,
	CapDesigner: designerFields,
	CapOwner:    ownerFields,
	CapWorker:   workerFields,
	CapNone:     {},
}

// Tags are the relationships between a session and an order. More than one
// may hold at once.
type Tags struct {
	Owner            bool
	Admin            bool
	AssignedDesigner bool
	AssignedWorker   bool
}

// precedence resolves Tags to a single capability: the first match wins.
var precedence = []struct {
	cap   Capability
	match func(Tags) bool
}{
	{CapAdmin, func(t Tags) bool { return t.Admin }},
	{CapDesigner, func(t Tags) bool { return t.AssignedDesigner }},
	{CapOwner, func(t Tags) bool { return t.Owner }},
	{CapWorker, func(t Tags) bool { return t.AssignedWorker }},
}

// Relate computes the relationship tags of s to o.
func Relate(s *domain.Session, o *domain.Order) Tags {
	if s == nil || o == nil || s.ID == "" {
		return Tags{}
	}
	return Tags{
		Owner:            o.Owner == s.ID,
		Admin:            s.Role == domain.RoleAdmin,
		AssignedDesigner: o.Designer != "" && o.Designer == s.ID,
		AssignedWorker:   o.HasWorker(s.ID),
	}
}

// Governing returns the most privileged capability matched by t.
func (t Tags) Governing() Capability {
	for _, p := range precedence {
		if p.match(t) {
			return p.cap
		}
	}
	return CapNone
}

// Any reports whether at least one relationship holds.
func (t Tags) Any() bool {
	return t.Owner || t.Admin || t.AssignedDesigner || t.AssignedWorker
}

// FieldsFor returns the writable field set of a capability.
func FieldsFor(c Capability) domain.FieldSet {
	return capabilityTable[c]
}

// AllowedFields returns the fields s may write on o.
func AllowedFields(s *domain.Session, o *domain.Order) domain.FieldSet {
	return FieldsFor(Relate(s, o).Governing())
}
