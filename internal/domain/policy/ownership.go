// Package policy decides what a principal may do with ledger resources.
//
// Every entry point (HTTP controllers, use cases, background jobs) asks this
// package instead of checking roles on its own.
package policy

import (
	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/domain/entity"
)

// Action is an operation on a resource.
type Action string

const (
	ActionView   Action = "view"
	ActionAdd    Action = "add"
	ActionChange Action = "change"
	ActionDelete Action = "delete"
)

// Kind identifies the type of a resource.
type Kind string

const (
	KindCar     Kind = "car"
	KindTrip    Kind = "trip"
	KindRefuel  Kind = "refuel"
	KindExpense Kind = "expense"
	KindTag     Kind = "tag"
)

// Decision is the outcome of a policy check.
type Decision int

const (
	// Allow permits the action.
	Allow Decision = iota
	// DenyNotFound hides the resource as if it did not exist.
	DenyNotFound
	// DenyForbidden reports that the owner may not perform the action.
	DenyForbidden
)

// Principal is the authenticated actor making a request.
type Principal struct {
	UserID uuid.UUID
	Roles  []entity.Role
}

// NewPrincipal builds a principal from a user.
func NewPrincipal(user *entity.User) Principal {
	return Principal{UserID: user.ID, Roles: user.Roles}
}

// IsAuthenticated reports whether the principal identifies a user.
func (p Principal) IsAuthenticated() bool {
	return p.UserID != uuid.Nil
}

// IsManager reports whether the principal bypasses ownership checks.
func (p Principal) IsManager() bool {
	return p.hasRole(entity.RoleManagers)
}

func (p Principal) hasRole(role entity.Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Resource describes the target of an action. OwnerID is the car owner for
// cars, trips and refuels, the creator for expenses, and unset for tags.
type Resource struct {
	Kind    Kind
	OwnerID uuid.UUID
}

// CarResource describes a car, or anything reached through a car, owned by ownerID.
func CarResource(kind Kind, ownerID uuid.UUID) Resource {
	return Resource{Kind: kind, OwnerID: ownerID}
}

// roleGrants lists what each non-manager role may do per resource kind.
var roleGrants = map[entity.Role]map[Kind][]Action{
	entity.RoleDrivers: {
		KindCar:     {ActionView, ActionAdd, ActionChange},
		KindTrip:    {ActionView, ActionAdd, ActionChange},
		KindRefuel:  {ActionView, ActionAdd, ActionChange},
		KindExpense: {ActionView, ActionAdd, ActionChange},
		KindTag:     {ActionView},
	},
}

func granted(p Principal, action Action, kind Kind) bool {
	for _, role := range p.Roles {
		for _, a := range roleGrants[role][kind] {
			if a == action {
				return true
			}
		}
	}
	return false
}

// Decide evaluates whether p may perform action on r.
//
// Resources the principal does not own are always reported as DenyNotFound.
// Owned resources whose action is outside every held role's grants are
// reported as DenyForbidden. Principals without any role are limited by
// ownership only.
func Decide(p Principal, action Action, r Resource) Decision {
	if !p.IsAuthenticated() {
		return DenyNotFound
	}
	if p.IsManager() {
		return Allow
	}

	if r.Kind == KindTag {
		if action == ActionView || granted(p, action, KindTag) {
			return Allow
		}
		return DenyForbidden
	}

	if r.OwnerID != p.UserID {
		return DenyNotFound
	}
	if len(p.Roles) > 0 && !granted(p, action, r.Kind) {
		return DenyForbidden
	}
	return Allow
}

// CanAccess reports whether Decide allows the action.
func CanAccess(p Principal, action Action, r Resource) bool {
	return Decide(p, action, r) == Allow
}

// Scope restricts list queries to the cars a principal may see.
type Scope struct {
	UserID uuid.UUID
	All    bool
}

// ScopeFor returns the list filter for p. Managers see everything; everyone
// else sees what they own. Unauthenticated principals see nothing.
func ScopeFor(p Principal) Scope {
	if p.IsAuthenticated() && p.IsManager() {
		return Scope{All: true}
	}
	return Scope{UserID: p.UserID}
}

// SystemScope is the unrestricted scope used by background jobs.
func SystemScope() Scope {
	return Scope{All: true}
}

// Includes reports whether a resource owned by ownerID is inside the scope.
func (s Scope) Includes(ownerID uuid.UUID) bool {
	if s.All {
		return true
	}
	return s.UserID != uuid.Nil && s.UserID == ownerID
}
