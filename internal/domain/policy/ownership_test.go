package policy

import (
	"testing"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/domain/entity"
)

func TestDecide(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	driver := Principal{UserID: owner, Roles: []entity.Role{entity.RoleDrivers}}
	otherDriver := Principal{UserID: other, Roles: []entity.Role{entity.RoleDrivers}}
	manager := Principal{UserID: other, Roles: []entity.Role{entity.RoleManagers}}
	plainOwner := Principal{UserID: owner}
	anonymous := Principal{}

	trip := CarResource(KindTrip, owner)
	tag := Resource{Kind: KindTag}

	tests := []struct {
		name      string
		principal Principal
		action    Action
		resource  Resource
		expected  Decision
	}{
		{name: "anonymous is denied", principal: anonymous, action: ActionView, resource: trip, expected: DenyNotFound},
		{name: "owner driver may view", principal: driver, action: ActionView, resource: trip, expected: Allow},
		{name: "owner driver may change", principal: driver, action: ActionChange, resource: trip, expected: Allow},
		{name: "owner driver may add", principal: driver, action: ActionAdd, resource: CarResource(KindCar, owner), expected: Allow},
		{name: "owner driver may not delete", principal: driver, action: ActionDelete, resource: trip, expected: DenyForbidden},
		{name: "non owner driver sees not found", principal: otherDriver, action: ActionView, resource: trip, expected: DenyNotFound},
		{name: "non owner driver delete is not found", principal: otherDriver, action: ActionDelete, resource: trip, expected: DenyNotFound},
		{name: "manager may view any car", principal: manager, action: ActionView, resource: CarResource(KindCar, owner), expected: Allow},
		{name: "manager may delete any refuel", principal: manager, action: ActionDelete, resource: CarResource(KindRefuel, owner), expected: Allow},
		{name: "owner without roles may delete", principal: plainOwner, action: ActionDelete, resource: trip, expected: Allow},
		{name: "driver may view tags", principal: otherDriver, action: ActionView, resource: tag, expected: Allow},
		{name: "driver may not create tags", principal: driver, action: ActionAdd, resource: tag, expected: DenyForbidden},
		{name: "user without roles may not delete tags", principal: plainOwner, action: ActionDelete, resource: tag, expected: DenyForbidden},
		{name: "manager may delete tags", principal: manager, action: ActionDelete, resource: tag, expected: Allow},
		{name: "anonymous may not view tags", principal: anonymous, action: ActionView, resource: tag, expected: DenyNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.principal, tt.action, tt.resource)
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
			if CanAccess(tt.principal, tt.action, tt.resource) != (tt.expected == Allow) {
				t.Errorf("expected CanAccess to agree with Decide")
			}
		})
	}
}

func TestScopeFor(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name      string
		principal Principal
		owner     uuid.UUID
		expected  bool
	}{
		{name: "own resource", principal: Principal{UserID: userID, Roles: []entity.Role{entity.RoleDrivers}}, owner: userID, expected: true},
		{name: "foreign resource", principal: Principal{UserID: userID}, owner: uuid.New(), expected: false},
		{name: "manager sees foreign resource", principal: Principal{UserID: userID, Roles: []entity.Role{entity.RoleManagers}}, owner: uuid.New(), expected: true},
		{name: "anonymous sees nothing", principal: Principal{}, owner: uuid.Nil, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScopeFor(tt.principal).Includes(tt.owner); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}

	if !SystemScope().Includes(uuid.New()) {
		t.Error("expected system scope to include every owner")
	}
}
