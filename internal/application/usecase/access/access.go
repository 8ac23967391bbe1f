// Package access turns ownership policy decisions into the errors reported by
// ledger use cases.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

type notFoundInfo struct {
	code    domainerror.LedgerErrorCode
	message string
	err     error
}

var notFoundByKind = map[policy.Kind]notFoundInfo{
	policy.KindCar:     {domainerror.ErrCodeCarNotFound, "car not found", domainerror.ErrCarNotFound},
	policy.KindTrip:    {domainerror.ErrCodeTripNotFound, "trip not found", domainerror.ErrTripNotFound},
	policy.KindRefuel:  {domainerror.ErrCodeRefuelNotFound, "refuel not found", domainerror.ErrRefuelNotFound},
	policy.KindExpense: {domainerror.ErrCodeExpenseNotFound, "expense not found", domainerror.ErrExpenseNotFound},
	policy.KindTag:     {domainerror.ErrCodeTagNotFound, "tag not found", domainerror.ErrTagNotFound},
}

// NotFound returns the not found error for a resource kind.
func NotFound(kind policy.Kind) error {
	info := notFoundByKind[kind]
	return domainerror.NewLedgerError(info.code, info.message, info.err)
}

// Forbidden returns the error reported when an owner may not perform action.
func Forbidden(action policy.Action, kind policy.Kind) error {
	return domainerror.NewLedgerError(
		domainerror.ErrCodeActionForbidden,
		fmt.Sprintf("you are not allowed to %s this %s", action, kind),
		domainerror.ErrActionForbidden,
	)
}

// Authorize returns nil when the policy allows the action, otherwise the
// matching not found or forbidden error.
func Authorize(p policy.Principal, action policy.Action, r policy.Resource) error {
	switch policy.Decide(p, action, r) {
	case policy.Allow:
		return nil
	case policy.DenyForbidden:
		return Forbidden(action, r.Kind)
	default:
		return NotFound(r.Kind)
	}
}

// CarGuard loads cars on behalf of a principal. Trips and refuels are reached
// through their car, so their object-level checks go through here too.
type CarGuard struct {
	carRepo adapter.CarRepository
}

// NewCarGuard creates a new CarGuard instance.
func NewCarGuard(carRepo adapter.CarRepository) *CarGuard {
	return &CarGuard{carRepo: carRepo}
}

// Load returns the car with carID if p may perform action on a resource of
// kind that belongs to it. Absent cars are reported as not found for kind.
func (g *CarGuard) Load(ctx context.Context, p policy.Principal, action policy.Action, kind policy.Kind, carID uuid.UUID) (*entity.Car, error) {
	car, err := g.carRepo.FindByID(ctx, carID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCarNotFound) {
			return nil, NotFound(kind)
		}
		return nil, fmt.Errorf("failed to find car: %w", err)
	}

	if err := Authorize(p, action, policy.CarResource(kind, car.OwnerID)); err != nil {
		return nil, err
	}
	return car, nil
}
