package refuel

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/domain/policy"
	"github.com/trip-logbook/backend/internal/domain/valueobject"
)

// ListRefuelsInput represents the input for listing refuels.
type ListRefuelsInput struct {
	Principal policy.Principal
	CarID     *uuid.UUID // Optional
	Year      *int       // Optional
	Month     *int       // Optional, requires Year
}

// ListRefuelsOutput represents the output of listing refuels.
type ListRefuelsOutput struct {
	Refuels []*entity.Refuel
}

// ListRefuelsUseCase handles listing the refuels visible to a principal.
type ListRefuelsUseCase struct {
	refuelRepo adapter.RefuelRepository
}

// NewListRefuelsUseCase creates a new ListRefuelsUseCase instance.
func NewListRefuelsUseCase(refuelRepo adapter.RefuelRepository) *ListRefuelsUseCase {
	return &ListRefuelsUseCase{
		refuelRepo: refuelRepo,
	}
}

// Execute lists refuels inside the principal's scope.
func (uc *ListRefuelsUseCase) Execute(ctx context.Context, input ListRefuelsInput) (*ListRefuelsOutput, error) {
	from, to, err := valueobject.FilterWindow(input.Year, input.Month)
	if err != nil {
		return nil, domainerror.NewLedgerValidationError(domainerror.ErrCodeInvalidFilter, "month", err.Error())
	}

	refuels, err := uc.refuelRepo.List(ctx, adapter.RefuelFilter{
		Scope: policy.ScopeFor(input.Principal),
		CarID: input.CarID,
		From:  from,
		To:    to,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list refuels: %w", err)
	}

	return &ListRefuelsOutput{
		Refuels: refuels,
	}, nil
}
