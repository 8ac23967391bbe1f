package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/domain/entity"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

// RefuelFilter defines filter criteria for listing refuels.
type RefuelFilter struct {
	Scope  policy.Scope
	CarID  *uuid.UUID
	CarIDs []uuid.UUID
	// Date window, From inclusive and To exclusive.
	From *time.Time
	To   *time.Time
}

// RefuelNeighbors holds the refuels surrounding a date on a car's timeline.
type RefuelNeighbors struct {
	// Previous is the latest refuel dated on or before the date.
	Previous *entity.Refuel
	// Next is the earliest refuel dated after the date.
	Next *entity.Refuel
}

// RefuelRepository defines the interface for refuel persistence operations.
type RefuelRepository interface {
	// Create creates a new refuel.
	Create(ctx context.Context, refuel *entity.Refuel) error

	// FindByID retrieves a refuel by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Refuel, error)

	// List retrieves refuels matching the filter, newest first.
	List(ctx context.Context, filter RefuelFilter) ([]*entity.Refuel, error)

	// FindNeighbors retrieves the refuels of carID around date, ignoring excludeID.
	FindNeighbors(ctx context.Context, carID uuid.UUID, date time.Time, excludeID uuid.UUID) (*RefuelNeighbors, error)

	// Update saves the mutable fields of a refuel.
	Update(ctx context.Context, refuel *entity.Refuel) error

	// Delete removes a refuel.
	Delete(ctx context.Context, id uuid.UUID) error
}
