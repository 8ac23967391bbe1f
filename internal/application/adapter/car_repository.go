package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/domain/entity"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

// CarRepository defines the interface for car persistence operations.
type CarRepository interface {
	// Create creates a new car together with its tag links.
	Create(ctx context.Context, car *entity.Car) error

	// FindByID retrieves a car by its ID with tags loaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Car, error)

	// FindByIDs retrieves the cars with the given IDs. Unknown IDs are skipped.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Car, error)

	// List retrieves the cars inside scope ordered by brand, model and year.
	List(ctx context.Context, scope policy.Scope) ([]*entity.Car, error)

	// ListIDs retrieves the IDs of every car.
	ListIDs(ctx context.Context) ([]uuid.UUID, error)

	// Update saves the mutable fields of a car and replaces its tag links.
	Update(ctx context.Context, car *entity.Car) error

	// Delete removes a car and everything recorded for it.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsDuplicate checks whether the owner already has another car with the same brand, model and year.
	ExistsDuplicate(ctx context.Context, ownerID uuid.UUID, brand, model string, year int, excludeID uuid.UUID) (bool, error)
}
