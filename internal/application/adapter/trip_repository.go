package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/domain/entity"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

// TripFilter defines filter criteria for listing trips.
type TripFilter struct {
	Scope  policy.Scope
	CarID  *uuid.UUID
	CarIDs []uuid.UUID
	// Start date window, From inclusive and To exclusive.
	From *time.Time
	To   *time.Time
}

// TripRepository defines the interface for trip persistence operations.
type TripRepository interface {
	// Create creates a new trip together with its tag links.
	Create(ctx context.Context, trip *entity.Trip) error

	// FindByID retrieves a trip by its ID with tags loaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Trip, error)

	// List retrieves trips matching the filter, newest start date first.
	List(ctx context.Context, filter TripFilter) ([]*entity.Trip, error)

	// Update saves the mutable fields of a trip and replaces its tag links.
	Update(ctx context.Context, trip *entity.Trip) error

	// Delete removes a trip and unlinks its expenses.
	Delete(ctx context.Context, id uuid.UUID) error
}
