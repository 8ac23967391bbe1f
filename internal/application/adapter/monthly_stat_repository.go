package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/domain/entity"
)

// MonthlyStatRepository defines the interface for the materialized monthly car statistics.
type MonthlyStatRepository interface {
	// Upsert writes the row keyed by (car, year, month), replacing every derived field.
	Upsert(ctx context.Context, stat *entity.MonthlyCarStat) error

	// FindByKey retrieves the row for (car, year, month).
	FindByKey(ctx context.Context, carID uuid.UUID, year, month int) (*entity.MonthlyCarStat, error)

	// ListByCar retrieves the rows of a car, newest month first. A nil year returns every year.
	ListByCar(ctx context.Context, carID uuid.UUID, year *int) ([]*entity.MonthlyCarStat, error)
}
