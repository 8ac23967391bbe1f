package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
	"github.com/trip-logbook/backend/internal/integration/persistence/model"
)

// monthlyStatRepository implements the adapter.MonthlyStatRepository interface.
type monthlyStatRepository struct {
	db *gorm.DB
}

// NewMonthlyStatRepository creates a new monthly stat repository instance.
func NewMonthlyStatRepository(db *gorm.DB) adapter.MonthlyStatRepository {
	return &monthlyStatRepository{
		db: db,
	}
}

// Upsert writes the row keyed by (car, year, month) in a single statement,
// replacing every derived field of an existing row.
func (r *monthlyStatRepository) Upsert(ctx context.Context, stat *entity.MonthlyCarStat) error {
	statModel := model.MonthlyCarStatFromEntity(stat)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "car_id"}, {Name: "year"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"trips_count",
			"total_distance_km",
			"refuels_count",
			"total_fuel_liters",
			"total_fuel_cost",
			"updated_at",
		}),
	}).Create(statModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByKey retrieves the row for (car, year, month), or nil when it was never computed.
func (r *monthlyStatRepository) FindByKey(ctx context.Context, carID uuid.UUID, year, month int) (*entity.MonthlyCarStat, error) {
	var statModel model.MonthlyCarStatModel
	result := r.db.WithContext(ctx).
		Where("car_id = ? AND year = ? AND month = ?", carID, year, month).
		First(&statModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return statModel.ToEntity(), nil
}

// ListByCar retrieves the rows of a car, newest month first, optionally for one year.
func (r *monthlyStatRepository) ListByCar(ctx context.Context, carID uuid.UUID, year *int) ([]*entity.MonthlyCarStat, error) {
	query := r.db.WithContext(ctx).Where("car_id = ?", carID)
	if year != nil {
		query = query.Where("year = ?", *year)
	}

	var statModels []model.MonthlyCarStatModel
	result := query.Order("year DESC, month DESC").Find(&statModels)
	if result.Error != nil {
		return nil, result.Error
	}

	stats := make([]*entity.MonthlyCarStat, len(statModels))
	for i := range statModels {
		stats[i] = statModels[i].ToEntity()
	}
	return stats, nil
}
