package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/integration/persistence/model"
)

// tripRepository implements the adapter.TripRepository interface.
type tripRepository struct {
	db *gorm.DB
}

// NewTripRepository creates a new trip repository instance.
func NewTripRepository(db *gorm.DB) adapter.TripRepository {
	return &tripRepository{
		db: db,
	}
}

// Create creates a new trip in the database and links its tags.
func (r *tripRepository) Create(ctx context.Context, trip *entity.Trip) error {
	tripModel := model.TripFromEntity(trip)
	result := r.db.WithContext(ctx).Omit("Tags.*").Create(tripModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a trip by its ID.
func (r *tripRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Trip, error) {
	var tripModel model.TripModel
	result := r.db.WithContext(ctx).Preload("Tags").Where("id = ?", id).First(&tripModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTripNotFound
		}
		return nil, result.Error
	}
	return tripModel.ToEntity(), nil
}

// List retrieves trips matching the filter, newest start date first.
func (r *tripRepository) List(ctx context.Context, filter adapter.TripFilter) ([]*entity.Trip, error) {
	query := scopeByCarOwner(r.db.WithContext(ctx).Preload("Tags"), filter.Scope)

	if filter.CarID != nil {
		query = query.Where("car_id = ?", *filter.CarID)
	}
	if len(filter.CarIDs) > 0 {
		query = query.Where("car_id IN ?", filter.CarIDs)
	}
	if filter.From != nil {
		query = query.Where("start_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("start_date < ?", *filter.To)
	}

	var tripModels []model.TripModel
	result := query.Order("start_date DESC, created_at DESC").Find(&tripModels)
	if result.Error != nil {
		return nil, result.Error
	}

	trips := make([]*entity.Trip, len(tripModels))
	for i := range tripModels {
		trips[i] = tripModels[i].ToEntity()
	}
	return trips, nil
}

// Update saves the mutable fields of a trip and replaces its tags.
func (r *tripRepository) Update(ctx context.Context, trip *entity.Trip) error {
	tripModel := model.TripFromEntity(trip)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Omit("Tags", "CreatedBy", "CreatedAt").Save(tripModel)
		if result.Error != nil {
			return result.Error
		}
		return tx.Model(tripModel).Association("Tags").Replace(tripModel.Tags)
	})
}

// Delete removes a trip. Its expenses are kept and unlinked.
func (r *tripRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ExpenseModel{}).Where("trip_id = ?", id).Update("trip_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM trip_tags WHERE trip_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.TripModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrTripNotFound
		}
		return nil
	})
}
