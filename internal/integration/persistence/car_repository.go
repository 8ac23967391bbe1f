package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/domain/policy"
	"github.com/trip-logbook/backend/internal/integration/persistence/model"
)

// carRepository implements the adapter.CarRepository interface.
type carRepository struct {
	db *gorm.DB
}

// NewCarRepository creates a new car repository instance.
func NewCarRepository(db *gorm.DB) adapter.CarRepository {
	return &carRepository{
		db: db,
	}
}

// Create creates a new car in the database and links its tags.
func (r *carRepository) Create(ctx context.Context, car *entity.Car) error {
	carModel := model.CarFromEntity(car)
	result := r.db.WithContext(ctx).Omit("Tags.*").Create(carModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a car by its ID.
func (r *carRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Car, error) {
	var carModel model.CarModel
	result := r.db.WithContext(ctx).Preload("Tags").Where("id = ?", id).First(&carModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCarNotFound
		}
		return nil, result.Error
	}
	return carModel.ToEntity(), nil
}

// FindByIDs retrieves the cars with the given IDs. Unknown IDs are skipped.
func (r *carRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Car, error) {
	if len(ids) == 0 {
		return []*entity.Car{}, nil
	}

	var carModels []model.CarModel
	result := r.db.WithContext(ctx).Preload("Tags").Where("id IN ?", ids).Find(&carModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return carsToEntities(carModels), nil
}

// List retrieves the cars inside scope, ordered by brand, model and year.
func (r *carRepository) List(ctx context.Context, scope policy.Scope) ([]*entity.Car, error) {
	query := r.db.WithContext(ctx).Preload("Tags")
	if !scope.All {
		query = query.Where("owner_id = ?", scope.UserID)
	}

	var carModels []model.CarModel
	result := query.Order("brand ASC, model ASC, year ASC, id ASC").Find(&carModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return carsToEntities(carModels), nil
}

// ListIDs retrieves the IDs of every car.
func (r *carRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	result := r.db.WithContext(ctx).Model(&model.CarModel{}).Order("id ASC").Pluck("id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}

// Update saves the mutable fields of a car and replaces its tags.
func (r *carRepository) Update(ctx context.Context, car *entity.Car) error {
	carModel := model.CarFromEntity(car)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Omit("Tags", "OwnerID", "CreatedAt").Save(carModel)
		if result.Error != nil {
			return result.Error
		}
		return tx.Model(carModel).Association("Tags").Replace(carModel.Tags)
	})
}

// Delete removes a car together with its trips, refuels and monthly stats.
// Expenses of its trips are kept and unlinked.
func (r *carRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tripIDs := tx.Model(&model.TripModel{}).Select("id").Where("car_id = ?", id)

		if err := tx.Model(&model.ExpenseModel{}).
			Where("trip_id IN (?)", tripIDs).
			Update("trip_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM trip_tags WHERE trip_id IN (?)", tripIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("car_id = ?", id).Delete(&model.TripModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("car_id = ?", id).Delete(&model.RefuelModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("car_id = ?", id).Delete(&model.MonthlyCarStatModel{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM car_tags WHERE car_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.CarModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrCarNotFound
		}
		return nil
	})
}

// ExistsDuplicate checks if ownerID already has another car with the same
// brand, model and year. Brand and model compare case-insensitively.
func (r *carRepository) ExistsDuplicate(ctx context.Context, ownerID uuid.UUID, brand, carModel string, year int, excludeID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.CarModel{}).
		Where("owner_id = ? AND LOWER(brand) = ? AND LOWER(model) = ? AND year = ? AND id <> ?",
			ownerID, strings.ToLower(brand), strings.ToLower(carModel), year, excludeID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

func carsToEntities(carModels []model.CarModel) []*entity.Car {
	cars := make([]*entity.Car, len(carModels))
	for i := range carModels {
		cars[i] = carModels[i].ToEntity()
	}
	return cars
}
