package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/integration/persistence/model"
)

// refuelRepository implements the adapter.RefuelRepository interface.
type refuelRepository struct {
	db *gorm.DB
}

// NewRefuelRepository creates a new refuel repository instance.
func NewRefuelRepository(db *gorm.DB) adapter.RefuelRepository {
	return &refuelRepository{
		db: db,
	}
}

// Create creates a new refuel in the database.
func (r *refuelRepository) Create(ctx context.Context, refuel *entity.Refuel) error {
	refuelModel := model.RefuelFromEntity(refuel)
	result := r.db.WithContext(ctx).Create(refuelModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a refuel by its ID.
func (r *refuelRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Refuel, error) {
	var refuelModel model.RefuelModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&refuelModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRefuelNotFound
		}
		return nil, result.Error
	}
	return refuelModel.ToEntity(), nil
}

// List retrieves refuels matching the filter, newest first.
func (r *refuelRepository) List(ctx context.Context, filter adapter.RefuelFilter) ([]*entity.Refuel, error) {
	query := scopeByCarOwner(r.db.WithContext(ctx), filter.Scope)

	if filter.CarID != nil {
		query = query.Where("car_id = ?", *filter.CarID)
	}
	if len(filter.CarIDs) > 0 {
		query = query.Where("car_id IN ?", filter.CarIDs)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date < ?", *filter.To)
	}

	var refuelModels []model.RefuelModel
	result := query.Order("date DESC, odometer DESC").Find(&refuelModels)
	if result.Error != nil {
		return nil, result.Error
	}

	refuels := make([]*entity.Refuel, len(refuelModels))
	for i := range refuelModels {
		refuels[i] = refuelModels[i].ToEntity()
	}
	return refuels, nil
}

// FindNeighbors retrieves the latest refuel dated on or before date and the
// earliest dated after it, both for carID and ignoring excludeID. Same-day
// ties resolve to the highest odometer before and the lowest after.
func (r *refuelRepository) FindNeighbors(ctx context.Context, carID uuid.UUID, date time.Time, excludeID uuid.UUID) (*adapter.RefuelNeighbors, error) {
	day := entity.DateOnly(date)
	neighbors := &adapter.RefuelNeighbors{}

	prev, err := r.firstRefuel(ctx, "car_id = ? AND id <> ? AND date <= ?", "date DESC, odometer DESC", carID, excludeID, day)
	if err != nil {
		return nil, err
	}
	neighbors.Previous = prev

	next, err := r.firstRefuel(ctx, "car_id = ? AND id <> ? AND date > ?", "date ASC, odometer ASC", carID, excludeID, day)
	if err != nil {
		return nil, err
	}
	neighbors.Next = next

	return neighbors, nil
}

func (r *refuelRepository) firstRefuel(ctx context.Context, where, order string, args ...any) (*entity.Refuel, error) {
	var refuelModel model.RefuelModel
	result := r.db.WithContext(ctx).Where(where, args...).Order(order).First(&refuelModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return refuelModel.ToEntity(), nil
}

// Update saves the mutable fields of a refuel.
func (r *refuelRepository) Update(ctx context.Context, refuel *entity.Refuel) error {
	refuelModel := model.RefuelFromEntity(refuel)
	result := r.db.WithContext(ctx).Omit("CarID", "CreatedBy", "CreatedAt").Save(refuelModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a refuel.
func (r *refuelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.RefuelModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRefuelNotFound
	}
	return nil
}
