package persistence

import (
	"gorm.io/gorm"

	"github.com/trip-logbook/backend/internal/domain/policy"
	"github.com/trip-logbook/backend/internal/integration/persistence/model"
)

// scopeByCarOwner restricts a query on a table with a car_id column to the
// cars inside scope.
func scopeByCarOwner(db *gorm.DB, scope policy.Scope) *gorm.DB {
	if scope.All {
		return db
	}
	owned := db.Session(&gorm.Session{NewDB: true}).
		Model(&model.CarModel{}).
		Select("id").
		Where("owner_id = ?", scope.UserID)
	return db.Where("car_id IN (?)", owned)
}
