package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/domain/entity"
)

// CarModel represents the cars table in the database.
type CarModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_cars_owner_identity,priority:1"`
	Brand     string     `gorm:"type:varchar(40);not null;uniqueIndex:idx_cars_owner_identity,priority:2"`
	Model     string     `gorm:"type:varchar(60);not null;uniqueIndex:idx_cars_owner_identity,priority:3"`
	Year      int        `gorm:"not null;uniqueIndex:idx_cars_owner_identity,priority:4"`
	Fuel      string     `gorm:"type:varchar(20);not null"`
	Gearbox   string     `gorm:"type:varchar(20);not null"`
	VIN       *string    `gorm:"type:varchar(17)"`
	PhotoURL  *string    `gorm:"type:varchar(500)"`
	Tags      []TagModel `gorm:"many2many:car_tags;joinForeignKey:CarID;joinReferences:TagID"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
}

// TableName returns the table name for the CarModel.
func (CarModel) TableName() string {
	return "cars"
}

// ToEntity converts a CarModel to a domain Car entity.
func (m *CarModel) ToEntity() *entity.Car {
	return &entity.Car{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Brand:     m.Brand,
		Model:     m.Model,
		Year:      m.Year,
		Fuel:      entity.FuelType(m.Fuel),
		Gearbox:   entity.Gearbox(m.Gearbox),
		VIN:       m.VIN,
		PhotoURL:  m.PhotoURL,
		Tags:      TagsToEntities(m.Tags),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// CarFromEntity creates a CarModel from a domain Car entity.
func CarFromEntity(car *entity.Car) *CarModel {
	return &CarModel{
		ID:        car.ID,
		OwnerID:   car.OwnerID,
		Brand:     car.Brand,
		Model:     car.Model,
		Year:      car.Year,
		Fuel:      string(car.Fuel),
		Gearbox:   string(car.Gearbox),
		VIN:       car.VIN,
		PhotoURL:  car.PhotoURL,
		Tags:      TagsFromEntities(car.Tags),
		CreatedAt: car.CreatedAt,
		UpdatedAt: car.UpdatedAt,
	}
}
