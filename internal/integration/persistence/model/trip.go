package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/domain/entity"
)

// TripModel represents the trips table in the database.
type TripModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CarID         uuid.UUID  `gorm:"type:uuid;not null;index:idx_trips_car_start,priority:1"`
	CreatedBy     uuid.UUID  `gorm:"type:uuid;not null;index"`
	StartOdometer int64      `gorm:"not null"`
	EndOdometer   int64      `gorm:"not null"`
	StartDate     time.Time  `gorm:"type:date;not null;index:idx_trips_car_start,priority:2"`
	EndDate       time.Time  `gorm:"type:date;not null"`
	FromCity      string     `gorm:"type:varchar(60);not null"`
	ToCity        string     `gorm:"type:varchar(60);not null"`
	Notes         string     `gorm:"type:text"`
	Tags          []TagModel `gorm:"many2many:trip_tags;joinForeignKey:TripID;joinReferences:TagID"`
	CreatedAt     time.Time  `gorm:"not null"`
}

// TableName returns the table name for the TripModel.
func (TripModel) TableName() string {
	return "trips"
}

// ToEntity converts a TripModel to a domain Trip entity.
func (m *TripModel) ToEntity() *entity.Trip {
	return &entity.Trip{
		ID:            m.ID,
		CarID:         m.CarID,
		CreatedBy:     m.CreatedBy,
		StartOdometer: m.StartOdometer,
		EndOdometer:   m.EndOdometer,
		StartDate:     m.StartDate.UTC(),
		EndDate:       m.EndDate.UTC(),
		FromCity:      m.FromCity,
		ToCity:        m.ToCity,
		Notes:         m.Notes,
		Tags:          TagsToEntities(m.Tags),
		CreatedAt:     m.CreatedAt,
	}
}

// TripFromEntity creates a TripModel from a domain Trip entity.
func TripFromEntity(trip *entity.Trip) *TripModel {
	return &TripModel{
		ID:            trip.ID,
		CarID:         trip.CarID,
		CreatedBy:     trip.CreatedBy,
		StartOdometer: trip.StartOdometer,
		EndOdometer:   trip.EndOdometer,
		StartDate:     entity.DateOnly(trip.StartDate),
		EndDate:       entity.DateOnly(trip.EndDate),
		FromCity:      trip.FromCity,
		ToCity:        trip.ToCity,
		Notes:         trip.Notes,
		Tags:          TagsFromEntities(trip.Tags),
		CreatedAt:     trip.CreatedAt,
	}
}
