package entity

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a single journey recorded for a car.
type Trip struct {
	ID            uuid.UUID
	CarID         uuid.UUID
	CreatedBy     uuid.UUID
	StartOdometer int64
	EndOdometer   int64
	StartDate     time.Time
	EndDate       time.Time
	FromCity      string
	ToCity        string
	Notes         string
	Tags          []Tag
	CreatedAt     time.Time
}

// NewTrip creates a new Trip with date-only start and end dates.
func NewTrip(carID, createdBy uuid.UUID, startOdometer, endOdometer int64, startDate, endDate time.Time, fromCity, toCity string) *Trip {
	return &Trip{
		ID:            uuid.New(),
		CarID:         carID,
		CreatedBy:     createdBy,
		StartOdometer: startOdometer,
		EndOdometer:   endOdometer,
		StartDate:     DateOnly(startDate),
		EndDate:       DateOnly(endDate),
		FromCity:      fromCity,
		ToCity:        toCity,
		Tags:          []Tag{},
		CreatedAt:     time.Now().UTC(),
	}
}

// DistanceKm returns the driven distance, floored at zero.
func (t *Trip) DistanceKm() int64 {
	if t.EndOdometer < t.StartOdometer {
		return 0
	}
	return t.EndOdometer - t.StartOdometer
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
