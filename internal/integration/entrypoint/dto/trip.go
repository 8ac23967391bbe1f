package dto

import (
	"time"

	"github.com/trip-logbook/backend/internal/domain/entity"
)

// CreateTripRequest represents the request body for trip creation.
type CreateTripRequest struct {
	CarID         string   `json:"car_id" binding:"required,uuid"`
	StartOdometer int64    `json:"start_odometer"`
	EndOdometer   int64    `json:"end_odometer"`
	StartDate     string   `json:"start_date" binding:"required"`
	EndDate       string   `json:"end_date" binding:"required"`
	FromCity      string   `json:"from_city"`
	ToCity        string   `json:"to_city"`
	Notes         string   `json:"notes"`
	TagIDs        []string `json:"tag_ids,omitempty"`
}

// UpdateTripRequest represents the request body for trip update.
type UpdateTripRequest struct {
	CarID         *string   `json:"car_id,omitempty" binding:"omitempty,uuid"`
	StartOdometer *int64    `json:"start_odometer,omitempty"`
	EndOdometer   *int64    `json:"end_odometer,omitempty"`
	StartDate     *string   `json:"start_date,omitempty"`
	EndDate       *string   `json:"end_date,omitempty"`
	FromCity      *string   `json:"from_city,omitempty"`
	ToCity        *string   `json:"to_city,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	TagIDs        *[]string `json:"tag_ids,omitempty"`
}

// TripResponse represents a single trip in API responses.
type TripResponse struct {
	ID            string        `json:"id"`
	CarID         string        `json:"car_id"`
	CreatedBy     string        `json:"created_by"`
	StartOdometer int64         `json:"start_odometer"`
	EndOdometer   int64         `json:"end_odometer"`
	DistanceKm    int64         `json:"distance_km"`
	StartDate     string        `json:"start_date"`
	EndDate       string        `json:"end_date"`
	FromCity      string        `json:"from_city"`
	ToCity        string        `json:"to_city"`
	Notes         string        `json:"notes"`
	Tags          []TagResponse `json:"tags"`
	CreatedAt     time.Time     `json:"created_at"`
}

// TripListResponse represents the response for listing trips.
type TripListResponse struct {
	Trips []TripResponse `json:"trips"`
}

// CarTripsResponse represents the trips of a single car.
type CarTripsResponse struct {
	Car   CarResponse    `json:"car"`
	Trips []TripResponse `json:"trips"`
}

// ToTripResponse converts a domain Trip entity to a TripResponse DTO.
func ToTripResponse(t *entity.Trip) TripResponse {
	return TripResponse{
		ID:            t.ID.String(),
		CarID:         t.CarID.String(),
		CreatedBy:     t.CreatedBy.String(),
		StartOdometer: t.StartOdometer,
		EndOdometer:   t.EndOdometer,
		DistanceKm:    t.DistanceKm(),
		StartDate:     FormatDate(t.StartDate),
		EndDate:       FormatDate(t.EndDate),
		FromCity:      t.FromCity,
		ToCity:        t.ToCity,
		Notes:         t.Notes,
		Tags:          ToTagResponses(t.Tags),
		CreatedAt:     t.CreatedAt,
	}
}

// ToTripResponses converts trips to TripResponse DTOs.
func ToTripResponses(trips []*entity.Trip) []TripResponse {
	out := make([]TripResponse, len(trips))
	for i, t := range trips {
		out[i] = ToTripResponse(t)
	}
	return out
}
