package dto

import (
	"time"

	"github.com/trip-logbook/backend/internal/domain/entity"
)

// CreateCarRequest represents the request body for car creation.
type CreateCarRequest struct {
	Brand    string   `json:"brand" binding:"required"`
	Model    string   `json:"model" binding:"required"`
	Year     int      `json:"year" binding:"required"`
	Fuel     string   `json:"fuel" binding:"required"`
	Gearbox  string   `json:"gearbox" binding:"required"`
	VIN      *string  `json:"vin,omitempty"`
	PhotoURL *string  `json:"photo_url,omitempty"`
	TagIDs   []string `json:"tag_ids,omitempty"`
}

// UpdateCarRequest represents the request body for car update.
type UpdateCarRequest struct {
	Brand    *string   `json:"brand,omitempty"`
	Model    *string   `json:"model,omitempty"`
	Year     *int      `json:"year,omitempty"`
	Fuel     *string   `json:"fuel,omitempty"`
	Gearbox  *string   `json:"gearbox,omitempty"`
	VIN      *string   `json:"vin,omitempty"`
	PhotoURL *string   `json:"photo_url,omitempty"`
	TagIDs   *[]string `json:"tag_ids,omitempty"`
}

// CarResponse represents a single car in API responses.
type CarResponse struct {
	ID        string        `json:"id"`
	OwnerID   string        `json:"owner_id"`
	Label     string        `json:"label"`
	Brand     string        `json:"brand"`
	Model     string        `json:"model"`
	Year      int           `json:"year"`
	Fuel      string        `json:"fuel"`
	Gearbox   string        `json:"gearbox"`
	VIN       *string       `json:"vin,omitempty"`
	PhotoURL  *string       `json:"photo_url,omitempty"`
	Tags      []TagResponse `json:"tags"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// CarListResponse represents the response for listing cars.
type CarListResponse struct {
	Cars []CarResponse `json:"cars"`
}

// ToCarResponse converts a domain Car entity to a CarResponse DTO.
func ToCarResponse(c *entity.Car) CarResponse {
	return CarResponse{
		ID:        c.ID.String(),
		OwnerID:   c.OwnerID.String(),
		Label:     c.Label(),
		Brand:     c.Brand,
		Model:     c.Model,
		Year:      c.Year,
		Fuel:      string(c.Fuel),
		Gearbox:   string(c.Gearbox),
		VIN:       c.VIN,
		PhotoURL:  c.PhotoURL,
		Tags:      ToTagResponses(c.Tags),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToCarListResponse converts cars to a CarListResponse DTO.
func ToCarListResponse(cars []*entity.Car) CarListResponse {
	out := make([]CarResponse, len(cars))
	for i, c := range cars {
		out[i] = ToCarResponse(c)
	}
	return CarListResponse{Cars: out}
}
