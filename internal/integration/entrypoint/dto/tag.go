package dto

import (
	"github.com/trip-logbook/backend/internal/domain/entity"
)

// TagRequest represents the request body for tag creation and rename.
type TagRequest struct {
	Name string `json:"name" binding:"required"`
}

// TagResponse represents a tag in API responses.
type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TagListResponse represents the response for listing tags.
type TagListResponse struct {
	Tags []TagResponse `json:"tags"`
}

// ToTagResponse converts a domain Tag entity to a TagResponse DTO.
func ToTagResponse(t *entity.Tag) TagResponse {
	return TagResponse{ID: t.ID.String(), Name: t.Name}
}

// ToTagResponses converts the tags attached to a car or trip.
func ToTagResponses(tags []entity.Tag) []TagResponse {
	out := make([]TagResponse, len(tags))
	for i := range tags {
		out[i] = ToTagResponse(&tags[i])
	}
	return out
}
