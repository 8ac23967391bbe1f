package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	TagNameMinLength = 2
	TagNameMaxLength = 30
)

// Tag is a label shared by trips and cars.
type Tag struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// NewTag creates a new Tag.
func NewTag(name string) *Tag {
	return &Tag{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// TagIDs returns the identifiers of the given tags.
func TagIDs(tags []Tag) []uuid.UUID {
	ids := make([]uuid.UUID, len(tags))
	for i, t := range tags {
		ids[i] = t.ID
	}
	return ids
}
