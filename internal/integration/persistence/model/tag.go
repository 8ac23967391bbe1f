package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/domain/entity"
)

// TagModel represents the tags table in the database.
type TagModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(30);uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the TagModel.
func (TagModel) TableName() string {
	return "tags"
}

// ToEntity converts a TagModel to a domain Tag entity.
func (m *TagModel) ToEntity() *entity.Tag {
	return &entity.Tag{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
}

// TagFromEntity creates a TagModel from a domain Tag entity.
func TagFromEntity(tag *entity.Tag) *TagModel {
	return &TagModel{
		ID:        tag.ID,
		Name:      tag.Name,
		CreatedAt: tag.CreatedAt,
	}
}

// TagsToEntities converts loaded tag associations.
func TagsToEntities(models []TagModel) []entity.Tag {
	tags := make([]entity.Tag, len(models))
	for i := range models {
		tags[i] = *models[i].ToEntity()
	}
	return tags
}

// TagsFromEntities builds tag associations referencing existing tags.
func TagsFromEntities(tags []entity.Tag) []TagModel {
	models := make([]TagModel, len(tags))
	for i := range tags {
		models[i] = *TagFromEntity(&tags[i])
	}
	return models
}
