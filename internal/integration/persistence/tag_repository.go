package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/integration/persistence/model"
)

// tagRepository implements the adapter.TagRepository interface.
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository instance.
func NewTagRepository(db *gorm.DB) adapter.TagRepository {
	return &tagRepository{
		db: db,
	}
}

// Create creates a new tag in the database.
func (r *tagRepository) Create(ctx context.Context, tag *entity.Tag) error {
	tagModel := model.TagFromEntity(tag)
	result := r.db.WithContext(ctx).Create(tagModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a tag by its ID.
func (r *tagRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tag, error) {
	var tagModel model.TagModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&tagModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTagNotFound
		}
		return nil, result.Error
	}
	return tagModel.ToEntity(), nil
}

// FindByIDs retrieves the tags with the given IDs ordered by name. Unknown IDs are skipped.
func (r *tagRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Tag, error) {
	if len(ids) == 0 {
		return []entity.Tag{}, nil
	}

	var tagModels []model.TagModel
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Order("name ASC").Find(&tagModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return model.TagsToEntities(tagModels), nil
}

// List retrieves every tag ordered by name.
func (r *tagRepository) List(ctx context.Context) ([]*entity.Tag, error) {
	var tagModels []model.TagModel
	result := r.db.WithContext(ctx).Order("name ASC").Find(&tagModels)
	if result.Error != nil {
		return nil, result.Error
	}

	tags := make([]*entity.Tag, len(tagModels))
	for i := range tagModels {
		tags[i] = tagModels[i].ToEntity()
	}
	return tags, nil
}

// ExistsByName checks if a tag other than excludeID has the given name (case-insensitive).
func (r *tagRepository) ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.TagModel{}).
		Where("LOWER(name) = LOWER(?) AND id <> ?", name, excludeID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// Update renames a tag.
func (r *tagRepository) Update(ctx context.Context, tag *entity.Tag) error {
	result := r.db.WithContext(ctx).
		Model(&model.TagModel{}).
		Where("id = ?", tag.ID).
		Update("name", tag.Name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTagNotFound
	}
	return nil
}

// Delete removes a tag and detaches it from cars and trips.
func (r *tagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM car_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM trip_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.TagModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrTagNotFound
		}
		return nil
	})
}
