package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/domain/entity"
)

// TagRepository defines the interface for tag persistence operations.
type TagRepository interface {
	// Create creates a new tag.
	Create(ctx context.Context, tag *entity.Tag) error

	// FindByID retrieves a tag by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Tag, error)

	// FindByIDs retrieves the tags with the given IDs. Unknown IDs are skipped.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Tag, error)

	// List retrieves every tag ordered by name.
	List(ctx context.Context) ([]*entity.Tag, error)

	// ExistsByName checks if a tag other than excludeID has the given name (case-insensitive).
	ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)

	// Update renames a tag.
	Update(ctx context.Context, tag *entity.Tag) error

	// Delete removes a tag and its links to cars and trips.
	Delete(ctx context.Context, id uuid.UUID) error
}
