// Package tag contains tag-related use cases and the tag selection capability
// shared by the car and trip use cases.
package tag

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
)

// Selector resolves the tags chosen for a car or trip.
type Selector struct {
	tagRepo adapter.TagRepository
}

// NewSelector creates a new Selector instance.
func NewSelector(tagRepo adapter.TagRepository) *Selector {
	return &Selector{tagRepo: tagRepo}
}

// Resolve loads the tags with the given IDs. Duplicate IDs collapse to one
// tag; an unknown ID fails the whole selection.
func (s *Selector) Resolve(ctx context.Context, ids []uuid.UUID) ([]entity.Tag, error) {
	if len(ids) == 0 {
		return []entity.Tag{}, nil
	}

	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	tags, err := s.tagRepo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to find tags: %w", err)
	}
	if len(tags) != len(unique) {
		return nil, domainerror.NewLedgerValidationError(
			domainerror.ErrCodeUnknownTag,
			"tag_ids",
			"one or more tags do not exist",
		)
	}
	return tags, nil
}
