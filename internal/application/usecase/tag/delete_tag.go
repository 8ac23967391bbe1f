package tag

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/application/usecase/access"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

// DeleteTagInput represents the input for tag deletion.
type DeleteTagInput struct {
	Principal policy.Principal
	TagID     uuid.UUID
}

// DeleteTagOutput represents the output of tag deletion.
type DeleteTagOutput struct {
	Success bool
}

// DeleteTagUseCase handles tag deletion.
type DeleteTagUseCase struct {
	tagRepo adapter.TagRepository
}

// NewDeleteTagUseCase creates a new DeleteTagUseCase instance.
func NewDeleteTagUseCase(tagRepo adapter.TagRepository) *DeleteTagUseCase {
	return &DeleteTagUseCase{
		tagRepo: tagRepo,
	}
}

// Execute deletes a tag and detaches it from cars and trips.
func (uc *DeleteTagUseCase) Execute(ctx context.Context, input DeleteTagInput) (*DeleteTagOutput, error) {
	if err := access.Authorize(input.Principal, policy.ActionDelete, policy.Resource{Kind: policy.KindTag}); err != nil {
		return nil, err
	}

	if _, err := uc.tagRepo.FindByID(ctx, input.TagID); err != nil {
		if errors.Is(err, domainerror.ErrTagNotFound) {
			return nil, access.NotFound(policy.KindTag)
		}
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}

	if err := uc.tagRepo.Delete(ctx, input.TagID); err != nil {
		return nil, fmt.Errorf("failed to delete tag: %w", err)
	}

	return &DeleteTagOutput{
		Success: true,
	}, nil
}
