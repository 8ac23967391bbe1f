package tag

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/application/usecase/access"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

// UpdateTagInput represents the input for renaming a tag.
type UpdateTagInput struct {
	Principal policy.Principal
	TagID     uuid.UUID
	Name      string
}

// UpdateTagOutput represents the output of renaming a tag.
type UpdateTagOutput struct {
	Tag *entity.Tag
}

// UpdateTagUseCase handles tag renames.
type UpdateTagUseCase struct {
	tagRepo adapter.TagRepository
}

// NewUpdateTagUseCase creates a new UpdateTagUseCase instance.
func NewUpdateTagUseCase(tagRepo adapter.TagRepository) *UpdateTagUseCase {
	return &UpdateTagUseCase{
		tagRepo: tagRepo,
	}
}

// Execute performs the tag rename.
func (uc *UpdateTagUseCase) Execute(ctx context.Context, input UpdateTagInput) (*UpdateTagOutput, error) {
	if err := access.Authorize(input.Principal, policy.ActionChange, policy.Resource{Kind: policy.KindTag}); err != nil {
		return nil, err
	}

	tag, err := uc.tagRepo.FindByID(ctx, input.TagID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTagNotFound) {
			return nil, access.NotFound(policy.KindTag)
		}
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}

	name, err := validateName(ctx, uc.tagRepo, input.Name, tag.ID)
	if err != nil {
		return nil, err
	}
	tag.Name = name

	if err := uc.tagRepo.Update(ctx, tag); err != nil {
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}

	return &UpdateTagOutput{
		Tag: tag,
	}, nil
}
