package tag

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/application/usecase/access"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

// CreateTagInput represents the input for tag creation.
type CreateTagInput struct {
	Principal policy.Principal
	Name      string
}

// CreateTagOutput represents the output of tag creation.
type CreateTagOutput struct {
	Tag *entity.Tag
}

// CreateTagUseCase handles tag creation logic.
type CreateTagUseCase struct {
	tagRepo adapter.TagRepository
}

// NewCreateTagUseCase creates a new CreateTagUseCase instance.
func NewCreateTagUseCase(tagRepo adapter.TagRepository) *CreateTagUseCase {
	return &CreateTagUseCase{
		tagRepo: tagRepo,
	}
}

// Execute performs the tag creation.
func (uc *CreateTagUseCase) Execute(ctx context.Context, input CreateTagInput) (*CreateTagOutput, error) {
	if err := access.Authorize(input.Principal, policy.ActionAdd, policy.Resource{Kind: policy.KindTag}); err != nil {
		return nil, err
	}

	name, err := validateName(ctx, uc.tagRepo, input.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}

	tag := entity.NewTag(name)
	if err := uc.tagRepo.Create(ctx, tag); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	return &CreateTagOutput{
		Tag: tag,
	}, nil
}

// validateName trims the name and checks length and uniqueness.
func validateName(ctx context.Context, tagRepo adapter.TagRepository, raw string, excludeID uuid.UUID) (string, error) {
	name := strings.TrimSpace(raw)
	if len([]rune(name)) < entity.TagNameMinLength {
		return "", domainerror.NewLedgerValidationError(
			domainerror.ErrCodeInvalidTagName,
			"name",
			fmt.Sprintf("tag name must be at least %d characters", entity.TagNameMinLength),
		)
	}
	if len([]rune(name)) > entity.TagNameMaxLength {
		return "", domainerror.NewLedgerValidationError(
			domainerror.ErrCodeInvalidTagName,
			"name",
			fmt.Sprintf("tag name must not exceed %d characters", entity.TagNameMaxLength),
		)
	}

	exists, err := tagRepo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return "", fmt.Errorf("failed to check tag name existence: %w", err)
	}
	if exists {
		return "", &domainerror.LedgerError{
			Code:    domainerror.ErrCodeDuplicateTag,
			Field:   "name",
			Message: "a tag with this name already exists",
			Err:     domainerror.ErrDuplicateTag,
		}
	}
	return name, nil
}
