package tag

import (
	"context"
	"fmt"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

// ListTagsInput represents the input for listing tags.
type ListTagsInput struct {
	Principal policy.Principal
}

// ListTagsOutput represents the output of listing tags.
type ListTagsOutput struct {
	Tags []*entity.Tag
}

// ListTagsUseCase handles listing tags.
type ListTagsUseCase struct {
	tagRepo adapter.TagRepository
}

// NewListTagsUseCase creates a new ListTagsUseCase instance.
func NewListTagsUseCase(tagRepo adapter.TagRepository) *ListTagsUseCase {
	return &ListTagsUseCase{
		tagRepo: tagRepo,
	}
}

// Execute lists every tag.
func (uc *ListTagsUseCase) Execute(ctx context.Context, input ListTagsInput) (*ListTagsOutput, error) {
	if !policy.CanAccess(input.Principal, policy.ActionView, policy.Resource{Kind: policy.KindTag}) {
		return &ListTagsOutput{Tags: []*entity.Tag{}}, nil
	}

	tags, err := uc.tagRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	return &ListTagsOutput{
		Tags: tags,
	}, nil
}

