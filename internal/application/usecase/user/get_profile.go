// Package user contains profile and role management use cases.
package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
)

// GetProfileInput represents the input for reading a profile.
type GetProfileInput struct {
	UserID uuid.UUID
}

// GetProfileOutput represents the output of reading a profile.
type GetProfileOutput struct {
	User *entity.User
}

// GetProfileUseCase handles reading the authenticated user's profile.
type GetProfileUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetProfileUseCase creates a new GetProfileUseCase instance.
func NewGetProfileUseCase(userRepo adapter.UserRepository) *GetProfileUseCase {
	return &GetProfileUseCase{
		userRepo: userRepo,
	}
}

// Execute returns the profile of the user.
func (uc *GetProfileUseCase) Execute(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewAuthError(domainerror.ErrCodeUserNotFound, "user not found", domainerror.ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &GetProfileOutput{
		User: user,
	}, nil
}
