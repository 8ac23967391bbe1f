package user

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
)

const maxNameLength = 150

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// UpdateProfileInput represents the input for profile update. Nil fields are left unchanged.
type UpdateProfileInput struct {
	UserID            uuid.UUID
	Email             *string // Empty string removes the address
	Name              *string
	PreferredCurrency *entity.Currency
	Timezone          *string
}

// UpdateProfileOutput represents the output of profile update.
type UpdateProfileOutput struct {
	User *entity.User
}

// UpdateProfileUseCase handles profile update logic.
type UpdateProfileUseCase struct {
	userRepo adapter.UserRepository
	clock    adapter.Clock
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase instance.
func NewUpdateProfileUseCase(userRepo adapter.UserRepository, clock adapter.Clock) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		userRepo: userRepo,
		clock:    clock,
	}
}

// Execute performs the profile update.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewAuthError(domainerror.ErrCodeUserNotFound, "user not found", domainerror.ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != "" && !emailRegex.MatchString(email) {
			return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidEmail, "invalid email format", domainerror.ErrInvalidEmail)
		}
		if email != "" {
			exists, err := uc.userRepo.ExistsByEmail(ctx, email, user.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to check email existence: %w", err)
			}
			if exists {
				return nil, domainerror.NewAuthError(domainerror.ErrCodeEmailExists, "email already exists", domainerror.ErrEmailAlreadyExists)
			}
		}
		user.Email = email
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if len([]rune(name)) > maxNameLength {
			return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidProfile,
				fmt.Sprintf("name must not exceed %d characters", maxNameLength), nil)
		}
		user.Name = name
	}

	if input.PreferredCurrency != nil {
		currency := entity.Currency(strings.ToUpper(strings.TrimSpace(string(*input.PreferredCurrency))))
		if !currency.IsSupported() {
			return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidProfile,
				fmt.Sprintf("unsupported currency %q", currency), nil)
		}
		user.PreferredCurrency = currency
	}

	if input.Timezone != nil {
		tz := strings.TrimSpace(*input.Timezone)
		if tz == "" {
			tz = entity.DefaultTimezone
		}
		if _, err := time.LoadLocation(tz); err != nil {
			return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidProfile,
				fmt.Sprintf("unknown timezone %q", tz), err)
		}
		user.Timezone = tz
	}

	user.UpdatedAt = uc.clock.Now().UTC()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &UpdateProfileOutput{
		User: user,
	}, nil
}
