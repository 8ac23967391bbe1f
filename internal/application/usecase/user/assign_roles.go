package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

// AssignRolesInput represents the input for replacing a user's roles.
type AssignRolesInput struct {
	Principal policy.Principal
	UserID    uuid.UUID
	Roles     []entity.Role
}

// AssignRolesOutput represents the output of role assignment.
type AssignRolesOutput struct {
	User *entity.User
}

// AssignRolesUseCase lets managers set the roles of any user.
type AssignRolesUseCase struct {
	userRepo adapter.UserRepository
}

// NewAssignRolesUseCase creates a new AssignRolesUseCase instance.
func NewAssignRolesUseCase(userRepo adapter.UserRepository) *AssignRolesUseCase {
	return &AssignRolesUseCase{
		userRepo: userRepo,
	}
}

// Execute replaces the roles of the target user. Duplicate roles are collapsed.
func (uc *AssignRolesUseCase) Execute(ctx context.Context, input AssignRolesInput) (*AssignRolesOutput, error) {
	if !input.Principal.IsManager() {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInsufficientRole,
			"only managers can assign roles", domainerror.ErrInsufficientRole)
	}

	roles := make([]entity.Role, 0, len(input.Roles))
	seen := make(map[entity.Role]bool, len(input.Roles))
	for _, role := range input.Roles {
		if !role.IsValid() {
			return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidRole,
				fmt.Sprintf("unknown role %q", role), nil)
		}
		if seen[role] {
			continue
		}
		seen[role] = true
		roles = append(roles, role)
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewAuthError(domainerror.ErrCodeUserNotFound, "user not found", domainerror.ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := uc.userRepo.SetRoles(ctx, user.ID, roles); err != nil {
		return nil, fmt.Errorf("failed to set roles: %w", err)
	}
	user.Roles = roles

	slog.Info("User roles updated",
		"user_id", user.ID,
		"roles", roles,
		"by", input.Principal.UserID,
	)

	return &AssignRolesOutput{
		User: user,
	}, nil
}
