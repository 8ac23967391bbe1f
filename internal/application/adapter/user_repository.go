// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/domain/entity"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create creates a new user in the database, including its roles.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by their ID with roles loaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a user by their login name.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// Update updates the profile fields of an existing user.
	Update(ctx context.Context, user *entity.User) error

	// SetRoles replaces the roles of a user.
	SetRoles(ctx context.Context, userID uuid.UUID, roles []entity.Role) error

	// ExistsByUsername checks if a user with the given username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail checks if a user other than excludeID uses the given email.
	ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)

	// ListWithEmail retrieves every user that has an email address.
	ListWithEmail(ctx context.Context) ([]*entity.User, error)
}
