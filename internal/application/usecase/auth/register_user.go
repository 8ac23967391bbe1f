// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 150
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.@+-]+$`)

// RegisterUserInput represents the input for user registration.
type RegisterUserInput struct {
	Username string
	Email    string // Optional
	Name     string
	Password string
}

// RegisterUserOutput represents the output of user registration.
type RegisterUserOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// RegisterUserUseCase handles user registration logic.
type RegisterUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
	emailService    adapter.EmailService
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase instance.
func NewRegisterUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
	emailService adapter.EmailService,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		emailService:    emailService,
	}
}

// Execute performs the user registration. New users join the Drivers role and,
// when they gave an email address, get a welcome email.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Validate username
	if len(username) < minUsernameLength || len(username) > maxUsernameLength || !usernameRegex.MatchString(username) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingFields,
			"username must be 3 to 150 letters, digits or @.+-_ characters",
			nil,
		)
	}

	// Validate email format
	if email != "" && !isValidEmail(email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	// Validate password strength
	if err := uc.passwordService.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			"password does not meet minimum requirements",
			domainerror.ErrWeakPassword,
		)
	}

	// Check if username already exists
	exists, err := uc.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeUsernameExists,
			"username already exists",
			domainerror.ErrUsernameAlreadyExists,
		)
	}

	if email != "" {
		exists, err = uc.userRepo.ExistsByEmail(ctx, email, uuid.Nil)
		if err != nil {
			return nil, fmt.Errorf("failed to check email existence: %w", err)
		}
		if exists {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeEmailExists,
				"email already exists",
				domainerror.ErrEmailAlreadyExists,
			)
		}
	}

	// Hash password
	passwordHash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Create user entity
	user := entity.NewUser(username, email, strings.TrimSpace(input.Name), passwordHash)
	user.Roles = []entity.Role{entity.RoleDrivers}

	// Save user to database
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Queue welcome email
	if user.Email != "" && uc.emailService != nil {
		if err := uc.emailService.QueueWelcomeEmail(ctx, adapter.QueueWelcomeInput{
			UserEmail: user.Email,
			UserName:  user.DisplayName(),
		}); err != nil {
			slog.Warn("Failed to queue welcome email", "user_id", user.ID, "error", err)
		}
	}

	// Generate tokens
	tokenPair, err := uc.tokenService.GenerateTokenPair(ctx, user.ID, user.Username, false)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &RegisterUserOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// isValidEmail validates email format using a simple regex.
func isValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}
