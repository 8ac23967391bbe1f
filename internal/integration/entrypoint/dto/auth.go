// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/trip-logbook/backend/internal/domain/entity"
)

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=1,max=150"`
	Email    string `json:"email" binding:"omitempty,email"`
	Name     string `json:"name" binding:"max=150"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest represents the request body for user logout.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse represents the response for authentication endpoints.
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// TokenResponse represents the response for token refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// UserResponse represents the user data in API responses.
type UserResponse struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email,omitempty"`
	Name              string    `json:"name"`
	PreferredCurrency string    `json:"preferred_currency"`
	Timezone          string    `json:"timezone"`
	Roles             []string  `json:"roles"`
	CreatedAt         time.Time `json:"created_at"`
}

// UpdateProfileRequest represents the request body for profile update.
type UpdateProfileRequest struct {
	Email             *string `json:"email,omitempty"`
	Name              *string `json:"name,omitempty"`
	PreferredCurrency *string `json:"preferred_currency,omitempty" binding:"omitempty,oneof=BGN EUR"`
	Timezone          *string `json:"timezone,omitempty"`
}

// AssignRolesRequest represents the request body for replacing a user's roles.
type AssignRolesRequest struct {
	Roles []string `json:"roles" binding:"required"`
}

// ToUserResponse converts a domain User entity to a UserResponse DTO.
func ToUserResponse(user *entity.User) UserResponse {
	roles := make([]string, len(user.Roles))
	for i, r := range user.Roles {
		roles[i] = string(r)
	}

	return UserResponse{
		ID:                user.ID.String(),
		Username:          user.Username,
		Email:             user.Email,
		Name:              user.Name,
		PreferredCurrency: string(user.PreferredCurrency),
		Timezone:          user.Timezone,
		Roles:             roles,
		CreatedAt:         user.CreatedAt,
	}
}
