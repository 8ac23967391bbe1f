// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/domain/policy"
	"github.com/trip-logbook/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// UserIDKey is the context key for the authenticated user's ID.
	UserIDKey ContextKey = "user_id"
	// UsernameKey is the context key for the authenticated user's username.
	UsernameKey ContextKey = "username"
	// UserKey is the context key for the authenticated user.
	UserKey ContextKey = "user"
	// PrincipalKey is the context key for the policy principal.
	PrincipalKey ContextKey = "principal"
)

// AuthMiddleware provides JWT authentication middleware.
type AuthMiddleware struct {
	tokenService adapter.TokenService
	userRepo     adapter.UserRepository
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokenService adapter.TokenService, userRepo adapter.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		userRepo:     userRepo,
	}
}

// Authenticate returns a Gin middleware handler that enforces JWT authentication.
// The token's user is loaded on every request so role changes apply immediately.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required", domainerror.ErrCodeMissingToken)
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Invalid authorization header format", domainerror.ErrCodeInvalidToken)
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			abortUnauthorized(c, "Token is required", domainerror.ErrCodeMissingToken)
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token", domainerror.ErrCodeInvalidToken)
			return
		}

		user, err := m.userRepo.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, domainerror.ErrUserNotFound) {
				abortUnauthorized(c, "User no longer exists", domainerror.ErrCodeUserNotFound)
				return
			}
			slog.Error("Failed to load authenticated user", "user_id", claims.UserID, "error", err)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error: "An internal error occurred",
			})
			c.Abort()
			return
		}

		c.Set(string(UserIDKey), user.ID)
		c.Set(string(UsernameKey), user.Username)
		c.Set(string(UserKey), user)
		c.Set(string(PrincipalKey), policy.NewPrincipal(user))

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string, code domainerror.AuthErrorCode) {
	c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: message,
		Code:  string(code),
	})
	c.Abort()
}

// GetUserIDFromContext extracts the user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(string(UserIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUsernameFromContext extracts the username from the Gin context.
func GetUsernameFromContext(c *gin.Context) (string, bool) {
	username, exists := c.Get(string(UsernameKey))
	if !exists {
		return "", false
	}
	s, ok := username.(string)
	return s, ok
}

// GetPrincipalFromContext extracts the policy principal from the Gin context.
func GetPrincipalFromContext(c *gin.Context) (policy.Principal, bool) {
	value, exists := c.Get(string(PrincipalKey))
	if !exists {
		return policy.Principal{}, false
	}
	p, ok := value.(policy.Principal)
	return p, ok
}

// GetUserLocation returns the authenticated user's timezone, or UTC.
func GetUserLocation(c *gin.Context) *time.Location {
	value, exists := c.Get(string(UserKey))
	if !exists {
		return time.UTC
	}
	user, ok := value.(*entity.User)
	if !ok {
		return time.UTC
	}
	return user.Location()
}
