// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTimezone is the timezone assigned to new users.
const DefaultTimezone = "Europe/Sofia"

// Role represents an authorization group a user belongs to.
type Role string

const (
	RoleDrivers  Role = "drivers"
	RoleManagers Role = "managers"
)

// IsValid reports whether the role is a known role.
func (r Role) IsValid() bool {
	return r == RoleDrivers || r == RoleManagers
}

// User represents a user of the logbook.
type User struct {
	ID                uuid.UUID
	Username          string
	Email             string // Optional
	Name              string
	PasswordHash      string
	PreferredCurrency Currency
	Timezone          string
	Roles             []Role
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewUser creates a new User with default preferences and no roles.
func NewUser(username, email, name, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:                uuid.New(),
		Username:          username,
		Email:             email,
		Name:              name,
		PasswordHash:      passwordHash,
		PreferredCurrency: CurrencyBGN,
		Timezone:          DefaultTimezone,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// DisplayName returns the name used in greetings.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

// Location returns the user's timezone, falling back to UTC for unknown names.
func (u *User) Location() *time.Location {
	loc, err := time.LoadLocation(u.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
