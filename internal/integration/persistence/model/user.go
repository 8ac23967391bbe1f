// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/domain/entity"
)

// UserModel represents the user table in the database.
type UserModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Username          string          `gorm:"type:varchar(150);uniqueIndex;not null"`
	Email             string          `gorm:"type:varchar(255);index"`
	Name              string          `gorm:"type:varchar(150)"`
	PasswordHash      string          `gorm:"type:varchar(255);not null"`
	PreferredCurrency string          `gorm:"type:varchar(3);not null;default:'BGN'"`
	Timezone          string          `gorm:"type:varchar(64);not null;default:'Europe/Sofia'"`
	Roles             []UserRoleModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for the UserModel.
func (UserModel) TableName() string {
	return "users"
}

// UserRoleModel represents the user_roles join table.
type UserRoleModel struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role   string    `gorm:"type:varchar(30);primaryKey"`
}

// TableName returns the table name for the UserRoleModel.
func (UserRoleModel) TableName() string {
	return "user_roles"
}

// ToEntity converts a UserModel to a domain User entity.
func (m *UserModel) ToEntity() *entity.User {
	roles := make([]entity.Role, len(m.Roles))
	for i, r := range m.Roles {
		roles[i] = entity.Role(r.Role)
	}

	return &entity.User{
		ID:                m.ID,
		Username:          m.Username,
		Email:             m.Email,
		Name:              m.Name,
		PasswordHash:      m.PasswordHash,
		PreferredCurrency: entity.Currency(m.PreferredCurrency),
		Timezone:          m.Timezone,
		Roles:             roles,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// FromEntity creates a UserModel from a domain User entity.
func FromEntity(user *entity.User) *UserModel {
	return &UserModel{
		ID:                user.ID,
		Username:          user.Username,
		Email:             user.Email,
		Name:              user.Name,
		PasswordHash:      user.PasswordHash,
		PreferredCurrency: string(user.PreferredCurrency),
		Timezone:          user.Timezone,
		Roles:             RoleModels(user.ID, user.Roles),
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.UpdatedAt,
	}
}

// RoleModels builds the user_roles rows of a user.
func RoleModels(userID uuid.UUID, roles []entity.Role) []UserRoleModel {
	models := make([]UserRoleModel, len(roles))
	for i, r := range roles {
		models[i] = UserRoleModel{UserID: userID, Role: string(r)}
	}
	return models
}

// RefreshTokenModel represents the refresh_tokens table for token invalidation tracking.
type RefreshTokenModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Token       string    `gorm:"type:varchar(500);uniqueIndex;not null"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Invalidated bool      `gorm:"default:false"`
	ExpiresAt   time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the RefreshTokenModel.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}
