package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trip-logbook/backend/internal/domain/entity"
)

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TripID      *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedBy   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ExpenseType string          `gorm:"type:varchar(20);not null;default:'other'"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Note        string          `gorm:"type:varchar(200)"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	return &entity.Expense{
		ID:          m.ID,
		TripID:      m.TripID,
		CreatedBy:   m.CreatedBy,
		ExpenseType: entity.ExpenseType(m.ExpenseType),
		Amount:      m.Amount,
		Note:        m.Note,
		CreatedAt:   m.CreatedAt,
	}
}

// ExpenseFromEntity creates an ExpenseModel from a domain Expense entity.
func ExpenseFromEntity(expense *entity.Expense) *ExpenseModel {
	return &ExpenseModel{
		ID:          expense.ID,
		TripID:      expense.TripID,
		CreatedBy:   expense.CreatedBy,
		ExpenseType: string(expense.ExpenseType),
		Amount:      expense.Amount,
		Note:        expense.Note,
		CreatedAt:   expense.CreatedAt,
	}
}
