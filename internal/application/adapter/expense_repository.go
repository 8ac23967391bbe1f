package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/domain/entity"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

// ExpenseFilter defines filter criteria for listing expenses.
type ExpenseFilter struct {
	// Scope restricts results to expenses created by Scope.UserID unless Scope.All.
	Scope  policy.Scope
	TripID *uuid.UUID
}

// ExpenseRepository defines the interface for expense persistence operations.
type ExpenseRepository interface {
	// Create creates a new expense.
	Create(ctx context.Context, expense *entity.Expense) error

	// FindByID retrieves an expense by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)

	// List retrieves expenses matching the filter, newest first.
	List(ctx context.Context, filter ExpenseFilter) ([]*entity.Expense, error)

	// Update saves the mutable fields of an expense.
	Update(ctx context.Context, expense *entity.Expense) error

	// Delete removes an expense.
	Delete(ctx context.Context, id uuid.UUID) error
}
