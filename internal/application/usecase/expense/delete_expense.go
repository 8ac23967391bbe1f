package expense

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

// DeleteExpenseInput represents the input for expense deletion.
type DeleteExpenseInput struct {
	Principal policy.Principal
	ExpenseID uuid.UUID
}

// DeleteExpenseOutput represents the output of expense deletion.
type DeleteExpenseOutput struct {
	Success bool
}

// DeleteExpenseUseCase handles expense deletion logic.
type DeleteExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewDeleteExpenseUseCase creates a new DeleteExpenseUseCase instance.
func NewDeleteExpenseUseCase(expenseRepo adapter.ExpenseRepository) *DeleteExpenseUseCase {
	return &DeleteExpenseUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute deletes the expense.
func (uc *DeleteExpenseUseCase) Execute(ctx context.Context, input DeleteExpenseInput) (*DeleteExpenseOutput, error) {
	expense, err := loadExpense(ctx, uc.expenseRepo, input.Principal, policy.ActionDelete, input.ExpenseID)
	if err != nil {
		return nil, err
	}

	if err := uc.expenseRepo.Delete(ctx, expense.ID); err != nil {
		return nil, fmt.Errorf("failed to delete expense: %w", err)
	}

	return &DeleteExpenseOutput{
		Success: true,
	}, nil
}
