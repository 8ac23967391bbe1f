package expense

import (
	"context"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

// GetExpenseInput represents the input for reading an expense.
type GetExpenseInput struct {
	Principal policy.Principal
	ExpenseID uuid.UUID
}

// GetExpenseOutput represents the output of reading an expense.
type GetExpenseOutput struct {
	Expense *entity.Expense
}

// GetExpenseUseCase handles reading a single expense.
type GetExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewGetExpenseUseCase creates a new GetExpenseUseCase instance.
func NewGetExpenseUseCase(expenseRepo adapter.ExpenseRepository) *GetExpenseUseCase {
	return &GetExpenseUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute returns the expense when the principal may view it.
func (uc *GetExpenseUseCase) Execute(ctx context.Context, input GetExpenseInput) (*GetExpenseOutput, error) {
	expense, err := loadExpense(ctx, uc.expenseRepo, input.Principal, policy.ActionView, input.ExpenseID)
	if err != nil {
		return nil, err
	}

	return &GetExpenseOutput{
		Expense: expense,
	}, nil
}
