package expense

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/application/usecase/access"
	"github.com/trip-logbook/backend/internal/domain/entity"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

// UpdateExpenseInput represents the input for expense update. Nil fields are left unchanged.
type UpdateExpenseInput struct {
	Principal   policy.Principal
	ExpenseID   uuid.UUID
	TripID      *uuid.UUID
	ClearTrip   bool // Unlinks the expense from its trip
	ExpenseType *entity.ExpenseType
	Amount      *decimal.Decimal
	Note        *string
}

// UpdateExpenseOutput represents the output of expense update.
type UpdateExpenseOutput struct {
	Expense *entity.Expense
}

// UpdateExpenseUseCase handles expense update logic.
type UpdateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	linker      tripLinker
}

// NewUpdateExpenseUseCase creates a new UpdateExpenseUseCase instance.
func NewUpdateExpenseUseCase(expenseRepo adapter.ExpenseRepository, tripRepo adapter.TripRepository, guard *access.CarGuard) *UpdateExpenseUseCase {
	return &UpdateExpenseUseCase{
		expenseRepo: expenseRepo,
		linker:      tripLinker{tripRepo: tripRepo, guard: guard},
	}
}

// Execute performs the expense update.
func (uc *UpdateExpenseUseCase) Execute(ctx context.Context, input UpdateExpenseInput) (*UpdateExpenseOutput, error) {
	expense, err := loadExpense(ctx, uc.expenseRepo, input.Principal, policy.ActionChange, input.ExpenseID)
	if err != nil {
		return nil, err
	}

	switch {
	case input.ClearTrip:
		expense.TripID = nil
	case input.TripID != nil:
		if err := uc.linker.check(ctx, input.Principal, input.TripID); err != nil {
			return nil, err
		}
		expense.TripID = input.TripID
	}
	if input.ExpenseType != nil {
		expense.ExpenseType = *input.ExpenseType
	}
	if input.Amount != nil {
		expense.Amount = *input.Amount
	}
	if input.Note != nil {
		expense.Note = *input.Note
	}

	if err := validateExpense(expense); err != nil {
		return nil, err
	}

	if err := uc.expenseRepo.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	return &UpdateExpenseOutput{
		Expense: expense,
	}, nil
}
