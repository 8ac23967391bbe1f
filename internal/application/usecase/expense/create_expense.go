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

// CreateExpenseInput represents the input for expense creation.
type CreateExpenseInput struct {
	Principal   policy.Principal
	TripID      *uuid.UUID // Optional
	ExpenseType entity.ExpenseType
	Amount      decimal.Decimal
	Note        string
}

// CreateExpenseOutput represents the output of expense creation.
type CreateExpenseOutput struct {
	Expense *entity.Expense
}

// CreateExpenseUseCase handles expense creation logic.
type CreateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	linker      tripLinker
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
func NewCreateExpenseUseCase(expenseRepo adapter.ExpenseRepository, tripRepo adapter.TripRepository, guard *access.CarGuard) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{
		expenseRepo: expenseRepo,
		linker:      tripLinker{tripRepo: tripRepo, guard: guard},
	}
}

// Execute performs the expense creation.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*CreateExpenseOutput, error) {
	resource := policy.Resource{Kind: policy.KindExpense, OwnerID: input.Principal.UserID}
	if err := access.Authorize(input.Principal, policy.ActionAdd, resource); err != nil {
		return nil, err
	}

	expense := entity.NewExpense(input.Principal.UserID, input.TripID, input.ExpenseType, input.Amount, input.Note)
	if err := validateExpense(expense); err != nil {
		return nil, err
	}
	if err := uc.linker.check(ctx, input.Principal, expense.TripID); err != nil {
		return nil, err
	}

	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return &CreateExpenseOutput{
		Expense: expense,
	}, nil
}
