// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/application/usecase/access"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

// MaxNoteLength is the maximum allowed length for an expense note.
const MaxNoteLength = 200

func validateExpense(expense *entity.Expense) error {
	expense.Note = strings.TrimSpace(expense.Note)

	if !expense.ExpenseType.IsValid() {
		return domainerror.NewLedgerValidationError(domainerror.ErrCodeInvalidChoice, "expense_type",
			fmt.Sprintf("unknown expense type %q", expense.ExpenseType))
	}
	if !entity.HasAmountPrecision(expense.Amount) {
		return domainerror.NewLedgerValidationError(domainerror.ErrCodeInvalidAmount, "amount",
			fmt.Sprintf("amount must have at most %d decimal places", entity.AmountPlaces))
	}
	if !expense.Amount.IsPositive() {
		return domainerror.NewLedgerValidationError(domainerror.ErrCodeInvalidAmount, "amount", "amount must be greater than 0")
	}
	if expense.Amount.GreaterThan(entity.MaxAmount) {
		return domainerror.NewLedgerValidationError(domainerror.ErrCodeInvalidAmount, "amount",
			fmt.Sprintf("amount must not exceed %s", entity.MaxAmount.StringFixed(entity.AmountPlaces)))
	}
	if len([]rune(expense.Note)) > MaxNoteLength {
		return domainerror.NewLedgerValidationError(domainerror.ErrCodeFieldTooLong, "note",
			fmt.Sprintf("note must not exceed %d characters", MaxNoteLength))
	}
	return nil
}

// tripLinker verifies that an expense may be linked to a trip.
type tripLinker struct {
	tripRepo adapter.TripRepository
	guard    *access.CarGuard
}

// check rejects trips the principal cannot see, reporting them as an invalid
// choice so their existence is not revealed.
func (l tripLinker) check(ctx context.Context, p policy.Principal, tripID *uuid.UUID) error {
	if tripID == nil {
		return nil
	}

	invalid := domainerror.NewLedgerValidationError(domainerror.ErrCodeInvalidChoice, "trip_id", "select a valid trip")

	trip, err := l.tripRepo.FindByID(ctx, *tripID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTripNotFound) {
			return invalid
		}
		return fmt.Errorf("failed to find trip: %w", err)
	}

	if _, err := l.guard.Load(ctx, p, policy.ActionView, policy.KindTrip, trip.CarID); err != nil {
		var ledgerErr *domainerror.LedgerError
		if errors.As(err, &ledgerErr) {
			return invalid
		}
		return err
	}
	return nil
}

// loadExpense finds an expense and checks the principal may perform action on it.
func loadExpense(ctx context.Context, expenseRepo adapter.ExpenseRepository, p policy.Principal, action policy.Action, expenseID uuid.UUID) (*entity.Expense, error) {
	expense, err := expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, domainerror.ErrExpenseNotFound) {
			return nil, access.NotFound(policy.KindExpense)
		}
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}

	resource := policy.Resource{Kind: policy.KindExpense, OwnerID: expense.CreatedBy}
	if err := access.Authorize(p, action, resource); err != nil {
		return nil, err
	}
	return expense, nil
}
