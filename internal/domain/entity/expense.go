package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseType categorizes a trip expense.
type ExpenseType string

const (
	ExpenseToll    ExpenseType = "toll"
	ExpenseParking ExpenseType = "parking"
	ExpenseService ExpenseType = "service"
	ExpenseOther   ExpenseType = "other"
)

// IsValid reports whether the expense type is known.
func (t ExpenseType) IsValid() bool {
	switch t {
	case ExpenseToll, ExpenseParking, ExpenseService, ExpenseOther:
		return true
	}
	return false
}

// Expense represents a cost incurred on the road, optionally tied to a trip.
type Expense struct {
	ID          uuid.UUID
	TripID      *uuid.UUID // Nulled when the trip is deleted
	CreatedBy   uuid.UUID
	ExpenseType ExpenseType
	Amount      decimal.Decimal
	Note        string
	CreatedAt   time.Time
}

// NewExpense creates a new Expense. An empty type defaults to "other".
func NewExpense(createdBy uuid.UUID, tripID *uuid.UUID, expenseType ExpenseType, amount decimal.Decimal, note string) *Expense {
	if expenseType == "" {
		expenseType = ExpenseOther
	}
	return &Expense{
		ID:          uuid.New(),
		TripID:      tripID,
		CreatedBy:   createdBy,
		ExpenseType: expenseType,
		Amount:      amount,
		Note:        note,
		CreatedAt:   time.Now().UTC(),
	}
}
