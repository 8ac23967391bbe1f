package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/trip-logbook/backend/internal/domain/entity"
)

// CreateExpenseRequest represents the request body for expense creation.
type CreateExpenseRequest struct {
	TripID      *string         `json:"trip_id,omitempty" binding:"omitempty,uuid"`
	ExpenseType string          `json:"expense_type" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Note        string          `json:"note"`
}

// UpdateExpenseRequest represents the request body for expense update.
// Setting clear_trip unlinks the expense from its trip.
type UpdateExpenseRequest struct {
	TripID      *string          `json:"trip_id,omitempty" binding:"omitempty,uuid"`
	ClearTrip   bool             `json:"clear_trip"`
	ExpenseType *string          `json:"expense_type,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Note        *string          `json:"note,omitempty"`
}

// ExpenseResponse represents a single expense in API responses.
type ExpenseResponse struct {
	ID          string    `json:"id"`
	TripID      *string   `json:"trip_id"`
	CreatedBy   string    `json:"created_by"`
	ExpenseType string    `json:"expense_type"`
	Amount      string    `json:"amount"`
	Note        string    `json:"note"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExpenseListResponse represents the response for listing expenses.
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

// ToExpenseResponse converts a domain Expense entity to an ExpenseResponse DTO.
func ToExpenseResponse(e *entity.Expense) ExpenseResponse {
	response := ExpenseResponse{
		ID:          e.ID.String(),
		CreatedBy:   e.CreatedBy.String(),
		ExpenseType: string(e.ExpenseType),
		Amount:      Money(e.Amount),
		Note:        e.Note,
		CreatedAt:   e.CreatedAt,
	}
	if e.TripID != nil {
		id := e.TripID.String()
		response.TripID = &id
	}
	return response
}

// ToExpenseListResponse converts expenses to an ExpenseListResponse DTO.
func ToExpenseListResponse(expenses []*entity.Expense) ExpenseListResponse {
	out := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		out[i] = ToExpenseResponse(e)
	}
	return ExpenseListResponse{Expenses: out}
}
