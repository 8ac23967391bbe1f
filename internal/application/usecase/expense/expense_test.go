package expense

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trip-logbook/backend/internal/application/adapter/adaptertest"
	"github.com/trip-logbook/backend/internal/application/usecase/access"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

func setup(t *testing.T) (*adaptertest.Store, *access.CarGuard, policy.Principal, *entity.Trip) {
	t.Helper()
	ctx := context.Background()
	store := adaptertest.NewStore()
	owner := policy.Principal{UserID: uuid.New(), Roles: []entity.Role{entity.RoleDrivers}}

	car := entity.NewCar(owner.UserID, "Opel", "Astra", 2015, entity.FuelLPG, entity.GearboxManual)
	if err := store.Cars().Create(ctx, car); err != nil {
		t.Fatalf("failed to create car: %v", err)
	}
	day := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	trip := entity.NewTrip(car.ID, owner.UserID, 100, 200, day, day, "Varna", "Burgas")
	if err := store.Trips().Create(ctx, trip); err != nil {
		t.Fatalf("failed to create trip: %v", err)
	}
	return store, access.NewCarGuard(store.Cars()), owner, trip
}

func TestCreateExpense(t *testing.T) {
	store, guard, owner, trip := setup(t)
	uc := NewCreateExpenseUseCase(store.Expenses(), store.Trips(), guard)

	tests := []struct {
		name          string
		input         CreateExpenseInput
		expectedField string
	}{
		{
			name:          "zero amount",
			input:         CreateExpenseInput{Principal: owner, ExpenseType: entity.ExpenseToll, Amount: decimal.Zero},
			expectedField: "amount",
		},
		{
			name:          "amount with three decimals",
			input:         CreateExpenseInput{Principal: owner, ExpenseType: entity.ExpenseToll, Amount: decimal.RequireFromString("7.456")},
			expectedField: "amount",
		},
		{
			name:          "amount above column precision",
			input:         CreateExpenseInput{Principal: owner, ExpenseType: entity.ExpenseToll, Amount: decimal.RequireFromString("100000000.00")},
			expectedField: "amount",
		},
		{
			name:          "unknown type",
			input:         CreateExpenseInput{Principal: owner, ExpenseType: "fine", Amount: decimal.NewFromInt(5)},
			expectedField: "expense_type",
		},
		{
			name: "trip of another user",
			input: CreateExpenseInput{
				Principal:   policy.Principal{UserID: uuid.New(), Roles: []entity.Role{entity.RoleDrivers}},
				TripID:      &trip.ID,
				ExpenseType: entity.ExpenseParking,
				Amount:      decimal.NewFromInt(3),
			},
			expectedField: "trip_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.input)

			var ledgerErr *domainerror.LedgerError
			if !errors.As(err, &ledgerErr) {
				t.Fatalf("expected LedgerError, got %v", err)
			}
			if ledgerErr.Field != tt.expectedField {
				t.Errorf("expected field %s, got %s", tt.expectedField, ledgerErr.Field)
			}
		})
	}

	t.Run("linked to own trip with default type", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), CreateExpenseInput{
			Principal: owner,
			TripID:    &trip.ID,
			Amount:    decimal.RequireFromString("7.46"),
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.Expense.ExpenseType != entity.ExpenseOther {
			t.Errorf("expected type other, got %s", out.Expense.ExpenseType)
		}
		if !out.Expense.Amount.Equal(decimal.RequireFromString("7.46")) {
			t.Errorf("expected amount 7.46, got %s", out.Expense.Amount)
		}
	})
}

func TestExpenseAccess(t *testing.T) {
	store, guard, owner, trip := setup(t)
	created, err := NewCreateExpenseUseCase(store.Expenses(), store.Trips(), guard).Execute(context.Background(), CreateExpenseInput{
		Principal:   owner,
		TripID:      &trip.ID,
		ExpenseType: entity.ExpenseService,
		Amount:      decimal.NewFromInt(120),
	})
	if err != nil {
		t.Fatalf("failed to create expense: %v", err)
	}
	expenseID := created.Expense.ID
	stranger := policy.Principal{UserID: uuid.New(), Roles: []entity.Role{entity.RoleDrivers}}
	manager := policy.Principal{UserID: uuid.New(), Roles: []entity.Role{entity.RoleManagers}}

	t.Run("stranger gets not found", func(t *testing.T) {
		_, err := NewGetExpenseUseCase(store.Expenses()).Execute(context.Background(), GetExpenseInput{Principal: stranger, ExpenseID: expenseID})
		if !errors.Is(err, domainerror.ErrExpenseNotFound) {
			t.Errorf("expected ErrExpenseNotFound, got %v", err)
		}
	})

	t.Run("list is scoped to creator", func(t *testing.T) {
		list := NewListExpensesUseCase(store.Expenses())
		own, _ := list.Execute(context.Background(), ListExpensesInput{Principal: owner, TripID: &trip.ID})
		if len(own.Expenses) != 1 {
			t.Errorf("expected 1 expense, got %d", len(own.Expenses))
		}
		other, _ := list.Execute(context.Background(), ListExpensesInput{Principal: stranger})
		if len(other.Expenses) != 0 {
			t.Errorf("expected no expenses, got %d", len(other.Expenses))
		}
	})

	t.Run("owner unlinks trip", func(t *testing.T) {
		uc := NewUpdateExpenseUseCase(store.Expenses(), store.Trips(), guard)
		out, err := uc.Execute(context.Background(), UpdateExpenseInput{Principal: owner, ExpenseID: expenseID, ClearTrip: true})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.Expense.TripID != nil {
			t.Errorf("expected no trip, got %v", out.Expense.TripID)
		}
	})

	t.Run("driver cannot delete, manager can", func(t *testing.T) {
		uc := NewDeleteExpenseUseCase(store.Expenses())
		if _, err := uc.Execute(context.Background(), DeleteExpenseInput{Principal: owner, ExpenseID: expenseID}); !errors.Is(err, domainerror.ErrActionForbidden) {
			t.Errorf("expected ErrActionForbidden, got %v", err)
		}
		if _, err := uc.Execute(context.Background(), DeleteExpenseInput{Principal: manager, ExpenseID: expenseID}); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}
