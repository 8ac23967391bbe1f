package trip

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trip-logbook/backend/internal/application/adapter/adaptertest"
	"github.com/trip-logbook/backend/internal/application/usecase/access"
	"github.com/trip-logbook/backend/internal/application/usecase/stats"
	"github.com/trip-logbook/backend/internal/application/usecase/tag"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	store  *adaptertest.Store
	queue  *adaptertest.RecordingQueue
	guard  *access.CarGuard
	create *CreateTripUseCase
	car    *entity.Car
	owner  policy.Principal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := adaptertest.NewStore()
	queue := &adaptertest.RecordingQueue{}
	guard := access.NewCarGuard(store.Cars())

	owner := policy.Principal{UserID: uuid.New(), Roles: []entity.Role{entity.RoleDrivers}}
	car := entity.NewCar(owner.UserID, "Dacia", "Duster", 2020, entity.FuelPetrol, entity.GearboxManual)
	if err := store.Cars().Create(context.Background(), car); err != nil {
		t.Fatalf("failed to create car: %v", err)
	}

	return &fixture{
		store:  store,
		queue:  queue,
		guard:  guard,
		create: NewCreateTripUseCase(store.Trips(), guard, tag.NewSelector(store.Tags()), stats.NewRefresher(queue)),
		car:    car,
		owner:  owner,
	}
}

func (f *fixture) validInput() CreateTripInput {
	return CreateTripInput{
		Principal:     f.owner,
		CarID:         f.car.ID,
		StartOdometer: 1000,
		EndOdometer:   1050,
		StartDate:     date(2024, 3, 10),
		EndDate:       date(2024, 3, 10),
		FromCity:      " Sofia ",
		ToCity:        "Plovdiv",
	}
}

func TestCreateTrip(t *testing.T) {
	f := newFixture(t)

	out, err := f.create.Execute(context.Background(), f.validInput())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Trip.FromCity != "Sofia" {
		t.Errorf("expected trimmed city, got %q", out.Trip.FromCity)
	}
	if out.Trip.DistanceKm() != 50 {
		t.Errorf("expected distance 50, got %d", out.Trip.DistanceKm())
	}

	tasks := f.queue.Tasks()
	if len(tasks) != 1 || tasks[0].CarID != f.car.ID || tasks[0].Year != 2024 || tasks[0].Month != 3 {
		t.Errorf("expected one recompute task for 2024-03, got %+v", tasks)
	}
}

func TestCreateTrip_Validation(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(in *CreateTripInput)
		expectedCode  domainerror.LedgerErrorCode
		expectedField string
	}{
		{
			name:          "end odometer before start",
			mutate:        func(in *CreateTripInput) { in.EndOdometer = 999 },
			expectedCode:  domainerror.ErrCodeInvalidOdometer,
			expectedField: "end_odometer",
		},
		{
			name:          "negative odometer",
			mutate:        func(in *CreateTripInput) { in.StartOdometer = -1 },
			expectedCode:  domainerror.ErrCodeInvalidOdometer,
			expectedField: "start_odometer",
		},
		{
			name:          "end date before start",
			mutate:        func(in *CreateTripInput) { in.EndDate = date(2024, 3, 9) },
			expectedCode:  domainerror.ErrCodeInvalidDateRange,
			expectedField: "end_date",
		},
		{
			name:          "missing destination",
			mutate:        func(in *CreateTripInput) { in.ToCity = "   " },
			expectedCode:  domainerror.ErrCodeMissingLedgerFields,
			expectedField: "to_city",
		},
		{
			name: "city too long",
			mutate: func(in *CreateTripInput) {
				in.FromCity = "Aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
			},
			expectedCode:  domainerror.ErrCodeFieldTooLong,
			expectedField: "from_city",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			input := f.validInput()
			tt.mutate(&input)

			_, err := f.create.Execute(context.Background(), input)

			var ledgerErr *domainerror.LedgerError
			if !errors.As(err, &ledgerErr) {
				t.Fatalf("expected LedgerError, got %v", err)
			}
			if ledgerErr.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, ledgerErr.Code)
			}
			if ledgerErr.Field != tt.expectedField {
				t.Errorf("expected field %s, got %s", tt.expectedField, ledgerErr.Field)
			}
			if len(f.queue.Tasks()) != 0 {
				t.Error("expected no recompute task for a rejected trip")
			}
		})
	}

	t.Run("same odometer and same day is allowed", func(t *testing.T) {
		f := newFixture(t)
		input := f.validInput()
		input.EndOdometer = input.StartOdometer
		if _, err := f.create.Execute(context.Background(), input); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}

func TestCreateTrip_ForeignCar(t *testing.T) {
	f := newFixture(t)
	input := f.validInput()
	input.Principal = policy.Principal{UserID: uuid.New(), Roles: []entity.Role{entity.RoleDrivers}}

	_, err := f.create.Execute(context.Background(), input)
	if !errors.Is(err, domainerror.ErrTripNotFound) {
		t.Errorf("expected ErrTripNotFound, got %v", err)
	}
}

func TestUpdateTrip_TouchesOldAndNewMonth(t *testing.T) {
	f := newFixture(t)
	created, err := f.create.Execute(context.Background(), f.validInput())
	if err != nil {
		t.Fatalf("failed to create trip: %v", err)
	}

	queue := &adaptertest.RecordingQueue{}
	uc := NewUpdateTripUseCase(f.store.Trips(), f.guard, tag.NewSelector(f.store.Tags()), stats.NewRefresher(queue))

	newStart, newEnd := date(2024, 4, 2), date(2024, 4, 3)
	out, err := uc.Execute(context.Background(), UpdateTripInput{
		Principal: f.owner,
		TripID:    created.Trip.ID,
		StartDate: &newStart,
		EndDate:   &newEnd,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !out.Trip.StartDate.Equal(newStart) {
		t.Errorf("expected start date %v, got %v", newStart, out.Trip.StartDate)
	}

	months := map[int]bool{}
	for _, task := range queue.Tasks() {
		months[task.Month] = true
	}
	if !months[3] || !months[4] || len(months) != 2 {
		t.Errorf("expected recompute of March and April, got %+v", queue.Tasks())
	}

	t.Run("invalid change is rejected", func(t *testing.T) {
		end := int64(10)
		_, err := uc.Execute(context.Background(), UpdateTripInput{Principal: f.owner, TripID: created.Trip.ID, EndOdometer: &end})
		var ledgerErr *domainerror.LedgerError
		if !errors.As(err, &ledgerErr) || ledgerErr.Code != domainerror.ErrCodeInvalidOdometer {
			t.Errorf("expected invalid odometer error, got %v", err)
		}
	})
}

func TestDeleteTrip(t *testing.T) {
	f := newFixture(t)
	created, err := f.create.Execute(context.Background(), f.validInput())
	if err != nil {
		t.Fatalf("failed to create trip: %v", err)
	}

	tripID := created.Trip.ID
	expense := entity.NewExpense(f.owner.UserID, &tripID, entity.ExpenseToll, mustDecimal("12.50"), "")
	if err := f.store.Expenses().Create(context.Background(), expense); err != nil {
		t.Fatalf("failed to create expense: %v", err)
	}

	uc := NewDeleteTripUseCase(f.store.Trips(), f.guard, stats.NewRefresher(f.queue))

	t.Run("driver is forbidden", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), DeleteTripInput{Principal: f.owner, TripID: tripID})
		if !errors.Is(err, domainerror.ErrActionForbidden) {
			t.Errorf("expected ErrActionForbidden, got %v", err)
		}
	})

	t.Run("manager deletes and expense is unlinked", func(t *testing.T) {
		manager := policy.Principal{UserID: uuid.New(), Roles: []entity.Role{entity.RoleManagers}}
		out, err := uc.Execute(context.Background(), DeleteTripInput{Principal: manager, TripID: tripID})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !out.Success {
			t.Error("expected success")
		}

		kept, err := f.store.Expenses().FindByID(context.Background(), expense.ID)
		if err != nil {
			t.Fatalf("expected expense to survive, got %v", err)
		}
		if kept.TripID != nil {
			t.Errorf("expected expense to be unlinked, got %v", kept.TripID)
		}
	})
}

func TestListTrips(t *testing.T) {
	f := newFixture(t)
	for _, d := range []time.Time{date(2024, 2, 28), date(2024, 3, 1), date(2024, 3, 31)} {
		input := f.validInput()
		input.StartDate, input.EndDate = d, d
		if _, err := f.create.Execute(context.Background(), input); err != nil {
			t.Fatalf("failed to create trip: %v", err)
		}
	}

	uc := NewListTripsUseCase(f.store.Trips())
	year, month := 2024, 3

	out, err := uc.Execute(context.Background(), ListTripsInput{Principal: f.owner, Year: &year, Month: &month})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(out.Trips) != 2 {
		t.Errorf("expected 2 trips in March, got %d", len(out.Trips))
	}
	if len(out.Trips) == 2 && out.Trips[0].StartDate.Before(out.Trips[1].StartDate) {
		t.Error("expected newest trip first")
	}

	stranger := policy.Principal{UserID: uuid.New(), Roles: []entity.Role{entity.RoleDrivers}}
	other, err := uc.Execute(context.Background(), ListTripsInput{Principal: stranger, CarID: &f.car.ID})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(other.Trips) != 0 {
		t.Errorf("expected no trips for stranger, got %d", len(other.Trips))
	}

	_, err = uc.Execute(context.Background(), ListTripsInput{Principal: f.owner, Month: &month})
	var ledgerErr *domainerror.LedgerError
	if !errors.As(err, &ledgerErr) || ledgerErr.Code != domainerror.ErrCodeInvalidFilter {
		t.Errorf("expected invalid filter error, got %v", err)
	}

	byCar := NewListCarTripsUseCase(f.store.Trips(), f.guard)
	if _, err := byCar.Execute(context.Background(), ListCarTripsInput{Principal: stranger, CarID: f.car.ID}); !errors.Is(err, domainerror.ErrCarNotFound) {
		t.Errorf("expected ErrCarNotFound for stranger, got %v", err)
	}
	all, err := byCar.Execute(context.Background(), ListCarTripsInput{Principal: f.owner, CarID: f.car.ID})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(all.Trips) != 3 {
		t.Errorf("expected 3 trips, got %d", len(all.Trips))
	}
}
