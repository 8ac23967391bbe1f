package refuel

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
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fixture struct {
	store  *adaptertest.Store
	queue  *adaptertest.RecordingQueue
	guard  *access.CarGuard
	create *CreateRefuelUseCase
	update *UpdateRefuelUseCase
	car    *entity.Car
	owner  policy.Principal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := adaptertest.NewStore()
	queue := &adaptertest.RecordingQueue{}
	guard := access.NewCarGuard(store.Cars())
	refresher := stats.NewRefresher(queue)

	user := entity.NewUser("ivan", "ivan@example.com", "Ivan", "hash")
	user.PreferredCurrency = entity.CurrencyEUR
	user.Roles = []entity.Role{entity.RoleDrivers}
	if err := store.Users().Create(ctx, user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	car := entity.NewCar(user.ID, "Toyota", "Corolla", 2017, entity.FuelHybrid, entity.GearboxAutomatic)
	if err := store.Cars().Create(ctx, car); err != nil {
		t.Fatalf("failed to create car: %v", err)
	}

	return &fixture{
		store:  store,
		queue:  queue,
		guard:  guard,
		create: NewCreateRefuelUseCase(store.Refuels(), store.Users(), guard, refresher),
		update: NewUpdateRefuelUseCase(store.Refuels(), guard, refresher),
		car:    car,
		owner:  policy.NewPrincipal(user),
	}
}

func (f *fixture) input(d time.Time, odometer int64) CreateRefuelInput {
	return CreateRefuelInput{
		Principal: f.owner,
		CarID:     f.car.ID,
		Date:      d,
		Odometer:  odometer,
		Liters:    dec("40.00"),
		TotalCost: dec("100.00"),
		Currency:  entity.CurrencyBGN,
	}
}

func (f *fixture) mustCreate(t *testing.T, d time.Time, odometer int64) *entity.Refuel {
	t.Helper()
	out, err := f.create.Execute(context.Background(), f.input(d, odometer))
	if err != nil {
		t.Fatalf("failed to create refuel: %v", err)
	}
	return out.Refuel
}

func TestCreateRefuel_Validation(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(in *CreateRefuelInput)
		expectedField string
	}{
		{name: "zero liters", mutate: func(in *CreateRefuelInput) { in.Liters = decimal.Zero }, expectedField: "liters"},
		{name: "negative cost", mutate: func(in *CreateRefuelInput) { in.TotalCost = dec("-1") }, expectedField: "total_cost"},
		{name: "zero cost", mutate: func(in *CreateRefuelInput) { in.TotalCost = decimal.Zero }, expectedField: "total_cost"},
		{name: "negative odometer", mutate: func(in *CreateRefuelInput) { in.Odometer = -5 }, expectedField: "odometer"},
		{name: "unsupported currency", mutate: func(in *CreateRefuelInput) { in.Currency = "USD" }, expectedField: "currency"},
		{name: "liters with three decimals", mutate: func(in *CreateRefuelInput) { in.Liters = dec("20.005") }, expectedField: "liters"},
		{name: "liters below a cent", mutate: func(in *CreateRefuelInput) { in.Liters = dec("0.004") }, expectedField: "liters"},
		{name: "cost with three decimals", mutate: func(in *CreateRefuelInput) { in.TotalCost = dec("60.004") }, expectedField: "total_cost"},
		{name: "cost above column precision", mutate: func(in *CreateRefuelInput) { in.TotalCost = dec("100000000") }, expectedField: "total_cost"},
		{name: "liters above column precision", mutate: func(in *CreateRefuelInput) { in.Liters = dec("123456789.5") }, expectedField: "liters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			input := f.input(date(2024, 5, 1), 1000)
			tt.mutate(&input)

			_, err := f.create.Execute(context.Background(), input)

			var ledgerErr *domainerror.LedgerError
			if !errors.As(err, &ledgerErr) {
				t.Fatalf("expected LedgerError, got %v", err)
			}
			if ledgerErr.Field != tt.expectedField {
				t.Errorf("expected field %s, got %s", tt.expectedField, ledgerErr.Field)
			}
		})
	}
}

func TestCreateRefuel_DefaultsToPreferredCurrency(t *testing.T) {
	f := newFixture(t)
	input := f.input(date(2024, 5, 1), 1000)
	input.Currency = ""
	input.Station = "  OMV Mladost "

	out, err := f.create.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Refuel.Currency != entity.CurrencyEUR {
		t.Errorf("expected EUR, got %s", out.Refuel.Currency)
	}
	if out.Refuel.Station != "OMV Mladost" {
		t.Errorf("expected trimmed station, got %q", out.Refuel.Station)
	}

	tasks := f.queue.Tasks()
	if len(tasks) != 1 || tasks[0].Month != 5 {
		t.Errorf("expected recompute task for May, got %+v", tasks)
	}
}

func TestRefuelOdometerTimeline(t *testing.T) {
	f := newFixture(t)
	f.mustCreate(t, date(2024, 1, 10), 1000)
	f.mustCreate(t, date(2024, 1, 30), 2000)

	tests := []struct {
		name      string
		date      time.Time
		odometer  int64
		expectErr bool
	}{
		{name: "between neighbors", date: date(2024, 1, 20), odometer: 1500},
		{name: "equal to previous", date: date(2024, 1, 20), odometer: 1000},
		{name: "equal to next", date: date(2024, 1, 20), odometer: 2000},
		{name: "below previous", date: date(2024, 1, 20), odometer: 999, expectErr: true},
		{name: "above next", date: date(2024, 1, 20), odometer: 2001, expectErr: true},
		{name: "same day as previous below it", date: date(2024, 1, 10), odometer: 900, expectErr: true},
		{name: "before every refuel", date: date(2024, 1, 1), odometer: 500},
		{name: "after every refuel", date: date(2024, 2, 1), odometer: 2500},
		{name: "after every refuel going backwards", date: date(2024, 2, 1), odometer: 1999, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := f.input(tt.date, tt.odometer)

			out, err := f.create.Execute(context.Background(), input)
			if tt.expectErr {
				var ledgerErr *domainerror.LedgerError
				if !errors.As(err, &ledgerErr) || ledgerErr.Code != domainerror.ErrCodeOdometerTimeline {
					t.Errorf("expected timeline error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			// Keep the timeline at two refuels for the next case.
			if err := f.store.Refuels().Delete(context.Background(), out.Refuel.ID); err != nil {
				t.Fatalf("failed to clean up: %v", err)
			}
		})
	}
}

func TestUpdateRefuel_ExcludesItself(t *testing.T) {
	f := newFixture(t)
	first := f.mustCreate(t, date(2024, 1, 10), 1000)
	f.mustCreate(t, date(2024, 1, 30), 2000)

	odometer := int64(1200)
	out, err := f.update.Execute(context.Background(), UpdateRefuelInput{
		Principal: f.owner,
		RefuelID:  first.ID,
		Odometer:  &odometer,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Refuel.Odometer != 1200 {
		t.Errorf("expected odometer 1200, got %d", out.Refuel.Odometer)
	}

	tooHigh := int64(2100)
	_, err = f.update.Execute(context.Background(), UpdateRefuelInput{Principal: f.owner, RefuelID: first.ID, Odometer: &tooHigh})
	var ledgerErr *domainerror.LedgerError
	if !errors.As(err, &ledgerErr) || ledgerErr.Code != domainerror.ErrCodeOdometerTimeline {
		t.Errorf("expected timeline error, got %v", err)
	}
}

func TestRefuelAccess(t *testing.T) {
	f := newFixture(t)
	refuel := f.mustCreate(t, date(2024, 3, 3), 500)
	stranger := policy.Principal{UserID: uuid.New(), Roles: []entity.Role{entity.RoleDrivers}}
	manager := policy.Principal{UserID: uuid.New(), Roles: []entity.Role{entity.RoleManagers}}

	get := NewGetRefuelUseCase(f.store.Refuels(), f.guard)
	if _, err := get.Execute(context.Background(), GetRefuelInput{Principal: stranger, RefuelID: refuel.ID}); !errors.Is(err, domainerror.ErrRefuelNotFound) {
		t.Errorf("expected ErrRefuelNotFound, got %v", err)
	}
	if _, err := get.Execute(context.Background(), GetRefuelInput{Principal: manager, RefuelID: refuel.ID}); err != nil {
		t.Errorf("expected manager to read refuel, got %v", err)
	}

	list := NewListRefuelsUseCase(f.store.Refuels())
	year, month := 2024, 3
	own, err := list.Execute(context.Background(), ListRefuelsInput{Principal: f.owner, Year: &year, Month: &month})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(own.Refuels) != 1 {
		t.Errorf("expected 1 refuel, got %d", len(own.Refuels))
	}
	other, _ := list.Execute(context.Background(), ListRefuelsInput{Principal: stranger})
	if len(other.Refuels) != 0 {
		t.Errorf("expected no refuels for stranger, got %d", len(other.Refuels))
	}

	del := NewDeleteRefuelUseCase(f.store.Refuels(), f.guard, stats.NewRefresher(f.queue))
	if _, err := del.Execute(context.Background(), DeleteRefuelInput{Principal: f.owner, RefuelID: refuel.ID}); !errors.Is(err, domainerror.ErrActionForbidden) {
		t.Errorf("expected ErrActionForbidden for driver, got %v", err)
	}
	out, err := del.Execute(context.Background(), DeleteRefuelInput{Principal: manager, RefuelID: refuel.ID})
	if err != nil || !out.Success {
		t.Errorf("expected manager to delete refuel, got %v", err)
	}
}
