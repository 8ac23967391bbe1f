package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/application/adapter/adaptertest"
	"github.com/trip-logbook/backend/internal/domain/entity"
)

type selectiveEmailService struct {
	mu      sync.Mutex
	failFor string
	sent    []adapter.QueueWeeklySummaryInput
}

func (s *selectiveEmailService) QueueWelcomeEmail(ctx context.Context, input adapter.QueueWelcomeInput) error {
	return nil
}

func (s *selectiveEmailService) QueueWeeklySummaryEmail(ctx context.Context, input adapter.QueueWeeklySummaryInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if input.UserEmail == s.failFor {
		return errors.New("queue is down")
	}
	s.sent = append(s.sent, input)
	return nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSendWeeklySummaries(t *testing.T) {
	ctx := context.Background()
	store := adaptertest.NewStore()

	owner := entity.NewUser("nikola", "nikola@example.com", "Nikola", "hash")
	other := entity.NewUser("elena", "elena@example.com", "", "hash")
	silent := entity.NewUser("noemail", "", "", "hash")
	for _, u := range []*entity.User{owner, other, silent} {
		if err := store.Users().Create(ctx, u); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}
	}

	car := entity.NewCar(owner.ID, "BMW", "320d", 2016, entity.FuelDiesel, entity.GearboxAutomatic)
	if err := store.Cars().Create(ctx, car); err != nil {
		t.Fatalf("failed to create car: %v", err)
	}

	trips := []*entity.Trip{
		entity.NewTrip(car.ID, owner.ID, 0, 120, day(2024, 3, 4), day(2024, 3, 4), "Sofia", "Pleven"),
		entity.NewTrip(car.ID, owner.ID, 120, 200, day(2024, 3, 11), day(2024, 3, 11), "Pleven", "Sofia"),
		entity.NewTrip(car.ID, owner.ID, 200, 900, day(2024, 3, 3), day(2024, 3, 3), "Sofia", "Athens"),
	}
	for _, trip := range trips {
		if err := store.Trips().Create(ctx, trip); err != nil {
			t.Fatalf("failed to create trip: %v", err)
		}
	}
	refuels := []*entity.Refuel{
		entity.NewRefuel(car.ID, owner.ID, day(2024, 3, 5), 100, decimal.NewFromInt(30), decimal.RequireFromString("75.50"), entity.CurrencyBGN),
		entity.NewRefuel(car.ID, owner.ID, day(2024, 3, 6), 150, decimal.NewFromInt(10), decimal.RequireFromString("18.00"), entity.CurrencyEUR),
	}
	for _, r := range refuels {
		if err := store.Refuels().Create(ctx, r); err != nil {
			t.Fatalf("failed to create refuel: %v", err)
		}
	}

	// Monday 08:00 in Sofia.
	clock := adaptertest.FixedClock{T: time.Date(2024, 3, 11, 6, 0, 0, 0, time.UTC)}
	emails := &selectiveEmailService{failFor: other.Email}
	uc := NewSendWeeklySummariesUseCase(store.Users(), store.Trips(), store.Refuels(), emails, clock)

	out, err := uc.Execute(ctx, SendWeeklySummariesInput{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Users != 2 || out.Queued != 1 || out.Failed != 1 {
		t.Errorf("expected 2 users, 1 queued, 1 failed, got %+v", out)
	}
	if len(emails.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(emails.sent))
	}

	summary := emails.sent[0]
	if summary.UserEmail != owner.Email {
		t.Errorf("expected email to %s, got %s", owner.Email, summary.UserEmail)
	}
	if summary.PeriodStart != "2024-03-04" || summary.PeriodEnd != "2024-03-11" {
		t.Errorf("expected period 2024-03-04 to 2024-03-11, got %s to %s", summary.PeriodStart, summary.PeriodEnd)
	}
	if summary.TripsCount != 2 || summary.DistanceKm != 200 {
		t.Errorf("expected 2 trips and 200 km, got %d and %d", summary.TripsCount, summary.DistanceKm)
	}
	if summary.RefuelsCount != 2 {
		t.Errorf("expected 2 refuels, got %d", summary.RefuelsCount)
	}
	expected := []adapter.CurrencyAmount{{Currency: "BGN", Amount: "75.50"}, {Currency: "EUR", Amount: "18.00"}}
	if len(summary.FuelCosts) != len(expected) {
		t.Fatalf("expected %d currencies, got %v", len(expected), summary.FuelCosts)
	}
	for i, c := range expected {
		if summary.FuelCosts[i] != c {
			t.Errorf("expected %+v, got %+v", c, summary.FuelCosts[i])
		}
	}
}

func TestSendWeeklySummaries_StoreFailure(t *testing.T) {
	store := adaptertest.NewStore()
	store.FailWith(errors.New("connection refused"))
	uc := NewSendWeeklySummariesUseCase(store.Users(), store.Trips(), store.Refuels(), &adaptertest.RecordingEmailService{}, adaptertest.FixedClock{T: time.Now()})

	if _, err := uc.Execute(context.Background(), SendWeeklySummariesInput{}); err == nil {
		t.Error("expected error when users cannot be listed")
	}
}
