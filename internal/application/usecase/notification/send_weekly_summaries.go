// Package notification contains use cases that fan out user notifications.
package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/application/usecase/stats"
	"github.com/trip-logbook/backend/internal/domain/entity"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

// SummaryLookbackDays is how many days before today a weekly summary reaches back.
// Both ends are inclusive.
const SummaryLookbackDays = 7

// SendWeeklySummariesInput represents the input for the weekly fan-out.
type SendWeeklySummariesInput struct {
	At *time.Time // Optional, defaults to now
}

// SendWeeklySummariesOutput represents the outcome of the weekly fan-out.
type SendWeeklySummariesOutput struct {
	Users  int
	Queued int
	Failed int
}

// SendWeeklySummariesUseCase queues a weekly activity email for every user
// with an email address. It is driven by the scheduler.
type SendWeeklySummariesUseCase struct {
	userRepo     adapter.UserRepository
	tripRepo     adapter.TripRepository
	refuelRepo   adapter.RefuelRepository
	emailService adapter.EmailService
	clock        adapter.Clock
}

// NewSendWeeklySummariesUseCase creates a new SendWeeklySummariesUseCase instance.
func NewSendWeeklySummariesUseCase(
	userRepo adapter.UserRepository,
	tripRepo adapter.TripRepository,
	refuelRepo adapter.RefuelRepository,
	emailService adapter.EmailService,
	clock adapter.Clock,
) *SendWeeklySummariesUseCase {
	return &SendWeeklySummariesUseCase{
		userRepo:     userRepo,
		tripRepo:     tripRepo,
		refuelRepo:   refuelRepo,
		emailService: emailService,
		clock:        clock,
	}
}

// Execute summarizes each user's own cars over the lookback window in the
// user's timezone. A failure for one user is logged and counted, never
// aborting the others.
func (uc *SendWeeklySummariesUseCase) Execute(ctx context.Context, input SendWeeklySummariesInput) (*SendWeeklySummariesOutput, error) {
	now := uc.clock.Now()
	if input.At != nil {
		now = *input.At
	}

	users, err := uc.userRepo.ListWithEmail(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	output := &SendWeeklySummariesOutput{Users: len(users)}
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return output, err
		}

		if err := uc.sendOne(ctx, user, now); err != nil {
			output.Failed++
			slog.Error("Failed to queue weekly summary",
				"user_id", user.ID,
				"error", err,
			)
			continue
		}
		output.Queued++
	}

	slog.Info("Weekly summaries queued",
		"users", output.Users,
		"queued", output.Queued,
		"failed", output.Failed,
	)

	return output, nil
}

func (uc *SendWeeklySummariesUseCase) sendOne(ctx context.Context, user *entity.User, now time.Time) error {
	local := now.In(user.Location())
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -SummaryLookbackDays)
	end := today.AddDate(0, 0, 1)
	scope := policy.Scope{UserID: user.ID}

	trips, err := uc.tripRepo.List(ctx, adapter.TripFilter{Scope: scope, From: &start, To: &end})
	if err != nil {
		return fmt.Errorf("failed to list trips: %w", err)
	}
	refuels, err := uc.refuelRepo.List(ctx, adapter.RefuelFilter{Scope: scope, From: &start, To: &end})
	if err != nil {
		return fmt.Errorf("failed to list refuels: %w", err)
	}

	tripSummary := stats.SummarizeTrips(trips)

	costs := make(map[entity.Currency]decimal.Decimal)
	for _, r := range refuels {
		costs[r.Currency] = costs[r.Currency].Add(r.TotalCost)
	}
	fuelCosts := make([]adapter.CurrencyAmount, 0, len(costs))
	for currency, amount := range costs {
		fuelCosts = append(fuelCosts, adapter.CurrencyAmount{
			Currency: string(currency),
			Amount:   amount.StringFixed(2),
		})
	}
	sort.Slice(fuelCosts, func(i, j int) bool { return fuelCosts[i].Currency < fuelCosts[j].Currency })

	return uc.emailService.QueueWeeklySummaryEmail(ctx, adapter.QueueWeeklySummaryInput{
		UserEmail:    user.Email,
		UserName:     user.DisplayName(),
		PeriodStart:  start.Format("2006-01-02"),
		PeriodEnd:    today.Format("2006-01-02"),
		TripsCount:   tripSummary.Count,
		DistanceKm:   tripSummary.DistanceKm,
		RefuelsCount: int64(len(refuels)),
		FuelCosts:    fuelCosts,
	})
}
