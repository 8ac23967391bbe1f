// Package email provides email sending functionality.
package email

import (
	"context"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
)

const (
	welcomeSubject       = "Welcome to Trips Monitoring"
	weeklySummarySubject = "Your weekly Trip Logbook summary"
)

// Service handles email queueing operations.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		appBaseURL: appBaseURL,
	}
}

// QueueWelcomeEmail queues the welcome email sent after registration.
func (s *Service) QueueWelcomeEmail(ctx context.Context, input adapter.QueueWelcomeInput) error {
	templateData := map[string]any{
		"user_name": input.UserName,
		"app_url":   s.appBaseURL,
	}

	job := entity.NewEmailJob(
		entity.TemplateWelcome,
		input.UserEmail,
		input.UserName,
		welcomeSubject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue welcome email",
			err,
		)
	}

	return nil
}

// QueueWeeklySummaryEmail queues a weekly activity summary.
func (s *Service) QueueWeeklySummaryEmail(ctx context.Context, input adapter.QueueWeeklySummaryInput) error {
	costs := make([]map[string]any, len(input.FuelCosts))
	for i, c := range input.FuelCosts {
		costs[i] = map[string]any{"currency": c.Currency, "amount": c.Amount}
	}

	templateData := map[string]any{
		"user_name":     input.UserName,
		"period_start":  input.PeriodStart,
		"period_end":    input.PeriodEnd,
		"trips_count":   input.TripsCount,
		"distance_km":   input.DistanceKm,
		"refuels_count": input.RefuelsCount,
		"fuel_costs":    costs,
	}

	job := entity.NewEmailJob(
		entity.TemplateWeeklySummary,
		input.UserEmail,
		input.UserName,
		weeklySummarySubject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue weekly summary email",
			err,
		)
	}

	return nil
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
