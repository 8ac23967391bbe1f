// Package maintenance contains housekeeping use cases run by the scheduler.
package maintenance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/trip-logbook/backend/internal/application/adapter"
)

// DefaultSentEmailRetentionDays is how long sent emails are kept.
const DefaultSentEmailRetentionDays = 30

// CleanupInput represents the input for a cleanup run.
type CleanupInput struct {
	// SentEmailRetentionDays overrides the retention of sent emails when positive.
	SentEmailRetentionDays int
}

// CleanupOutput represents the outcome of a cleanup run.
type CleanupOutput struct {
	ExpiredTokens int64
	SentEmails    int64
}

// CleanupUseCase purges expired refresh tokens and old sent emails.
type CleanupUseCase struct {
	tokenService   adapter.TokenService
	emailQueueRepo adapter.EmailQueueRepository
	clock          adapter.Clock
}

// NewCleanupUseCase creates a new CleanupUseCase instance.
func NewCleanupUseCase(tokenService adapter.TokenService, emailQueueRepo adapter.EmailQueueRepository, clock adapter.Clock) *CleanupUseCase {
	return &CleanupUseCase{
		tokenService:   tokenService,
		emailQueueRepo: emailQueueRepo,
		clock:          clock,
	}
}

// Execute runs both purges. A failing purge does not skip the other one.
func (uc *CleanupUseCase) Execute(ctx context.Context, input CleanupInput) (*CleanupOutput, error) {
	retention := input.SentEmailRetentionDays
	if retention <= 0 {
		retention = DefaultSentEmailRetentionDays
	}

	output := &CleanupOutput{}
	var errs []error

	tokens, err := uc.tokenService.PurgeExpiredTokens(ctx, uc.clock.Now())
	if err != nil {
		errs = append(errs, fmt.Errorf("failed to purge expired tokens: %w", err))
	}
	output.ExpiredTokens = tokens

	emails, err := uc.emailQueueRepo.DeleteOldSentJobs(ctx, retention)
	if err != nil {
		errs = append(errs, fmt.Errorf("failed to delete old sent emails: %w", err))
	}
	output.SentEmails = emails

	slog.Info("Cleanup completed",
		"expired_tokens", output.ExpiredTokens,
		"sent_emails", output.SentEmails,
		"retention_days", retention,
	)

	return output, errors.Join(errs...)
}
