// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService defines the interface for queueing emails.
type EmailService interface {
	// QueueWelcomeEmail queues the email sent after registration.
	QueueWelcomeEmail(ctx context.Context, input QueueWelcomeInput) error

	// QueueWeeklySummaryEmail queues a weekly activity summary.
	QueueWeeklySummaryEmail(ctx context.Context, input QueueWeeklySummaryInput) error
}

// QueueWelcomeInput represents the input for queueing a welcome email.
type QueueWelcomeInput struct {
	UserEmail string
	UserName  string
}

// CurrencyAmount is an amount in a single currency, already formatted.
type CurrencyAmount struct {
	Currency string
	Amount   string
}

// QueueWeeklySummaryInput represents the input for queueing a weekly summary email.
type QueueWeeklySummaryInput struct {
	UserEmail    string
	UserName     string
	PeriodStart  string
	PeriodEnd    string
	TripsCount   int64
	DistanceKm   int64
	RefuelsCount int64
	FuelCosts    []CurrencyAmount
}
