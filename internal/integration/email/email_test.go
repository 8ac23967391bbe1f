package email

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
	"github.com/trip-logbook/backend/internal/integration/email/templates"
)

type memoryEmailQueue struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*entity.EmailJob
	// roundTrip stores template data through JSON like the database does.
	roundTrip bool
}

func newMemoryEmailQueue(roundTrip bool) *memoryEmailQueue {
	return &memoryEmailQueue{jobs: map[uuid.UUID]*entity.EmailJob{}, roundTrip: roundTrip}
}

func (q *memoryEmailQueue) Create(ctx context.Context, job *entity.EmailJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	stored := *job
	if q.roundTrip {
		body, _ := json.Marshal(job.TemplateData)
		stored.TemplateData = map[string]any{}
		_ = json.Unmarshal(body, &stored.TemplateData)
	}
	q.jobs[job.ID] = &stored
	return nil
}

func (q *memoryEmailQueue) GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var jobs []*entity.EmailJob
	for _, job := range q.jobs {
		if job.Status == entity.EmailStatusPending && !job.ScheduledAt.After(time.Now().UTC()) && len(jobs) < limit {
			copied := *job
			jobs = append(jobs, &copied)
		}
	}
	return jobs, nil
}

func (q *memoryEmailQueue) Update(ctx context.Context, job *entity.EmailJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	copied := *job
	q.jobs[job.ID] = &copied
	return nil
}

func (q *memoryEmailQueue) GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.jobs[id], nil
}

func (q *memoryEmailQueue) GetByRecipient(ctx context.Context, email string) ([]*entity.EmailJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var jobs []*entity.EmailJob
	for _, job := range q.jobs {
		if job.RecipientEmail == email {
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

func (q *memoryEmailQueue) DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error) {
	return 0, nil
}

func newTestWorker(t *testing.T, queue adapter.EmailQueueRepository, sender adapter.EmailSender) *Worker {
	t.Helper()
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}
	return NewWorker(queue, sender, renderer, DefaultWorkerConfig())
}

func TestService_QueueAndSend(t *testing.T) {
	tests := []struct {
		name      string
		roundTrip bool
	}{
		{name: "in memory data"},
		{name: "data decoded from JSON", roundTrip: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			queue := newMemoryEmailQueue(tt.roundTrip)
			sender := NewMockEmailSender()
			service := NewService(queue, "http://localhost:5173")

			if err := service.QueueWelcomeEmail(ctx, adapter.QueueWelcomeInput{UserEmail: "a@example.com", UserName: "ana"}); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			err := service.QueueWeeklySummaryEmail(ctx, adapter.QueueWeeklySummaryInput{
				UserEmail:    "a@example.com",
				UserName:     "ana",
				PeriodStart:  "2024-03-04",
				PeriodEnd:    "2024-03-11",
				TripsCount:   2,
				DistanceKm:   130,
				RefuelsCount: 1,
				FuelCosts:    []adapter.CurrencyAmount{{Currency: "BGN", Amount: "60.00"}},
			})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			newTestWorker(t, queue, sender).ProcessNow(ctx)

			if len(sender.SentEmails) != 2 {
				t.Fatalf("expected 2 sent emails, got %d", len(sender.SentEmails))
			}
			subjects := map[string]adapter.SendEmailInput{}
			for _, sent := range sender.SentEmails {
				subjects[sent.Subject] = sent
			}

			welcome, ok := subjects["Welcome to Trips Monitoring"]
			if !ok || !strings.Contains(welcome.Text, "Hi ana") {
				t.Errorf("expected welcome email, got %+v", sender.SentEmails)
			}
			weekly, ok := subjects["Your weekly Trip Logbook summary"]
			if !ok {
				t.Fatalf("expected weekly summary email, got %+v", sender.SentEmails)
			}
			for _, want := range []string{"Trips: 2", "Distance: 130 km", "60.00 BGN"} {
				if !strings.Contains(weekly.Text, want) {
					t.Errorf("expected summary to contain %q, got %q", want, weekly.Text)
				}
			}

			jobs, _ := queue.GetByRecipient(ctx, "a@example.com")
			for _, job := range jobs {
				if job.Status != entity.EmailStatusSent {
					t.Errorf("expected job %s to be sent, got %s", job.TemplateType, job.Status)
				}
			}
		})
	}
}

func TestWorker_Failures(t *testing.T) {
	tests := []struct {
		name           string
		permanent      bool
		expectedStatus entity.EmailStatus
	}{
		{name: "temporary failure is retried", expectedStatus: entity.EmailStatusPending},
		{name: "permanent failure is final", permanent: true, expectedStatus: entity.EmailStatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			queue := newMemoryEmailQueue(false)
			sender := NewMockEmailSender()
			sender.SetFailure(errors.New("provider down"), tt.permanent)

			if err := NewService(queue, "").QueueWelcomeEmail(ctx, adapter.QueueWelcomeInput{UserEmail: "b@example.com", UserName: "bo"}); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			newTestWorker(t, queue, sender).ProcessNow(ctx)

			jobs, _ := queue.GetByRecipient(ctx, "b@example.com")
			if len(jobs) != 1 {
				t.Fatalf("expected 1 job, got %d", len(jobs))
			}
			if jobs[0].Status != tt.expectedStatus {
				t.Errorf("expected status %s, got %s", tt.expectedStatus, jobs[0].Status)
			}
			if jobs[0].Attempts != 1 {
				t.Errorf("expected 1 attempt, got %d", jobs[0].Attempts)
			}
		})
	}
}

func TestWorker_UnknownTemplateIsPermanent(t *testing.T) {
	ctx := context.Background()
	queue := newMemoryEmailQueue(false)
	job := entity.NewEmailJob("password_reset", "c@example.com", "", "Reset", map[string]any{})
	_ = queue.Create(ctx, job)

	sender := NewMockEmailSender()
	newTestWorker(t, queue, sender).ProcessNow(ctx)

	stored, _ := queue.GetByID(ctx, job.ID)
	if stored.Status != entity.EmailStatusFailed {
		t.Errorf("expected failed status, got %s", stored.Status)
	}
	if len(sender.SentEmails) != 0 {
		t.Errorf("expected nothing sent, got %d", len(sender.SentEmails))
	}
}

func TestIsPermanentError(t *testing.T) {
	tests := []struct {
		err      error
		expected bool
	}{
		{err: nil, expected: false},
		{err: errors.New("422 validation_error"), expected: true},
		{err: errors.New("401 unauthorized"), expected: true},
		{err: errors.New("429 rate limit exceeded"), expected: false},
		{err: errors.New("500 internal server error"), expected: false},
	}

	for _, tt := range tests {
		name := "nil"
		if tt.err != nil {
			name = tt.err.Error()
		}
		t.Run(name, func(t *testing.T) {
			if got := isPermanentError(tt.err); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
