package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func mustLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("failed to load location %s: %v", name, err)
	}
	return loc
}

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func TestParseSpec(t *testing.T) {
	tests := []struct {
		spec        string
		expectError bool
	}{
		{spec: "10 3 * * *"},
		{spec: "0 9 * * 1"},
		{spec: "30 4 * * *"},
		{spec: "@daily"},
		{spec: "@every 1h"},
		{spec: "03:10", expectError: true},
		{spec: "61 * * * *", expectError: true},
		{spec: "0 0 9 * * 1", expectError: true},
		{spec: "CRON_TZ=Europe/Sofia 0 9 * * 1", expectError: true},
		{spec: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			_, err := ParseSpec(tt.spec)
			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestNew_RejectsInvalidSpec(t *testing.T) {
	_, err := New(&fixedClock{}, time.UTC, Job{Name: "broken", Spec: "every day"})
	if err == nil {
		t.Fatal("expected error for invalid spec")
	}
}

func TestScheduler_NextRun(t *testing.T) {
	sofia := mustLocation(t, "Europe/Sofia")

	tests := []struct {
		name     string
		spec     string
		now      time.Time
		expected time.Time
	}{
		{
			name:     "daily later today",
			spec:     "10 3 * * *",
			now:      time.Date(2024, 3, 5, 1, 0, 0, 0, sofia),
			expected: time.Date(2024, 3, 5, 3, 10, 0, 0, sofia),
		},
		{
			name:     "daily exactly at fire time moves to tomorrow",
			spec:     "10 3 * * *",
			now:      time.Date(2024, 3, 5, 3, 10, 0, 0, sofia),
			expected: time.Date(2024, 3, 6, 3, 10, 0, 0, sofia),
		},
		{
			name:     "daily across month end",
			spec:     "10 3 * * *",
			now:      time.Date(2024, 2, 29, 12, 0, 0, 0, sofia),
			expected: time.Date(2024, 3, 1, 3, 10, 0, 0, sofia),
		},
		{
			name:     "daily across daylight saving change",
			spec:     "0 9 * * *",
			now:      time.Date(2024, 3, 30, 12, 0, 0, 0, sofia),
			expected: time.Date(2024, 3, 31, 9, 0, 0, 0, sofia),
		},
		{
			name:     "weekly from wednesday",
			spec:     "0 9 * * 1",
			now:      time.Date(2024, 3, 6, 10, 0, 0, 0, sofia),
			expected: time.Date(2024, 3, 11, 9, 0, 0, 0, sofia),
		},
		{
			name:     "weekly monday before nine",
			spec:     "0 9 * * 1",
			now:      time.Date(2024, 3, 11, 8, 59, 0, 0, sofia),
			expected: time.Date(2024, 3, 11, 9, 0, 0, 0, sofia),
		},
		{
			name:     "weekly monday after nine",
			spec:     "0 9 * * 1",
			now:      time.Date(2024, 3, 11, 9, 0, 1, 0, sofia),
			expected: time.Date(2024, 3, 18, 9, 0, 0, 0, sofia),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(&fixedClock{now: tt.now}, sofia, Job{Name: tt.name, Spec: tt.spec})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			got := s.NextRun(s.Jobs()[0])
			if !got.Equal(tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestScheduler_NextRunUsesLocation(t *testing.T) {
	sofia := mustLocation(t, "Europe/Sofia")
	// 2024-03-11 06:30 UTC is 08:30 in Sofia.
	clock := &fixedClock{now: time.Date(2024, 3, 11, 6, 30, 0, 0, time.UTC)}

	s, err := New(clock, sofia, Job{Name: "weekly", Spec: "0 9 * * 1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	next := s.NextRun(s.Jobs()[0])
	expected := time.Date(2024, 3, 11, 7, 0, 0, 0, time.UTC)
	if !next.Equal(expected) {
		t.Errorf("expected %v, got %v", expected, next)
	}
}

func TestScheduler_SurvivesFailingAndPanickingJobs(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for real cron ticks")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	runs := 0
	job := Job{
		Name: "recompute",
		Spec: "@every 1s",
		Run: func(ctx context.Context) error {
			mu.Lock()
			runs++
			n := runs
			mu.Unlock()

			switch n {
			case 1:
				panic("first run panics")
			case 2:
				return errors.New("second run fails")
			default:
				cancel()
				return nil
			}
		},
	}

	s, err := New(&fixedClock{now: time.Now()}, time.UTC, job)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("expected scheduler to stop after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	if runs < 3 {
		t.Fatalf("expected at least 3 runs, got %d", runs)
	}
}

func TestScheduler_RunNowLogsErrors(t *testing.T) {
	s, err := New(&fixedClock{}, time.UTC, Job{Name: "cleanup", Spec: "30 4 * * *"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	called := false
	job := s.Jobs()[0]
	job.Run = func(ctx context.Context) error {
		called = true
		return errors.New("boom")
	}
	s.RunNow(context.Background(), job)

	if !called {
		t.Error("expected job to run")
	}
}
