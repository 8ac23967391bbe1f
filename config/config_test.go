package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Queue.Backend != "memory" {
		t.Errorf("expected memory queue backend, got %s", cfg.Queue.Backend)
	}
	if cfg.Worker.Concurrency != 4 || cfg.Worker.MaxAttempts != 3 {
		t.Errorf("unexpected worker defaults %+v", cfg.Worker)
	}
	if cfg.Scheduler.RecomputeSpec != "10 3 * * *" || cfg.Scheduler.WeeklySummarySpec != "0 9 * * 1" || cfg.Scheduler.CleanupSpec != "30 4 * * *" {
		t.Errorf("unexpected scheduler defaults %+v", cfg.Scheduler)
	}
	if !cfg.Stats.FXRate.Equal(decimal.RequireFromString("1.95583")) {
		t.Errorf("expected default rate 1.95583, got %s", cfg.Stats.FXRate)
	}
	if cfg.Stats.BaseCurrency != "EUR" || cfg.Stats.QuoteCurrency != "BGN" {
		t.Errorf("unexpected currencies %+v", cfg.Stats)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("QUEUE_BACKEND", "redis")
	t.Setenv("WORKER_CONCURRENCY", "8")
	t.Setenv("WORKER_RATE_PER_SECOND", "2.5")
	t.Setenv("WORKER_TASK_TIMEOUT", "5s")
	t.Setenv("SCHEDULER_WEEKLY_SUMMARY_CRON", "0 18 * * 5")
	t.Setenv("STATS_FX_RATE", "2")

	cfg := Load()

	if cfg.Queue.Backend != "redis" {
		t.Errorf("expected redis, got %s", cfg.Queue.Backend)
	}
	if cfg.Worker.Concurrency != 8 || cfg.Worker.RatePerSecond != 2.5 || cfg.Worker.TaskTimeout != 5*time.Second {
		t.Errorf("unexpected worker config %+v", cfg.Worker)
	}
	if cfg.Scheduler.WeeklySummarySpec != "0 18 * * 5" {
		t.Errorf("expected Friday evening spec, got %s", cfg.Scheduler.WeeklySummarySpec)
	}
	if !cfg.Stats.FXRate.Equal(decimal.NewFromInt(2)) {
		t.Errorf("expected rate 2, got %s", cfg.Stats.FXRate)
	}
}

func TestGetEnvHelpers_InvalidValuesFallBack(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		check func() bool
	}{
		{
			name: "int", key: "TEST_INT", value: "many",
			check: func() bool { return getEnvAsInt("TEST_INT", 3) == 3 },
		},
		{
			name: "bool", key: "TEST_BOOL", value: "maybe",
			check: func() bool { return getEnvAsBool("TEST_BOOL", true) },
		},
		{
			name: "duration", key: "TEST_DURATION", value: "soon",
			check: func() bool { return getEnvAsDuration("TEST_DURATION", time.Minute) == time.Minute },
		},
		{
			name: "non-positive decimal", key: "TEST_DECIMAL", value: "-1",
			check: func() bool { return getEnvAsDecimal("TEST_DECIMAL", decimal.NewFromInt(1)).Equal(decimal.NewFromInt(1)) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if !tt.check() {
				t.Errorf("expected default for invalid %s value %q", tt.name, tt.value)
			}
		})
	}
}
