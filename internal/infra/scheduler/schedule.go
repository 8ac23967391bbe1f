package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// specParser accepts five-field cron expressions and descriptors such as
// "@daily" or "@every 1h".
var specParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ParseSpec parses a cron expression. CRON_TZ prefixes are rejected since
// every job runs in the scheduler's timezone.
func ParseSpec(spec string) (cron.Schedule, error) {
	schedule, err := specParser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	if s, ok := schedule.(*cron.SpecSchedule); ok && s.Location != time.Local {
		return nil, fmt.Errorf("invalid cron spec %q: timezone prefixes are not supported", spec)
	}
	return schedule, nil
}

// slogLogger routes cron's own logging to slog. Its info lines fire on every
// wake-up, so they go to debug.
type slogLogger struct{}

func (slogLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (slogLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
