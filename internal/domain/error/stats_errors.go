package error

import "errors"

// Statistics domain errors.
var (
	// ErrInvalidPeriod is returned when a year or month is out of range.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrStoreUnavailable is returned when the ledger store cannot be read or written.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrQueueUnavailable is returned when a recompute task cannot be enqueued.
	ErrQueueUnavailable = errors.New("task queue unavailable")

	// ErrQueueClosed is returned by a task queue after Close.
	ErrQueueClosed = errors.New("task queue closed")
)

// StatsErrorCode defines error codes for statistics errors.
// Format: STAT-XXYYYY where XX is category and YYYY is specific error.
type StatsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPeriod StatsErrorCode = "STAT-010001"
	ErrCodeInvalidCarID  StatsErrorCode = "STAT-010002"

	// Lookup errors (02XXXX)
	ErrCodeStatsCarNotFound StatsErrorCode = "STAT-020001"

	// Transient errors (03XXXX)
	ErrCodeStoreUnavailable StatsErrorCode = "STAT-030001"
	ErrCodeQueueUnavailable StatsErrorCode = "STAT-030002"
)

// StatsError represents a statistics error with code and message.
type StatsError struct {
	Code    StatsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StatsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *StatsError) Unwrap() error {
	return e.Err
}

// Transient reports whether retrying the same operation may succeed.
func (e *StatsError) Transient() bool {
	return e.Code == ErrCodeStoreUnavailable || e.Code == ErrCodeQueueUnavailable
}

// NewStatsError creates a new StatsError with the given code and message.
func NewStatsError(code StatsErrorCode, message string, err error) *StatsError {
	return &StatsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
