package error

import "errors"

// Ledger domain errors.
var (
	// ErrCarNotFound is returned when a car does not exist or is not visible to the principal.
	ErrCarNotFound = errors.New("car not found")

	// ErrTripNotFound is returned when a trip does not exist or is not visible to the principal.
	ErrTripNotFound = errors.New("trip not found")

	// ErrRefuelNotFound is returned when a refuel does not exist or is not visible to the principal.
	ErrRefuelNotFound = errors.New("refuel not found")

	// ErrExpenseNotFound is returned when an expense does not exist or is not visible to the principal.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrTagNotFound is returned when a tag does not exist.
	ErrTagNotFound = errors.New("tag not found")

	// ErrDuplicateCar is returned when the owner already has a car with the same brand, model and year.
	ErrDuplicateCar = errors.New("car already exists")

	// ErrDuplicateTag is returned when a tag with the same name already exists.
	ErrDuplicateTag = errors.New("tag already exists")

	// ErrActionForbidden is returned when the principal owns a resource but may not perform the action.
	ErrActionForbidden = errors.New("action not permitted")
)

// LedgerErrorCode defines error codes for ledger errors.
// Format: LED-XXYYYY where XX is category and YYYY is specific error.
type LedgerErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingLedgerFields LedgerErrorCode = "LED-010001"
	ErrCodeInvalidOdometer     LedgerErrorCode = "LED-010002"
	ErrCodeInvalidDateRange    LedgerErrorCode = "LED-010003"
	ErrCodeInvalidAmount       LedgerErrorCode = "LED-010004"
	ErrCodeOdometerTimeline    LedgerErrorCode = "LED-010005"
	ErrCodeInvalidVIN          LedgerErrorCode = "LED-010006"
	ErrCodeInvalidCarYear      LedgerErrorCode = "LED-010007"
	ErrCodeInvalidChoice       LedgerErrorCode = "LED-010008"
	ErrCodeFieldTooLong        LedgerErrorCode = "LED-010009"
	ErrCodeInvalidTagName      LedgerErrorCode = "LED-010010"
	ErrCodeUnknownTag          LedgerErrorCode = "LED-010011"
	ErrCodeDuplicateCar        LedgerErrorCode = "LED-010012"
	ErrCodeDuplicateTag        LedgerErrorCode = "LED-010013"
	ErrCodeInvalidFilter       LedgerErrorCode = "LED-010014"

	// Lookup errors (02XXXX)
	ErrCodeCarNotFound     LedgerErrorCode = "LED-020001"
	ErrCodeTripNotFound    LedgerErrorCode = "LED-020002"
	ErrCodeRefuelNotFound  LedgerErrorCode = "LED-020003"
	ErrCodeExpenseNotFound LedgerErrorCode = "LED-020004"
	ErrCodeTagNotFound     LedgerErrorCode = "LED-020005"

	// Permission errors (03XXXX)
	ErrCodeActionForbidden LedgerErrorCode = "LED-030001"
)

// LedgerError represents a ledger error with code, message and the offending field.
type LedgerError struct {
	Code    LedgerErrorCode
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError creates a new LedgerError with the given code and message.
func NewLedgerError(code LedgerErrorCode, message string, err error) *LedgerError {
	return &LedgerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewLedgerValidationError creates a LedgerError that points at a single input field.
func NewLedgerValidationError(code LedgerErrorCode, field, message string) *LedgerError {
	return &LedgerError{
		Code:    code,
		Field:   field,
		Message: message,
	}
}
