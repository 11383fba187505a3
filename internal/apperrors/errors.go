package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the requested operation conflicts with the current state of the resource.
var ErrConflict = errors.New("state conflict")

// ErrUnavailable indicates that an external dependency could not answer in time.
var ErrUnavailable = errors.New("dependency unavailable")

// ErrInternal indicates an unexpected failure inside the application.
var ErrInternal = errors.New("internal error")

// kindError is a named error that also belongs to a broader class.
// errors.Is matches both the kind itself and its class.
type kindError struct {
	msg   string
	class error
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.class }

func newKind(msg string, class error) error {
	return &kindError{msg: msg, class: class}
}

// Accounting standard registry.
var ErrUnknownStandard = newKind("unknown accounting standard", ErrNotFound)

// Chart of accounts.
var (
	ErrInvalidAccountNumber = newKind("invalid account number", ErrValidation)
	ErrInvalidAccountClass  = newKind("invalid account class", ErrValidation)
	ErrDuplicateAccount     = newKind("account number already exists", ErrDuplicate)
)

// Entry validation.
var (
	ErrInvalidLine      = newKind("invalid ledger line", ErrValidation)
	ErrEmptyEntry       = newKind("journal entry has no lines", ErrValidation)
	ErrImbalancedEntry  = newKind("journal entry debits and credits differ", ErrValidation)
	ErrInactiveAccount  = newKind("account is inactive", ErrValidation)
	ErrUnknownAccount   = newKind("account does not exist", ErrValidation)
	ErrCurrencyMismatch = newKind("currency mismatch", ErrValidation)
)

// State machine.
var (
	ErrEntryNotEditable = newKind("journal entry is not editable in its current status", ErrConflict)
	ErrAlreadyPosted    = newKind("journal entry is already posted", ErrConflict)
	ErrVersionConflict  = newKind("journal entry was modified concurrently", ErrConflict)
	ErrPeriodClosed     = newKind("financial period is closed", ErrConflict)
	ErrPeriodOverlap    = newKind("financial period overlaps an existing period", ErrValidation)
)

// ErrUnbalancedTrialBalance signals a ledger integrity defect, never a user error.
var ErrUnbalancedTrialBalance = newKind("trial balance does not balance", ErrInternal)

// ErrRateUnavailable is returned when no exchange rate could be obtained in time.
var ErrRateUnavailable = newKind("exchange rate unavailable", ErrUnavailable)

// AppError carries an HTTP-ish status code alongside the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
