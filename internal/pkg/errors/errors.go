package errors

import (
	stderrors "errors"
	"fmt"
)

const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeMissingSecret     = "MISSING_SECRET"
	ErrCodeRequestFailed     = "REQUEST_FAILED"
	ErrCodeUnexpectedStatus  = "UNEXPECTED_STATUS"
	ErrCodeSignatureMismatch = "SIGNATURE_MISMATCH"
	ErrCodeInternal          = "INTERNAL_ERROR"
)

// Process exit statuses, one per failure class.
const (
	ExitOK                = 0
	ExitFailure           = 1
	ExitUnexpectedStatus  = 2
	ExitSignatureMismatch = 3
	ExitInvalidInput      = 64
)

type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf returns the code of the first *Error in err's chain, or
// ErrCodeInternal.
func CodeOf(err error) string {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}

func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	switch CodeOf(err) {
	case ErrCodeUnexpectedStatus:
		return ExitUnexpectedStatus
	case ErrCodeSignatureMismatch:
		return ExitSignatureMismatch
	case ErrCodeInvalidInput, ErrCodeMissingSecret:
		return ExitInvalidInput
	default:
		return ExitFailure
	}
}
