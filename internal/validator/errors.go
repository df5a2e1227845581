package validator

import (
	"context"
	"errors"
	"fmt"

	"cardeval/pkg/platform/sentinel"
)

// ErrorCategory is the normalized failure taxonomy for frequent flyer lookups.
type ErrorCategory string

const (
	// ErrorTimeout indicates the service took too long to respond
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorUnavailable indicates the service is down or is not being called
	ErrorUnavailable ErrorCategory = "unavailable"

	// ErrorNotImplemented indicates a placeholder adapter
	ErrorNotImplemented ErrorCategory = "not_implemented"

	// ErrorBadData indicates the request or the answer could not be used
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorInternal indicates an unexpected failure
	ErrorInternal ErrorCategory = "internal"
)

// Error wraps a lookup failure with its category.
type Error struct {
	Category   ErrorCategory
	Message    string
	Underlying error
	Retryable  bool
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("frequent flyer validator [%s]: %s: %v", e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("frequent flyer validator [%s]: %s", e.Category, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

// NewError creates a categorized validator error.
func NewError(category ErrorCategory, message string, underlying error) *Error {
	return &Error{
		Category:   category,
		Message:    message,
		Underlying: underlying,
		Retryable:  category == ErrorTimeout || category == ErrorUnavailable,
	}
}

// IsRetryable reports whether a later attempt could succeed.
func IsRetryable(err error) bool {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Retryable
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// GetCategory classifies any error returned by a validator. Errors that are
// not *Error are classified by the sentinels they wrap.
func GetCategory(err error) ErrorCategory {
	var ve *Error
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return ve.Category
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorTimeout
	case errors.Is(err, sentinel.ErrUnavailable):
		return ErrorUnavailable
	case errors.Is(err, sentinel.ErrNotImplemented):
		return ErrorNotImplemented
	default:
		return ErrorInternal
	}
}
