package apperror

import (
	"errors"
	"fmt"
)

// Sentinel kinds for the closed error taxonomy. Call sites switch on these
// with errors.Is instead of comparing message text.
var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrInternal         = errors.New("internal error")
)

// AppError carries a user-facing message alongside the kind it wraps.
type AppError struct {
	Err     error  // one of the sentinel kinds above
	Message string // human-readable error message, safe to expose
	Field   string // optional: field causing a validation error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Unauthenticated covers missing, invalid and expired tokens alike; the
// caller cannot tell which.
func Unauthenticated() *AppError {
	return &AppError{
		Err:     ErrUnauthenticated,
		Message: "Unauthorized",
	}
}

// MissingField reports a required request field that was absent.
func MissingField(field string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: fmt.Sprintf("Missing %s", field),
		Field:   field,
	}
}

// Validation reports a request field that was present but unacceptable.
func Validation(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// NotFound deliberately covers nonexistent resources, other users' private
// resources and not-yet-generated derived content, so a denial never leaks
// whether the resource exists.
func NotFound() *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: "Not found",
	}
}

// InvalidOperation reports a request that targets the wrong kind of
// resource, e.g. fetching the content of a folder.
func InvalidOperation(message string) *AppError {
	return &AppError{
		Err:     ErrInvalidOperation,
		Message: message,
	}
}

// Internal wraps an unexpected store or filesystem failure. The underlying
// error stays out of the client-facing message.
func Internal(err error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %w", ErrInternal, err),
		Message: "Server error",
	}
}
