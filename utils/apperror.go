package utils

import (
	"errors"
	"fmt"
)

// Error kinds shared by every service. Wrap them with AppError so callers can
// match with errors.Is and handlers can pick a status code.
var (
	ErrValidation           = errors.New("validation error")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("conflict")
	ErrImmutableBooking     = errors.New("booking is immutable")
	ErrDuplicateBooking     = errors.New("duplicate booking")
	ErrDecoratorUnavailable = errors.New("decorator unavailable")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrPaymentIncomplete    = errors.New("payment not completed")
	ErrUpstream             = errors.New("upstream service error")
)

// AppError is a classified error with a caller-facing message.
type AppError struct {
	Kind    error
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *AppError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func newAppError(kind error, format string, args ...any) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) error { return newAppError(ErrValidation, format, args...) }

func Unauthorized(format string, args ...any) error {
	return newAppError(ErrUnauthorized, format, args...)
}

func Forbidden(format string, args ...any) error { return newAppError(ErrForbidden, format, args...) }

func NotFound(format string, args ...any) error { return newAppError(ErrNotFound, format, args...) }

func Conflict(format string, args ...any) error { return newAppError(ErrConflict, format, args...) }

func ImmutableBooking(format string, args ...any) error {
	return newAppError(ErrImmutableBooking, format, args...)
}

func DecoratorUnavailable(format string, args ...any) error {
	return newAppError(ErrDecoratorUnavailable, format, args...)
}

func InvalidTransition(format string, args ...any) error {
	return newAppError(ErrInvalidTransition, format, args...)
}

func PaymentIncomplete(format string, args ...any) error {
	return newAppError(ErrPaymentIncomplete, format, args...)
}

// Upstream marks a failure of the identity verifier or payment processor.
// These are retryable by the caller.
func Upstream(cause error, format string, args ...any) error {
	e := newAppError(ErrUpstream, format, args...)
	e.Cause = cause
	return e
}

// MessageOf returns the caller-facing message of an AppError, or the error text.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
