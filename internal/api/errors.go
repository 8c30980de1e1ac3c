package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/calculator-api/internal/api/shared"
	"github.com/phrazzld/calculator-api/internal/domain/calc"
	"github.com/phrazzld/calculator-api/internal/session"
)

// ErrInvalidSessionID is returned when a path parameter is not a UUID.
var ErrInvalidSessionID = errors.New("invalid session id")

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	// Not found errors
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound

	// Gone: the session existed but has been closed
	case errors.Is(err, session.ErrSessionClosed):
		return http.StatusGone

	// Capacity errors
	case errors.Is(err, session.ErrTooManySessions):
		return http.StatusServiceUnavailable
	case errors.Is(err, session.ErrMailboxFull):
		return http.StatusTooManyRequests

	// Bad request errors
	case errors.Is(err, ErrInvalidSessionID),
		errors.Is(err, shared.ErrEmptyBody),
		errors.Is(err, calc.ErrInvalidAction),
		errors.Is(err, calc.ErrInvalidDigit),
		errors.Is(err, calc.ErrInvalidOperator),
		errors.Is(err, calc.ErrUnknownKey),
		errors.Is(err, calc.ErrInvalidState),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	// The client gave up or the request ran out of time
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return "Session not found"
	case errors.Is(err, session.ErrSessionClosed):
		return "Session is closed"
	case errors.Is(err, session.ErrTooManySessions):
		return "Too many active sessions, try again later"
	case errors.Is(err, session.ErrMailboxFull):
		return "Too many pending actions for this session"
	case errors.Is(err, ErrInvalidSessionID):
		return "Invalid session ID"
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.Is(err, calc.ErrInvalidDigit):
		return "Digit must be between 0 and 9"
	case errors.Is(err, calc.ErrInvalidOperator):
		return "Operator must be one of + - * /"
	case errors.Is(err, calc.ErrUnknownKey):
		return "Unknown key"
	case errors.Is(err, calc.ErrInvalidAction):
		return "Invalid action"
	case errors.Is(err, calc.ErrInvalidState):
		return "Invalid calculator state"
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(err)
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return "Request cancelled"
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message naming the first failing field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	first := validationErrs[0]
	return fmt.Sprintf("Invalid %s: %s", first.Field(), getValidationTagMessage(first.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "gte":
		return "too small"
	case "max", "lte":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status code and safe message for err. A
// non-empty defaultMsg replaces the derived message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	msg := defaultMsg
	if msg == "" {
		msg = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, msg, err)
}
