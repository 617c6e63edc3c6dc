package models

import (
	"errors"
	"strings"
)

// Booking workflow errors
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCPF         = errors.New("invalid CPF")
	ErrIdentityIncomplete = errors.New("identity fields missing")
	ErrUnknownCity        = errors.New("city has no service point")
	ErrInvalidDate        = errors.New("invalid date")
	ErrDateInPast         = errors.New("date is earlier than today")
	ErrScheduleLocked     = errors.New("schedule is locked until the city is resolved")
	ErrSlotUnavailable    = errors.New("selected time is not an available slot")
	ErrConsentRequired    = errors.New("terms must be accepted before submitting")
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	ErrWorkflowFinished   = errors.New("workflow already reached a terminal state")
	ErrNothingToRetry     = errors.New("workflow is not in a failed state")
	ErrWorkflowClosed     = errors.New("workflow was closed")
	ErrWorkflowNotFound   = errors.New("workflow not found")
)

// Lookup and report errors
var (
	ErrBookingNotFound     = errors.New("no booking found for this CPF")
	ErrLookupUnavailable   = errors.New("booking lookup service unavailable")
	ErrInvalidReportPeriod = errors.New("invalid report period")
)

// FieldError is inline feedback for one form field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries field feedback that blocked an operation. Cause,
// when set, is the workflow error the feedback explains.
type ValidationError struct {
	Fields []FieldError `json:"errors"`
	Cause  error        `json:"-"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is match both ErrValidation and the cause
func (e *ValidationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Cause}
}

// WithCause attaches the workflow error explained by the field feedback
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.Cause = cause
	return e
}

// NewValidationError builds a single-field validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}
