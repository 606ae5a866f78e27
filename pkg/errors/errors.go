package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios. The AI_* family covers the
// generation pipeline: unavailable means the credential is not configured,
// network means the outbound call failed, parse means the response text was
// not valid JSON, schema means the JSON did not have the required shape.
var (
	ErrNotFound         = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrValidation       = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInvalidWeights   = New("INVALID_WEIGHTS", http.StatusBadRequest, "criterion weights must sum to 100")
	ErrInternal         = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrAIUnavailable    = New("AI_UNAVAILABLE", http.StatusServiceUnavailable, "generation credential not configured")
	ErrAINetwork        = New("AI_NETWORK", http.StatusBadGateway, "generation service unreachable")
	ErrAIParse          = New("AI_PARSE", http.StatusBadGateway, "generation response is not valid JSON")
	ErrAISchema         = New("AI_SCHEMA", http.StatusBadGateway, "generation response has an invalid shape")
	ErrStoreUnavailable = New("STORE_UNAVAILABLE", http.StatusServiceUnavailable, "rubric store unavailable")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// IsCode reports whether the error carries the given code.
func IsCode(err error, code string) bool {
	e := FromError(err)
	return e != nil && e.Code == code
}
