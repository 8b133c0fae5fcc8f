package genai

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse indicates the model returned no usable text or media.
var ErrEmptyResponse = errors.New("empty response from model")

// TransportError represents a network or service-level failure from the
// remote model service. Transport errors are the only class the envelope
// retries in strict mode.
type TransportError struct {
	StatusCode int
	Message    string
	Retryable  bool
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("transport error: %s (status: %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("transport error: %s", e.Message)
}

// IsRetryable returns true if the error is worth another attempt.
func (e *TransportError) IsRetryable() bool {
	return e.Retryable
}

// NewTransportError creates a transport error with explicit retryability.
func NewTransportError(statusCode int, message string, retryable bool) *TransportError {
	return &TransportError{
		StatusCode: statusCode,
		Message:    message,
		Retryable:  retryable,
	}
}

// MalformedJSONError indicates the response text could not be parsed as JSON
// at all.
type MalformedJSONError struct {
	Cause error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("malformed JSON in model response: %v", e.Cause)
}

func (e *MalformedJSONError) Unwrap() error {
	return e.Cause
}

// SchemaValidationError describes the first structural violation found when
// validating decoded JSON against a schema descriptor.
type SchemaValidationError struct {
	Path   string
	Reason string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("schema validation failed at %q: %s", e.Path, e.Reason)
}

// RetriesExhausted wraps the final attempt's error after the envelope has
// used all attempts. Unwrap exposes the original failure so errors.Is and
// errors.As still match it.
type RetriesExhausted struct {
	Attempts int
	Last     error
}

func (e *RetriesExhausted) Error() string {
	return fmt.Sprintf("all %d attempts failed: %v", e.Attempts, e.Last)
}

func (e *RetriesExhausted) Unwrap() error {
	return e.Last
}
