package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrNotFound matches any HTTPError carrying a 404 status.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork matches requests that never produced a response.
	ErrNetwork = errors.New("network failure")

	// ErrValidationGap matches client-side constraint violations.
	ErrValidationGap = errors.New("validation failed")

	// ErrUnexpectedPayload is returned when a successful response body
	// cannot be decoded into the requested shape.
	ErrUnexpectedPayload = errors.New("unexpected response payload")

	// ErrInvalidID is returned for non-positive record ids.
	ErrInvalidID = errors.New("invalid id")
)

// HTTPError is a non-2xx response from the REST backend.
type HTTPError struct {
	Status  int
	Message string
	// Body is the parsed JSON body, the raw text when it was not JSON, or nil.
	Body interface{}
}

// Error implements error interface
func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *HTTPError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// NewHTTPError builds an HTTPError, choosing the message by priority:
// the body's "message" field, then the raw text, then the status text.
func NewHTTPError(status int, body interface{}, raw string) *HTTPError {
	msg := ""
	if m, ok := body.(map[string]interface{}); ok {
		if s, ok := m["message"].(string); ok {
			msg = s
		}
	}
	if msg == "" {
		msg = raw
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &HTTPError{Status: status, Message: msg, Body: body}
}

// NetworkError is a request that never completed.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

// Error implements error interface
func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap implements errors.Unwrap interface
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrNetwork) match.
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// ValidationGap is a browser-style constraint violation caught before any request.
// It is shown as a blocking alert rather than a notification.
type ValidationGap struct {
	Field   string
	Message string
}

// Error implements error interface
func (e *ValidationGap) Error() string {
	return e.Message
}

// Is lets errors.Is(err, ErrValidationGap) match.
func (e *ValidationGap) Is(target error) bool {
	return target == ErrValidationGap
}

// NewValidationGap creates a ValidationGap for field.
func NewValidationGap(field, message string) *ValidationGap {
	return &ValidationGap{Field: field, Message: message}
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Status returns the HTTP status carried by err, or 0.
func Status(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return 0
}

// Message returns the user-facing text for err, or fallback when err carries none.
func Message(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.Message != "" {
		return httpErr.Message
	}
	var gap *ValidationGap
	if errors.As(err, &gap) && gap.Message != "" {
		return gap.Message
	}
	if errors.Is(err, ErrNetwork) {
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
