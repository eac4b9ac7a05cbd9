// Package errors provides error types with actionable suggestions for the
// nexwatch application. Errors carry contextual details to help users resolve
// issues quickly.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Common sentinel errors for use with errors.Is().
var (
	// ErrConfig indicates a configuration error.
	ErrConfig = errors.New("configuration error")
	// ErrAPI indicates a Nexus Mods API error.
	ErrAPI = errors.New("api error")
	// ErrNetwork indicates a network-related error.
	ErrNetwork = errors.New("network error")
	// ErrRateLimit indicates the API rate limit was exhausted.
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrState indicates a state file error.
	ErrState = errors.New("state error")
	// ErrNotify indicates a notification delivery failure.
	ErrNotify = errors.New("notification error")
	// ErrManifest indicates a manifest parse or validation error.
	ErrManifest = errors.New("manifest error")
	// ErrTimeout indicates a timeout occurred.
	ErrTimeout = errors.New("timeout error")
	// ErrNotFound indicates a resource was not found.
	ErrNotFound = errors.New("not found")
)

// WatchError is the base error type for nexwatch errors.
// It wraps an underlying error and provides additional context.
type WatchError struct {
	// Kind is the category of error (e.g., ErrAPI, ErrConfig).
	Kind error
	// Message is the human-readable error message.
	Message string
	// Suggestion provides actionable advice for resolving the error.
	Suggestion string
	// Cause is the underlying error that caused this error.
	Cause error
	// Details provides additional context (e.g., endpoint, file path).
	Details map[string]string
}

// Error implements the error interface.
func (e *WatchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *WatchError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return e.Kind
}

// Is reports whether any error in err's chain matches the target.
func (e *WatchError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

// Format returns a formatted error message with suggestions.
func (e *WatchError) Format() string {
	var sb strings.Builder

	sb.WriteString("Error: ")
	sb.WriteString(e.Error())
	sb.WriteString("\n")

	if len(e.Details) > 0 {
		sb.WriteString("\nDetails:\n")
		for k, v := range e.Details {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", k, v))
		}
	}

	if e.Suggestion != "" {
		sb.WriteString("\nSuggestion: ")
		sb.WriteString(e.Suggestion)
		sb.WriteString("\n")
	}

	return sb.String()
}

// WithDetails adds details to the error.
func (e *WatchError) WithDetails(key, value string) *WatchError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying cause of the error.
func (e *WatchError) WithCause(cause error) *WatchError {
	e.Cause = cause
	return e
}

// New creates a new WatchError with the given kind and message.
func New(kind error, message string) *WatchError {
	return &WatchError{
		Kind:    kind,
		Message: message,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(err error, kind error, message string) *WatchError {
	return &WatchError{
		Kind:    kind,
		Message: message,
		Cause:   err,
	}
}

// WithSuggestion creates a new error with a suggestion.
func WithSuggestion(kind error, message, suggestion string) *WatchError {
	return &WatchError{
		Kind:       kind,
		Message:    message,
		Suggestion: suggestion,
	}
}
