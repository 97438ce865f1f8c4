// Package agent provides the AI agent orchestration loop.
// This file contains error classification and handling.

package agent

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// RetryClass indicates whether an error should be retried.
type RetryClass string

const (
	RetryClassRetryable    RetryClass = "retryable"     // Definitely retry
	RetryClassMaybe        RetryClass = "maybe"         // Retry with caution (limited attempts)
	RetryClassNonRetryable RetryClass = "non_retryable" // Never retry
)

// ProviderError wraps completion-provider failures with classification metadata.
// Provider failures are fatal to the session: the loop cannot proceed without
// a working reasoning capability.
type ProviderError struct {
	Err         error
	Class       RetryClass
	HTTPStatus  int    // HTTP status code if applicable
	RetryAfter  string // Retry-After header value if present
	IsRateLimit bool
	IsTimeout   bool
	IsNetwork   bool
	IsAuth      bool
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ai provider unavailable: %v", e.Err)
	}
	return fmt.Sprintf("ai provider unavailable (%s)", e.Class)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ClassifyProviderError classifies an error from a completion-provider call.
func ClassifyProviderError(err error) RetryClass {
	if err == nil {
		return RetryClassNonRetryable
	}

	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Class
	}

	errStr := strings.ToLower(err.Error())

	// Rate limit errors (429) - retryable, respect Retry-After
	if strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") {
		return RetryClassRetryable
	}

	// Server errors (5xx) - retryable
	if strings.Contains(errStr, "500") ||
		strings.Contains(errStr, "502") ||
		strings.Contains(errStr, "503") ||
		strings.Contains(errStr, "504") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "bad gateway") ||
		strings.Contains(errStr, "service unavailable") ||
		strings.Contains(errStr, "gateway timeout") {
		return RetryClassRetryable
	}

	// Network/timeout errors - retryable
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "network") ||
		strings.Contains(errStr, "temporary failure") {
		return RetryClassRetryable
	}

	// Context deadline exceeded - maybe (limited retries)
	if strings.Contains(errStr, "deadline exceeded") {
		return RetryClassMaybe
	}

	// Authentication errors (401, 403) - non-retryable
	if strings.Contains(errStr, "401") ||
		strings.Contains(errStr, "403") ||
		strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "forbidden") ||
		strings.Contains(errStr, "invalid api key") ||
		strings.Contains(errStr, "authentication failed") {
		return RetryClassNonRetryable
	}

	// Bad request (400) / quota (402) - non-retryable
	if strings.Contains(errStr, "400") ||
		strings.Contains(errStr, "bad request") ||
		strings.Contains(errStr, "invalid request") ||
		strings.Contains(errStr, "402") ||
		strings.Contains(errStr, "quota") ||
		strings.Contains(errStr, "billing") {
		return RetryClassNonRetryable
	}

	// Default: non-retryable for unknown errors
	return RetryClassNonRetryable
}

// WrapProviderError wraps a completion-provider error with classification metadata.
func WrapProviderError(err error, httpStatus int, retryAfter string) error {
	if err == nil {
		return nil
	}

	return &ProviderError{
		Err:         err,
		Class:       ClassifyProviderError(err),
		HTTPStatus:  httpStatus,
		RetryAfter:  retryAfter,
		IsRateLimit: httpStatus == http.StatusTooManyRequests,
		IsTimeout:   httpStatus == http.StatusGatewayTimeout || httpStatus == http.StatusRequestTimeout,
		IsNetwork:   httpStatus == 0 || httpStatus >= 500,
		IsAuth:      httpStatus == http.StatusUnauthorized || httpStatus == http.StatusForbidden,
	}
}

// ExtractRetryAfter extracts the Retry-After header value from an error.
// Returns 0 if not found or invalid.
func ExtractRetryAfter(err error) time.Duration {
	var provErr *ProviderError
	if errors.As(err, &provErr) && provErr.RetryAfter != "" {
		var seconds int
		if _, err := fmt.Sscanf(provErr.RetryAfter, "%d", &seconds); err == nil {
			return time.Duration(seconds) * time.Second
		}
		if t, err := time.Parse(time.RFC1123, provErr.RetryAfter); err == nil {
			now := time.Now()
			if t.After(now) {
				return t.Sub(now)
			}
		}
	}

	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "retry after") {
		var seconds int
		if _, err := fmt.Sscanf(errStr, "retry after %d", &seconds); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}

	return 0
}

// RetryExhaustedError indicates that all retry attempts have been exhausted.
type RetryExhaustedError struct {
	Err         error
	Attempts    int
	MaxAttempts int
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("retries exhausted after %d attempts: %v", e.Attempts, e.Err)
}

func (e *RetryExhaustedError) Unwrap() error {
	return e.Err
}

// IsRetryExhausted checks if an error is a RetryExhaustedError.
func IsRetryExhausted(err error) bool {
	var retryExhausted *RetryExhaustedError
	return errors.As(err, &retryExhausted)
}

// ToolValidationError indicates that tool arguments failed JSON schema validation.
// Validation failures are recovered locally: they become a failed ToolResult
// turn so the model can self-correct, never a session failure.
type ToolValidationError struct {
	ToolName string
	Errors   []string
}

func (e *ToolValidationError) Error() string {
	return fmt.Sprintf("tool %s validation failed: %s", e.ToolName, strings.Join(e.Errors, "; "))
}

// MalformedResponseError indicates the provider returned a response whose
// tool-call payload could not be interpreted. Fatal to the session.
type MalformedResponseError struct {
	Detail string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed ai response: %s", e.Detail)
}

// OperatorTerminatedError records that the operator quit at a pause point.
// It is expected control flow, not a defect; the session reports it as the
// Failed reason with the accumulated analysis preserved.
type OperatorTerminatedError struct {
	Reason string
}

func (e *OperatorTerminatedError) Error() string {
	if e.Reason == "" {
		return "session terminated by operator"
	}
	return fmt.Sprintf("session terminated by operator: %s", e.Reason)
}

// SessionStateError indicates an operation was attempted in the wrong
// session state (e.g. resuming a session that is not paused).
type SessionStateError struct {
	Op    string
	State Status
}

func (e *SessionStateError) Error() string {
	return fmt.Sprintf("%s not allowed in session state %q", e.Op, e.State)
}
