package endpoint

import (
	"errors"
	"fmt"
)

// Common errors returned by the endpoint.
var (
	// ErrUnauthorized is returned when the developer ID or authentication
	// key are rejected during session creation.
	ErrUnauthorized = errors.New("authorization credentials are invalid")

	// ErrUnavailable is returned when the Hi-Rez API is in emergency mode
	// and responds with 503 on all methods.
	ErrUnavailable = errors.New("hi-rez api is currently unavailable")

	// ErrLimitReached is returned when the daily request or session quota
	// is exhausted and the call was blocked before reaching the network.
	ErrLimitReached = errors.New("daily request limit reached")

	// ErrRetryExhausted is returned when all retry attempts for connection
	// problems are used up.
	ErrRetryExhausted = errors.New("retry attempts exhausted")
)

// HTTPError represents an unhandled HTTP error response from the API.
type HTTPError struct {
	StatusCode int
	Method     string
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("hi-rez %s error (status %d): %s: %v",
			e.Method, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("hi-rez %s error (status %d): %s",
		e.Method, e.StatusCode, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *HTTPError) Unwrap() error {
	return e.Err
}

// classify maps an error to an outcome label for metrics and logs.
func classify(err error) string {
	var httpErr *HTTPError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	case errors.Is(err, ErrLimitReached):
		return "limit_reached"
	case errors.Is(err, ErrRetryExhausted):
		return "retry_exhausted"
	case errors.As(err, &httpErr):
		return "http_error"
	default:
		return "network"
	}
}
