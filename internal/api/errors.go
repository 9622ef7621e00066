package api

import (
	"errors"
	"fmt"
)

var (
	ErrTimeout   = errors.New("request timed out")
	ErrMalformed = errors.New("malformed response")
	// ErrNotConfigured is returned before any request when the endpoint is a placeholder.
	ErrNotConfigured = errors.New("endpoint is not configured")
)

// APIError is a response that decoded fine but reported ok=false.
type APIError struct {
	Message string
}

func (e *APIError) Error() string { return e.Message }

type StatusError struct {
	Code int
}

func (e *StatusError) Error() string { return fmt.Sprintf("unexpected HTTP status %d", e.Code) }

type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network: " + e.Err.Error() }

func (e *NetworkError) Unwrap() error { return e.Err }

// Kind is a short label for logs.
func Kind(err error) string {
	var apiErr *APIError
	var statusErr *StatusError
	var netErr *NetworkError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrNotConfigured):
		return "not_configured"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	case errors.As(err, &apiErr):
		return "api"
	case errors.As(err, &statusErr):
		return "status"
	case errors.As(err, &netErr):
		return "network"
	default:
		return "unknown"
	}
}
