package owm

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrMissingAPIKey = errors.New("missing OpenWeatherMap API key")
	ErrNotFound      = errors.New("city not found")
	ErrUnauthorized  = errors.New("invalid or missing api key")
	ErrInvalidFormat = errors.New("invalid response format")
	ErrUpstream      = errors.New("upstream error")

	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
	errCircuitOpen = errors.New("circuit breaker open")
)

// APIError is a failed OpenWeatherMap call. It unwraps to one of the
// exported sentinel errors.
type APIError struct {
	Status  int
	Code    string
	Message string
	kind    error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("owm: HTTP %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("owm: HTTP %d: %s", e.Status, http.StatusText(e.Status))
}

func (e *APIError) Unwrap() error { return e.kind }

func classifyStatus(status int) error {
	switch status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		return ErrUpstream
	}
}
