package adapter

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels matched by [*ResponseError] according to the response status.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrRateLimited         = errors.New("rate limited")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnexpectedResponse  = errors.New("unexpected response")

	// ErrTransport wraps failures to reach the server at all.
	ErrTransport = errors.New("transport error")
)

// ResponseError is a non-2xx answer from the API, decoded from its error
// envelope when there is one.
type ResponseError struct {
	Status  int
	Code    string
	Message string

	// Fields holds per-field validation messages.
	Fields map[string]string
}

func (e *ResponseError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("http %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

// Is matches the sentinel for the response status.
func (e *ResponseError) Is(target error) bool {
	return statusSentinel(e.Status) == target
}

// Retryable reports whether repeating the same request may succeed.
func (e *ResponseError) Retryable() bool {
	switch e.Status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func statusSentinel(status int) error {
	switch {
	case status == http.StatusBadRequest:
		return ErrBadRequest
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusForbidden:
		return ErrForbidden
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusConflict:
		return ErrConflict
	case status == http.StatusTooManyRequests:
		return ErrRateLimited
	case status >= http.StatusInternalServerError:
		return ErrInternalServerError
	default:
		return ErrUnexpectedResponse
	}
}
