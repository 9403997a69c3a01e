package download

import (
	"errors"
	"fmt"
	"net/http"
)

// Common download errors that can be checked with errors.Is.
var (
	// ErrNotFound indicates the media URL no longer resolves (404, 410).
	ErrNotFound = errors.New("media not found")
	// ErrForbidden indicates the media URL was rejected (401, 403), usually
	// because it expired.
	ErrForbidden = errors.New("media URL expired or forbidden")
	// ErrRateLimited indicates the media host is rate limiting requests.
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrTooLarge indicates the response body exceeds the configured limit.
	ErrTooLarge = errors.New("media exceeds maximum size")
	// ErrInvalidURL indicates the media URL is malformed or not http(s).
	ErrInvalidURL = errors.New("invalid media URL")
)

// HTTPError represents a non-success HTTP response from the media host.
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
	RequestID  string
}

func (e *HTTPError) Error() string {
	status := e.Status
	if status == "" {
		status = http.StatusText(e.StatusCode)
	}
	if e.RequestID != "" {
		return fmt.Sprintf("HTTP %d %s (request_id: %s)", e.StatusCode, status, e.RequestID)
	}
	return fmt.Sprintf("HTTP %d %s", e.StatusCode, status)
}

// Is implements errors.Is for sentinel error matching.
func (e *HTTPError) Is(target error) bool {
	switch e.StatusCode {
	case http.StatusNotFound, http.StatusGone:
		return target == ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return target == ErrForbidden
	case http.StatusTooManyRequests:
		return target == ErrRateLimited
	}
	return false
}

// NetworkError represents a network-level failure.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
