package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx answer from the backend. Message is the backend's
// human readable explanation and is safe to show to the user.
type APIError struct {
	StatusCode int
	Message    string
}

func newAPIError(status int, msg string) *APIError {
	if msg == "" {
		msg = http.StatusText(status)
	}
	if msg == "" {
		msg = "backend request failed"
	}
	return &APIError{StatusCode: status, Message: msg}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Rejected reports whether the backend refused the request outright. A
// timeout or conflict answer is not a rejection: the backend may have acted.
func (e *APIError) Rejected() bool {
	switch e.StatusCode {
	case http.StatusRequestTimeout, http.StatusConflict:
		return false
	}
	return e.StatusCode >= 400 && e.StatusCode < 500
}
