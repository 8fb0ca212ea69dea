package sfcore

import (
	"fmt"
	"net/http"
)

// NotAuthenticatedError is returned when an authenticated operation is
// attempted before Login has populated the session.
type NotAuthenticatedError struct {
	Operation string
}

func (e *NotAuthenticatedError) Error() string {
	if e.Operation == "" {
		return "not authenticated: call Login first"
	}
	return fmt.Sprintf("not authenticated: call Login before %s", e.Operation)
}

// AuthError is returned when the login token exchange is rejected.
type AuthError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed with status %d: %s", e.StatusCode, e.Message)
}

// APIError is returned for any response the classifier does not recognize
// as success. It carries the raw body and full request diagnostics so the
// caller can inspect what the platform actually said.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
	Method     string
	URL        string
	Header     http.Header
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: %s %s returned %d: %s", e.Method, e.URL, e.StatusCode, e.Message)
}
