package client

import (
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the upstream API, carrying the
// status code and a remediation hint matched to the failure class.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Message is the upstream error message, or the status text when the
	// body carried none.
	Message string

	// Suggestion is a remediation hint for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether the error is a 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsAuthorization reports whether the error is a 403.
func (e *APIError) IsAuthorization() bool {
	return e.StatusCode == http.StatusForbidden
}

// newAPIError builds an APIError with a status-specific suggestion.
func newAPIError(statusCode int, message string) *APIError {
	e := &APIError{StatusCode: statusCode, Message: message}
	switch statusCode {
	case http.StatusBadRequest:
		e.Suggestion = "Check the request parameters and try again."
	case http.StatusForbidden:
		e.Suggestion = "Check that you have the correct role (Den Leader, Scout Master, etc.) for this unit."
	case http.StatusNotFound:
		e.Suggestion = "Check the ID and try again."
	case http.StatusTooManyRequests:
		e.Suggestion = "Wait before retrying."
	}
	return e
}
