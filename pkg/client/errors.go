package client

import "fmt"

// ValidationError is raised before a request is sent when an input is
// rejected locally.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// APIError represents a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// AuthError means the session is missing or was rejected. Stored
// credentials have already been cleared when it is returned.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return "authentication required: " + e.Message
}
