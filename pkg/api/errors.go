package api

import "fmt"

// ErrorType represents the category of an API error.
type ErrorType string

const (
	ErrorTypeServerError        ErrorType = "server_error"
	ErrorTypeInvalidRequest     ErrorType = "invalid_request"
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeUnauthenticated    ErrorType = "unauthenticated"
	ErrorTypeNotFound           ErrorType = "not_found"
	ErrorTypeConflict           ErrorType = "conflict"
)

// APIError represents a structured API error with type, param, and message.
type APIError struct {
	Type    ErrorType `json:"type"`
	Param   string    `json:"param,omitempty"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: %s (param: %s)", e.Type, e.Message, e.Param)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// ErrorResponse wraps an APIError for JSON serialization as the top-level error response.
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// NewInvalidRequestError creates an APIError for invalid request parameters.
func NewInvalidRequestError(param, message string) *APIError {
	return &APIError{
		Type:    ErrorTypeInvalidRequest,
		Param:   param,
		Message: message,
	}
}

// NewInvalidCredentialsError creates the APIError returned by the login
// endpoint. The message is identical for an unknown username and a wrong
// password so that usernames cannot be enumerated.
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Type:    ErrorTypeInvalidCredentials,
		Message: "username or password is wrong",
	}
}

// NewUnauthenticatedError creates the APIError used for every protected-route
// authentication failure. Missing, malformed, stale, and revoked tokens all
// produce this same error.
func NewUnauthenticatedError() *APIError {
	return &APIError{
		Type:    ErrorTypeUnauthenticated,
		Message: "authentication required",
	}
}

// NewNotFoundError creates an APIError for resources that cannot be found.
// Ownership mismatches use this same error: resources owned by other users
// are indistinguishable from resources that do not exist.
func NewNotFoundError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewConflictError creates an APIError for uniqueness violations.
func NewConflictError(param, message string) *APIError {
	return &APIError{
		Type:    ErrorTypeConflict,
		Param:   param,
		Message: message,
	}
}

// NewServerError creates an APIError for internal server errors.
func NewServerError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeServerError,
		Message: message,
	}
}
