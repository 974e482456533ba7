package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUserNotFound is returned when no user exists for an email.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned on signature mismatch or a malformed token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned when the exp claim has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrInvalidIssuer is returned when the iss claim does not match configuration.
	ErrInvalidIssuer = errors.New("invalid token issuer")
	// ErrMalformedClaims is returned when a token verifies but lacks required claims.
	ErrMalformedClaims = errors.New("malformed token claims")
	// ErrValidation is returned when required input is missing or empty.
	ErrValidation = errors.New("validation failed")
)

// PersistenceError wraps a store-layer failure with the operation and entity
// it occurred on. The cause is kept for logs and unwrapping but is never
// serialized to external callers.
type PersistenceError struct {
	Op     string
	Entity string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// NewPersistenceError wraps err with operation context.
func NewPersistenceError(op, entity string, err error) error {
	return &PersistenceError{Op: op, Entity: entity, Err: err}
}

// ErrorResponse is the standardized error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError carries an HTTP status alongside the response body.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string { return e.Message }

// NewHTTPError creates an HTTPError.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message, Code: code}
}

// ToErrorResponse converts an HTTPError to its response body.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message, Code: e.Code}
}

// IsAuthError reports whether err belongs to the authentication taxonomy.
// These are all collapsed to a single unauthorized outcome at the boundary.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrInvalidIssuer) ||
		errors.Is(err, ErrMalformedClaims)
}

// MapErrorToHTTP maps domain errors to HTTP errors. Every auth failure maps
// to the same opaque 401 so callers cannot enumerate users; the internal
// distinction survives only in logs.
func MapErrorToHTTP(err error) *HTTPError {
	var pe *PersistenceError
	switch {
	case IsAuthError(err):
		return NewHTTPError(http.StatusUnauthorized, "could not validate credentials", "UNAUTHORIZED")
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_FAILED")
	case errors.As(err, &pe):
		return NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("failed to %s %s", pe.Op, pe.Entity), "PERSISTENCE_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
