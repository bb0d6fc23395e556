// Package errors defines the error taxonomy exposed to API clients.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an APIError.
type Kind string

const (
	KindValidation       Kind = "validation"
	KindIdentityProvider Kind = "identity_provider"
	KindProfileNotFound  Kind = "profile_not_found"
	KindNotFound         Kind = "not_found"
	KindAuthorization    Kind = "authorization"
	KindInfrastructure   Kind = "infrastructure"
)

// APIError is an error with a client-facing message and HTTP status.
// Cause carries the underlying failure for server-side logs only.
type APIError struct {
	Kind       Kind
	HTTPStatus int
	Message    string
	Cause      error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// As returns the APIError in err's chain.
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func NewErrValidation(message string) *APIError {
	return &APIError{Kind: KindValidation, HTTPStatus: http.StatusBadRequest, Message: message}
}

func NewErrMissingBody() *APIError {
	return NewErrValidation("Request body is missing")
}

// NewErrProvider wraps a structured identity provider error.
func NewErrProvider(status int, message string, cause error) *APIError {
	return &APIError{Kind: KindIdentityProvider, HTTPStatus: status, Message: message, Cause: cause}
}

func NewErrInvalidCredentials(cause error) *APIError {
	return NewErrProvider(http.StatusUnauthorized, "Invalid email or password", cause)
}

func NewErrEmailNotVerified() *APIError {
	return NewErrProvider(http.StatusForbidden, "Please verify your email before logging in.", nil)
}

func NewErrProfileNotFound() *APIError {
	return &APIError{Kind: KindProfileNotFound, HTTPStatus: http.StatusNotFound, Message: "User profile not found"}
}

func NewErrNotFound(message string) *APIError {
	return &APIError{Kind: KindNotFound, HTTPStatus: http.StatusNotFound, Message: message}
}

func NewErrMissingAuthorizationToken() *APIError {
	return &APIError{Kind: KindAuthorization, HTTPStatus: http.StatusUnauthorized, Message: "No token"}
}

func NewErrInvalidAuthorizationToken(cause error) *APIError {
	return &APIError{Kind: KindAuthorization, HTTPStatus: http.StatusUnauthorized, Message: "Invalid token", Cause: cause}
}

func NewErrForbidden() *APIError {
	return &APIError{Kind: KindAuthorization, HTTPStatus: http.StatusForbidden, Message: "Unauthorized"}
}

// NewErrInfrastructure reports an unexpected dependency failure. Only the
// message reaches production clients.
func NewErrInfrastructure(message string, cause error) *APIError {
	return &APIError{Kind: KindInfrastructure, HTTPStatus: http.StatusInternalServerError, Message: message, Cause: cause}
}
