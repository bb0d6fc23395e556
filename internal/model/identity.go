package model

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Structured error codes reported by the identity provider.
const (
	CodeEmailExists             = "auth/email-already-exists"
	CodeInvalidEmail            = "auth/invalid-email"
	CodeInvalidPassword         = "auth/invalid-password"
	CodeInvalidPhoneNumber      = "auth/invalid-phone-number"
	CodeInvalidLoginCredentials = "auth/invalid-login-credentials"
	CodeExpiredActionCode       = "auth/expired-action-code"
	CodeInvalidActionCode       = "auth/invalid-action-code"
	CodeUserDisabled            = "auth/user-disabled"
	CodeUserNotFound            = "auth/user-not-found"
	CodeInvalidIDToken          = "auth/invalid-id-token"
)

// IdentityProvider is the service of record for credentials, password
// verification, session tokens and email verification links.
type IdentityProvider interface {
	CreateCredential(ctx context.Context, params NewCredential) (Credential, error)
	DeleteCredential(ctx context.Context, uid uuid.UUID) error
	SignInWithPassword(ctx context.Context, email, password string) (SignIn, error)
	GetCredential(ctx context.Context, uid uuid.UUID) (Credential, error)
	GetCredentialByEmail(ctx context.Context, email string) (Credential, error)
	GenerateEmailVerificationLink(ctx context.Context, email, continueURL string) (string, error)
	ApplyVerificationCode(ctx context.Context, code string) (email string, err error)
	VerifyToken(ctx context.Context, token string) (Identity, error)
}

// SignIn is the result of a password grant.
type SignIn struct {
	UID   uuid.UUID
	Email string
	Token string
}

// Identity is the decoded subject of a session token.
type Identity struct {
	UID   uuid.UUID
	Email string
}

// ProviderError is a structured error reported by the identity provider.
type ProviderError struct {
	Code    string
	Message string
}

// NewProviderError creates a ProviderError with the given code and message.
func NewProviderError(code, message string) *ProviderError {
	return &ProviderError{Code: code, Message: message}
}

func (e *ProviderError) Error() string {
	return e.Message
}

// ProviderErrorCode extracts the provider code from err, if any.
func ProviderErrorCode(err error) (string, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Code, true
	}
	return "", false
}
