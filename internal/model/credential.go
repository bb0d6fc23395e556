package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CredentialStore persists identity provider accounts.
type CredentialStore interface {
	Create(ctx context.Context, credential Credential) (Credential, error)
	GetByID(ctx context.Context, uid uuid.UUID) (Credential, error)
	GetByEmail(ctx context.Context, email string) (Credential, error)
	Delete(ctx context.Context, uid uuid.UUID) error
}

// Credential is an account owned by the identity provider.
type Credential struct {
	UID           uuid.UUID
	Email         string
	PasswordHash  string
	DisplayName   string
	Phone         string
	EmailVerified bool
	Disabled      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewCredential contains the fields accepted when creating a credential.
type NewCredential struct {
	Email       string
	Password    string
	DisplayName string
	Phone       string
}

// VerificationCodeStore persists out-of-band email verification codes.
type VerificationCodeStore interface {
	Create(ctx context.Context, code VerificationCode) error
	GetByHash(ctx context.Context, codeHash []byte) (VerificationCode, error)
	// Redeem marks the code consumed and the owning credential verified in
	// a single statement. It returns ErrAlreadyConsumed if the code was
	// redeemed concurrently.
	Redeem(ctx context.Context, id uuid.UUID) (email string, err error)
}

// VerificationCode is a single-use email verification challenge.
type VerificationCode struct {
	ID         uuid.UUID
	CodeHash   []byte
	UID        uuid.UUID
	Email      string
	ExpiresAt  time.Time
	ConsumedAt *time.Time
	CreatedAt  time.Time
}
