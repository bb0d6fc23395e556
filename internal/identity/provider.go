// Package identity implements the identity provider: credential storage,
// password grants, session token validation and email verification links.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/careerguide-server/internal/logger"
	"github.com/dtroode/careerguide-server/internal/model"
)

// Options tunes the provider.
type Options struct {
	VerificationTTL time.Duration
	DefaultRegion   string
	BcryptCost      int
}

// Provider is the local identity provider.
type Provider struct {
	credentials model.CredentialStore
	codes       model.VerificationCodeStore
	tokens      model.TokenManager
	logger      *logger.Logger
	opts        Options
	now         func() time.Time
}

var _ model.IdentityProvider = (*Provider)(nil)

// NewProvider creates a Provider. Zero options fall back to a 24h
// verification lifetime and the default bcrypt cost.
func NewProvider(
	credentials model.CredentialStore,
	codes model.VerificationCodeStore,
	tokens model.TokenManager,
	logger *logger.Logger,
	opts Options,
) *Provider {
	if opts.VerificationTTL <= 0 {
		opts.VerificationTTL = 24 * time.Hour
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}

	return &Provider{
		credentials: credentials,
		codes:       codes,
		tokens:      tokens,
		logger:      logger,
		opts:        opts,
		now:         time.Now,
	}
}

var (
	errInvalidLogin = model.NewProviderError(model.CodeInvalidLoginCredentials, "INVALID_LOGIN_CREDENTIALS")
	errUserNotFound = model.NewProviderError(model.CodeUserNotFound,
		"There is no user record corresponding to the provided identifier.")
	errUserDisabled = model.NewProviderError(model.CodeUserDisabled,
		"The user account has been disabled by an administrator.")
	errInvalidActionCode = model.NewProviderError(model.CodeInvalidActionCode,
		"The action code is invalid. This can happen if the code is malformed, expired, or has already been used.")
	errExpiredActionCode = model.NewProviderError(model.CodeExpiredActionCode, "The action code has expired.")
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (p *Provider) CreateCredential(ctx context.Context, params model.NewCredential) (model.Credential, error) {
	email := normalizeEmail(params.Email)
	if err := validation.Validate(email, validation.Required, is.Email); err != nil {
		return model.Credential{}, model.NewProviderError(model.CodeInvalidEmail,
			"The email address is improperly formatted.")
	}

	if len(params.Password) < MinPasswordLength {
		return model.Credential{}, model.NewProviderError(model.CodeInvalidPassword,
			fmt.Sprintf("The password must be a string with at least %d characters.", MinPasswordLength))
	}
	if len(params.Password) > MaxPasswordBytes {
		return model.Credential{}, model.NewProviderError(model.CodeInvalidPassword,
			fmt.Sprintf("The password must be at most %d bytes long.", MaxPasswordBytes))
	}

	phone, err := NormalizePhone(params.Phone, p.opts.DefaultRegion)
	if err != nil {
		return model.Credential{}, model.NewProviderError(model.CodeInvalidPhoneNumber,
			"The phone number must be a non-empty E.164 standard compliant identifier string.")
	}

	hash, err := HashPassword(params.Password, p.opts.BcryptCost)
	if err != nil {
		return model.Credential{}, fmt.Errorf("failed to hash password: %w", err)
	}

	credential, err := p.credentials.Create(ctx, model.Credential{
		UID:          uuid.New(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(params.DisplayName),
		Phone:        phone,
	})
	if errors.Is(err, model.ErrAlreadyExists) {
		return model.Credential{}, model.NewProviderError(model.CodeEmailExists,
			"The email address is already in use by another account.")
	}
	if err != nil {
		return model.Credential{}, fmt.Errorf("failed to create credential: %w", err)
	}

	p.logger.Debug("Identity provider: credential created", "uid", credential.UID)

	return credential, nil
}

func (p *Provider) DeleteCredential(ctx context.Context, uid uuid.UUID) error {
	err := p.credentials.Delete(ctx, uid)
	if errors.Is(err, model.ErrNotFound) {
		return errUserNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}

	p.logger.Debug("Identity provider: credential deleted", "uid", uid)
	return nil
}

func (p *Provider) SignInWithPassword(ctx context.Context, email, password string) (model.SignIn, error) {
	credential, err := p.credentials.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, model.ErrNotFound) {
		return model.SignIn{}, errInvalidLogin
	}
	if err != nil {
		return model.SignIn{}, fmt.Errorf("failed to get credential by email: %w", err)
	}

	if err := ComparePasswordAndHash(password, credential.PasswordHash); err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) {
			return model.SignIn{}, errInvalidLogin
		}
		return model.SignIn{}, fmt.Errorf("failed to compare password: %w", err)
	}

	if credential.Disabled {
		return model.SignIn{}, errUserDisabled
	}

	token, err := p.tokens.Generate(model.Identity{UID: credential.UID, Email: credential.Email})
	if err != nil {
		return model.SignIn{}, fmt.Errorf("failed to issue session token: %w", err)
	}

	return model.SignIn{UID: credential.UID, Email: credential.Email, Token: token}, nil
}

func (p *Provider) GetCredential(ctx context.Context, uid uuid.UUID) (model.Credential, error) {
	credential, err := p.credentials.GetByID(ctx, uid)
	if errors.Is(err, model.ErrNotFound) {
		return model.Credential{}, errUserNotFound
	}
	if err != nil {
		return model.Credential{}, fmt.Errorf("failed to get credential: %w", err)
	}
	return credential, nil
}

func (p *Provider) GetCredentialByEmail(ctx context.Context, email string) (model.Credential, error) {
	credential, err := p.credentials.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, model.ErrNotFound) {
		return model.Credential{}, errUserNotFound
	}
	if err != nil {
		return model.Credential{}, fmt.Errorf("failed to get credential by email: %w", err)
	}
	return credential, nil
}

// GenerateEmailVerificationLink issues a single-use code for email and
// returns continueURL carrying it in the oobCode query parameter.
func (p *Provider) GenerateEmailVerificationLink(ctx context.Context, email, continueURL string) (string, error) {
	link, err := url.Parse(continueURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse continue url: %w", err)
	}

	credential, err := p.GetCredentialByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	code, hash, err := newVerificationCode()
	if err != nil {
		return "", err
	}

	err = p.codes.Create(ctx, model.VerificationCode{
		ID:        uuid.New(),
		CodeHash:  hash,
		UID:       credential.UID,
		Email:     credential.Email,
		ExpiresAt: p.now().Add(p.opts.VerificationTTL),
	})
	if err != nil {
		return "", fmt.Errorf("failed to store verification code: %w", err)
	}

	q := link.Query()
	q.Set("mode", "verifyEmail")
	q.Set("oobCode", code)
	link.RawQuery = q.Encode()

	return link.String(), nil
}

// ApplyVerificationCode redeems code and marks the owning credential's
// email verified. It returns the verified email address.
func (p *Provider) ApplyVerificationCode(ctx context.Context, code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", errInvalidActionCode
	}

	vc, err := p.codes.GetByHash(ctx, hashCode(code))
	if errors.Is(err, model.ErrNotFound) {
		return "", errInvalidActionCode
	}
	if err != nil {
		return "", fmt.Errorf("failed to get verification code: %w", err)
	}

	if vc.ConsumedAt != nil {
		return "", errInvalidActionCode
	}
	if p.now().After(vc.ExpiresAt) {
		return "", errExpiredActionCode
	}

	credential, err := p.GetCredential(ctx, vc.UID)
	if err != nil {
		return "", err
	}
	if credential.Disabled {
		return "", errUserDisabled
	}

	email, err := p.codes.Redeem(ctx, vc.ID)
	if errors.Is(err, model.ErrAlreadyConsumed) {
		return "", errInvalidActionCode
	}
	if err != nil {
		return "", fmt.Errorf("failed to redeem verification code: %w", err)
	}

	p.logger.Debug("Identity provider: email verified", "uid", credential.UID)

	return email, nil
}

// VerifyToken validates a session token and confirms its subject still
// exists and is enabled.
func (p *Provider) VerifyToken(ctx context.Context, token string) (model.Identity, error) {
	identity, err := p.tokens.Parse(token)
	if err != nil {
		return model.Identity{}, fmt.Errorf("%w: %v",
			model.NewProviderError(model.CodeInvalidIDToken, "Decoding session token failed."), err)
	}

	credential, err := p.GetCredential(ctx, identity.UID)
	if err != nil {
		return model.Identity{}, err
	}
	if credential.Disabled {
		return model.Identity{}, errUserDisabled
	}

	return model.Identity{UID: credential.UID, Email: credential.Email}, nil
}
