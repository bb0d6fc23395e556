package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apiErrors "github.com/dtroode/careerguide-server/internal/errors"
	"github.com/dtroode/careerguide-server/internal/identity"
	"github.com/dtroode/careerguide-server/internal/logger"
	"github.com/dtroode/careerguide-server/internal/model"
)

var tracer = otel.Tracer("careerguide/service")

const (
	msgRegistrationFailed = "Registration failed"
	msgLoginFailed        = "Login failed. Please try again."
	msgVerificationFailed = "Email verification failed."
	noteMailFailed        = "Email failed to send. Contact support."
)

var verificationMessages = map[string]string{
	model.CodeExpiredActionCode: "Verification link has expired. Please request a new one.",
	model.CodeInvalidActionCode: "Invalid or already used verification link.",
	model.CodeUserDisabled:      "This account has been disabled.",
	model.CodeUserNotFound:      "No account found for this email.",
}

// AuthOptions configures the account workflows.
type AuthOptions struct {
	// FrontendURL is the base of the confirmation landing page.
	FrontendURL string
	// ExposeVerificationLink returns the raw link in registration results.
	ExposeVerificationLink bool
	// Links re-signs blob URLs of the profile returned on login.
	Links *LinkSigner
}

// Auth implements registration, login and email confirmation.
type Auth struct {
	provider model.IdentityProvider
	profiles model.ProfileStore
	mailer   model.VerificationMailer
	sync     *VerificationSync
	logger   *logger.Logger
	opts     AuthOptions
}

func NewAuth(
	provider model.IdentityProvider,
	profiles model.ProfileStore,
	mailer model.VerificationMailer,
	sync *VerificationSync,
	logger *logger.Logger,
	opts AuthOptions,
) *Auth {
	return &Auth{
		provider: provider,
		profiles: profiles,
		mailer:   mailer,
		sync:     sync,
		logger:   logger,
		opts:     opts,
	}
}

// RegisterInput is the registration request.
type RegisterInput struct {
	Email           string
	Password        string
	FullName        string
	Role            string
	Phone           string
	InstitutionName string
}

func (in RegisterInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Password, validation.Required),
		validation.Field(&in.FullName, validation.Required),
		validation.Field(&in.Role, validation.Required),
	)
	if err != nil {
		return apiErrors.NewErrValidation("Email, password, fullName, and role are required")
	}

	err = validation.Validate(in.Password, validation.RuneLength(identity.MinPasswordLength, 0))
	if err != nil {
		return apiErrors.NewErrValidation(
			fmt.Sprintf("Password must be at least %d characters", identity.MinPasswordLength))
	}
	if err := validation.Validate(in.Password, validation.Length(0, identity.MaxPasswordBytes)); err != nil {
		return apiErrors.NewErrValidation(
			fmt.Sprintf("Password must be at most %d bytes", identity.MaxPasswordBytes))
	}

	return nil
}

// RegisterResult is the outcome of a successful registration.
type RegisterResult struct {
	UID       uuid.UUID
	Role      model.Role
	EmailSent bool
	Note      string
	// VerificationLink is set only when AuthOptions.ExposeVerificationLink is on.
	VerificationLink string
}

// Register creates the credential and the profile, then sends the
// verification mail. Mail failures are reported in the result.
func (a *Auth) Register(ctx context.Context, in RegisterInput) (res RegisterResult, err error) {
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Role = strings.TrimSpace(in.Role)
	if err := in.Validate(); err != nil {
		return RegisterResult{}, err
	}

	ctx, span := tracer.Start(ctx, "auth.Register")
	defer func() { endSpan(span, err) }()

	a.logger.Debug("Auth service: starting registration",
		"email", in.Email,
		"role", in.Role)

	credential, err := a.provider.CreateCredential(ctx, model.NewCredential{
		Email:       in.Email,
		Password:    in.Password,
		DisplayName: in.FullName,
		Phone:       in.Phone,
	})
	if err != nil {
		var pe *model.ProviderError
		if errors.As(err, &pe) {
			a.logger.Info("Auth service: credential rejected",
				"email", in.Email,
				"code", pe.Code)
			return RegisterResult{}, apiErrors.NewErrProvider(http.StatusBadRequest, pe.Message, err)
		}
		a.logger.Error("Auth service: failed to create credential",
			"email", in.Email,
			"error", err.Error())
		return RegisterResult{}, apiErrors.NewErrInfrastructure(msgRegistrationFailed, err)
	}
	span.SetAttributes(attribute.String("uid", credential.UID.String()))

	role := model.Role(in.Role)
	_, err = a.profiles.Create(ctx, model.Profile{
		UID:             credential.UID,
		Email:           credential.Email,
		FullName:        in.FullName,
		Role:            role,
		Phone:           credential.Phone,
		InstitutionName: strings.TrimSpace(in.InstitutionName),
	})
	if err != nil {
		a.logger.Error("Auth service: failed to create profile",
			"uid", credential.UID,
			"error", err.Error())
		a.deleteOrphanedCredential(ctx, credential.UID)
		return RegisterResult{}, apiErrors.NewErrInfrastructure(msgRegistrationFailed,
			fmt.Errorf("failed to create profile: %w", err))
	}

	res = RegisterResult{UID: credential.UID, Role: role}

	link, err := a.provider.GenerateEmailVerificationLink(ctx, credential.Email, a.continueURL(credential.Email, in.Role))
	if err != nil {
		a.logger.Error("Auth service: failed to generate verification link",
			"uid", credential.UID,
			"error", err.Error())
		res.Note = noteMailFailed
		return res, nil
	}

	mail := a.mailer.SendVerification(ctx, credential.Email, link, in.FullName, role)
	res.EmailSent = mail.Sent
	if !mail.Sent {
		res.Note = noteMailFailed
	}
	if a.opts.ExposeVerificationLink {
		res.VerificationLink = link
	}

	a.logger.Info("Auth service: registration completed",
		"uid", credential.UID,
		"email_sent", mail.Sent)

	return res, nil
}

// deleteOrphanedCredential removes a credential whose profile could not be
// created. Failure leaves an orphan behind, which is logged for cleanup.
func (a *Auth) deleteOrphanedCredential(ctx context.Context, uid uuid.UUID) {
	if err := a.provider.DeleteCredential(ctx, uid); err != nil {
		a.logger.Error("Auth service: orphaned credential left behind",
			"uid", uid,
			"error", err.Error())
		return
	}
	a.logger.Info("Auth service: credential rolled back", "uid", uid)
}

func (a *Auth) continueURL(email, role string) string {
	q := url.Values{}
	q.Set("email", email)
	q.Set("role", role)
	return strings.TrimRight(a.opts.FrontendURL, "/") + "/verify-email?" + q.Encode()
}

// LoginInput is the password login request.
type LoginInput struct {
	Email    string
	Password string
}

func (in LoginInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Password, validation.Required),
	)
	if err != nil {
		return apiErrors.NewErrValidation("Email and password are required")
	}
	return nil
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Token   string
	Profile model.Profile
}

// Login exchanges the password for a session token. The token is only
// returned for accounts whose email is verified.
func (a *Auth) Login(ctx context.Context, in LoginInput) (res LoginResult, err error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := in.Validate(); err != nil {
		return LoginResult{}, err
	}

	ctx, span := tracer.Start(ctx, "auth.Login")
	defer func() { endSpan(span, err) }()

	a.logger.Debug("Auth service: starting login", "email", in.Email)

	signIn, err := a.provider.SignInWithPassword(ctx, in.Email, in.Password)
	if err != nil {
		var pe *model.ProviderError
		if errors.As(err, &pe) {
			a.logger.Info("Auth service: password grant rejected",
				"email", in.Email,
				"code", pe.Code)
			if pe.Code == model.CodeInvalidLoginCredentials {
				return LoginResult{}, apiErrors.NewErrInvalidCredentials(err)
			}
			return LoginResult{}, apiErrors.NewErrProvider(http.StatusUnauthorized, pe.Message, err)
		}
		a.logger.Error("Auth service: password grant failed",
			"email", in.Email,
			"error", err.Error())
		return LoginResult{}, apiErrors.NewErrInfrastructure(msgLoginFailed, err)
	}
	span.SetAttributes(attribute.String("uid", signIn.UID.String()))

	credential, err := a.provider.GetCredential(ctx, signIn.UID)
	if err != nil {
		a.logger.Error("Auth service: failed to look up credential",
			"uid", signIn.UID,
			"error", err.Error())
		return LoginResult{}, apiErrors.NewErrInfrastructure(msgLoginFailed,
			fmt.Errorf("failed to get credential: %w", err))
	}

	if !credential.EmailVerified {
		a.logger.Info("Auth service: login blocked, email not verified", "uid", signIn.UID)
		return LoginResult{}, apiErrors.NewErrEmailNotVerified()
	}

	profile, err := a.profiles.Get(ctx, signIn.UID)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: profile missing for credential", "uid", signIn.UID)
		return LoginResult{}, apiErrors.NewErrProfileNotFound()
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get profile",
			"uid", signIn.UID,
			"error", err.Error())
		return LoginResult{}, apiErrors.NewErrInfrastructure(msgLoginFailed,
			fmt.Errorf("failed to get profile: %w", err))
	}

	profile, err = a.sync.Sync(ctx, credential, profile)
	if err != nil {
		return LoginResult{}, apiErrors.NewErrInfrastructure(msgLoginFailed, err)
	}

	a.logger.Info("Auth service: login succeeded", "uid", signIn.UID)

	return LoginResult{Token: signIn.Token, Profile: a.opts.Links.Sign(ctx, profile)}, nil
}

// ConfirmEmailResult is the outcome of a redeemed verification code.
type ConfirmEmailResult struct {
	UID   uuid.UUID
	Email string
}

// ConfirmEmail redeems an out-of-band verification code and brings the
// profile in line with the credential.
func (a *Auth) ConfirmEmail(ctx context.Context, oobCode string) (res ConfirmEmailResult, err error) {
	oobCode = strings.TrimSpace(oobCode)
	if err := validation.Validate(oobCode, validation.Required); err != nil {
		return ConfirmEmailResult{}, apiErrors.NewErrValidation("Verification code is required")
	}

	ctx, span := tracer.Start(ctx, "auth.ConfirmEmail")
	defer func() { endSpan(span, err) }()

	email, err := a.provider.ApplyVerificationCode(ctx, oobCode)
	if err != nil {
		return ConfirmEmailResult{}, a.verificationError(err)
	}

	credential, err := a.provider.GetCredentialByEmail(ctx, email)
	if err != nil {
		return ConfirmEmailResult{}, a.verificationError(err)
	}
	span.SetAttributes(attribute.String("uid", credential.UID.String()))

	profile, err := a.profiles.Get(ctx, credential.UID)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: profile missing for credential", "uid", credential.UID)
		return ConfirmEmailResult{}, apiErrors.NewErrProfileNotFound()
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get profile",
			"uid", credential.UID,
			"error", err.Error())
		return ConfirmEmailResult{}, apiErrors.NewErrInfrastructure(msgVerificationFailed,
			fmt.Errorf("failed to get profile: %w", err))
	}

	if _, err = a.sync.Sync(ctx, credential, profile); err != nil {
		return ConfirmEmailResult{}, apiErrors.NewErrInfrastructure(msgVerificationFailed, err)
	}

	a.logger.Info("Auth service: email verified",
		"uid", credential.UID,
		"email", credential.Email)

	return ConfirmEmailResult{UID: credential.UID, Email: credential.Email}, nil
}

func (a *Auth) verificationError(err error) error {
	var pe *model.ProviderError
	if errors.As(err, &pe) {
		a.logger.Info("Auth service: verification code rejected", "code", pe.Code)
		msg, ok := verificationMessages[pe.Code]
		if !ok {
			msg = msgVerificationFailed
		}
		return apiErrors.NewErrProvider(http.StatusBadRequest, msg, err)
	}

	a.logger.Error("Auth service: email verification failed", "error", err.Error())
	return apiErrors.NewErrInfrastructure(msgVerificationFailed, err)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
