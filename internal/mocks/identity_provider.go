package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/careerguide-server/internal/model"
)

// IdentityProvider is a mock of model.IdentityProvider.
type IdentityProvider struct {
	mock.Mock
}

func NewIdentityProvider(t testingT) *IdentityProvider {
	m := &IdentityProvider{}
	register(&m.Mock, t)
	return m
}

func (m *IdentityProvider) CreateCredential(ctx context.Context, params model.NewCredential) (model.Credential, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Credential), args.Error(1)
}

func (m *IdentityProvider) DeleteCredential(ctx context.Context, uid uuid.UUID) error {
	return m.Called(ctx, uid).Error(0)
}

func (m *IdentityProvider) SignInWithPassword(ctx context.Context, email, password string) (model.SignIn, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(model.SignIn), args.Error(1)
}

func (m *IdentityProvider) GetCredential(ctx context.Context, uid uuid.UUID) (model.Credential, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).(model.Credential), args.Error(1)
}

func (m *IdentityProvider) GetCredentialByEmail(ctx context.Context, email string) (model.Credential, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.Credential), args.Error(1)
}

func (m *IdentityProvider) GenerateEmailVerificationLink(ctx context.Context, email, continueURL string) (string, error) {
	args := m.Called(ctx, email, continueURL)
	return args.String(0), args.Error(1)
}

func (m *IdentityProvider) ApplyVerificationCode(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

func (m *IdentityProvider) VerifyToken(ctx context.Context, token string) (model.Identity, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.Identity), args.Error(1)
}
