package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/careerguide-server/internal/model"
)

// CredentialStore is a mock of model.CredentialStore.
type CredentialStore struct {
	mock.Mock
}

func NewCredentialStore(t testingT) *CredentialStore {
	m := &CredentialStore{}
	register(&m.Mock, t)
	return m
}

func (m *CredentialStore) Create(ctx context.Context, credential model.Credential) (model.Credential, error) {
	args := m.Called(ctx, credential)
	return args.Get(0).(model.Credential), args.Error(1)
}

func (m *CredentialStore) GetByID(ctx context.Context, uid uuid.UUID) (model.Credential, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).(model.Credential), args.Error(1)
}

func (m *CredentialStore) GetByEmail(ctx context.Context, email string) (model.Credential, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.Credential), args.Error(1)
}

func (m *CredentialStore) Delete(ctx context.Context, uid uuid.UUID) error {
	return m.Called(ctx, uid).Error(0)
}

// VerificationCodeStore is a mock of model.VerificationCodeStore.
type VerificationCodeStore struct {
	mock.Mock
}

func NewVerificationCodeStore(t testingT) *VerificationCodeStore {
	m := &VerificationCodeStore{}
	register(&m.Mock, t)
	return m
}

func (m *VerificationCodeStore) Create(ctx context.Context, code model.VerificationCode) error {
	return m.Called(ctx, code).Error(0)
}

func (m *VerificationCodeStore) GetByHash(ctx context.Context, codeHash []byte) (model.VerificationCode, error) {
	args := m.Called(ctx, codeHash)
	return args.Get(0).(model.VerificationCode), args.Error(1)
}

func (m *VerificationCodeStore) Redeem(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

// TokenManager is a mock of model.TokenManager.
type TokenManager struct {
	mock.Mock
}

func NewTokenManager(t testingT) *TokenManager {
	m := &TokenManager{}
	register(&m.Mock, t)
	return m
}

func (m *TokenManager) Generate(identity model.Identity) (string, error) {
	args := m.Called(identity)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) Parse(token string) (model.Identity, error) {
	args := m.Called(token)
	return args.Get(0).(model.Identity), args.Error(1)
}
