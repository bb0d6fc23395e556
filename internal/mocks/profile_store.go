package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/careerguide-server/internal/model"
)

// ProfileStore is a mock of model.ProfileStore.
type ProfileStore struct {
	mock.Mock
}

func NewProfileStore(t testingT) *ProfileStore {
	m := &ProfileStore{}
	register(&m.Mock, t)
	return m
}

func (m *ProfileStore) Create(ctx context.Context, profile model.Profile) (model.Profile, error) {
	args := m.Called(ctx, profile)
	return args.Get(0).(model.Profile), args.Error(1)
}

func (m *ProfileStore) Get(ctx context.Context, uid uuid.UUID) (model.Profile, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).(model.Profile), args.Error(1)
}

func (m *ProfileStore) Update(ctx context.Context, uid uuid.UUID, update model.ProfileUpdate) error {
	return m.Called(ctx, uid, update).Error(0)
}

func (m *ProfileStore) MarkEmailVerified(ctx context.Context, uid uuid.UUID) (time.Time, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *ProfileStore) SetAvatar(ctx context.Context, uid uuid.UUID, url string) error {
	return m.Called(ctx, uid, url).Error(0)
}

func (m *ProfileStore) AddDocument(ctx context.Context, uid uuid.UUID, document model.Document) error {
	return m.Called(ctx, uid, document).Error(0)
}

func (m *ProfileStore) RemoveDocument(ctx context.Context, uid uuid.UUID, documentID string) error {
	return m.Called(ctx, uid, documentID).Error(0)
}
