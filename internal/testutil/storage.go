package testutil

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dtroode/careerguide-server/internal/model"
)

// MemoryStorage is an in-memory model.Storage.
type MemoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	// DeleteErr, when set, is returned by Delete.
	DeleteErr error
}

var _ model.Storage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string][]byte)}
}

func (s *MemoryStorage) Upload(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	delete(s.objects, key)
	return nil
}

func (s *MemoryStorage) SignedURL(_ context.Context, key string) (string, error) {
	return fmt.Sprintf("https://blobs.test/%s?sig=test", key), nil
}

// Object returns the stored bytes for key.
func (s *MemoryStorage) Object(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.objects[key]
	return data, ok
}
