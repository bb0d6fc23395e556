package testutil

import (
	"bytes"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/careerguide-server/internal/model"
)

// MemoryIdentityStore keeps credentials and verification codes in memory.
// It is a model.CredentialStore; CodeStore exposes the codes side, so that
// redeeming a code can flip the credential flag atomically.
type MemoryIdentityStore struct {
	mu          sync.Mutex
	credentials map[uuid.UUID]model.Credential
	codes       map[uuid.UUID]model.VerificationCode
}

var (
	_ model.CredentialStore       = (*MemoryIdentityStore)(nil)
	_ model.VerificationCodeStore = memoryCodeStore{}
)

func NewMemoryIdentityStore() *MemoryIdentityStore {
	return &MemoryIdentityStore{
		credentials: make(map[uuid.UUID]model.Credential),
		codes:       make(map[uuid.UUID]model.VerificationCode),
	}
}

func (s *MemoryIdentityStore) Create(_ context.Context, c model.Credential) (model.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.credentials {
		if existing.Email == c.Email {
			return model.Credential{}, model.ErrAlreadyExists
		}
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	s.credentials[c.UID] = c
	return c, nil
}

func (s *MemoryIdentityStore) GetByID(_ context.Context, uid uuid.UUID) (model.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.credentials[uid]
	if !ok {
		return model.Credential{}, model.ErrNotFound
	}
	return c, nil
}

func (s *MemoryIdentityStore) GetByEmail(_ context.Context, email string) (model.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.credentials {
		if c.Email == email {
			return c, nil
		}
	}
	return model.Credential{}, model.ErrNotFound
}

func (s *MemoryIdentityStore) Delete(_ context.Context, uid uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.credentials[uid]; !ok {
		return model.ErrNotFound
	}
	delete(s.credentials, uid)
	for id, code := range s.codes {
		if code.UID == uid {
			delete(s.codes, id)
		}
	}
	return nil
}

func (s *MemoryIdentityStore) createCode(code model.VerificationCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.credentials[code.UID]; !ok {
		return model.ErrNotFound
	}
	code.CreatedAt = time.Now()
	s.codes[code.ID] = code
	return nil
}

func (s *MemoryIdentityStore) GetByHash(_ context.Context, codeHash []byte) (model.VerificationCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, code := range s.codes {
		if bytes.Equal(code.CodeHash, codeHash) {
			return code, nil
		}
	}
	return model.VerificationCode{}, model.ErrNotFound
}

func (s *MemoryIdentityStore) Redeem(_ context.Context, id uuid.UUID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.codes[id]
	if !ok || code.ConsumedAt != nil {
		return "", model.ErrAlreadyConsumed
	}
	now := time.Now()
	code.ConsumedAt = &now
	s.codes[id] = code

	c := s.credentials[code.UID]
	c.EmailVerified = true
	c.UpdatedAt = now
	s.credentials[code.UID] = c
	return c.Email, nil
}

// SetEmailVerified flips the credential flag directly, as if the code had
// been redeemed out of band.
func (s *MemoryIdentityStore) SetEmailVerified(uid uuid.UUID, verified bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.credentials[uid]
	c.EmailVerified = verified
	s.credentials[uid] = c
}

// CodeStore returns the model.VerificationCodeStore view of s.
func (s *MemoryIdentityStore) CodeStore() model.VerificationCodeStore {
	return memoryCodeStore{s}
}

type memoryCodeStore struct {
	s *MemoryIdentityStore
}

func (c memoryCodeStore) Create(_ context.Context, code model.VerificationCode) error {
	return c.s.createCode(code)
}

func (c memoryCodeStore) GetByHash(ctx context.Context, codeHash []byte) (model.VerificationCode, error) {
	return c.s.GetByHash(ctx, codeHash)
}

func (c memoryCodeStore) Redeem(ctx context.Context, id uuid.UUID) (string, error) {
	return c.s.Redeem(ctx, id)
}

// MemoryProfileStore is an in-memory model.ProfileStore.
type MemoryProfileStore struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]model.Profile
	// MarkCalls counts MarkEmailVerified invocations.
	MarkCalls int
}

var _ model.ProfileStore = (*MemoryProfileStore)(nil)

func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{profiles: make(map[uuid.UUID]model.Profile)}
}

func (s *MemoryProfileStore) Create(_ context.Context, p model.Profile) (model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[p.UID]; ok {
		return model.Profile{}, model.ErrAlreadyExists
	}
	p.CreatedAt = time.Now()
	p.Documents = nil
	s.profiles[p.UID] = p
	return p, nil
}

func (s *MemoryProfileStore) Get(_ context.Context, uid uuid.UUID) (model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[uid]
	if !ok {
		return model.Profile{}, model.ErrNotFound
	}
	p.Documents = append([]model.Document{}, p.Documents...)
	return p, nil
}

func (s *MemoryProfileStore) Update(_ context.Context, uid uuid.UUID, u model.ProfileUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[uid]
	if !ok {
		return model.ErrNotFound
	}
	if u.FullName != nil {
		p.FullName = *u.FullName
	}
	if u.Phone != nil {
		p.Phone = *u.Phone
	}
	if u.InstitutionName != nil {
		p.InstitutionName = *u.InstitutionName
	}
	now := time.Now()
	p.UpdatedAt = &now
	s.profiles[uid] = p
	return nil
}

func (s *MemoryProfileStore) MarkEmailVerified(_ context.Context, uid uuid.UUID) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.MarkCalls++
	p, ok := s.profiles[uid]
	if !ok {
		return time.Time{}, model.ErrNotFound
	}
	p.EmailVerified = true
	if p.EmailVerifiedAt == nil {
		now := time.Now()
		p.EmailVerifiedAt = &now
	}
	s.profiles[uid] = p
	return *p.EmailVerifiedAt, nil
}

func (s *MemoryProfileStore) SetAvatar(_ context.Context, uid uuid.UUID, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[uid]
	if !ok {
		return model.ErrNotFound
	}
	p.Avatar = url
	s.profiles[uid] = p
	return nil
}

func (s *MemoryProfileStore) AddDocument(_ context.Context, uid uuid.UUID, d model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[uid]
	if !ok {
		return model.ErrNotFound
	}
	if _, exists := p.FindDocument(d.ID); exists {
		return model.ErrAlreadyExists
	}
	p.Documents = append(p.Documents, d)
	s.profiles[uid] = p
	return nil
}

func (s *MemoryProfileStore) RemoveDocument(_ context.Context, uid uuid.UUID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[uid]
	if !ok {
		return model.ErrNotFound
	}
	idx := slices.IndexFunc(p.Documents, func(d model.Document) bool { return d.ID == id })
	if idx < 0 {
		return model.ErrNotFound
	}
	p.Documents = slices.Delete(p.Documents, idx, idx+1)
	s.profiles[uid] = p
	return nil
}
