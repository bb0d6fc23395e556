package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProfileStore persists per-user profile documents keyed by uid.
type ProfileStore interface {
	Create(ctx context.Context, profile Profile) (Profile, error)
	Get(ctx context.Context, uid uuid.UUID) (Profile, error)
	Update(ctx context.Context, uid uuid.UUID, update ProfileUpdate) error
	// MarkEmailVerified sets the verification flag. The verification time
	// is recorded only the first time and returned on every call.
	MarkEmailVerified(ctx context.Context, uid uuid.UUID) (time.Time, error)
	SetAvatar(ctx context.Context, uid uuid.UUID, url string) error
	AddDocument(ctx context.Context, uid uuid.UUID, document Document) error
	RemoveDocument(ctx context.Context, uid uuid.UUID, documentID string) error
}

// Role is the kind of account holder. It is stored as provided.
type Role string

const (
	RoleStudent   Role = "student"
	RoleInstitute Role = "institute"
	RoleCompany   Role = "company"
)

// Profile represents application-level user data.
type Profile struct {
	UID             uuid.UUID
	Email           string
	FullName        string
	Role            Role
	Phone           string
	InstitutionName string
	Avatar          string
	EmailVerified   bool
	EmailVerifiedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       *time.Time
	Documents       []Document
}

// FindDocument returns the document with the given id.
func (p Profile) FindDocument(id string) (Document, bool) {
	for _, d := range p.Documents {
		if d.ID == id {
			return d, true
		}
	}
	return Document{}, false
}

// Document is a file attached to a profile.
type Document struct {
	ID         string
	Name       string
	URL        string
	ObjectKey  string
	UploadedAt time.Time
}

// ProfileUpdate is a partial profile update; nil fields are left unchanged.
type ProfileUpdate struct {
	FullName        *string
	Phone           *string
	InstitutionName *string
}

// IsEmpty reports whether the update changes nothing.
func (u ProfileUpdate) IsEmpty() bool {
	return u.FullName == nil && u.Phone == nil && u.InstitutionName == nil
}
