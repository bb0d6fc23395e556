package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"

	apiErrors "github.com/dtroode/careerguide-server/internal/errors"
	"github.com/dtroode/careerguide-server/internal/logger"
	"github.com/dtroode/careerguide-server/internal/model"
)

const (
	contentTypeJPEG = "image/jpeg"
	contentTypePNG  = "image/png"
	contentTypePDF  = "application/pdf"

	msgUploadFailed = "Upload failed"
)

var uploadContentTypes = map[string]bool{
	contentTypeJPEG: true,
	contentTypePNG:  true,
	contentTypePDF:  true,
}

// Upload is a buffered uploaded file.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}

func accepted(file *Upload) bool {
	return file != nil && uploadContentTypes[file.ContentType]
}

// AvatarKey is the blob key of uid's avatar. Re-uploads overwrite it.
func AvatarKey(uid uuid.UUID) string {
	return fmt.Sprintf("avatars/%s/profile.jpg", uid)
}

// newDocumentID returns the upload millisecond followed by a random suffix so
// uploads within the same millisecond get distinct ids and blob keys.
func newDocumentID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + uuid.NewString()[:8]
}

// DocumentKey is the blob key of a document upload.
func DocumentKey(uid uuid.UUID, docID, name string) string {
	return fmt.Sprintf("documents/%s/%s-%s", uid, docID, name)
}

// Files stores avatars and documents in the blob store and records them on
// the owner's profile.
type Files struct {
	storage  model.Storage
	profiles model.ProfileStore
	logger   *logger.Logger
	now      func() time.Time
}

func NewFiles(storage model.Storage, profiles model.ProfileStore, logger *logger.Logger) *Files {
	return &Files{
		storage:  storage,
		profiles: profiles,
		logger:   logger,
		now:      time.Now,
	}
}

// UploadAvatar stores the avatar and returns its signed URL.
func (s *Files) UploadAvatar(ctx context.Context, caller model.Identity, uid string, file *Upload) (string, error) {
	owner, err := ensureOwner(caller, uid)
	if err != nil {
		return "", err
	}
	if !accepted(file) {
		return "", apiErrors.NewErrValidation("No file")
	}

	key := AvatarKey(owner)
	url, err := s.put(ctx, key, file)
	if err != nil {
		s.logger.Error("Files service: failed to store avatar",
			"uid", owner,
			"error", err.Error())
		return "", apiErrors.NewErrInfrastructure(msgUploadFailed, err)
	}

	if err := s.profiles.SetAvatar(ctx, owner, url); err != nil {
		s.logger.Error("Files service: failed to set avatar",
			"uid", owner,
			"error", err.Error())
		return "", apiErrors.NewErrInfrastructure(msgUploadFailed, err)
	}

	s.logger.Info("Files service: avatar uploaded", "uid", owner)
	return url, nil
}

// UploadDocument stores a PDF and appends it to the owner's documents.
func (s *Files) UploadDocument(ctx context.Context, caller model.Identity, uid string, file *Upload) (model.Document, error) {
	owner, err := ensureOwner(caller, uid)
	if err != nil {
		return model.Document{}, err
	}
	if !accepted(file) || file.ContentType != contentTypePDF {
		return model.Document{}, apiErrors.NewErrValidation("PDF only")
	}

	now := s.now()
	docID := newDocumentID(now)
	key := DocumentKey(owner, docID, file.Name)

	url, err := s.put(ctx, key, file)
	if err != nil {
		s.logger.Error("Files service: failed to store document",
			"uid", owner,
			"error", err.Error())
		return model.Document{}, apiErrors.NewErrInfrastructure(msgUploadFailed, err)
	}

	doc := model.Document{
		ID:         docID,
		Name:       file.Name,
		URL:        url,
		ObjectKey:  key,
		UploadedAt: now.UTC(),
	}
	if err := s.profiles.AddDocument(ctx, owner, doc); err != nil {
		s.logger.Error("Files service: failed to record document",
			"uid", owner,
			"doc_id", docID,
			"error", err.Error())
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.logger.Warn("Files service: failed to remove unrecorded document",
				"key", key,
				"error", delErr.Error())
		}
		return model.Document{}, apiErrors.NewErrInfrastructure(msgUploadFailed, err)
	}

	s.logger.Info("Files service: document uploaded",
		"uid", owner,
		"doc_id", docID)
	return doc, nil
}

// DeleteDocument removes a document from the owner's profile. A failure to
// remove the blob is logged and does not fail the request.
func (s *Files) DeleteDocument(ctx context.Context, caller model.Identity, uid, docID string) error {
	owner, err := ensureOwner(caller, uid)
	if err != nil {
		return err
	}
	if err := validation.Validate(docID, validation.Required); err != nil {
		return apiErrors.NewErrValidation("docId required")
	}

	profile, err := s.profiles.Get(ctx, owner)
	if errors.Is(err, model.ErrNotFound) {
		return apiErrors.NewErrNotFound("Not found")
	}
	if err != nil {
		return apiErrors.NewErrInfrastructure("Delete failed", err)
	}

	doc, ok := profile.FindDocument(docID)
	if !ok {
		return apiErrors.NewErrNotFound("Not found")
	}

	key := doc.ObjectKey
	if key == "" {
		key = DocumentKey(owner, doc.ID, doc.Name)
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Warn("Files service: failed to delete document blob",
			"uid", owner,
			"key", key,
			"error", err.Error())
	}

	err = s.profiles.RemoveDocument(ctx, owner, docID)
	if errors.Is(err, model.ErrNotFound) {
		return apiErrors.NewErrNotFound("Not found")
	}
	if err != nil {
		s.logger.Error("Files service: failed to remove document",
			"uid", owner,
			"doc_id", docID,
			"error", err.Error())
		return apiErrors.NewErrInfrastructure("Delete failed", err)
	}

	s.logger.Info("Files service: document deleted",
		"uid", owner,
		"doc_id", docID)
	return nil
}

func (s *Files) put(ctx context.Context, key string, file *Upload) (string, error) {
	err := s.storage.Upload(ctx, key, bytes.NewReader(file.Data), int64(len(file.Data)), file.ContentType)
	if err != nil {
		return "", err
	}
	return s.storage.SignedURL(ctx, key)
}
