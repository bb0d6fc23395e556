package service

import (
	"context"
	"slices"

	"github.com/dtroode/careerguide-server/internal/logger"
	"github.com/dtroode/careerguide-server/internal/model"
)

// LinkSigner replaces the stored avatar and document URLs of a profile with
// freshly signed ones. Stored URLs outlive the blob store's signature
// lifetime, so they are re-signed whenever a profile is handed out.
type LinkSigner struct {
	storage model.Storage
	logger  *logger.Logger
}

func NewLinkSigner(storage model.Storage, logger *logger.Logger) *LinkSigner {
	return &LinkSigner{storage: storage, logger: logger}
}

// Sign returns p with re-signed URLs. A URL that cannot be signed keeps its
// stored value. A nil signer returns p unchanged.
func (s *LinkSigner) Sign(ctx context.Context, p model.Profile) model.Profile {
	if s == nil {
		return p
	}

	if p.Avatar != "" {
		if url, ok := s.sign(ctx, p, AvatarKey(p.UID)); ok {
			p.Avatar = url
		}
	}

	p.Documents = slices.Clone(p.Documents)
	for i, doc := range p.Documents {
		key := doc.ObjectKey
		if key == "" {
			key = DocumentKey(p.UID, doc.ID, doc.Name)
		}
		if url, ok := s.sign(ctx, p, key); ok {
			p.Documents[i].URL = url
		}
	}

	return p
}

func (s *LinkSigner) sign(ctx context.Context, p model.Profile, key string) (string, bool) {
	url, err := s.storage.SignedURL(ctx, key)
	if err != nil {
		s.logger.Warn("Link signer: failed to sign url, keeping stored one",
			"uid", p.UID,
			"key", key,
			"error", err.Error())
		return "", false
	}
	return url, true
}
