package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dtroode/careerguide-server/internal/logger"
	"github.com/dtroode/careerguide-server/internal/model"
)

// VerificationSync copies the identity provider's verification flag into
// the profile store. The credential is authoritative; the profile flag is a
// cache brought up to date whenever a workflow observes both.
type VerificationSync struct {
	profiles model.ProfileStore
	logger   *logger.Logger
}

func NewVerificationSync(profiles model.ProfileStore, logger *logger.Logger) *VerificationSync {
	return &VerificationSync{profiles: profiles, logger: logger}
}

// Sync returns profile with its verification fields matching credential.
// Repeated calls are safe: the verification time is only recorded once.
func (s *VerificationSync) Sync(ctx context.Context, credential model.Credential, profile model.Profile) (_ model.Profile, err error) {
	if !credential.EmailVerified || profile.EmailVerified {
		return profile, nil
	}

	ctx, span := tracer.Start(ctx, "verification.Sync")
	span.SetAttributes(attribute.String("uid", credential.UID.String()))
	defer func() { endSpan(span, err) }()

	verifiedAt, err := s.profiles.MarkEmailVerified(ctx, credential.UID)
	if err != nil {
		s.logger.Error("Verification sync: failed to update profile",
			"uid", credential.UID,
			"error", err.Error())
		return profile, fmt.Errorf("failed to mark profile email verified: %w", err)
	}

	s.logger.Info("Verification sync: profile marked verified", "uid", credential.UID)

	profile.EmailVerified = true
	profile.EmailVerifiedAt = &verifiedAt
	return profile, nil
}
