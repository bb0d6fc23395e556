package service

import (
	"context"
	"errors"

	apiErrors "github.com/dtroode/careerguide-server/internal/errors"
	"github.com/dtroode/careerguide-server/internal/identity"
	"github.com/dtroode/careerguide-server/internal/logger"
	"github.com/dtroode/careerguide-server/internal/model"
)

// Profile serves ownership-checked reads and updates of user profiles.
type Profile struct {
	profiles model.ProfileStore
	links    *LinkSigner
	region   string
	logger   *logger.Logger
}

// NewProfile builds the profile service. Phone numbers given without an
// international prefix are parsed in region.
func NewProfile(profiles model.ProfileStore, links *LinkSigner, region string, logger *logger.Logger) *Profile {
	return &Profile{profiles: profiles, links: links, region: region, logger: logger}
}

func (s *Profile) Get(ctx context.Context, caller model.Identity, uid string) (model.Profile, error) {
	owner, err := ensureOwner(caller, uid)
	if err != nil {
		s.logger.Info("Profile service: forbidden profile read",
			"caller", caller.UID,
			"uid", uid)
		return model.Profile{}, err
	}

	profile, err := s.profiles.Get(ctx, owner)
	if errors.Is(err, model.ErrNotFound) {
		return model.Profile{}, apiErrors.NewErrNotFound("Not found")
	}
	if err != nil {
		s.logger.Error("Profile service: failed to get profile",
			"uid", owner,
			"error", err.Error())
		return model.Profile{}, apiErrors.NewErrInfrastructure("Failed to load profile", err)
	}

	return s.links.Sign(ctx, profile), nil
}

// Update merges the non-nil fields of update into the profile. A phone number
// is stored in E.164 form; an empty one clears it. Concurrent updates are
// last-write-wins per field.
func (s *Profile) Update(ctx context.Context, caller model.Identity, uid string, update model.ProfileUpdate) error {
	owner, err := ensureOwner(caller, uid)
	if err != nil {
		s.logger.Info("Profile service: forbidden profile update",
			"caller", caller.UID,
			"uid", uid)
		return err
	}

	if update.Phone != nil {
		phone, err := identity.NormalizePhone(*update.Phone, s.region)
		if err != nil {
			s.logger.Debug("Profile service: rejected phone number",
				"uid", owner,
				"error", err.Error())
			return apiErrors.NewErrValidation("Invalid phone number")
		}
		update.Phone = &phone
	}

	err = s.profiles.Update(ctx, owner, update)
	if errors.Is(err, model.ErrNotFound) {
		return apiErrors.NewErrNotFound("Not found")
	}
	if err != nil {
		s.logger.Error("Profile service: failed to update profile",
			"uid", owner,
			"error", err.Error())
		return apiErrors.NewErrInfrastructure("Failed to update profile", err)
	}

	s.logger.Debug("Profile service: profile updated", "uid", owner)
	return nil
}
