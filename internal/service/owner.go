package service

import (
	"github.com/google/uuid"

	apiErrors "github.com/dtroode/careerguide-server/internal/errors"
	"github.com/dtroode/careerguide-server/internal/model"
)

// ensureOwner resolves the uid addressed by a request. An empty uid means
// the caller; any other uid must be the caller's own.
func ensureOwner(caller model.Identity, uid string) (uuid.UUID, error) {
	if uid == "" || uid == caller.UID.String() {
		return caller.UID, nil
	}
	return uuid.Nil, apiErrors.NewErrForbidden()
}
