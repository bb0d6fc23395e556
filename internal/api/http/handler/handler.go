// Package handler implements the REST endpoints.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dtroode/careerguide-server/internal/api/http/response"
	apiErrors "github.com/dtroode/careerguide-server/internal/errors"
	"github.com/dtroode/careerguide-server/internal/logger"
	"github.com/dtroode/careerguide-server/internal/model"
	"github.com/dtroode/careerguide-server/internal/service"
)

// AuthService runs the account workflows.
type AuthService interface {
	Register(ctx context.Context, in service.RegisterInput) (service.RegisterResult, error)
	Login(ctx context.Context, in service.LoginInput) (service.LoginResult, error)
	ConfirmEmail(ctx context.Context, oobCode string) (service.ConfirmEmailResult, error)
}

// ProfileService reads and updates profiles on behalf of a caller.
type ProfileService interface {
	Get(ctx context.Context, caller model.Identity, uid string) (model.Profile, error)
	Update(ctx context.Context, caller model.Identity, uid string, update model.ProfileUpdate) error
}

// FilesService stores avatars and documents on behalf of a caller.
type FilesService interface {
	UploadAvatar(ctx context.Context, caller model.Identity, uid string, file *service.Upload) (string, error)
	UploadDocument(ctx context.Context, caller model.Identity, uid string, file *service.Upload) (model.Document, error)
	DeleteDocument(ctx context.Context, caller model.Identity, uid, docID string) error
}

type base struct {
	logger  *logger.Logger
	details bool
}

// handleError renders err and logs server-side failures.
func (b base) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if response.Status(err) >= http.StatusInternalServerError {
		b.logger.Error("Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error())
	}
	response.Error(w, err, b.details)
}

// decodeJSON reads a JSON request body into v. An empty or malformed body is
// reported as a missing body.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return apiErrors.NewErrMissingBody()
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return apiErrors.NewErrMissingBody()
	}
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apiErrors.NewErrValidation("Request body too large")
		}
		return apiErrors.NewErrMissingBody()
	}
	return nil
}

func callerFrom(cm model.ContextManager, r *http.Request) (model.Identity, error) {
	identity, ok := cm.GetIdentityFromContext(r.Context())
	if !ok {
		return model.Identity{}, apiErrors.NewErrMissingAuthorizationToken()
	}
	return identity, nil
}
