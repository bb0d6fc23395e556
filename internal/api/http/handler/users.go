package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/dtroode/careerguide-server/internal/api/http/response"
	apiErrors "github.com/dtroode/careerguide-server/internal/errors"
	"github.com/dtroode/careerguide-server/internal/logger"
	"github.com/dtroode/careerguide-server/internal/model"
)

const maxProfileField = 200

// Users serves profile reads and updates.
type Users struct {
	base
	service        ProfileService
	contextManager model.ContextManager
}

func NewUsers(service ProfileService, contextManager model.ContextManager, logger *logger.Logger, details bool) *Users {
	return &Users{
		base:           base{logger: logger, details: details},
		service:        service,
		contextManager: contextManager,
	}
}

type documentResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Uploaded string `json:"uploaded"`
}

func newDocumentResponse(d model.Document) documentResponse {
	return documentResponse{
		ID:       d.ID,
		Name:     d.Name,
		URL:      d.URL,
		Uploaded: d.UploadedAt.UTC().Format(time.DateOnly),
	}
}

type profileResponse struct {
	UID             string             `json:"uid"`
	Email           string             `json:"email"`
	FullName        string             `json:"fullName"`
	Role            string             `json:"role"`
	Phone           string             `json:"phone"`
	InstitutionName string             `json:"institutionName"`
	Avatar          string             `json:"avatar,omitempty"`
	EmailVerified   bool               `json:"emailVerified"`
	EmailVerifiedAt *time.Time         `json:"emailVerifiedAt,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       *time.Time         `json:"updatedAt,omitempty"`
	Documents       []documentResponse `json:"documents"`
}

func newProfileResponse(p model.Profile) profileResponse {
	docs := make([]documentResponse, 0, len(p.Documents))
	for _, d := range p.Documents {
		docs = append(docs, newDocumentResponse(d))
	}

	return profileResponse{
		UID:             p.UID.String(),
		Email:           p.Email,
		FullName:        p.FullName,
		Role:            string(p.Role),
		Phone:           p.Phone,
		InstitutionName: p.InstitutionName,
		Avatar:          p.Avatar,
		EmailVerified:   p.EmailVerified,
		EmailVerifiedAt: p.EmailVerifiedAt,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		Documents:       docs,
	}
}

func (h *Users) Get(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(h.contextManager, r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	profile, err := h.service.Get(r.Context(), caller, chi.URLParam(r, "uid"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, newProfileResponse(profile))
}

// updateRequest holds the profile fields a user may change. Other fields
// in the body are ignored.
type updateRequest struct {
	FullName        *string `json:"fullName"`
	Phone           *string `json:"phone"`
	InstitutionName *string `json:"institutionName"`
}

func (req *updateRequest) Validate() error {
	return validation.ValidateStruct(req,
		validation.Field(&req.FullName, validation.NilOrNotEmpty, validation.Length(1, maxProfileField)),
		validation.Field(&req.Phone, validation.Length(0, maxProfileField)),
		validation.Field(&req.InstitutionName, validation.Length(0, maxProfileField)),
	)
}

func (h *Users) Update(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(h.contextManager, r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	var req updateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if req.FullName != nil {
		trimmed := strings.TrimSpace(*req.FullName)
		req.FullName = &trimmed
	}
	if err := req.Validate(); err != nil {
		h.handleError(w, r, apiErrors.NewErrValidation(err.Error()))
		return
	}

	err = h.service.Update(r.Context(), caller, chi.URLParam(r, "uid"), model.ProfileUpdate{
		FullName:        req.FullName,
		Phone:           req.Phone,
		InstitutionName: req.InstitutionName,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Updated"})
}
