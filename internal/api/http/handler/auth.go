package handler

import (
	"net/http"

	"github.com/dtroode/careerguide-server/internal/api/http/response"
	"github.com/dtroode/careerguide-server/internal/logger"
	"github.com/dtroode/careerguide-server/internal/service"
)

const maxJSONBody = 1 << 20

// Auth serves registration, login and email verification.
type Auth struct {
	base
	service AuthService
}

// NewAuth creates an Auth handler. With details on, 500 responses carry
// the underlying error.
func NewAuth(service AuthService, logger *logger.Logger, details bool) *Auth {
	return &Auth{base: base{logger: logger, details: details}, service: service}
}

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	FullName        string `json:"fullName"`
	Role            string `json:"role"`
	Phone           string `json:"phone"`
	InstitutionName string `json:"institutionName"`
}

type registerResponse struct {
	Message          string `json:"message"`
	UID              string `json:"uid"`
	Role             string `json:"role"`
	EmailSent        bool   `json:"emailSent"`
	Note             string `json:"note,omitempty"`
	VerificationLink string `json:"verificationLink,omitempty"`
}

func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	res, err := h.service.Register(r.Context(), service.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		FullName:        req.FullName,
		Role:            req.Role,
		Phone:           req.Phone,
		InstitutionName: req.InstitutionName,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, registerResponse{
		Message:          "Account created! Please check your email to verify.",
		UID:              res.UID.String(),
		Role:             string(res.Role),
		EmailSent:        res.EmailSent,
		Note:             res.Note,
		VerificationLink: res.VerificationLink,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginUser struct {
	Email           string `json:"email"`
	FullName        string `json:"fullName"`
	Phone           string `json:"phone"`
	InstitutionName string `json:"institutionName"`
	EmailVerified   bool   `json:"emailVerified"`
}

type loginResponse struct {
	Message string    `json:"message"`
	UID     string    `json:"uid"`
	Role    string    `json:"role"`
	Token   string    `json:"token"`
	User    loginUser `json:"user"`
}

func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	res, err := h.service.Login(r.Context(), service.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	p := res.Profile
	response.JSON(w, http.StatusOK, loginResponse{
		Message: "Login successful!",
		UID:     p.UID.String(),
		Role:    string(p.Role),
		Token:   res.Token,
		User: loginUser{
			Email:           p.Email,
			FullName:        p.FullName,
			Phone:           p.Phone,
			InstitutionName: p.InstitutionName,
			EmailVerified:   true,
		},
	})
}

type verifyEmailRequest struct {
	OOBCode string `json:"oobCode"`
}

type verifyEmailResponse struct {
	Message string `json:"message"`
	UID     string `json:"uid"`
	Email   string `json:"email"`
}

func (h *Auth) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	var req verifyEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	res, err := h.service.ConfirmEmail(r.Context(), req.OOBCode)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, verifyEmailResponse{
		Message: "Email verified successfully!",
		UID:     res.UID.String(),
		Email:   res.Email,
	})
}
