package handler

import (
	"net/http"
	"time"

	"github.com/dtroode/careerguide-server/internal/api/http/response"
)

// Endpoints lists the public surface for the health and not-found bodies.
var Endpoints = []string{
	"POST /auth/register",
	"POST /auth/login",
	"POST /auth/verify-email",
	"GET /users/:uid",
	"PUT /users/:uid",
	"POST /file/upload-avatar",
	"POST /file/upload-document",
	"POST /file/delete-document",
}

// Health reports liveness and deployment details.
type Health struct {
	appName    string
	mailSender string
	now        func() time.Time
}

// NewHealth creates a Health handler. An empty mailSender is shown as not set.
func NewHealth(appName, mailSender string) *Health {
	if mailSender == "" {
		mailSender = "not set"
	}
	return &Health{appName: appName, mailSender: mailSender, now: time.Now}
}

type healthResponse struct {
	Message   string            `json:"message"`
	Timestamp string            `json:"timestamp"`
	Project   string            `json:"project"`
	Email     string            `json:"email"`
	Endpoints map[string]string `json:"endpoints"`
}

func (h *Health) Status(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, healthResponse{
		Message:   "CareerGuide Backend Running",
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Project:   h.appName,
		Email:     h.mailSender,
		Endpoints: map[string]string{
			"register":       "POST /auth/register",
			"login":          "POST /auth/login",
			"verifyEmail":    "POST /auth/verify-email",
			"profile":        "GET|PUT /users/:uid",
			"uploadAvatar":   "POST /file/upload-avatar",
			"uploadDocument": "POST /file/upload-document",
			"deleteDocument": "POST /file/delete-document",
		},
	})
}

type notFoundResponse struct {
	Error              string   `json:"error"`
	Path               string   `json:"path"`
	AvailableEndpoints []string `json:"availableEndpoints"`
}

// NotFound answers unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusNotFound, notFoundResponse{
		Error:              "Route not found",
		Path:               r.URL.Path,
		AvailableEndpoints: Endpoints,
	})
}
