// Package response writes JSON responses and API errors.
package response

import (
	"encoding/json"
	"net/http"

	apiErrors "github.com/dtroode/careerguide-server/internal/errors"
)

const msgInternal = "Internal server error"

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error renders err. Errors outside the API taxonomy become a generic 500.
// With details on, the cause of a 500 is echoed to the client.
func Error(w http.ResponseWriter, err error, details bool) {
	apiErr, ok := apiErrors.As(err)
	if !ok {
		body := ErrorBody{Error: msgInternal}
		if details {
			body.Details = err.Error()
		}
		JSON(w, http.StatusInternalServerError, body)
		return
	}

	body := ErrorBody{Error: apiErr.Message}
	if details && apiErr.HTTPStatus >= http.StatusInternalServerError && apiErr.Cause != nil {
		body.Details = apiErr.Cause.Error()
	}
	JSON(w, apiErr.HTTPStatus, body)
}

// Status returns the HTTP status err renders with.
func Status(err error) int {
	if apiErr, ok := apiErrors.As(err); ok {
		return apiErr.HTTPStatus
	}
	return http.StatusInternalServerError
}
