package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiErrors "github.com/dtroode/careerguide-server/internal/errors"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]string{"uid": "u1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"uid":"u1"}`, rec.Body.String())
}

func TestError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		details     bool
		wantStatus  int
		wantMessage string
		wantDetails string
	}{
		{
			name:        "validation",
			err:         apiErrors.NewErrValidation("docId required"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "docId required",
		},
		{
			name:        "client error never has details",
			err:         apiErrors.NewErrInvalidCredentials(errors.New("INVALID_LOGIN_CREDENTIALS")),
			details:     true,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid email or password",
		},
		{
			name:        "infrastructure hides cause in production",
			err:         apiErrors.NewErrInfrastructure("Login failed. Please try again.", errors.New("db down")),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Login failed. Please try again.",
		},
		{
			name:        "infrastructure shows cause in development",
			err:         apiErrors.NewErrInfrastructure("Login failed. Please try again.", errors.New("db down")),
			details:     true,
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Login failed. Please try again.",
			wantDetails: "db down",
		},
		{
			name:        "unknown error",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, tt.err, tt.details)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus, Status(tt.err))
			body := decode(t, rec)
			assert.Equal(t, tt.wantMessage, body.Error)
			assert.Equal(t, tt.wantDetails, body.Details)
		})
	}
}
