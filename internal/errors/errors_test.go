package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Statuses(t *testing.T) {
	tests := []struct {
		name   string
		err    *APIError
		status int
		kind   Kind
	}{
		{"validation", NewErrValidation("bad"), http.StatusBadRequest, KindValidation},
		{"missing body", NewErrMissingBody(), http.StatusBadRequest, KindValidation},
		{"invalid credentials", NewErrInvalidCredentials(nil), http.StatusUnauthorized, KindIdentityProvider},
		{"email not verified", NewErrEmailNotVerified(), http.StatusForbidden, KindIdentityProvider},
		{"profile not found", NewErrProfileNotFound(), http.StatusNotFound, KindProfileNotFound},
		{"document not found", NewErrNotFound("Not found"), http.StatusNotFound, KindNotFound},
		{"no token", NewErrMissingAuthorizationToken(), http.StatusUnauthorized, KindAuthorization},
		{"invalid token", NewErrInvalidAuthorizationToken(nil), http.StatusUnauthorized, KindAuthorization},
		{"forbidden", NewErrForbidden(), http.StatusForbidden, KindAuthorization},
		{"infrastructure", NewErrInfrastructure("Login failed", nil), http.StatusInternalServerError, KindInfrastructure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.kind, tt.err.Kind)
		})
	}
}

func TestAPIError_CauseIsUnwrapped(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := fmt.Errorf("login: %w", NewErrInfrastructure("Login failed. Please try again.", cause))

	apiErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, "Login failed. Please try again.", apiErr.Message)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAs_NotAPIError(t *testing.T) {
	_, ok := As(stderrors.New("plain"))
	assert.False(t, ok)
}
