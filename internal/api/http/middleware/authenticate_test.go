package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpcontext "github.com/dtroode/careerguide-server/internal/api/http/context"
	"github.com/dtroode/careerguide-server/internal/mocks"
	"github.com/dtroode/careerguide-server/internal/model"
	"github.com/dtroode/careerguide-server/internal/testutil"
)

func TestAuthenticate_Handler(t *testing.T) {
	t.Parallel()

	uid := uuid.New()

	tests := []struct {
		name         string
		authHeader   string
		setup        func(v *mocks.IdentityProvider)
		wantStatus   int
		wantBody     string
		expectCalled bool
	}{
		{
			name:       "missing authorization header",
			setup:      func(*mocks.IdentityProvider) {},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"No token"}`,
		},
		{
			name:       "not a bearer token",
			authHeader: "Basic dXNlcjpwYXNz",
			setup:      func(*mocks.IdentityProvider) {},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"No token"}`,
		},
		{
			name:       "bearer without token",
			authHeader: "Bearer ",
			setup:      func(*mocks.IdentityProvider) {},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"No token"}`,
		},
		{
			name:       "bearer with only whitespace",
			authHeader: "Bearer   \t ",
			setup:      func(*mocks.IdentityProvider) {},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"No token"}`,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer invalid",
			setup: func(v *mocks.IdentityProvider) {
				v.On("VerifyToken", mock.Anything, "invalid").
					Return(model.Identity{}, model.NewProviderError(model.CodeInvalidIDToken, "bad"))
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"Invalid token"}`,
		},
		{
			name:       "valid token",
			authHeader: "Bearer good",
			setup: func(v *mocks.IdentityProvider) {
				v.On("VerifyToken", mock.Anything, "good").Return(model.Identity{UID: uid, Email: "a@example.com"}, nil)
			},
			wantStatus:   http.StatusNoContent,
			expectCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			verifier := mocks.NewIdentityProvider(t)
			tt.setup(verifier)
			cm := httpcontext.NewManager()
			m := NewAuthenticate(verifier, cm, testutil.MakeNoopLogger())

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				identity, ok := cm.GetIdentityFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, uid, identity.UID)
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/users/"+uid.String(), nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			m.Handler(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.expectCalled, called)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
