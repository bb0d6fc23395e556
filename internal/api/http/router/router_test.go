package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpcontext "github.com/dtroode/careerguide-server/internal/api/http/context"
	"github.com/dtroode/careerguide-server/internal/mocks"
	"github.com/dtroode/careerguide-server/internal/model"
	"github.com/dtroode/careerguide-server/internal/service"
	"github.com/dtroode/careerguide-server/internal/testutil"
)

func newTestRouter(t *testing.T, verifier *mocks.IdentityProvider) http.Handler {
	t.Helper()
	log := testutil.MakeNoopLogger()
	profiles := testutil.NewMemoryProfileStore()

	r := New(nil, service.NewProfile(profiles, nil, "LS", log), nil, verifier, httpcontext.NewManager(), log,
		Options{AppName: "CareerGuide LESOTHO", MailSender: "noreply@example.com", MaxUploadBytes: 1 << 20})
	return r.Register()
}

func TestRouter_HealthIsPublic(t *testing.T) {
	h := newTestRouter(t, mocks.NewIdentityProvider(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "CareerGuide Backend Running", body["message"])
	assert.Equal(t, "noreply@example.com", body["email"])
}

func TestRouter_UnknownRoute(t *testing.T) {
	h := newTestRouter(t, mocks.NewIdentityProvider(t))

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/nope", nil),
		httptest.NewRequest(http.MethodPatch, "/auth/login", nil),
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code, req.Method+" "+req.URL.Path)
		assert.Contains(t, rec.Body.String(), `"error":"Route not found"`)
	}
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	h := newTestRouter(t, mocks.NewIdentityProvider(t))

	routes := []struct{ method, path string }{
		{http.MethodGet, "/users/" + uuid.NewString()},
		{http.MethodPut, "/users/" + uuid.NewString()},
		{http.MethodPost, "/file/upload-avatar"},
		{http.MethodPost, "/file/upload-document"},
		{http.MethodPost, "/file/delete-document"},
	}
	for _, route := range routes {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(route.method, route.path, strings.NewReader("{}")))

		assert.Equal(t, http.StatusUnauthorized, rec.Code, route.method+" "+route.path)
		assert.JSONEq(t, `{"error":"No token"}`, rec.Body.String())
	}
}

func TestRouter_ForbiddenForOtherUser(t *testing.T) {
	verifier := mocks.NewIdentityProvider(t)
	caller := model.Identity{UID: uuid.New(), Email: "a@example.com"}
	verifier.On("VerifyToken", mock.Anything, "good").Return(caller, nil)
	h := newTestRouter(t, verifier)

	req := httptest.NewRequest(http.MethodGet, "/users/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := newTestRouter(t, mocks.NewIdentityProvider(t))

	req := httptest.NewRequest(http.MethodOptions, "/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
