package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	httpcontext "github.com/dtroode/careerguide-server/internal/api/http/context"
	"github.com/dtroode/careerguide-server/internal/identity"
	"github.com/dtroode/careerguide-server/internal/model"
	"github.com/dtroode/careerguide-server/internal/service"
	"github.com/dtroode/careerguide-server/internal/testutil"
	"github.com/dtroode/careerguide-server/internal/token"
)

type capturingMailer struct {
	mu    sync.Mutex
	links []string
}

func (m *capturingMailer) SendVerification(_ context.Context, _, link, _ string, _ model.Role) model.MailResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links = append(m.links, link)
	return model.MailResult{Sent: true}
}

func (m *capturingMailer) lastCode(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.links)
	u, err := url.Parse(m.links[len(m.links)-1])
	require.NoError(t, err)
	return u.Query().Get("oobCode")
}

type testEnv struct {
	auth        *Auth
	users       *Users
	files       *Files
	credentials *testutil.MemoryIdentityStore
	profiles    *testutil.MemoryProfileStore
	storage     *testutil.MemoryStorage
	mailer      *capturingMailer
	cm          *httpcontext.Manager
}

const testMaxUpload = 1 << 10

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	log := testutil.MakeNoopLogger()
	credentials := testutil.NewMemoryIdentityStore()
	profiles := testutil.NewMemoryProfileStore()
	storage := testutil.NewMemoryStorage()
	mailer := &capturingMailer{}
	cm := httpcontext.NewManager()

	provider := identity.NewProvider(credentials, credentials.CodeStore(), token.NewJWT("secret", time.Hour), log,
		identity.Options{DefaultRegion: "LS", BcryptCost: bcrypt.MinCost})
	authService := service.NewAuth(provider, profiles, mailer, service.NewVerificationSync(profiles, log), log,
		service.AuthOptions{FrontendURL: "http://localhost:3000", Links: service.NewLinkSigner(storage, log)})

	return testEnv{
		auth:        NewAuth(authService, log, false),
		users:       NewUsers(service.NewProfile(profiles, service.NewLinkSigner(storage, log), "LS", log), cm, log, false),
		files:       NewFiles(service.NewFiles(storage, profiles, log), cm, log, testMaxUpload, false),
		credentials: credentials,
		profiles:    profiles,
		storage:     storage,
		mailer:      mailer,
		cm:          cm,
	}
}

// seedProfile registers a verified account directly in the stores.
func (e testEnv) seedProfile(t *testing.T) model.Identity {
	t.Helper()
	ctx := context.Background()
	p, err := e.profiles.Create(ctx, model.Profile{
		UID:      uuid.New(),
		Email:    "lerato@example.com",
		FullName: "Lerato Molapo",
		Role:     model.RoleInstitute,
		Phone:    "+26622123456",
	})
	require.NoError(t, err)
	return model.Identity{UID: p.UID, Email: p.Email}
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// withCaller attaches the identity and chi route params to req.
func withCaller(cm *httpcontext.Manager, req *http.Request, caller model.Identity, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = cm.SetIdentityToContext(ctx, caller)
	return req.WithContext(ctx)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
