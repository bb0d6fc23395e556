package service

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/careerguide-server/internal/identity"
	"github.com/dtroode/careerguide-server/internal/model"
	"github.com/dtroode/careerguide-server/internal/testutil"
	"github.com/dtroode/careerguide-server/internal/token"
)

type capturingMailer struct {
	mu    sync.Mutex
	links []string
	fail  bool
}

func (m *capturingMailer) SendVerification(_ context.Context, _, link, _ string, _ model.Role) model.MailResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links = append(m.links, link)
	if m.fail {
		return model.MailResult{Err: assert.AnError}
	}
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

type workflowEnv struct {
	auth        *Auth
	provider    *identity.Provider
	credentials *testutil.MemoryIdentityStore
	profiles    *testutil.MemoryProfileStore
	mailer      *capturingMailer
}

func newWorkflowEnv(t *testing.T) workflowEnv {
	t.Helper()
	log := testutil.MakeNoopLogger()
	credentials := testutil.NewMemoryIdentityStore()
	profiles := testutil.NewMemoryProfileStore()
	provider := identity.NewProvider(credentials, credentials.CodeStore(), token.NewJWT("secret", time.Hour), log,
		identity.Options{DefaultRegion: "LS", BcryptCost: bcrypt.MinCost})
	mailer := &capturingMailer{}

	auth := NewAuth(provider, profiles, mailer, NewVerificationSync(profiles, log), log,
		AuthOptions{FrontendURL: "http://localhost:3000"})

	return workflowEnv{
		auth:        auth,
		provider:    provider,
		credentials: credentials,
		profiles:    profiles,
		mailer:      mailer,
	}
}

func TestWorkflow_RegisterConfirmLogin(t *testing.T) {
	ctx := context.Background()
	env := newWorkflowEnv(t)

	reg, err := env.auth.Register(ctx, validRegisterInput())
	require.NoError(t, err)
	assert.True(t, reg.EmailSent)

	_, err = env.auth.Login(ctx, LoginInput{Email: "thabo@example.com", Password: "secret1"})
	requireAPIError(t, err, http.StatusForbidden, "Please verify your email before logging in.")

	confirmed, err := env.auth.ConfirmEmail(ctx, env.mailer.lastCode(t))
	require.NoError(t, err)
	assert.Equal(t, reg.UID, confirmed.UID)
	assert.Equal(t, "thabo@example.com", confirmed.Email)

	profile, err := env.profiles.Get(ctx, reg.UID)
	require.NoError(t, err)
	assert.True(t, profile.EmailVerified)
	require.NotNil(t, profile.EmailVerifiedAt)

	res, err := env.auth.Login(ctx, LoginInput{Email: "thabo@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, reg.UID, res.Profile.UID)
	assert.True(t, res.Profile.EmailVerified)

	caller, err := env.provider.VerifyToken(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.UID, caller.UID)
}

func TestWorkflow_CodeIsSingleUse(t *testing.T) {
	ctx := context.Background()
	env := newWorkflowEnv(t)

	_, err := env.auth.Register(ctx, validRegisterInput())
	require.NoError(t, err)
	code := env.mailer.lastCode(t)

	_, err = env.auth.ConfirmEmail(ctx, code)
	require.NoError(t, err)

	_, err = env.auth.ConfirmEmail(ctx, code)
	requireAPIError(t, err, http.StatusBadRequest, "Invalid or already used verification link.")
}

func TestWorkflow_WeakPasswordCreatesNothing(t *testing.T) {
	ctx := context.Background()
	env := newWorkflowEnv(t)

	in := validRegisterInput()
	in.Password = "12345"
	_, err := env.auth.Register(ctx, in)
	requireAPIError(t, err, http.StatusBadRequest, "")

	_, err = env.credentials.GetByEmail(ctx, "thabo@example.com")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestWorkflow_MailFailureKeepsAccount(t *testing.T) {
	ctx := context.Background()
	env := newWorkflowEnv(t)
	env.mailer.fail = true

	reg, err := env.auth.Register(ctx, validRegisterInput())
	require.NoError(t, err)
	assert.False(t, reg.EmailSent)
	assert.NotEmpty(t, reg.Note)

	_, err = env.credentials.GetByID(ctx, reg.UID)
	assert.NoError(t, err)
	_, err = env.profiles.Get(ctx, reg.UID)
	assert.NoError(t, err)
}

func TestWorkflow_DuplicateRegistration(t *testing.T) {
	ctx := context.Background()
	env := newWorkflowEnv(t)

	_, err := env.auth.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	_, err = env.auth.Register(ctx, validRegisterInput())
	requireAPIError(t, err, http.StatusBadRequest, "The email address is already in use by another account.")
}

func TestWorkflow_RepeatedSyncIsIdempotent(t *testing.T) {
	ctx := context.Background()
	env := newWorkflowEnv(t)

	reg, err := env.auth.Register(ctx, validRegisterInput())
	require.NoError(t, err)
	// Verified at the provider without the profile having been told.
	env.credentials.SetEmailVerified(reg.UID, true)

	var firstVerifiedAt time.Time
	for i := 0; i < 3; i++ {
		res, err := env.auth.Login(ctx, LoginInput{Email: "thabo@example.com", Password: "secret1"})
		require.NoError(t, err)
		assert.True(t, res.Profile.EmailVerified)
		require.NotNil(t, res.Profile.EmailVerifiedAt)
		if i == 0 {
			firstVerifiedAt = *res.Profile.EmailVerifiedAt
		}
		assert.Equal(t, firstVerifiedAt, *res.Profile.EmailVerifiedAt)
	}
	assert.Equal(t, 1, env.profiles.MarkCalls)
}

func TestWorkflow_ConcurrentLoginsAfterVerification(t *testing.T) {
	ctx := context.Background()
	env := newWorkflowEnv(t)

	reg, err := env.auth.Register(ctx, validRegisterInput())
	require.NoError(t, err)
	env.credentials.SetEmailVerified(reg.UID, true)

	const logins = 8
	var wg sync.WaitGroup
	results := make([]LoginResult, logins)
	errs := make([]error, logins)
	for i := 0; i < logins; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = env.auth.Login(ctx, LoginInput{Email: "thabo@example.com", Password: "secret1"})
		}(i)
	}
	wg.Wait()

	for i := 0; i < logins; i++ {
		require.NoError(t, errs[i])
		assert.NotEmpty(t, results[i].Token)
		assert.True(t, results[i].Profile.EmailVerified)
	}

	profile, err := env.profiles.Get(ctx, reg.UID)
	require.NoError(t, err)
	assert.True(t, profile.EmailVerified)
}
