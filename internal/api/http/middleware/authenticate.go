package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dtroode/careerguide-server/internal/api/http/response"
	apiErrors "github.com/dtroode/careerguide-server/internal/errors"
	"github.com/dtroode/careerguide-server/internal/logger"
	"github.com/dtroode/careerguide-server/internal/model"
)

const bearerPrefix = "Bearer "

// TokenVerifier resolves an identity from a bearer token.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (model.Identity, error)
}

// Authenticate validates bearer tokens and injects the identity into the request context.
type Authenticate struct {
	verifier       TokenVerifier
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(verifier TokenVerifier, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{verifier: verifier, contextManager: contextManager, logger: logger}
}

// Handler rejects requests without a valid session token.
func (m *Authenticate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if !strings.HasPrefix(header, bearerPrefix) || token == "" {
			response.Error(w, apiErrors.NewErrMissingAuthorizationToken(), false)
			return
		}

		identity, err := m.verifier.VerifyToken(r.Context(), token)
		if err != nil {
			m.logger.Debug("Authenticate: token rejected",
				"path", r.URL.Path,
				"error", err.Error())
			response.Error(w, apiErrors.NewErrInvalidAuthorizationToken(err), false)
			return
		}

		ctx := m.contextManager.SetIdentityToContext(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
