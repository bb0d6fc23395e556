package context

import (
	"context"

	"github.com/dtroode/careerguide-server/internal/model"
)

type identityKey struct{}

// Manager represents a request context manager for identity operations.
// It stores the identity resolved by the session guard for downstream handlers.
type Manager struct{}

var _ model.ContextManager = (*Manager)(nil)

// NewManager creates a new context manager instance.
//
// Returns a pointer to the newly created Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetIdentityToContext attaches the authenticated identity to the context.
//
// Parameters:
//   - ctx: The request context
//   - identity: The identity resolved from the session token
//
// Returns a new context carrying the identity.
func (m *Manager) SetIdentityToContext(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentityFromContext retrieves the authenticated identity from the context.
//
// Parameters:
//   - ctx: The request context
//
// Returns the identity and a boolean indicating if an identity was found.
func (m *Manager) GetIdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(model.Identity)
	return identity, ok
}
