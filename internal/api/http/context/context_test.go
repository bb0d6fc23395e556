package context

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dtroode/careerguide-server/internal/model"
)

func TestManager_SetAndGetIdentity(t *testing.T) {
	m := NewManager()
	identity := model.Identity{UID: uuid.New(), Email: "a@example.com"}

	ctx := m.SetIdentityToContext(context.Background(), identity)
	got, ok := m.GetIdentityFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, identity, got)
}

func TestManager_GetIdentity_Missing(t *testing.T) {
	m := NewManager()
	_, ok := m.GetIdentityFromContext(context.Background())
	assert.False(t, ok)
}

func TestManager_SetIdentity_Overrides(t *testing.T) {
	m := NewManager()
	first := model.Identity{UID: uuid.New()}
	second := model.Identity{UID: uuid.New()}

	ctx := m.SetIdentityToContext(context.Background(), first)
	ctx = m.SetIdentityToContext(ctx, second)

	got, ok := m.GetIdentityFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, second.UID, got.UID)
}
