package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/careerguide-server/internal/model"
)

func TestJWT_Roundtrip(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	id := model.Identity{UID: uuid.New(), Email: "thabo@example.com"}

	tok, err := j.Generate(id)
	require.NoError(t, err)

	got, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestJWT_WrongSecret(t *testing.T) {
	tok, err := NewJWT("secret", time.Hour).Generate(model.Identity{UID: uuid.New()})
	require.NoError(t, err)

	_, err = NewJWT("other", time.Hour).Parse(tok)
	require.Error(t, err)
}

func TestJWT_Expired(t *testing.T) {
	j := NewJWT("secret", time.Minute)
	issued := time.Now().Add(-time.Hour)
	j.now = func() time.Time { return issued }

	tok, err := j.Generate(model.Identity{UID: uuid.New()})
	require.NoError(t, err)

	j.now = time.Now
	_, err = j.Parse(tok)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWT_TokenTypeMismatch(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UID:       uuid.New(),
		TokenType: "refresh",
	})
	tok, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = j.Parse(tok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token type mismatch")
}

func TestJWT_Garbage(t *testing.T) {
	_, err := NewJWT("secret", time.Hour).Parse("not-a-token")
	require.Error(t, err)
}

func TestJWT_EmptySecret(t *testing.T) {
	_, err := NewJWT("", time.Hour).Generate(model.Identity{UID: uuid.New()})
	require.Error(t, err)
}
