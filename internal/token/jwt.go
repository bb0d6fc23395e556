package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/careerguide-server/internal/model"
)

const (
	issuer = "careerguide"
	typeID = "id"
	leeway = 5 * time.Second
)

// Claims represents session token claims.
type Claims struct {
	jwt.RegisteredClaims
	UID       uuid.UUID `json:"uid"`
	Email     string    `json:"email"`
	TokenType string    `json:"typ"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewJWT creates a new JWT token manager issuing tokens valid for ttl.
func NewJWT(secretKey string, ttl time.Duration) *JWT {
	return &JWT{secretKey: []byte(secretKey), ttl: ttl, now: time.Now}
}

var _ model.TokenManager = (*JWT)(nil)

// Generate creates a session token for the identity.
func (j *JWT) Generate(identity model.Identity) (string, error) {
	if len(j.secretKey) == 0 {
		return "", fmt.Errorf("empty signing secret")
	}

	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   identity.UID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		UID:       identity.UID,
		Email:     identity.Email,
		TokenType: typeID,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// Parse validates a session token and returns its identity.
func (j *JWT) Parse(tokenString string) (model.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithLeeway(leeway),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to parse session token: %w", err)
	}
	if !token.Valid {
		return model.Identity{}, fmt.Errorf("session token is invalid")
	}
	if claims.TokenType != typeID {
		return model.Identity{}, fmt.Errorf("token type mismatch: %s", claims.TokenType)
	}
	if claims.UID == uuid.Nil {
		return model.Identity{}, fmt.Errorf("session token has no subject")
	}

	return model.Identity{UID: claims.UID, Email: claims.Email}, nil
}
