package identity

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

const codeBytes = 32

// newVerificationCode returns a random out-of-band code and the hash stored for it.
func newVerificationCode() (string, []byte, error) {
	buf := make([]byte, codeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", nil, fmt.Errorf("failed to generate verification code: %w", err)
	}

	code := base64.RawURLEncoding.EncodeToString(buf)
	return code, hashCode(code), nil
}

func hashCode(code string) []byte {
	h := sha256.Sum256([]byte(code))
	return h[:]
}
