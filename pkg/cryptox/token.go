package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// MinSecretSize is the shortest HMAC signing secret accepted, in bytes.
const MinSecretSize = 32

// GenerateSecret returns size random bytes, base64url encoded without
// padding. The encoded form is longer than size, so a secret generated with
// MinSecretSize always passes the length check.
func GenerateSecret(size int) (string, error) {
	if size < MinSecretSize {
		return "", fmt.Errorf("secret size must be at least %d bytes, got %d", MinSecretSize, size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// FingerprintToken is the value stored in place of a refresh token: the
// base64url SHA-256 of the token (43 chars). Lookups hash the presented
// token the same way.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
