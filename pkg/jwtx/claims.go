package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token lifetimes.
const (
	// DefaultAccessTokenTTL is short so a leaked access token is only useful
	// briefly. Access tokens are never stored, so this is the only way they end.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL bounds how long a session survives without the
	// user logging in again.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// TokenType distinguishes access from refresh tokens inside the claims.
type TokenType string

const (
	TypeAccess  TokenType = "access"
	TypeRefresh TokenType = "refresh"
)

// Claims are the claims carried by both token classes.
type Claims struct {
	jwt.RegisteredClaims

	// Type is "access" or "refresh". A verifier configured for one type
	// rejects the other even if the secrets were ever shared by mistake.
	Type TokenType `json:"token_type,omitempty"`
}

// NewClaims builds claims for subject valid from now until now+ttl. Every call
// gets a fresh jti, so two tokens minted in the same second never collide.
func NewClaims(subject string, typ TokenType, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Type: typ,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateType checks the token class.
func (c *Claims) ValidateType(expected TokenType) error {
	if expected == "" {
		return nil
	}

	if c.Type != expected {
		return ErrTokenType
	}

	return nil
}
