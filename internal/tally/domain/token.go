package domain

import "time"

// TokenPair is what register, login and refresh hand back: a short-lived
// access JWT and a longer-lived refresh JWT.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken models the stored refresh token record in the DB. The token
// itself is never stored, only its fingerprint.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string // deterministic fingerprint (base64url SHA-256)
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidAt reports whether the record can still be exchanged at now.
func (t RefreshToken) ValidAt(now time.Time) bool {
	return t.ExpiresAt.After(now)
}
