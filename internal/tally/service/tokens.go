package service

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/aussiebroadwan/tally/internal/tally/domain"
	"github.com/aussiebroadwan/tally/pkg/jwtx"
)

// ErrSameSecrets is returned when access and refresh tokens would share a
// key, which would let one be replayed as the other.
var ErrSameSecrets = errors.New("service: access and refresh secrets must differ")

// TokenIssuer mints and checks the two JWT kinds. It never touches storage.
type TokenIssuer struct {
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	accessSigner    jwtx.Signer
	refreshSigner   jwtx.Signer
	accessVerifier  jwtx.Verifier
	refreshVerifier jwtx.Verifier
}

// NewTokenIssuer builds an issuer from two distinct HS256 secrets. Zero TTLs
// fall back to 15 minutes and 7 days.
func NewTokenIssuer(accessSecret, refreshSecret []byte, issuer string, accessTTL, refreshTTL time.Duration) (*TokenIssuer, error) {
	if subtle.ConstantTimeCompare(accessSecret, refreshSecret) == 1 {
		return nil, ErrSameSecrets
	}
	if accessTTL <= 0 {
		accessTTL = jwtx.DefaultAccessTokenTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = jwtx.DefaultRefreshTokenTTL
	}

	accessSigner, err := jwtx.NewHS256Signer(accessSecret)
	if err != nil {
		return nil, err
	}
	refreshSigner, err := jwtx.NewHS256Signer(refreshSecret)
	if err != nil {
		return nil, err
	}
	accessVerifier, err := jwtx.NewHS256Verifier(accessSecret, jwtx.VerifyOptions{
		Issuer: issuer,
		Type:   jwtx.TypeAccess,
	})
	if err != nil {
		return nil, err
	}
	refreshVerifier, err := jwtx.NewHS256Verifier(refreshSecret, jwtx.VerifyOptions{
		Issuer: issuer,
		Type:   jwtx.TypeRefresh,
	})
	if err != nil {
		return nil, err
	}

	return &TokenIssuer{
		Issuer:          issuer,
		AccessTTL:       accessTTL,
		RefreshTTL:      refreshTTL,
		accessSigner:    accessSigner,
		refreshSigner:   refreshSigner,
		accessVerifier:  accessVerifier,
		refreshVerifier: refreshVerifier,
	}, nil
}

func (i *TokenIssuer) IssueAccessToken(userID string, now time.Time) (string, error) {
	return i.accessSigner.Sign(jwtx.NewClaims(userID, jwtx.TypeAccess, i.Issuer, i.AccessTTL, now))
}

func (i *TokenIssuer) IssueRefreshToken(userID string, now time.Time) (string, error) {
	return i.refreshSigner.Sign(jwtx.NewClaims(userID, jwtx.TypeRefresh, i.Issuer, i.RefreshTTL, now))
}

// IssuePair mints both tokens and returns the expiry the refresh record
// should carry.
func (i *TokenIssuer) IssuePair(userID string, now time.Time) (domain.TokenPair, time.Time, error) {
	access, err := i.IssueAccessToken(userID, now)
	if err != nil {
		return domain.TokenPair{}, time.Time{}, err
	}
	refresh, err := i.IssueRefreshToken(userID, now)
	if err != nil {
		return domain.TokenPair{}, time.Time{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, now.Add(i.RefreshTTL), nil
}

func (i *TokenIssuer) VerifyAccessToken(raw string) (jwtx.Claims, error) {
	return i.accessVerifier.Verify(raw)
}

func (i *TokenIssuer) VerifyRefreshToken(raw string) (jwtx.Claims, error) {
	return i.refreshVerifier.Verify(raw)
}
