package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/tally/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var (
	accessSecret  = []byte("access-secret-access-secret-0123456789")
	refreshSecret = []byte("refresh-secret-refresh-secret-0123456789")
)

func newPair(t *testing.T, secret []byte, opts jwtx.VerifyOptions) (*jwtx.HS256Signer, *jwtx.HS256Verifier) {
	t.Helper()

	s, err := jwtx.NewHS256Signer(secret)
	require.NoError(t, err)
	v, err := jwtx.NewHS256Verifier(secret, opts)
	require.NoError(t, err)
	return s, v
}

func TestHS256RoundTrip(t *testing.T) {
	now := time.Now()
	s, v := newPair(t, accessSecret, jwtx.VerifyOptions{Issuer: "tally", Type: jwtx.TypeAccess})

	tok, err := s.Sign(jwtx.NewClaims("user-1", jwtx.TypeAccess, "tally", time.Minute, now))
	require.NoError(t, err)
	require.Equal(t, "HS256", s.Alg())

	claims, err := v.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, jwtx.TypeAccess, claims.Type)
}

func TestHS256RejectsWeakSecrets(t *testing.T) {
	_, err := jwtx.NewHS256Signer([]byte("short"))
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)

	_, err = jwtx.NewHS256Verifier([]byte("short"), jwtx.VerifyOptions{})
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)
}

func TestHS256VerifyFailures(t *testing.T) {
	now := time.Now()
	accessSigner, accessVerifier := newPair(t, accessSecret, jwtx.VerifyOptions{Issuer: "tally", Type: jwtx.TypeAccess})
	refreshSigner, _ := newPair(t, refreshSecret, jwtx.VerifyOptions{})

	t.Run("expired", func(t *testing.T) {
		tok, err := accessSigner.Sign(jwtx.NewClaims("u", jwtx.TypeAccess, "tally", time.Minute, now.Add(-time.Hour)))
		require.NoError(t, err)

		_, err = accessVerifier.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("signed with the other secret", func(t *testing.T) {
		tok, err := refreshSigner.Sign(jwtx.NewClaims("u", jwtx.TypeAccess, "tally", time.Minute, now))
		require.NoError(t, err)

		_, err = accessVerifier.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("tampered payload", func(t *testing.T) {
		tok, err := accessSigner.Sign(jwtx.NewClaims("u", jwtx.TypeAccess, "tally", time.Minute, now))
		require.NoError(t, err)

		other, err := accessSigner.Sign(jwtx.NewClaims("admin", jwtx.TypeAccess, "tally", time.Minute, now))
		require.NoError(t, err)

		parts := strings.Split(tok, ".")
		otherParts := strings.Split(other, ".")
		forged := parts[0] + "." + otherParts[1] + "." + parts[2]

		_, err = accessVerifier.Verify(forged)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := accessVerifier.Verify("not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)

		_, err = accessVerifier.Verify("")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		c := jwtx.NewClaims("u", jwtx.TypeAccess, "tally", time.Minute, now)
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, c).SignedString(accessSecret)
		require.NoError(t, err)

		_, err = accessVerifier.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("wrong token type", func(t *testing.T) {
		tok, err := accessSigner.Sign(jwtx.NewClaims("u", jwtx.TypeRefresh, "tally", time.Minute, now))
		require.NoError(t, err)

		_, err = accessVerifier.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrTokenType)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		tok, err := accessSigner.Sign(jwtx.NewClaims("u", jwtx.TypeAccess, "someone-else", time.Minute, now))
		require.NoError(t, err)

		_, err = accessVerifier.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("missing expiry", func(t *testing.T) {
		c := jwtx.NewClaims("u", jwtx.TypeAccess, "tally", time.Minute, now)
		c.ExpiresAt = nil
		tok, err := accessSigner.Sign(c)
		require.NoError(t, err)

		_, err = accessVerifier.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
	})
}

func TestHS256VerifierClock(t *testing.T) {
	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := issued

	s, err := jwtx.NewHS256Signer(accessSecret)
	require.NoError(t, err)
	v, err := jwtx.NewHS256Verifier(accessSecret, jwtx.VerifyOptions{
		Now: func() time.Time { return clock },
	})
	require.NoError(t, err)

	tok, err := s.Sign(jwtx.NewClaims("u", jwtx.TypeAccess, "", 15*time.Minute, issued))
	require.NoError(t, err)

	clock = issued.Add(14 * time.Minute)
	_, err = v.Verify(tok)
	require.NoError(t, err)

	clock = issued.Add(16 * time.Minute)
	_, err = v.Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}
