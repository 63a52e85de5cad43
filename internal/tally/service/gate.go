package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/tally/internal/tally/domain"
	"github.com/aussiebroadwan/tally/internal/tally/store"
	"github.com/aussiebroadwan/tally/pkg/apperr"
	"github.com/aussiebroadwan/tally/pkg/jwtx"
)

var (
	ErrMissingAccessToken = apperr.New(apperr.KindMissingToken, "Access token required")
	ErrInvalidAccessToken = apperr.New(apperr.KindInvalidToken, "Invalid access token")
	ErrExpiredAccessToken = apperr.New(apperr.KindExpiredToken, "Token expired")
	ErrUnknownSubject     = apperr.New(apperr.KindInvalidToken, "Invalid token")
)

// Gate turns a bearer token into the user it was issued to. Every protected
// route goes through Authenticate.
type Gate struct {
	Store  store.Store
	Tokens *TokenIssuer
}

// Authenticate checks the Authorization header value and loads its subject.
// Expiry is judged from the signed claim alone.
func (g *Gate) Authenticate(ctx context.Context, authorization string) (domain.PublicUser, error) {
	raw, ok := bearerToken(authorization)
	if !ok {
		return domain.PublicUser{}, ErrMissingAccessToken
	}

	claims, err := g.Tokens.VerifyAccessToken(raw)
	switch {
	case errors.Is(err, jwtx.ErrExpired):
		return domain.PublicUser{}, ErrExpiredAccessToken
	case err != nil:
		return domain.PublicUser{}, ErrInvalidAccessToken
	}

	user, err := g.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PublicUser{}, ErrUnknownSubject
		}
		return domain.PublicUser{}, fmt.Errorf("get user: %w", err)
	}

	return user.Public(), nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

type userCtxKey struct{}

// WithUser attaches an authenticated user to ctx.
func WithUser(ctx context.Context, u domain.PublicUser) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext returns the user attached by WithUser.
func UserFromContext(ctx context.Context) (domain.PublicUser, bool) {
	u, ok := ctx.Value(userCtxKey{}).(domain.PublicUser)
	return u, ok
}
