package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/tally/internal/tally/domain"
	"github.com/aussiebroadwan/tally/internal/tally/store"
	"github.com/aussiebroadwan/tally/pkg/apperr"
	"github.com/aussiebroadwan/tally/pkg/cryptox"
	"github.com/aussiebroadwan/tally/pkg/idx"
	"github.com/aussiebroadwan/tally/pkg/slogx"
)

var (
	ErrDuplicateUser      = apperr.New(apperr.KindDuplicateUser, "User already exists")
	ErrInvalidCredentials = apperr.New(apperr.KindInvalidCredentials, "Invalid credentials")
	ErrRefreshRequired    = apperr.New(apperr.KindMissingToken, "Refresh token required")
	ErrInvalidRefresh     = apperr.New(apperr.KindInvalidToken, "Invalid refresh token")
	ErrStaleRefresh       = apperr.New(apperr.KindInvalidToken, "Invalid or expired refresh token")
)

// AuthResult is returned by register, login and refresh.
type AuthResult struct {
	User   domain.PublicUser `json:"user"`
	Tokens domain.TokenPair  `json:"tokens"`
}

// SessionService owns the credential and refresh-token lifecycle.
type SessionService struct {
	Store  store.Store
	Hasher *cryptox.PasswordHasher
	Tokens *TokenIssuer

	// Now is overridable in tests.
	Now func() time.Time

	dummyOnce   sync.Once
	dummyDigest string
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// dummy is verified against when no user matched, so an unknown login costs
// the same as a wrong password.
func (s *SessionService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyDigest, _ = s.Hasher.Hash(idx.New().String())
	})
	return s.dummyDigest
}

// Register validates input, creates the user and opens a first session.
//
// The flow:
//  1. Validates and normalises the input
//  2. Rejects an email or username that is already taken
//  3. Hashes the password
//  4. Creates the user and its refresh token record in one transaction
func (s *SessionService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input
	if err := in.normalize(); err != nil {
		return AuthResult{}, err
	}

	// 2. Uniqueness
	existing, err := s.Store.Users().FindUserByEmailOrUsername(ctx, in.Email, in.Username)
	switch {
	case err == nil:
		details := "Username already taken"
		if existing.Email == in.Email {
			details = "Email already registered"
		}
		return AuthResult{}, ErrDuplicateUser.WithDetails(details)
	case !errors.Is(err, store.ErrNotFound):
		return AuthResult{}, fmt.Errorf("find user: %w", err)
	}

	// 3. Hash
	digest, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := domain.User{
		ID:           idx.NewAt(now).String(),
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: digest,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// 4. Persist
	var tokens domain.TokenPair
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				// Lost a race with a concurrent registration.
				return ErrDuplicateUser.WithDetails("Email or username already taken")
			}
			return fmt.Errorf("create user: %w", err)
		}

		var err error
		tokens, err = s.openSession(ctx, tx.RefreshTokens(), user.ID, now)
		return err
	})
	if err != nil {
		return AuthResult{}, err
	}

	log.Info("user registered", slog.String("user_id", user.ID))
	return AuthResult{User: user.Public(), Tokens: tokens}, nil
}

// Login checks credentials and opens an additional session. Existing
// sessions of the user are left alone.
func (s *SessionService) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	log := slogx.FromContext(ctx)

	if err := in.normalize(); err != nil {
		return AuthResult{}, err
	}

	user, err := s.Store.Users().FindUserByEmailOrUsername(ctx, strings.ToLower(in.EmailOrUsername), in.EmailOrUsername)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return AuthResult{}, fmt.Errorf("find user: %w", err)
		}
		s.Hasher.Verify(in.Password, s.dummy())
		log.Info("login failed", slog.String("reason", "unknown_user"))
		return AuthResult{}, ErrInvalidCredentials
	}

	if !s.Hasher.Verify(in.Password, user.PasswordHash) {
		log.Info("login failed", slog.String("reason", "bad_password"), slog.String("user_id", user.ID))
		return AuthResult{}, ErrInvalidCredentials
	}

	tokens, err := s.openSession(ctx, s.Store.RefreshTokens(), user.ID, s.now())
	if err != nil {
		return AuthResult{}, err
	}

	log.Info("user logged in", slog.String("user_id", user.ID))
	return AuthResult{User: user.Public(), Tokens: tokens}, nil
}

// Refresh exchanges a refresh token for a new pair, rotating the stored
// record in place.
//
// The flow:
//  1. Verifies the JWT against the refresh secret
//  2. Looks up the record by fingerprint and drops it if it has lapsed
//  3. Mints a new pair and swaps the record's fingerprint, conditional on it
//     still holding the old one
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (AuthResult, error) {
	log := slogx.FromContext(ctx)

	if refreshToken == "" {
		return AuthResult{}, ErrRefreshRequired
	}

	// 1. Signature, type and expiry; no storage touched on failure
	claims, err := s.Tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		log.Info("refresh rejected", slog.String("reason", err.Error()))
		return AuthResult{}, ErrInvalidRefresh
	}

	// 2. Stored record
	oldHash := cryptox.FingerprintToken(refreshToken)
	now := s.now()

	rec, err := s.Store.RefreshTokens().GetRefreshTokenByHash(ctx, oldHash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("refresh rejected", slog.String("reason", "unknown_or_rotated"))
			return AuthResult{}, ErrStaleRefresh
		}
		return AuthResult{}, fmt.Errorf("get refresh token: %w", err)
	}
	if !rec.ValidAt(now) {
		if err := s.Store.RefreshTokens().DeleteRefreshToken(ctx, rec.ID); err != nil {
			log.Warn("failed to delete expired refresh token", slog.String("error", err.Error()))
		}
		return AuthResult{}, ErrStaleRefresh
	}
	if rec.UserID != claims.Subject {
		return AuthResult{}, ErrStaleRefresh
	}

	// 3. Rotate
	var result AuthResult
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByID(ctx, rec.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrStaleRefresh
			}
			return fmt.Errorf("get user: %w", err)
		}

		pair, expiresAt, err := s.Tokens.IssuePair(user.ID, now)
		if err != nil {
			return fmt.Errorf("issue tokens: %w", err)
		}

		newHash := cryptox.FingerprintToken(pair.RefreshToken)
		if err := tx.RefreshTokens().RotateRefreshToken(ctx, rec.ID, oldHash, newHash, expiresAt); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrStaleRefresh
			}
			return fmt.Errorf("rotate refresh token: %w", err)
		}

		result = AuthResult{User: user.Public(), Tokens: pair}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrStaleRefresh) {
			log.Info("refresh rejected", slog.String("reason", "lost_rotation"), slog.String("user_id", rec.UserID))
		}
		return AuthResult{}, err
	}

	return result, nil
}

// Logout ends one session when refreshToken is given, otherwise all of the
// user's sessions. Tokens belonging to someone else are ignored.
func (s *SessionService) Logout(ctx context.Context, userID, refreshToken string) error {
	repo := s.Store.RefreshTokens()

	if refreshToken != "" {
		if err := repo.DeleteRefreshTokenForUser(ctx, cryptox.FingerprintToken(refreshToken), userID); err != nil {
			return fmt.Errorf("delete refresh token: %w", err)
		}
		slogx.FromContext(ctx).Info("user logged out", slog.String("user_id", userID))
		return nil
	}

	if err := repo.DeleteAllRefreshTokensForUser(ctx, userID); err != nil {
		return fmt.Errorf("delete refresh tokens: %w", err)
	}
	slogx.FromContext(ctx).Info("user logged out everywhere", slog.String("user_id", userID))
	return nil
}

// GetCurrentUser returns the identity the Gate attached to ctx.
func (s *SessionService) GetCurrentUser(ctx context.Context) (domain.PublicUser, error) {
	u, ok := UserFromContext(ctx)
	if !ok {
		return domain.PublicUser{}, ErrMissingAccessToken
	}
	return u, nil
}

// openSession mints a pair and records the refresh token's fingerprint.
func (s *SessionService) openSession(
	ctx context.Context,
	repo store.RefreshTokens,
	userID string,
	now time.Time,
) (domain.TokenPair, error) {
	pair, expiresAt, err := s.Tokens.IssuePair(userID, now)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("issue tokens: %w", err)
	}

	rec := domain.RefreshToken{
		ID:        idx.NewAt(now).String(),
		UserID:    userID,
		TokenHash: cryptox.FingerprintToken(pair.RefreshToken),
		ExpiresAt: expiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.CreateRefreshToken(ctx, rec); err != nil {
		return domain.TokenPair{}, fmt.Errorf("store refresh token: %w", err)
	}

	return pair, nil
}
