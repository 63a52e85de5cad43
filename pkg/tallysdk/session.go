package tallysdk

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// refreshBuffer refreshes the access token this long before it expires.
const refreshBuffer = 30 * time.Second

// Session is a signed-in user. Methods refresh the access token when it is
// about to expire and retry once if the server reports it expired anyway.
type Session struct {
	client *Client

	mu           sync.RWMutex
	user         User
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

func newSession(client *Client, auth AuthResponse) *Session {
	s := &Session{client: client}
	s.store(auth)
	return s
}

// store swaps in a new pair. Callers hold mu or own s exclusively.
func (s *Session) store(auth AuthResponse) {
	s.user = auth.User
	s.accessToken = auth.Tokens.AccessToken
	s.refreshToken = auth.Tokens.RefreshToken
	s.expiresAt = accessExpiry(auth.Tokens.AccessToken).Add(-refreshBuffer)
}

// accessExpiry reads exp from the token without verifying it; the server
// does the verifying. Unreadable tokens count as already expired.
func accessExpiry(token string) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil || claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// User returns the account this session belongs to.
func (s *Session) User() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// AccessToken returns the current access token without checking expiration.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// Refresh rotates the token pair now.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked(ctx)
}

func (s *Session) refreshLocked(ctx context.Context) error {
	if s.refreshToken == "" {
		return ErrNoRefreshToken
	}

	out, err := s.client.Refresh(ctx, s.refreshToken)
	if err != nil {
		return fmt.Errorf("failed to refresh token: %w", err)
	}

	s.store(*out)
	return nil
}

// getValidToken returns a valid access token, refreshing first if it is
// about to expire.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have refreshed while we waited.
	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}

	if err := s.refreshLocked(ctx); err != nil {
		return "", err
	}
	return s.accessToken, nil
}

// forceRefresh refreshes unless the token changed since stale was read.
func (s *Session) forceRefresh(ctx context.Context, stale string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accessToken != stale {
		return nil
	}
	return s.refreshLocked(ctx)
}

// do performs an authenticated call and decodes the response into target.
func (s *Session) do(ctx context.Context, method, path string, body, target any, expectedStatus int) error {
	for attempt := 0; ; attempt++ {
		token, err := s.getValidToken(ctx)
		if err != nil {
			return err
		}

		resp, err := s.client.doRequest(ctx, method, s.client.apiURL(path), body, token)
		if err != nil {
			return err
		}

		err = decodeJSON(resp, target, expectedStatus)
		if attempt == 0 && IsTokenExpired(err) {
			if err := s.forceRefresh(ctx, token); err != nil {
				return err
			}
			continue
		}
		return err
	}
}

// Me returns the signed-in user as the server sees it.
func (s *Session) Me(ctx context.Context) (*User, error) {
	var out UserResponse
	if err := s.do(ctx, http.MethodGet, "/auth/me", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Logout revokes this session's refresh token. The access token keeps
// working until it expires.
func (s *Session) Logout(ctx context.Context) error {
	token := s.RefreshToken()
	if token == "" {
		// An empty body would sign out every device.
		return ErrNoRefreshToken
	}
	return s.logout(ctx, LogoutRequest{RefreshToken: token})
}

// LogoutAll revokes every refresh token of the user, on every device.
func (s *Session) LogoutAll(ctx context.Context) error {
	return s.logout(ctx, LogoutRequest{})
}

func (s *Session) logout(ctx context.Context, req LogoutRequest) error {
	var out MessageResponse
	if err := s.do(ctx, http.MethodPost, "/auth/logout", req, &out, http.StatusOK); err != nil {
		return err
	}

	s.mu.Lock()
	s.refreshToken = ""
	s.mu.Unlock()
	return nil
}
