package tallysdk

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// fakeServer answers login and refresh, and serves /auth/me through me.
type fakeServer struct {
	loginAccess   string
	refreshAccess string
	refreshCalls  atomic.Int32
	me            http.HandlerFunc
	extra         map[string]http.HandlerFunc
}

func (f *fakeServer) start(t *testing.T) *Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, AuthResponse{
			User:   User{ID: "user-1", Username: "alice"},
			Tokens: Tokens{AccessToken: f.loginAccess, RefreshToken: "refresh-1"},
		})
	})
	mux.HandleFunc("POST /api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		var req RefreshRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.RefreshToken != "refresh-1" {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Invalid refresh token"})
			return
		}
		f.refreshCalls.Add(1)
		writeJSON(w, http.StatusOK, AuthResponse{
			User:   User{ID: "user-1", Username: "alice"},
			Tokens: Tokens{AccessToken: f.refreshAccess, RefreshToken: "refresh-2"},
		})
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) { f.me(w, r) })
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, MessageResponse{Message: "Logged out successfully"})
	})

	for pattern, h := range f.extra {
		mux.HandleFunc(pattern, h)
	}

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL + "/")
}

func TestSession_RefreshesBeforeExpiry(t *testing.T) {
	t.Parallel()

	f := &fakeServer{
		loginAccess:   signedToken(t, time.Now().Add(10*time.Second)),
		refreshAccess: signedToken(t, time.Now().Add(time.Hour)),
	}
	f.me = func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+f.refreshAccess {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Invalid token"})
			return
		}
		writeJSON(w, http.StatusOK, UserResponse{User: User{ID: "user-1", Username: "alice"}})
	}
	client := f.start(t)

	session, err := client.Login(t.Context(), "alice", "Secret123")
	require.NoError(t, err)
	require.Equal(t, "alice", session.User().Username)

	me, err := session.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, "user-1", me.ID)
	require.Equal(t, int32(1), f.refreshCalls.Load())
	require.Equal(t, "refresh-2", session.RefreshToken())
	require.Equal(t, f.refreshAccess, session.AccessToken())

	// Fresh token now, so no further refresh.
	_, err = session.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, int32(1), f.refreshCalls.Load())
}

func TestSession_RetriesOnceWhenServerSaysExpired(t *testing.T) {
	t.Parallel()

	var meCalls atomic.Int32
	f := &fakeServer{
		loginAccess:   signedToken(t, time.Now().Add(time.Hour)),
		refreshAccess: signedToken(t, time.Now().Add(2*time.Hour)),
	}
	f.me = func(w http.ResponseWriter, r *http.Request) {
		meCalls.Add(1)
		if r.Header.Get("Authorization") == "Bearer "+f.loginAccess {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Token expired"})
			return
		}
		writeJSON(w, http.StatusOK, UserResponse{User: User{ID: "user-1"}})
	}
	client := f.start(t)

	session, err := client.Login(t.Context(), "alice", "Secret123")
	require.NoError(t, err)

	_, err = session.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, int32(2), meCalls.Load())
	require.Equal(t, int32(1), f.refreshCalls.Load())
}

func TestSession_DoesNotRetryOtherUnauthorized(t *testing.T) {
	t.Parallel()

	var meCalls atomic.Int32
	f := &fakeServer{
		loginAccess:   signedToken(t, time.Now().Add(time.Hour)),
		refreshAccess: signedToken(t, time.Now().Add(2*time.Hour)),
	}
	f.me = func(w http.ResponseWriter, r *http.Request) {
		meCalls.Add(1)
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Invalid token"})
	}
	client := f.start(t)

	session, err := client.Login(t.Context(), "alice", "Secret123")
	require.NoError(t, err)

	_, err = session.Me(t.Context())
	require.True(t, IsUnauthorized(err))
	require.False(t, IsTokenExpired(err))
	require.Equal(t, int32(1), meCalls.Load())
	require.Zero(t, f.refreshCalls.Load())
}

func TestSession_Logout(t *testing.T) {
	t.Parallel()

	f := &fakeServer{loginAccess: signedToken(t, time.Now().Add(time.Hour))}
	client := f.start(t)

	session, err := client.Login(t.Context(), "alice", "Secret123")
	require.NoError(t, err)

	require.NoError(t, session.Logout(t.Context()))
	require.Empty(t, session.RefreshToken())
	require.ErrorIs(t, session.Refresh(t.Context()), ErrNoRefreshToken)
	require.ErrorIs(t, session.Logout(t.Context()), ErrNoRefreshToken)
}

func TestAccessExpiry(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	require.True(t, exp.Equal(accessExpiry(signedToken(t, exp))))
	require.True(t, accessExpiry("not-a-jwt").IsZero())
}
