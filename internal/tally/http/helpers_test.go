package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aussiebroadwan/tally/internal/tally/service"
	"github.com/aussiebroadwan/tally/internal/tally/store/drivers/sqlite"
	"github.com/aussiebroadwan/tally/pkg/cryptox"
	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/tallysdk"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router *Router
	tokens *service.TokenIssuer
}

func newTestServer(t *testing.T, limiters httpx.LimiterFactory) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "tally.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	tokens, err := service.NewTokenIssuer(
		[]byte(strings.Repeat("a", 32)),
		[]byte(strings.Repeat("r", 32)),
		"tally-test", 0, 0,
	)
	require.NoError(t, err)

	hasher := cryptox.NewPasswordHasher("test-pepper", cryptox.Argon2Params{
		Memory: 1024, Iterations: 1, Parallelism: 1, KeyLength: 32, SaltLength: 16,
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := NewRouter(RouterConfig{
		Prefix:      "/api",
		FrontendURL: "http://localhost:5173",
		Version:     "test",
		Limiters:    limiters,
	}, st, logger)
	r.Gate = &service.Gate{Store: st, Tokens: tokens}
	r.Sessions = &service.SessionService{Store: st, Hasher: hasher, Tokens: tokens}
	r.Expenses = &service.ExpenseService{Store: st}
	r.ApplyRoutes()

	return &testServer{router: r, tokens: tokens}
}

// do sends body (marshalled unless it is a string) and returns the recorder.
func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) register(t *testing.T, email, username string) tallysdk.AuthResponse {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/register", "", tallysdk.RegisterRequest{
		Email:    email,
		Username: username,
		Password: "Secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[tallysdk.AuthResponse](t, rec)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, msg string) tallysdk.ErrorResponse {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	body := decode[tallysdk.ErrorResponse](t, rec)
	require.Equal(t, msg, body.Error)
	return body
}
