package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/tally/internal/tally/store/drivers/sqlite"
	"github.com/aussiebroadwan/tally/pkg/apperr"
	"github.com/aussiebroadwan/tally/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

var (
	testAccessSecret  = []byte(strings.Repeat("a", 32))
	testRefreshSecret = []byte(strings.Repeat("r", 32))
)

type testEnv struct {
	store    *sqlite.Store
	tokens   *TokenIssuer
	sessions *SessionService
	gate     *Gate
	expenses *ExpenseService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "tally.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	tokens, err := NewTokenIssuer(testAccessSecret, testRefreshSecret, "tally-test", 0, 0)
	require.NoError(t, err)

	hasher := cryptox.NewPasswordHasher("test-pepper", cryptox.Argon2Params{
		Memory: 1024, Iterations: 1, Parallelism: 1, KeyLength: 32, SaltLength: 16,
	})

	return &testEnv{
		store:    s,
		tokens:   tokens,
		sessions: &SessionService{Store: s, Hasher: hasher, Tokens: tokens},
		gate:     &Gate{Store: s, Tokens: tokens},
		expenses: &ExpenseService{Store: s},
	}
}

func (e *testEnv) register(t *testing.T, email, username string) AuthResult {
	t.Helper()
	res, err := e.sessions.Register(context.Background(), RegisterInput{
		Email:    email,
		Username: username,
		Password: "Secret123",
	})
	require.NoError(t, err)
	return res
}

func requireKind(t *testing.T, want apperr.Kind, err error) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, want, apperr.KindOf(err), "error: %v", err)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T { return &v }

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, s)
	require.NoError(t, err)
	return d
}
