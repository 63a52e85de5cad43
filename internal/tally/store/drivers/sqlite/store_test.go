package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/tally/internal/tally/domain"
	"github.com/aussiebroadwan/tally/internal/tally/store"
	"github.com/aussiebroadwan/tally/pkg/idx"
	"github.com/stretchr/testify/require"
)

// newTestStore uses a file rather than :memory: so every pooled connection
// sees the same database.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(filepath.Join(t.TempDir(), "tally.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func createUser(t *testing.T, s store.Store, email, username string) domain.User {
	t.Helper()

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Username:     username,
		PasswordHash: "$argon2id$test",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestMigrationsAreIdempotent(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestUsers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	alice := createUser(t, s, "alice@example.com", "alice")

	t.Run("get by id", func(t *testing.T) {
		got, err := s.Users().GetUserByID(ctx, alice.ID)
		require.NoError(t, err)
		require.Equal(t, alice.Email, got.Email)
		require.Equal(t, alice.Username, got.Username)
		require.True(t, alice.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("find by email or username", func(t *testing.T) {
		got, err := s.Users().FindUserByEmailOrUsername(ctx, "alice@example.com", "nobody")
		require.NoError(t, err)
		require.Equal(t, alice.ID, got.ID)

		got, err = s.Users().FindUserByEmailOrUsername(ctx, "nobody@example.com", "alice")
		require.NoError(t, err)
		require.Equal(t, alice.ID, got.ID)

		_, err = s.Users().FindUserByEmailOrUsername(ctx, "nobody@example.com", "nobody")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		u := alice
		u.ID = idx.New().String()
		u.Username = "alice2"
		require.ErrorIs(t, s.Users().CreateUser(ctx, u), store.ErrAlreadyExists)
	})

	t.Run("duplicate username", func(t *testing.T) {
		u := alice
		u.ID = idx.New().String()
		u.Email = "other@example.com"
		require.ErrorIs(t, s.Users().CreateUser(ctx, u), store.ErrAlreadyExists)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := s.Users().GetUserByID(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func newRefreshToken(userID, hash string, expires time.Time) domain.RefreshToken {
	now := time.Now().UTC()
	return domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    userID,
		TokenHash: hash,
		ExpiresAt: expires,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestRefreshTokens(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)
	u := createUser(t, s, "bob@example.com", "bob")
	repo := s.RefreshTokens()

	rt := newRefreshToken(u.ID, "hash-1", time.Now().Add(time.Hour))
	require.NoError(t, repo.CreateRefreshToken(ctx, rt))

	t.Run("lookup by hash", func(t *testing.T) {
		got, err := repo.GetRefreshTokenByHash(ctx, "hash-1")
		require.NoError(t, err)
		require.Equal(t, rt.ID, got.ID)
		require.Equal(t, u.ID, got.UserID)
		require.WithinDuration(t, rt.ExpiresAt, got.ExpiresAt, time.Microsecond)
	})

	t.Run("rotate swaps the hash once", func(t *testing.T) {
		newExpiry := time.Now().Add(2 * time.Hour)
		require.NoError(t, repo.RotateRefreshToken(ctx, rt.ID, "hash-1", "hash-2", newExpiry))

		_, err := repo.GetRefreshTokenByHash(ctx, "hash-1")
		require.ErrorIs(t, err, store.ErrNotFound)

		got, err := repo.GetRefreshTokenByHash(ctx, "hash-2")
		require.NoError(t, err)
		require.Equal(t, rt.ID, got.ID)
		require.WithinDuration(t, newExpiry, got.ExpiresAt, time.Microsecond)

		// Stale pre-image no longer matches.
		err = repo.RotateRefreshToken(ctx, rt.ID, "hash-1", "hash-3", newExpiry)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete for user ignores other owners", func(t *testing.T) {
		require.NoError(t, repo.DeleteRefreshTokenForUser(ctx, "hash-2", "someone-else"))
		_, err := repo.GetRefreshTokenByHash(ctx, "hash-2")
		require.NoError(t, err)

		require.NoError(t, repo.DeleteRefreshTokenForUser(ctx, "hash-2", u.ID))
		_, err = repo.GetRefreshTokenByHash(ctx, "hash-2")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete all for user", func(t *testing.T) {
		require.NoError(t, repo.CreateRefreshToken(ctx, newRefreshToken(u.ID, "a", time.Now().Add(time.Hour))))
		require.NoError(t, repo.CreateRefreshToken(ctx, newRefreshToken(u.ID, "b", time.Now().Add(time.Hour))))
		require.NoError(t, repo.DeleteAllRefreshTokensForUser(ctx, u.ID))

		for _, h := range []string{"a", "b"} {
			_, err := repo.GetRefreshTokenByHash(ctx, h)
			require.ErrorIs(t, err, store.ErrNotFound)
		}
	})

	t.Run("delete expired", func(t *testing.T) {
		now := time.Now()
		require.NoError(t, repo.CreateRefreshToken(ctx, newRefreshToken(u.ID, "old", now.Add(-time.Minute))))
		require.NoError(t, repo.CreateRefreshToken(ctx, newRefreshToken(u.ID, "live", now.Add(time.Hour))))

		n, err := repo.DeleteExpiredRefreshTokens(ctx, now)
		require.NoError(t, err)
		require.Equal(t, int64(1), n)

		_, err = repo.GetRefreshTokenByHash(ctx, "live")
		require.NoError(t, err)
	})

	t.Run("delete by id is idempotent", func(t *testing.T) {
		require.NoError(t, repo.DeleteRefreshToken(ctx, "missing"))
	})
}

func TestRotateRefreshToken_Concurrent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)
	u := createUser(t, s, "carol@example.com", "carol")

	rt := newRefreshToken(u.ID, "pre-image", time.Now().Add(time.Hour))
	require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, rt))

	const workers = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		wins     int
		notFound int
	)
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := s.WithTx(ctx, func(tx store.Tx) error {
				cur, err := tx.RefreshTokens().GetRefreshTokenByHash(ctx, "pre-image")
				if err != nil {
					return err
				}
				return tx.RefreshTokens().RotateRefreshToken(ctx, cur.ID, "pre-image",
					idx.New().String(), time.Now().Add(time.Hour))
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, store.ErrNotFound):
				notFound++
			default:
				t.Errorf("worker %d: unexpected error: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, wins)
	require.Equal(t, workers-1, notFound)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		now := time.Now()
		require.NoError(t, tx.Users().CreateUser(ctx, domain.User{
			ID: "u1", Email: "tx@example.com", Username: "tx", PasswordHash: "h",
			CreatedAt: now, UpdatedAt: now,
		}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Users().GetUserByID(ctx, "u1")
	require.ErrorIs(t, err, store.ErrNotFound)
}
