package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/tally/internal/tally/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Sub-repositories are reached through methods so a Tx can
// hand out the same repositories bound to the transaction.
type Store interface {
	Users() Users
	RefreshTokens() RefreshTokens
	Expenses() Expenses

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// FindUserByEmailOrUsername returns the first user whose email equals
	// email or whose username equals username.
	FindUserByEmailOrUsername(ctx context.Context, email, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID). A
	// clash on email or username yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error
}

type RefreshTokens interface {
	// CreateRefreshToken stores a new refresh token record.
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshTokenByHash returns the record whose fingerprint is hash.
	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// RotateRefreshToken replaces the fingerprint and expiry of record id,
	// but only while it still holds oldHash. Returns ErrNotFound when another
	// caller rotated or deleted it first.
	RotateRefreshToken(ctx context.Context, id, oldHash, newHash string, expiresAt time.Time) error

	// DeleteRefreshToken removes a record by id. Missing records are not an error.
	DeleteRefreshToken(ctx context.Context, id string) error

	// DeleteRefreshTokenForUser removes the record with hash only if it
	// belongs to userID.
	DeleteRefreshTokenForUser(ctx context.Context, hash, userID string) error

	// DeleteAllRefreshTokensForUser ends every session of userID.
	DeleteAllRefreshTokensForUser(ctx context.Context, userID string) error

	// DeleteExpiredRefreshTokens is housekeeping; returns rows removed.
	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}

type Expenses interface {
	CreateExpense(ctx context.Context, e domain.Expense) error

	// GetExpense only finds expenses owned by userID.
	GetExpense(ctx context.Context, userID, id string) (domain.Expense, error)

	// ListExpenses returns one page plus the total matching f ignoring
	// Limit and Offset.
	ListExpenses(ctx context.Context, userID string, f domain.ExpenseFilter) ([]domain.Expense, int, error)

	// UpdateExpense overwrites the mutable fields of e. ErrNotFound when e
	// does not exist or belongs to someone else.
	UpdateExpense(ctx context.Context, e domain.Expense) error

	// DeleteExpense removes an owned expense, ErrNotFound otherwise.
	DeleteExpense(ctx context.Context, userID, id string) error
}
