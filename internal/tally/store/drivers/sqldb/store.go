package sqldb

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/tally/internal/tally/store"
)

// MigrateFunc brings the schema behind db up to date.
type MigrateFunc func(db *sql.DB) error

type Store struct {
	db      *sql.DB
	dialect Dialect
	migrate MigrateFunc
}

var _ store.Store = (*Store)(nil)

// New wraps an open database. migrate may be nil when the schema is managed
// elsewhere.
func New(db *sql.DB, dialect Dialect, migrate MigrateFunc) *Store {
	return &Store{db: db, dialect: dialect, migrate: migrate}
}

// DB exposes the pool for drivers that need it (migrations, pragmas).
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Dialect() Dialect { return s.dialect }

func (s *Store) ApplyMigrations() error {
	if s.migrate == nil {
		return nil
	}
	return s.migrate(s.db)
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx, s.dialect), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Users() store.Users {
	return &usersRepo{db: s.db, d: s.dialect}
}

func (s *Store) RefreshTokens() store.RefreshTokens {
	return &refreshTokensRepo{db: s.db, d: s.dialect}
}

func (s *Store) Expenses() store.Expenses {
	return &expensesRepo{db: s.db, d: s.dialect}
}
