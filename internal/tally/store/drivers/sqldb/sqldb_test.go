package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aussiebroadwan/tally/internal/tally/domain"
	"github.com/aussiebroadwan/tally/internal/tally/store"
	"github.com/stretchr/testify/require"
)

var errUnique = errors.New("duplicate key")

var numbered = Dialect{
	Name:              "test",
	Numbered:          true,
	IsUniqueViolation: func(err error) bool { return errors.Is(err, errUnique) },
}

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return New(db, numbered, nil), mock
}

func TestRebind(t *testing.T) {
	require.Equal(t, "a = $1 AND b = $2", numbered.Rebind("a = ? AND b = ?"))
	require.Equal(t, "a = ? AND b = ?", Dialect{}.Rebind("a = ? AND b = ?"))
}

func TestTimeEncoding(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 10, time.FixedZone("x", 3600))

	text := Dialect{TextTime: true}.Time(ts)
	require.Equal(t, "2024-05-06 06:08:09.000000010+00:00", text)

	var back time.Time
	require.NoError(t, scanTime(&back).Scan(text))
	require.True(t, ts.Equal(back))

	require.NoError(t, scanTime(&back).Scan([]byte("2024-05-06T06:08:09Z")))
	require.Equal(t, 2024, back.Year())

	require.Error(t, scanTime(&back).Scan(42))
}

func TestRotateRefreshToken_Conditional(t *testing.T) {
	s, mock := newMockStore(t)
	expiry := time.Now().Add(time.Hour)

	q := `(?s)^UPDATE refresh_tokens SET token_hash = \$1, expires_at = \$2, updated_at = \$3\s+WHERE id = \$4 AND token_hash = \$5$`

	mock.ExpectExec(q).
		WithArgs("new", sqlmock.AnyArg(), sqlmock.AnyArg(), "rt1", "old").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.RefreshTokens().RotateRefreshToken(context.Background(), "rt1", "old", "new", expiry))

	mock.ExpectExec(q).
		WithArgs("newer", sqlmock.AnyArg(), sqlmock.AnyArg(), "rt1", "old").
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := s.RefreshTokens().RotateRefreshToken(context.Background(), "rt1", "old", "newer", expiry)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`^INSERT INTO users`).WillReturnError(errUnique)
	err := s.Users().CreateUser(context.Background(), domain.User{ID: "u1"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestGetUserByID_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`FROM users WHERE id = \$1$`).WithArgs("nope").WillReturnError(sql.ErrNoRows)
	_, err := s.Users().GetUserByID(context.Background(), "nope")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestListExpenses_QueryShape(t *testing.T) {
	s, mock := newMockStore(t)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	f := domain.ExpenseFilter{
		Category:   domain.CategoryFood,
		DateFrom:   &from,
		Query:      "50%_off",
		SortBy:     domain.SortByTotalAmount,
		Descending: true,
		Limit:      5,
		Offset:     10,
	}
	like := `%50\%\_off%`

	mock.ExpectQuery(`^SELECT COUNT\(\*\) FROM expenses WHERE user_id = \$1 AND category = \$2 AND date >= \$3 AND LOWER\(description\) LIKE \$4 ESCAPE '\\'$`).
		WithArgs("u1", "FOOD", from, like).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	now := time.Now().UTC()
	mock.ExpectQuery(`ORDER BY total_amount DESC, id DESC LIMIT \$5 OFFSET \$6$`).
		WithArgs("u1", "FOOD", from, like, 5, 10).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "description", "category", "is_recurring",
			"amount", "tax_percent", "total_amount", "date", "created_at", "updated_at",
		}).AddRow("e1", "u1", "50%_off lunch", "FOOD", false, int64(1000), int64(0), int64(1000), from, now, now))

	rows, total, err := s.Expenses().ListExpenses(context.Background(), "u1", f)
	require.NoError(t, err)
	require.Equal(t, 11, total)
	require.Len(t, rows, 1)
	require.Equal(t, domain.Hundredths(1000), rows[0].TotalAmount)
	require.Equal(t, domain.CategoryFood, rows[0].Category)
}

func TestOrderClause_UnknownSortFallsBackToDate(t *testing.T) {
	require.Equal(t, "date ASC, id ASC", orderClause(domain.ExpenseFilter{SortBy: "password_hash"}))
}

func TestWithTx_CommitAndRollback(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`^DELETE FROM refresh_tokens WHERE user_id = \$1$`).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()
	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		return tx.RefreshTokens().DeleteAllRefreshTokensForUser(ctx, "u1")
	}))

	boom := errors.New("boom")
	mock.ExpectBegin()
	mock.ExpectRollback()
	require.ErrorIs(t, s.WithTx(ctx, func(tx store.Tx) error { return boom }), boom)
}
