package service

import (
	"net/url"
	"strings"
	"testing"

	"github.com/aussiebroadwan/tally/internal/tally/domain"
	"github.com/aussiebroadwan/tally/pkg/apperr"
	"github.com/stretchr/testify/require"
)

func detailsOf(t *testing.T, err error) []string {
	t.Helper()
	requireKind(t, apperr.KindValidation, err)
	d, ok := apperr.From(err).Details.([]string)
	require.True(t, ok)
	return d
}

func TestRegisterInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   RegisterInput
		want []string
	}{
		{"ok", RegisterInput{"a@b.co", "abc", "Passw0rd"}, nil},
		{"missing everything", RegisterInput{}, []string{
			`"email" is required`, `"username" is required`, `"password" is required`,
		}},
		{"email without tld", RegisterInput{"a@b", "abc", "Passw0rd"}, []string{`"email" must be a valid email`}},
		{"email with display name", RegisterInput{"Al <a@b.co>", "abc", "Passw0rd"}, []string{`"email" must be a valid email`}},
		{"username too short", RegisterInput{"a@b.co", "ab", "Passw0rd"}, []string{`"username" length must be at least 3 characters long`}},
		{"username too long", RegisterInput{"a@b.co", strings.Repeat("a", 31), "Passw0rd"}, []string{`"username" length must be less than or equal to 30 characters long`}},
		{"username symbols", RegisterInput{"a@b.co", "a_b", "Passw0rd"}, []string{`"username" must only contain alpha-numeric characters`}},
		{"password short", RegisterInput{"a@b.co", "abc", "Pa0"}, []string{`"password" length must be at least 6 characters long`}},
		{"password no upper", RegisterInput{"a@b.co", "abc", "passw0rd"}, []string{passwordPatternMessage}},
		{"password no digit", RegisterInput{"a@b.co", "abc", "Password"}, []string{passwordPatternMessage}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.in
			err := in.normalize()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.Equal(t, tt.want, detailsOf(t, err))
		})
	}
}

func TestExpenseInput(t *testing.T) {
	t.Parallel()

	valid := ExpenseInput{
		Description: "  Lunch  ",
		Category:    "FOOD",
		Amount:      ptr(12.34),
		TaxPercent:  ptr(10.0),
		Date:        "2024-03-01",
	}

	f, err := valid.parse()
	require.NoError(t, err)
	require.Equal(t, "Lunch", f.description)
	require.Equal(t, domain.Hundredths(1234), f.amount)
	require.Equal(t, domain.Hundredths(1000), f.taxPercent)
	require.False(t, f.recurring)
	require.Equal(t, mustDate(t, "2024-03-01"), f.date)

	t.Run("timestamps with offsets become UTC", func(t *testing.T) {
		in := valid
		in.Date = "2024-03-01T10:00:00+02:00"
		f, err := in.parse()
		require.NoError(t, err)
		require.Equal(t, 8, f.date.Hour())
	})

	t.Run("tax defaults to zero", func(t *testing.T) {
		in := valid
		in.TaxPercent = nil
		f, err := in.parse()
		require.NoError(t, err)
		require.Zero(t, f.taxPercent)
	})

	bad := []struct {
		name   string
		mutate func(*ExpenseInput)
		want   string
	}{
		{"blank description", func(in *ExpenseInput) { in.Description = "   " }, `"description" is required`},
		{"long description", func(in *ExpenseInput) { in.Description = strings.Repeat("x", 501) }, `"description" length must be less than or equal to 500 characters long`},
		{"unknown category", func(in *ExpenseInput) { in.Category = "food" }, `"category" must be one of [FOOD, TRANSPORT, UTILITIES, ENTERTAINMENT, OTHER]`},
		{"missing amount", func(in *ExpenseInput) { in.Amount = nil }, `"amount" is required`},
		{"zero amount", func(in *ExpenseInput) { in.Amount = ptr(0.0) }, `"amount" must be a positive number`},
		{"negative amount", func(in *ExpenseInput) { in.Amount = ptr(-5.0) }, `"amount" must be a positive number`},
		{"tax over 100", func(in *ExpenseInput) { in.TaxPercent = ptr(100.01) }, `"taxPercent" must be less than or equal to 100`},
		{"negative tax", func(in *ExpenseInput) { in.TaxPercent = ptr(-1.0) }, `"taxPercent" must be greater than or equal to 0`},
		{"bad date", func(in *ExpenseInput) { in.Date = "01/03/2024" }, `"date" must be in ISO 8601 date format`},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := in.parse()
			require.Equal(t, []string{tt.want}, detailsOf(t, err))
		})
	}
}

func TestParseListQuery(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		q, err := ParseListQuery(url.Values{})
		require.NoError(t, err)
		require.Equal(t, 1, q.Page)
		require.Equal(t, 5, q.Limit)
		require.Equal(t, domain.SortByDate, q.Filter.SortBy)
		require.True(t, q.Filter.Descending)
		require.Equal(t, 5, q.Filter.Limit)
		require.Zero(t, q.Filter.Offset)
	})

	t.Run("everything", func(t *testing.T) {
		q, err := ParseListQuery(url.Values{
			"page":     {"3"},
			"limit":    {"10"},
			"category": {"TRANSPORT"},
			"dateFrom": {"2024-01-01"},
			"dateTo":   {"2024-01-31T23:59:59Z"},
			"sortBy":   {"totalAmount"},
			"order":    {"asc"},
			"q":        {"  bus  "},
		})
		require.NoError(t, err)
		require.Equal(t, 20, q.Filter.Offset)
		require.Equal(t, 10, q.Filter.Limit)
		require.Equal(t, domain.CategoryTransport, q.Filter.Category)
		require.Equal(t, mustDate(t, "2024-01-01"), *q.Filter.DateFrom)
		require.Equal(t, 31, q.Filter.DateTo.Day())
		require.Equal(t, domain.SortByTotalAmount, q.Filter.SortBy)
		require.False(t, q.Filter.Descending)
		require.Equal(t, "bus", q.Filter.Query)
	})

	t.Run("rejects", func(t *testing.T) {
		_, err := ParseListQuery(url.Values{
			"page":   {"0"},
			"limit":  {"51"},
			"sortBy": {"description"},
			"order":  {"sideways"},
			"q":      {strings.Repeat("q", 101)},
			"dateTo": {"yesterday"},
		})
		require.ElementsMatch(t, []string{
			`"page" must be greater than or equal to 1`,
			`"limit" must be less than or equal to 50`,
			`"sortBy" must be one of [date, amount, totalAmount, createdAt]`,
			`"order" must be one of [asc, desc]`,
			`"q" length must be less than or equal to 100 characters long`,
			`"dateTo" must be in ISO 8601 date format`,
		}, detailsOf(t, err))
	})

	t.Run("non numeric page", func(t *testing.T) {
		_, err := ParseListQuery(url.Values{"page": {"two"}})
		require.Equal(t, []string{`"page" must be a number`}, detailsOf(t, err))
	})
}
