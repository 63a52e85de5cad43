// Package sqldb holds the database/sql repositories shared by the sqlite and
// postgres drivers. Queries are written with '?' placeholders and rebound
// per Dialect.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/tally/internal/tally/store"
)

// DBTX is the subset of database/sql the repositories use. Both *sql.DB and
// *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Dialect captures what differs between the supported engines.
type Dialect struct {
	Name string

	// Numbered switches placeholders from '?' to '$1', '$2', ...
	Numbered bool

	// IsUniqueViolation reports whether err is a unique/primary key clash.
	IsUniqueViolation func(err error) bool

	// TextTime stores timestamps as fixed-width UTC strings instead of
	// native values. Needed where the column has no real time type.
	TextTime bool
}

// timeLayout sorts lexically in the same order as the instants it encodes,
// provided every value is UTC.
const timeLayout = "2006-01-02 15:04:05.000000000-07:00"

// Rebind rewrites '?' placeholders for the dialect.
func (d Dialect) Rebind(query string) string {
	if !d.Numbered {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// Time encodes t for storage.
func (d Dialect) Time(t time.Time) any {
	if d.TextTime {
		return t.UTC().Format(timeLayout)
	}
	return t.UTC()
}

// timeColumn scans either a native time or its text encoding.
type timeColumn struct{ dst *time.Time }

func scanTime(dst *time.Time) timeColumn { return timeColumn{dst: dst} }

func (c timeColumn) Scan(v any) error {
	switch x := v.(type) {
	case nil:
		*c.dst = time.Time{}
		return nil
	case time.Time:
		*c.dst = x.UTC()
		return nil
	case string:
		return c.parse(x)
	case []byte:
		return c.parse(string(x))
	default:
		return fmt.Errorf("sqldb: cannot scan %T into time", v)
	}
}

func (c timeColumn) parse(s string) error {
	for _, layout := range []string{timeLayout, time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			*c.dst = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("sqldb: unrecognised time %q", s)
}

func (d Dialect) mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if d.IsUniqueViolation != nil && d.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
	}
	return err
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// requireOneRow turns an update or delete that matched nothing into store.ErrNotFound.
func requireOneRow(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
