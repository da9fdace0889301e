package repositories

import (
	"context"
	"delivery-schedule-service/internal/domain"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Dialect captures what differs between the SQL backends. Queries are written once
// with "?" placeholders and rebound for backends that use numbered parameters.
type Dialect struct {
	Name string

	// numbered rewrites "?" to "$1", "$2", ...
	numbered bool

	// SQL expression for the exclusive end of a delivery row's interval,
	// comparable with values produced by encodeTime.
	intervalEnd string

	// Statement taking a per-driver lock until the transaction ends; empty when the
	// backend already serializes writers.
	lockDriver string

	schema []string

	// Statement run after seeding rows with explicit ids; may be empty.
	afterSeed string

	encodeTime func(time.Time) any

	// Generic, non-sensitive category for a driver error.
	classify func(error) string
}

// DialectFor returns the dialect registered under name ("postgres" or "sqlite").
func DialectFor(name string) (Dialect, error) {
	switch name {
	case Postgres.Name:
		return Postgres, nil
	case SQLite.Name:
		return SQLite, nil
	}
	return Dialect{}, fmt.Errorf("unsupported sql dialect %q", name)
}

func (d Dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 16)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// wrap marks err as a storage failure with a generic category; the driver error stays in the chain for logs.
func (d Dialect) wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %s: %w", domain.ErrStorage, op, d.category(err), err)
}

func (d Dialect) category(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	}
	if d.classify != nil {
		if c := d.classify(err); c != "" {
			return c
		}
	}
	return "unavailable"
}

// timeValue scans both TIMESTAMPTZ (time.Time) and unix-seconds INTEGER columns.
type timeValue struct {
	t     *time.Time
	valid *bool
}

func (v timeValue) Scan(src any) error {
	switch x := src.(type) {
	case nil:
		if v.valid == nil {
			return errors.New("scan time: unexpected NULL")
		}
		*v.valid = false
		return nil
	case time.Time:
		*v.t = x
	case int64:
		*v.t = time.Unix(x, 0).UTC()
	default:
		return fmt.Errorf("scan time: unsupported type %T", src)
	}

	if v.valid != nil {
		*v.valid = true
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
