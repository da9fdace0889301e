package repositories

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres (pgx stdlib driver). Booking units for one driver are serialized with a
// transaction-scoped advisory lock keyed by the driver id.
var Postgres = Dialect{
	Name:        "postgres",
	numbered:    true,
	intervalEnd: "scheduled_time + duration_min * INTERVAL '1 minute'",
	lockDriver:  "SELECT pg_advisory_xact_lock(?)",
	schema: []string{
		`
	CREATE TABLE IF NOT EXISTS user_table (
		user_id BIGSERIAL PRIMARY KEY,
		user_name TEXT NOT NULL,
		user_email TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL CHECK (role IN ('admin', 'scheduler', 'driver'))
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS customer_info (
		cust_id BIGSERIAL PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		cust_email TEXT NOT NULL,
		cust_phone TEXT,
		cust_address TEXT NOT NULL,
		cust_city TEXT NOT NULL,
		cust_zip TEXT NOT NULL
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS deliveries_table (
		deliv_id BIGSERIAL PRIMARY KEY,
		del_address TEXT NOT NULL,
		del_city TEXT NOT NULL,
		del_zip TEXT NOT NULL,
		scheduled_time TIMESTAMPTZ NOT NULL,
		duration_min INTEGER NOT NULL CHECK (duration_min > 0),
		deliv_status TEXT NOT NULL DEFAULT 'pending' CHECK (deliv_status IN ('pending', 'completed')),
		notes TEXT,
		completed_at TIMESTAMPTZ,
		cust_id BIGINT NOT NULL REFERENCES customer_info (cust_id),
		user_id BIGINT NOT NULL REFERENCES user_table (user_id)
	);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_deliveries_user_time
	ON deliveries_table (user_id, scheduled_time);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_deliveries_time
	ON deliveries_table (scheduled_time);
	`,
	},
	afterSeed: `
	SELECT setval(pg_get_serial_sequence('user_table', 'user_id'), (SELECT MAX(user_id) FROM user_table));
	`,
	encodeTime: func(t time.Time) any { return t.UTC() },
	classify:   classifyPostgres,
}

func classifyPostgres(err error) string {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return ""
	}

	switch pgErr.Code {
	case "23505":
		return "unique violation"
	case "23503":
		return "foreign key violation"
	case "23514", "23502":
		return "constraint violation"
	case "40001":
		return "serialization failure"
	case "40P01":
		return "deadlock"
	case "57014":
		return "canceled"
	}
	return "database error"
}
