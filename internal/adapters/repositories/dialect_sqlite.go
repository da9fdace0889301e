package repositories

import (
	"errors"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLite (modernc driver), used for local runs and tests. Times are stored as unix
// seconds. The customer insert that opens every booking unit takes the database write
// lock, so booking units are serialized without an explicit driver lock.
var SQLite = Dialect{
	Name:        "sqlite",
	intervalEnd: "scheduled_time + duration_min * 60",
	schema: []string{
		`
	CREATE TABLE IF NOT EXISTS user_table (
		user_id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_name TEXT NOT NULL,
		user_email TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL CHECK (role IN ('admin', 'scheduler', 'driver'))
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS customer_info (
		cust_id INTEGER PRIMARY KEY AUTOINCREMENT,
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
		deliv_id INTEGER PRIMARY KEY AUTOINCREMENT,
		del_address TEXT NOT NULL,
		del_city TEXT NOT NULL,
		del_zip TEXT NOT NULL,
		scheduled_time INTEGER NOT NULL,
		duration_min INTEGER NOT NULL CHECK (duration_min > 0),
		deliv_status TEXT NOT NULL DEFAULT 'pending' CHECK (deliv_status IN ('pending', 'completed')),
		notes TEXT,
		completed_at INTEGER,
		cust_id INTEGER NOT NULL REFERENCES customer_info (cust_id),
		user_id INTEGER NOT NULL REFERENCES user_table (user_id)
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
	encodeTime: func(t time.Time) any { return t.Unix() },
	classify:   classifySQLite,
}

func classifySQLite(err error) string {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return ""
	}

	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return "unique violation"
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return "foreign key violation"
	}

	switch se.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return "busy"
	case sqlite3.SQLITE_CONSTRAINT:
		return "constraint violation"
	}
	return "database error"
}
