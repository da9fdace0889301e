package repositories

import (
	"context"
	"database/sql"
	"delivery-schedule-service/internal/domain"
	"delivery-schedule-service/internal/platform/obs"
	"delivery-schedule-service/internal/ports"
	"errors"
	"fmt"
	"time"
)

// SQL-backed implementation of the BookingStore, DeliveryRepository,
// CustomerRepository and UserRepository ports.
type SQLStore struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLStore(db *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{DB: db, Dialect: dialect}
}

const deliveryColumns = `
		deliv_id,
		user_id,
		cust_id,
		del_address,
		del_city,
		del_zip,
		scheduled_time,
		duration_min,
		deliv_status,
		notes,
		completed_at`

// WithinTx runs fn inside one database transaction.
func (s *SQLStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx ports.BookingTx) error) (err error) {
	defer obs.Time(ctx, "store.WithinTx")(&err)

	if s.DB == nil {
		return errors.New("sql store: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return s.Dialect.wrap("begin tx", err)
	}
	// Rollback after a successful Commit is a no-op; on every other path it undoes the unit.
	defer func() { _ = tx.Rollback() }()

	if err := fn(ctx, &sqlTx{tx: tx, d: s.Dialect}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return s.Dialect.wrap("commit tx", err)
	}

	return nil
}

type sqlTx struct {
	tx *sql.Tx
	d  Dialect
}

func (t *sqlTx) InsertCustomer(ctx context.Context, c *domain.Customer) (int64, error) {
	query := `
	INSERT INTO customer_info (
		first_name,
		last_name,
		cust_email,
		cust_phone,
		cust_address,
		cust_city,
		cust_zip
	)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	RETURNING cust_id;
	`

	var id int64
	err := t.tx.QueryRowContext(ctx, t.d.rebind(query),
		c.FirstName,
		c.LastName,
		c.Email,
		nullIfEmpty(c.Phone),
		c.Address,
		c.City,
		c.Zip,
	).Scan(&id)
	if err != nil {
		return 0, t.d.wrap("insert customer", err)
	}

	return id, nil
}

func (t *sqlTx) LockDriver(ctx context.Context, driverID int64) error {
	if t.d.lockDriver == "" {
		return nil
	}

	if _, err := t.tx.ExecContext(ctx, t.d.rebind(t.d.lockDriver), driverID); err != nil {
		return t.d.wrap(fmt.Sprintf("lock driver %d", driverID), err)
	}
	return nil
}

func (t *sqlTx) FindOverlapping(ctx context.Context, driverID int64, iv domain.Interval) ([]*domain.Delivery, error) {
	// Indexed by (user_id, scheduled_time): rows starting before the requested end
	// whose own end lies after the requested start.
	query := fmt.Sprintf(`
	SELECT %s
	FROM deliveries_table
	WHERE user_id = ?
		AND scheduled_time < ?
		AND %s > ?
	ORDER BY scheduled_time, deliv_id;
	`, deliveryColumns, t.d.intervalEnd)

	rows, err := t.tx.QueryContext(ctx, t.d.rebind(query), driverID, t.d.encodeTime(iv.End), t.d.encodeTime(iv.Start))
	if err != nil {
		return nil, t.d.wrap("find overlapping: query deliveries_table", err)
	}
	defer rows.Close()

	out, err := scanDeliveries(rows)
	if err != nil {
		return nil, t.d.wrap("find overlapping", err)
	}
	return out, nil
}

func (t *sqlTx) InsertDelivery(ctx context.Context, d *domain.Delivery) (int64, error) {
	query := `
	INSERT INTO deliveries_table (
		del_address,
		del_city,
		del_zip,
		scheduled_time,
		duration_min,
		deliv_status,
		notes,
		completed_at,
		cust_id,
		user_id
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	RETURNING deliv_id;
	`

	var completedAt any
	if d.CompletedAt != nil {
		completedAt = t.d.encodeTime(*d.CompletedAt)
	}

	var id int64
	err := t.tx.QueryRowContext(ctx, t.d.rebind(query),
		d.Address,
		d.City,
		d.Zip,
		t.d.encodeTime(d.ScheduledTime),
		d.DurationMin,
		string(d.Status),
		nullIfEmpty(d.Notes),
		completedAt,
		d.CustID,
		d.UserID,
	).Scan(&id)
	if err != nil {
		return 0, t.d.wrap("insert delivery", err)
	}

	return id, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDelivery(r rowScanner, extra ...any) (*domain.Delivery, error) {
	var (
		d           domain.Delivery
		status      string
		notes       sql.NullString
		completedAt time.Time
		completed   bool
	)

	dest := []any{
		&d.DelivID,
		&d.UserID,
		&d.CustID,
		&d.Address,
		&d.City,
		&d.Zip,
		timeValue{t: &d.ScheduledTime},
		&d.DurationMin,
		&status,
		&notes,
		timeValue{t: &completedAt, valid: &completed},
	}
	if err := r.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	d.Status = domain.Status(status)
	d.Notes = notes.String
	if completed {
		d.CompletedAt = &completedAt
	}
	return &d, nil
}

func scanDeliveries(rows *sql.Rows) ([]*domain.Delivery, error) {
	out := make([]*domain.Delivery, 0, 16)
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}
	return out, nil
}
