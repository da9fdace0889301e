package repositories

import (
	"context"
	"database/sql"
	"delivery-schedule-service/internal/domain"
	"delivery-schedule-service/internal/platform/obs"
	"errors"
	"fmt"
	"time"
)

// Return deliveries starting in [from, to), ordered by start time.
func (s *SQLStore) ListDeliveries(
	ctx context.Context,
	from, to time.Time,
	driverID *int64,
) (_ []*domain.Delivery, err error) {
	defer obs.Time(ctx, "deliveries.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql store: DB is nil")
	}

	args := []any{s.Dialect.encodeTime(from), s.Dialect.encodeTime(to)}
	filter := ""
	if driverID != nil {
		filter = "AND user_id = ?"
		args = append(args, *driverID)
	}

	query := fmt.Sprintf(`
	SELECT %s
	FROM deliveries_table
	WHERE scheduled_time >= ?
		AND scheduled_time < ?
		%s
	ORDER BY scheduled_time, deliv_id;
	`, deliveryColumns, filter)

	rows, err := s.DB.QueryContext(ctx, s.Dialect.rebind(query), args...)
	if err != nil {
		return nil, s.Dialect.wrap("list deliveries: query deliveries_table", err)
	}
	defer rows.Close()

	out, err := scanDeliveries(rows)
	if err != nil {
		return nil, s.Dialect.wrap("list deliveries", err)
	}
	return out, nil
}

// Return deliveries starting in [from, to) joined with their customers.
func (s *SQLStore) ListDeliveryViews(
	ctx context.Context,
	from, to time.Time,
	driverID *int64,
) (_ []*domain.DeliveryView, err error) {
	defer obs.Time(ctx, "deliveries.ListViews")(&err)

	if s.DB == nil {
		return nil, errors.New("sql store: DB is nil")
	}

	args := []any{s.Dialect.encodeTime(from), s.Dialect.encodeTime(to)}
	filter := ""
	if driverID != nil {
		filter = "AND d.user_id = ?"
		args = append(args, *driverID)
	}

	query := fmt.Sprintf(`
	SELECT
		d.deliv_id,
		d.user_id,
		d.cust_id,
		d.del_address,
		d.del_city,
		d.del_zip,
		d.scheduled_time,
		d.duration_min,
		d.deliv_status,
		d.notes,
		d.completed_at,
		c.first_name,
		c.last_name,
		c.cust_email,
		c.cust_phone,
		c.cust_address,
		c.cust_city,
		c.cust_zip
	FROM deliveries_table d
	JOIN customer_info c ON c.cust_id = d.cust_id
	WHERE d.scheduled_time >= ?
		AND d.scheduled_time < ?
		%s
	ORDER BY d.scheduled_time, d.deliv_id;
	`, filter)

	rows, err := s.DB.QueryContext(ctx, s.Dialect.rebind(query), args...)
	if err != nil {
		return nil, s.Dialect.wrap("list delivery views: query deliveries_table", err)
	}
	defer rows.Close()

	out := make([]*domain.DeliveryView, 0, 16)
	for rows.Next() {
		var (
			c     domain.Customer
			phone sql.NullString
		)
		d, err := scanDelivery(rows, &c.FirstName, &c.LastName, &c.Email, &phone, &c.Address, &c.City, &c.Zip)
		if err != nil {
			return nil, s.Dialect.wrap("list delivery views: scan row", err)
		}
		c.CustID = d.CustID
		c.Phone = phone.String
		out = append(out, &domain.DeliveryView{Delivery: *d, Customer: c})
	}
	if err := rows.Err(); err != nil {
		return nil, s.Dialect.wrap("list delivery views: row iteration", err)
	}

	return out, nil
}

func (s *SQLStore) GetDelivery(ctx context.Context, delivID int64) (*domain.Delivery, error) {
	if s.DB == nil {
		return nil, errors.New("sql store: DB is nil")
	}

	query := fmt.Sprintf(`
	SELECT %s
	FROM deliveries_table
	WHERE deliv_id = ?;
	`, deliveryColumns)

	d, err := scanDelivery(s.DB.QueryRowContext(ctx, s.Dialect.rebind(query), delivID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get delivery %d: %w", delivID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, s.Dialect.wrap(fmt.Sprintf("get delivery %d", delivID), err)
	}

	return d, nil
}

func (s *SQLStore) MarkCompleted(ctx context.Context, delivID int64, at time.Time) error {
	if s.DB == nil {
		return errors.New("sql store: DB is nil")
	}

	query := `
	UPDATE deliveries_table
	SET deliv_status = ?,
		completed_at = ?
	WHERE deliv_id = ?;
	`

	res, err := s.DB.ExecContext(ctx, s.Dialect.rebind(query), string(domain.StatusCompleted), s.Dialect.encodeTime(at), delivID)
	if err != nil {
		return s.Dialect.wrap(fmt.Sprintf("complete delivery %d", delivID), err)
	}

	return affectedOne(res, delivID, s.Dialect)
}

func (s *SQLStore) DeleteDelivery(ctx context.Context, delivID int64) error {
	if s.DB == nil {
		return errors.New("sql store: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, s.Dialect.rebind(`DELETE FROM deliveries_table WHERE deliv_id = ?;`), delivID)
	if err != nil {
		return s.Dialect.wrap(fmt.Sprintf("delete delivery %d", delivID), err)
	}

	return affectedOne(res, delivID, s.Dialect)
}

func affectedOne(res sql.Result, delivID int64, d Dialect) error {
	n, err := res.RowsAffected()
	if err != nil {
		return d.wrap("rows affected", err)
	}
	if n == 0 {
		return fmt.Errorf("delivery %d: %w", delivID, domain.ErrNotFound)
	}
	return nil
}
