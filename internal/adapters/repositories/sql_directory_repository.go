package repositories

import (
	"context"
	"database/sql"
	"delivery-schedule-service/internal/domain"
	"errors"
)

// Return all customers, newest first.
func (s *SQLStore) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	if s.DB == nil {
		return nil, errors.New("sql store: DB is nil")
	}

	query := `
	SELECT
		cust_id,
		first_name,
		last_name,
		cust_email,
		cust_phone,
		cust_address,
		cust_city,
		cust_zip
	FROM customer_info
	ORDER BY cust_id DESC;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, s.Dialect.wrap("list customers: query customer_info table", err)
	}
	defer rows.Close()

	customers := make([]*domain.Customer, 0, 64)
	for rows.Next() {
		var c domain.Customer
		var phone sql.NullString
		if err := rows.Scan(&c.CustID, &c.FirstName, &c.LastName, &c.Email, &phone, &c.Address, &c.City, &c.Zip); err != nil {
			return nil, s.Dialect.wrap("list customers: scan row", err)
		}
		c.Phone = phone.String
		customers = append(customers, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, s.Dialect.wrap("list customers: row iteration", err)
	}

	return customers, nil
}

// Return all users. Credentials are owned by the access-control layer and never selected here.
func (s *SQLStore) ListUsers(ctx context.Context) ([]*domain.User, error) {
	if s.DB == nil {
		return nil, errors.New("sql store: DB is nil")
	}

	query := `
	SELECT
		user_id,
		user_name,
		user_email,
		role
	FROM user_table
	ORDER BY user_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, s.Dialect.wrap("list users: query user_table", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0, 16)
	for rows.Next() {
		var u domain.User
		var role string
		if err := rows.Scan(&u.UserID, &u.Name, &u.Email, &role); err != nil {
			return nil, s.Dialect.wrap("list users: scan row", err)
		}
		u.Role = domain.Role(role)
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, s.Dialect.wrap("list users: row iteration", err)
	}

	return users, nil
}
