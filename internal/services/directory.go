package services

import (
	"context"
	"delivery-schedule-service/internal/domain"
	"delivery-schedule-service/internal/platform/obs"
	"fmt"
)

// ListCustomers is open to every authenticated role.
func (s *ScheduleService) ListCustomers(ctx context.Context, _ domain.Caller) (_ []*domain.Customer, err error) {
	defer obs.Time(ctx, "customers.list")(&err)

	customers, err := s.Customers.ListCustomers(ctx)
	if err != nil {
		return nil, classify("list customers", err)
	}
	return customers, nil
}

// ListUsers is restricted to admins.
func (s *ScheduleService) ListUsers(ctx context.Context, caller domain.Caller) (_ []*domain.User, err error) {
	defer obs.Time(ctx, "users.list")(&err)

	if caller.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("list users: %w: admin role required", domain.ErrForbidden)
	}

	users, err := s.Users.ListUsers(ctx)
	if err != nil {
		return nil, classify("list users", err)
	}
	return users, nil
}
