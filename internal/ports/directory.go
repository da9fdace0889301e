package ports

import (
	"context"
	"delivery-schedule-service/internal/domain"
)

type CustomerRepository interface {
	ListCustomers(ctx context.Context) ([]*domain.Customer, error)
}

type UserRepository interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
