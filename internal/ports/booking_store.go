package ports

import (
	"context"
	"delivery-schedule-service/internal/domain"
)

// Statements available inside one booking unit. Every call runs on the same transaction.
type BookingTx interface {
	// Insert a customer and return its generated id.
	InsertCustomer(ctx context.Context, c *domain.Customer) (int64, error)
	// Serialize booking units for one driver until the transaction ends.
	LockDriver(ctx context.Context, driverID int64) error
	// Return the driver's deliveries whose intervals overlap iv.
	FindOverlapping(ctx context.Context, driverID int64, iv domain.Interval) ([]*domain.Delivery, error)
	// Insert a delivery and return its generated id.
	InsertDelivery(ctx context.Context, d *domain.Delivery) (int64, error)
}

// Port: a boundary for running the booking unit atomically.
type BookingStore interface {
	// Run fn in a transaction. The transaction commits only if fn returns nil
	// and is rolled back on every other exit path, panics included.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx BookingTx) error) error
}
