package ports

import (
	"context"
	"delivery-schedule-service/internal/domain"
	"time"
)

// Port: a boundary for reading and updating committed deliveries.
type DeliveryRepository interface {
	// List deliveries starting in [from, to), ordered by start. A nil driverID means every driver.
	ListDeliveries(ctx context.Context, from, to time.Time, driverID *int64) ([]*domain.Delivery, error)
	// Same window semantics as ListDeliveries, joined with each delivery's customer.
	ListDeliveryViews(ctx context.Context, from, to time.Time, driverID *int64) ([]*domain.DeliveryView, error)
	// Return one delivery or domain.ErrNotFound.
	GetDelivery(ctx context.Context, delivID int64) (*domain.Delivery, error)
	// Set status completed and stamp completed_at. Returns domain.ErrNotFound for unknown ids.
	MarkCompleted(ctx context.Context, delivID int64, at time.Time) error
	// Remove a delivery. Returns domain.ErrNotFound for unknown ids.
	DeleteDelivery(ctx context.Context, delivID int64) error
}
