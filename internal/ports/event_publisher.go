package ports

import (
	"context"
	"delivery-schedule-service/internal/domain"
)

// Contract for announcing committed delivery changes to other systems.
type EventPublisher interface {
	Publish(ctx context.Context, ev domain.DeliveryEvent) error
}
