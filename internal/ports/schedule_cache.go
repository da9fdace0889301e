package ports

import (
	"context"
	"delivery-schedule-service/internal/domain"
)

// Optional read-through cache for week listings.
type ScheduleCache interface {
	// Look up a week listing. The returned token identifies the cache generation
	// observed by this lookup and must be passed back to PutWeek on a miss.
	GetWeek(ctx context.Context, key string) (deliveries []*domain.Delivery, token string, ok bool, err error)
	PutWeek(ctx context.Context, token string, deliveries []*domain.Delivery) error
	// Drop every cached listing. Called after each committed write.
	Invalidate(ctx context.Context) error
}
