package events

import (
	"context"
	"delivery-schedule-service/internal/domain"
	"delivery-schedule-service/internal/platform/obs"
	"log"
)

// LogPublisher writes events to the process log. Used when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, ev domain.DeliveryEvent) error {
	log.Printf("req_id=%s event=%s deliv_id=%d cust_id=%d user_id=%d start=%s duration_min=%d",
		obs.RequestID(ctx), ev.Type, ev.DelivID, ev.CustID, ev.UserID,
		ev.ScheduledTime.UTC().Format("2006-01-02T15:04:05Z"), ev.DurationMin)
	return nil
}
