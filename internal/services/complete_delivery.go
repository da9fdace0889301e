package services

import (
	"context"
	"delivery-schedule-service/internal/domain"
	"delivery-schedule-service/internal/platform/obs"
	"fmt"
)

// CompleteDelivery marks a delivery completed. Drivers may only complete their own.
// Completing an already completed delivery re-stamps completed_at.
func (s *ScheduleService) CompleteDelivery(ctx context.Context, caller domain.Caller, delivID int64) (_ *domain.Delivery, err error) {
	defer obs.Time(ctx, "deliveries.complete")(&err)

	if delivID <= 0 {
		return nil, fmt.Errorf("complete delivery: %w: deliv_id must be a positive integer", domain.ErrValidation)
	}

	d, err := s.Deliveries.GetDelivery(ctx, delivID)
	if err != nil {
		return nil, classify("complete delivery", err)
	}

	if caller.IsDriver() && d.UserID != caller.UserID {
		return nil, fmt.Errorf("complete delivery: %w: delivery %d belongs to another driver", domain.ErrForbidden, delivID)
	}

	at := s.now()
	if err := s.Deliveries.MarkCompleted(ctx, delivID, at); err != nil {
		return nil, classify("complete delivery", err)
	}
	d.Complete(at)

	s.afterWrite(ctx, domain.NewDeliveryEvent(domain.EventDeliveryCompleted, d, at))

	s.localize(d)
	return d, nil
}
