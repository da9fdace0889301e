package services

import (
	"context"
	"delivery-schedule-service/internal/domain"
	"delivery-schedule-service/internal/platform/obs"
	"fmt"
)

// DeleteDelivery removes a delivery. The customer row it referenced is kept.
func (s *ScheduleService) DeleteDelivery(ctx context.Context, caller domain.Caller, delivID int64) (err error) {
	defer obs.Time(ctx, "deliveries.delete")(&err)

	if !caller.Role.CanBook() {
		return fmt.Errorf("delete delivery: %w: role %q may not delete deliveries", domain.ErrForbidden, caller.Role)
	}
	if delivID <= 0 {
		return fmt.Errorf("delete delivery: %w: deliv_id must be a positive integer", domain.ErrValidation)
	}

	d, err := s.Deliveries.GetDelivery(ctx, delivID)
	if err != nil {
		return classify("delete delivery", err)
	}

	if err := s.Deliveries.DeleteDelivery(ctx, delivID); err != nil {
		return classify("delete delivery", err)
	}

	s.afterWrite(ctx, domain.NewDeliveryEvent(domain.EventDeliveryDeleted, d, s.now()))
	return nil
}
