package services

import (
	"context"
	"delivery-schedule-service/internal/domain"
	"delivery-schedule-service/internal/platform/obs"
	"delivery-schedule-service/internal/ports"
	"fmt"
)

type BookingResult struct {
	DelivID int64
	CustID  int64
}

// CreateBooking validates req, then inserts the customer and the delivery as one unit.
//
// The unit is: insert customer, lock the driver, look for overlapping deliveries,
// insert the delivery. A conflict or any storage failure rolls the whole unit back,
// so the customer row never outlives a rejected booking.
func (s *ScheduleService) CreateBooking(
	ctx context.Context,
	caller domain.Caller,
	req domain.BookingRequest,
) (_ BookingResult, err error) {
	defer obs.Time(ctx, "booking.create")(&err)

	if !caller.Role.CanBook() {
		return BookingResult{}, fmt.Errorf("create booking: %w: role %q may not create bookings", domain.ErrForbidden, caller.Role)
	}

	customer, delivery, err := req.Validate(s.loc())
	if err != nil {
		return BookingResult{}, fmt.Errorf("create booking: %w", err)
	}

	now := s.now()
	if delivery.Status == domain.StatusCompleted {
		delivery.Complete(now)
	}

	requested := delivery.Interval()

	err = s.Store.WithinTx(ctx, func(ctx context.Context, tx ports.BookingTx) error {
		custID, err := tx.InsertCustomer(ctx, customer)
		if err != nil {
			return fmt.Errorf("insert customer: %w", err)
		}

		if err := tx.LockDriver(ctx, delivery.UserID); err != nil {
			return fmt.Errorf("lock driver %d: %w", delivery.UserID, err)
		}

		existing, err := tx.FindOverlapping(ctx, delivery.UserID, requested)
		if err != nil {
			return fmt.Errorf("find overlapping: %w", err)
		}
		for _, e := range existing {
			if e.Interval().Overlaps(requested) {
				return s.conflict(delivery.UserID, e)
			}
		}

		delivery.CustID = custID
		delivID, err := tx.InsertDelivery(ctx, delivery)
		if err != nil {
			return fmt.Errorf("insert delivery: %w", err)
		}

		customer.CustID = custID
		delivery.DelivID = delivID
		return nil
	})
	if err != nil {
		return BookingResult{}, classify("create booking", err)
	}

	s.afterWrite(ctx, domain.NewDeliveryEvent(domain.EventDeliveryBooked, delivery, now))

	return BookingResult{DelivID: delivery.DelivID, CustID: customer.CustID}, nil
}

func (s *ScheduleService) conflict(driverID int64, existing *domain.Delivery) error {
	const layout = "2006-01-02 15:04"
	iv := existing.Interval()
	return fmt.Errorf(
		"%w: driver %d is already booked from %s to %s",
		domain.ErrConflict,
		driverID,
		iv.Start.In(s.loc()).Format(layout),
		iv.End.In(s.loc()).Format(layout),
	)
}
