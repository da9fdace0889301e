package services

import (
	"context"
	"delivery-schedule-service/internal/domain"
	"delivery-schedule-service/internal/platform/obs"
	"delivery-schedule-service/internal/ports"
	"errors"
	"fmt"
	"log"
	"time"
)

// ScheduleService runs the booking engine and the schedule read/write operations.
// Cache and Events are optional.
type ScheduleService struct {
	Store      ports.BookingStore
	Deliveries ports.DeliveryRepository
	Customers  ports.CustomerRepository
	Users      ports.UserRepository
	Cache      ports.ScheduleCache
	Events     ports.EventPublisher

	// Location for request times without an offset and for returned times.
	Location *time.Location
	Now      func() time.Time

	// Upper bound on post-commit cache invalidation and event publishing.
	NotifyTimeout time.Duration
}

const defaultNotifyTimeout = 2 * time.Second

func NewScheduleService(
	store ports.BookingStore,
	deliveries ports.DeliveryRepository,
	customers ports.CustomerRepository,
	users ports.UserRepository,
	loc *time.Location,
) *ScheduleService {
	return &ScheduleService{
		Store:      store,
		Deliveries: deliveries,
		Customers:  customers,
		Users:      users,
		Location:   loc,
		Now:        time.Now,

		NotifyTimeout: defaultNotifyTimeout,
	}
}

func (s *ScheduleService) loc() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

// now is truncated to whole seconds, the precision every store keeps.
func (s *ScheduleService) now() time.Time {
	clock := s.Now
	if clock == nil {
		clock = time.Now
	}
	return clock().Truncate(time.Second).In(s.loc())
}

// afterWrite announces a committed change and drops cached week listings.
// The change is already durable, so failures are logged only, and the whole step
// is bounded by NotifyTimeout so a slow broker cannot hold the response.
func (s *ScheduleService) afterWrite(ctx context.Context, ev domain.DeliveryEvent) {
	timeout := s.NotifyTimeout
	if timeout <= 0 {
		timeout = defaultNotifyTimeout
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	reqID := obs.RequestID(ctx)

	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx); err != nil {
			log.Printf("req_id=%s op=schedule.cache.Invalidate deliv_id=%d err=%v", reqID, ev.DelivID, err)
		}
	}

	if s.Events != nil {
		if err := s.Events.Publish(ctx, ev); err != nil {
			log.Printf("req_id=%s op=events.Publish type=%s deliv_id=%d err=%v", reqID, ev.Type, ev.DelivID, err)
		}
	}
}

var classified = []error{
	domain.ErrValidation,
	domain.ErrForbidden,
	domain.ErrConflict,
	domain.ErrNotFound,
	domain.ErrStorage,
}

// classify prefixes err with op and marks anything unrecognised as a storage failure.
func classify(op string, err error) error {
	for _, known := range classified {
		if errors.Is(err, known) {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrStorage, op, err)
}

// localize rewrites times into the schedule location in place.
func (s *ScheduleService) localize(d *domain.Delivery) {
	d.ScheduledTime = d.ScheduledTime.In(s.loc())
	if d.CompletedAt != nil {
		at := d.CompletedAt.In(s.loc())
		d.CompletedAt = &at
	}
}
