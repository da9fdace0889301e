package handlers

import (
	"context"
	"delivery-schedule-service/internal/domain"
	"delivery-schedule-service/internal/platform/auth"
	"delivery-schedule-service/internal/services"
	"net/http"
)

// Scheduler is the service surface the schedule handlers depend on.
type Scheduler interface {
	CreateBooking(ctx context.Context, caller domain.Caller, req domain.BookingRequest) (services.BookingResult, error)
	ListDeliveriesForWeek(ctx context.Context, q services.WeekQuery) ([]*domain.Delivery, domain.Interval, error)
	ListDeliveriesForDay(ctx context.Context, caller domain.Caller, date, driver string) ([]*domain.DeliveryView, domain.Interval, error)
	CompleteDelivery(ctx context.Context, caller domain.Caller, delivID int64) (*domain.Delivery, error)
	DeleteDelivery(ctx context.Context, caller domain.Caller, delivID int64) error
	ListCustomers(ctx context.Context, caller domain.Caller) ([]*domain.Customer, error)
	ListUsers(ctx context.Context, caller domain.Caller) ([]*domain.User, error)
}

// ScheduleHandler exposes the booking and schedule endpoints.
type ScheduleHandler struct {
	Svc Scheduler
}

// caller returns the identity attached by the auth middleware, or writes 401.
func caller(w http.ResponseWriter, r *http.Request) (domain.Caller, bool) {
	c, ok := auth.CallerFrom(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return domain.Caller{}, false
	}
	return c, true
}
