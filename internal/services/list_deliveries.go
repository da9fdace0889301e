package services

import (
	"context"
	"delivery-schedule-service/internal/domain"
	"delivery-schedule-service/internal/platform/obs"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WeekQuery selects one grid week. Start is used as given; WeekOf is snapped back to
// its Sunday. With neither set, the current week is used.
type WeekQuery struct {
	Driver string // "all", empty, or a driver id
	Start  string // YYYY-MM-DD
	WeekOf string // YYYY-MM-DD
}

// ParseDriverFilter returns nil for "all" or empty input, else the driver id.
func ParseDriverFilter(s string) (*int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return nil, nil
	}

	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: driver must be \"all\" or a positive integer", domain.ErrValidation)
	}
	return &id, nil
}

func (s *ScheduleService) weekStart(q WeekQuery) (time.Time, error) {
	switch {
	case strings.TrimSpace(q.Start) != "":
		return domain.ParseDate(q.Start, s.loc())
	case strings.TrimSpace(q.WeekOf) != "":
		d, err := domain.ParseDate(q.WeekOf, s.loc())
		if err != nil {
			return time.Time{}, err
		}
		return domain.StartOfWeek(d), nil
	}
	return domain.StartOfWeek(s.now()), nil
}

// ListDeliveriesForWeek returns deliveries starting in [weekStart, weekStart+7d), ordered by start.
func (s *ScheduleService) ListDeliveriesForWeek(ctx context.Context, q WeekQuery) (_ []*domain.Delivery, _ domain.Interval, err error) {
	defer obs.Time(ctx, "deliveries.week")(&err)

	driverID, err := ParseDriverFilter(q.Driver)
	if err != nil {
		return nil, domain.Interval{}, fmt.Errorf("list week: %w", err)
	}

	start, err := s.weekStart(q)
	if err != nil {
		return nil, domain.Interval{}, fmt.Errorf("list week: %w", err)
	}
	window := domain.WeekWindow(start)

	filter := "all"
	if driverID != nil {
		filter = strconv.FormatInt(*driverID, 10)
	}
	key := fmt.Sprintf("week:%s:%s:%s", filter, window.Start.Format(time.DateOnly), s.loc())

	var token string
	if s.Cache != nil {
		cached, tok, ok, err := s.Cache.GetWeek(ctx, key)
		if err == nil && ok {
			for _, d := range cached {
				s.localize(d)
			}
			return cached, window, nil
		}
		// A failing cache degrades to a direct read.
		if err == nil {
			token = tok
		}
	}

	deliveries, err := s.Deliveries.ListDeliveries(ctx, window.Start, window.End, driverID)
	if err != nil {
		return nil, domain.Interval{}, classify("list week", err)
	}

	if token != "" {
		_ = s.Cache.PutWeek(ctx, token, deliveries)
	}

	for _, d := range deliveries {
		s.localize(d)
	}
	return deliveries, window, nil
}

// ListDeliveriesForDay returns the day's deliveries joined with their customers.
// Drivers only ever see their own rows; other roles may narrow by driver.
func (s *ScheduleService) ListDeliveriesForDay(
	ctx context.Context,
	caller domain.Caller,
	date string,
	driver string,
) (_ []*domain.DeliveryView, _ domain.Interval, err error) {
	defer obs.Time(ctx, "deliveries.day")(&err)

	day := s.now()
	if strings.TrimSpace(date) != "" {
		if day, err = domain.ParseDate(date, s.loc()); err != nil {
			return nil, domain.Interval{}, fmt.Errorf("list day: %w", err)
		}
	}
	window := domain.DayWindow(day)

	var driverID *int64
	if caller.IsDriver() {
		id := caller.UserID
		driverID = &id
	} else if driverID, err = ParseDriverFilter(driver); err != nil {
		return nil, domain.Interval{}, fmt.Errorf("list day: %w", err)
	}

	views, err := s.Deliveries.ListDeliveryViews(ctx, window.Start, window.End, driverID)
	if err != nil {
		return nil, domain.Interval{}, classify("list day", err)
	}

	for _, v := range views {
		s.localize(&v.Delivery)
	}
	return views, window, nil
}
