package domain

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// DefaultDurationMin applies when a booking request omits duration_min.
const DefaultDurationMin = 60

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPending, StatusCompleted:
		return st, nil
	}
	return "", fmt.Errorf("%w: deliv_status must be %q or %q", ErrValidation, StatusPending, StatusCompleted)
}

// Represents one scheduled delivery owned by a driver.
//
// For a fixed driver, no two deliveries may have overlapping Interval()s.
// Status moves pending -> completed only; completed is terminal.
type Delivery struct {
	DelivID       int64
	UserID        int64
	CustID        int64
	Address       string
	City          string
	Zip           string
	ScheduledTime time.Time
	DurationMin   int
	Status        Status
	Notes         string
	CompletedAt   *time.Time
}

// Interval returns the half-open slot [ScheduledTime, ScheduledTime+DurationMin).
func (d *Delivery) Interval() Interval {
	return NewInterval(d.ScheduledTime, d.DurationMin)
}

func (d *Delivery) EndTime() time.Time {
	return d.Interval().End
}

// Complete moves the delivery to its terminal status and stamps the completion time.
// Calling it again re-stamps the time and leaves the status unchanged.
func (d *Delivery) Complete(at time.Time) {
	d.Status = StatusCompleted
	d.CompletedAt = &at
}

// Flattened customer + delivery row, as shown in the day view.
type DeliveryView struct {
	Delivery
	Customer Customer
}
