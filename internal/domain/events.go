package domain

import "time"

type EventType string

const (
	EventDeliveryBooked    EventType = "delivery.booked"
	EventDeliveryCompleted EventType = "delivery.completed"
	EventDeliveryDeleted   EventType = "delivery.deleted"
)

// DeliveryEvent is published after a delivery change has been committed.
type DeliveryEvent struct {
	Type          EventType
	DelivID       int64
	CustID        int64
	UserID        int64
	ScheduledTime time.Time
	DurationMin   int
	OccurredAt    time.Time
}

func NewDeliveryEvent(t EventType, d *Delivery, at time.Time) DeliveryEvent {
	return DeliveryEvent{
		Type:          t,
		DelivID:       d.DelivID,
		CustID:        d.CustID,
		UserID:        d.UserID,
		ScheduledTime: d.ScheduledTime,
		DurationMin:   d.DurationMin,
		OccurredAt:    at,
	}
}
