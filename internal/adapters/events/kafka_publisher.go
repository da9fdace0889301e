package events

import (
	"context"
	"delivery-schedule-service/internal/domain"
	"delivery-schedule-service/internal/platform/obs"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// Writer is the subset of kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes delivery events to one topic, keyed by driver id so that
// a driver's events stay ordered within a partition.
type KafkaPublisher struct {
	writer Writer
}

func NewKafkaPublisher(broker, topic string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		// One event per write: flush at once instead of waiting for a batch.
		BatchSize:    1,
		BatchTimeout: 10 * time.Millisecond,
		MaxAttempts:  3,
		WriteTimeout: 2 * time.Second,
	}
	return &KafkaPublisher{writer: w}
}

func NewKafkaPublisherWithWriter(w Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

type eventPayload struct {
	Type          string    `json:"type"`
	DelivID       int64     `json:"deliv_id"`
	CustID        int64     `json:"cust_id"`
	UserID        int64     `json:"user_id"`
	ScheduledTime time.Time `json:"scheduled_time"`
	DurationMin   int       `json:"duration_min"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func encode(ev domain.DeliveryEvent) ([]byte, error) {
	return json.Marshal(eventPayload{
		Type:          string(ev.Type),
		DelivID:       ev.DelivID,
		CustID:        ev.CustID,
		UserID:        ev.UserID,
		ScheduledTime: ev.ScheduledTime.UTC(),
		DurationMin:   ev.DurationMin,
		OccurredAt:    ev.OccurredAt.UTC(),
	})
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev domain.DeliveryEvent) (err error) {
	defer obs.Time(ctx, "events.kafka.Publish")(&err)

	value, err := encode(ev)
	if err != nil {
		return fmt.Errorf("publish %s: marshal: %w", ev.Type, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.UserID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(ev.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: write: %w", ev.Type, err)
	}

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
