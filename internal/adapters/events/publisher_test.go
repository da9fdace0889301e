package events

import (
	"bytes"
	"context"
	"delivery-schedule-service/internal/domain"
	"encoding/json"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func sampleEvent() domain.DeliveryEvent {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	d := &domain.Delivery{DelivID: 11, CustID: 5, UserID: 42, ScheduledTime: start, DurationMin: 30}
	return domain.NewDeliveryEvent(domain.EventDeliveryBooked, d, start.Add(-time.Hour))
}

func TestKafkaPublisherWritesKeyedJSON(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisherWithWriter(w)

	require.NoError(t, p.Publish(context.Background(), sampleEvent()))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "42", string(msg.Key))

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "delivery.booked", body["type"])
	assert.EqualValues(t, 11, body["deliv_id"])
	assert.EqualValues(t, 5, body["cust_id"])
	assert.EqualValues(t, 30, body["duration_min"])
	assert.Equal(t, "2025-06-02T09:00:00Z", body["scheduled_time"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisherReturnsWriteErrors(t *testing.T) {
	p := NewKafkaPublisherWithWriter(&fakeWriter{err: errors.New("broker down")})

	err := p.Publish(context.Background(), sampleEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	require.NoError(t, LogPublisher{}.Publish(context.Background(), sampleEvent()))
	assert.Contains(t, buf.String(), "event=delivery.booked")
	assert.Contains(t, buf.String(), "user_id=42")
}
