package services

import (
	"context"
	"delivery-schedule-service/internal/adapters/repositories"
	"delivery-schedule-service/internal/domain"
	"delivery-schedule-service/internal/platform/db"
	"delivery-schedule-service/internal/ports"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	scheduler = domain.Caller{UserID: 2, Role: domain.RoleScheduler}
	admin     = domain.Caller{UserID: 1, Role: domain.RoleAdmin}
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.DeliveryEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev domain.DeliveryEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) types() []domain.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.EventType, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

// memoryCache mimics the generation scheme of the Redis cache.
type memoryCache struct {
	mu      sync.Mutex
	version int
	entries map[string][]*domain.Delivery
	hits    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]*domain.Delivery{}}
}

func (c *memoryCache) GetWeek(_ context.Context, key string) ([]*domain.Delivery, string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	token := fmt.Sprintf("v%d:%s", c.version, key)
	got, ok := c.entries[token]
	if ok {
		c.hits++
		cp := make([]*domain.Delivery, 0, len(got))
		for _, d := range got {
			d2 := *d
			cp = append(cp, &d2)
		}
		return cp, token, true, nil
	}
	return nil, token, false, nil
}

func (c *memoryCache) PutWeek(_ context.Context, token string, deliveries []*domain.Delivery) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[token] = deliveries
	return nil
}

func (c *memoryCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	return nil
}

// failingStore injects an error into one step of the booking unit.
type failingStore struct {
	ports.BookingStore
	failInsertDelivery bool
}

func (f *failingStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx ports.BookingTx) error) error {
	return f.BookingStore.WithinTx(ctx, func(ctx context.Context, tx ports.BookingTx) error {
		return fn(ctx, &failingTx{BookingTx: tx, failInsertDelivery: f.failInsertDelivery})
	})
}

type failingTx struct {
	ports.BookingTx
	failInsertDelivery bool
}

func (t *failingTx) InsertDelivery(ctx context.Context, d *domain.Delivery) (int64, error) {
	if t.failInsertDelivery {
		return 0, errors.New("connection reset")
	}
	return t.BookingTx.InsertDelivery(ctx, d)
}

type fixture struct {
	svc    *ScheduleService
	store  *repositories.SQLStore
	cache  *memoryCache
	events *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ctx := context.Background()
	require.NoError(t, repositories.InitSchema(ctx, conn, repositories.SQLite))
	require.NoError(t, repositories.SeedUsers(ctx, conn, repositories.SQLite, []repositories.UserSeed{
		{UserID: 1, Name: "Admin", Email: "admin@example.com", Role: "admin"},
		{UserID: 2, Name: "Scheduler", Email: "sched@example.com", Role: "scheduler"},
		{UserID: 7, Name: "Driver Seven", Email: "d7@example.com", Role: "driver"},
		{UserID: 42, Name: "Driver FortyTwo", Email: "d42@example.com", Role: "driver"},
	}))

	store := repositories.NewSQLStore(conn, repositories.SQLite)
	svc := NewScheduleService(store, store, store, store, time.UTC)
	svc.Now = func() time.Time { return time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC) }

	f := &fixture{svc: svc, store: store, cache: newMemoryCache(), events: &recordingPublisher{}}
	svc.Cache = f.cache
	svc.Events = f.events
	return f
}

func (f *fixture) counts(t *testing.T) (customers, deliveries int) {
	t.Helper()
	require.NoError(t, f.store.DB.QueryRow(`SELECT COUNT(*) FROM customer_info`).Scan(&customers))
	require.NoError(t, f.store.DB.QueryRow(`SELECT COUNT(*) FROM deliveries_table`).Scan(&deliveries))
	return customers, deliveries
}

func request(driver, start, duration string) domain.BookingRequest {
	return domain.BookingRequest{
		FirstName:     "John",
		LastName:      "Carson",
		CustEmail:     "john@example.com",
		CustPhone:     "555-0100",
		CustAddress:   "1 Main St",
		CustCity:      "Phoenix",
		CustZip:       "85001",
		DelAddress:    "1 Main St",
		DelCity:       "Phoenix",
		DelZip:        "85001",
		ScheduledTime: start,
		UserID:        driver,
		DurationMin:   duration,
	}
}

// stalledPublisher blocks until its context ends, like a writer retrying an unreachable broker.
type stalledPublisher struct {
	deadlineSet bool
}

func (p *stalledPublisher) Publish(ctx context.Context, _ domain.DeliveryEvent) error {
	_, p.deadlineSet = ctx.Deadline()
	<-ctx.Done()
	return ctx.Err()
}
