package cache

import (
	"context"
	"delivery-schedule-service/internal/domain"
	"delivery-schedule-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "schedule:"

// RedisScheduleCache caches week listings in Redis.
//
// Entries are namespaced by a generation counter. Invalidate bumps the counter,
// which orphans every earlier entry; orphans expire through TTL.
type RedisScheduleCache struct {
	Client *redis.Client
	TTL    time.Duration
	Prefix string
}

func NewRedisScheduleCache(client *redis.Client, ttl time.Duration) *RedisScheduleCache {
	return &RedisScheduleCache{Client: client, TTL: ttl, Prefix: defaultPrefix}
}

// Wire form of a cached delivery.
type cachedDelivery struct {
	DelivID       int64      `json:"deliv_id"`
	UserID        int64      `json:"user_id"`
	CustID        int64      `json:"cust_id"`
	Address       string     `json:"del_address"`
	City          string     `json:"del_city"`
	Zip           string     `json:"del_zip"`
	ScheduledTime time.Time  `json:"scheduled_time"`
	DurationMin   int        `json:"duration_min"`
	Status        string     `json:"deliv_status"`
	Notes         string     `json:"notes,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

func (c *RedisScheduleCache) versionKey() string {
	return c.Prefix + "version"
}

// GetWeek reads the current generation, then the entry stored under it.
// The token is the generation-qualified key; a PutWeek with a stale token writes
// into an orphaned generation and is never read back.
func (c *RedisScheduleCache) GetWeek(ctx context.Context, key string) (_ []*domain.Delivery, _ string, _ bool, err error) {
	defer obs.Time(ctx, "schedule.cache.GetWeek")(&err)

	if c.Client == nil {
		return nil, "", false, errors.New("schedule cache: client is nil")
	}

	version, err := c.Client.Get(ctx, c.versionKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, "", false, fmt.Errorf("schedule cache: get version: %w", err)
	}

	token := fmt.Sprintf("%sv%d:%s", c.Prefix, version, key)

	raw, err := c.Client.Get(ctx, token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, token, false, nil
	}
	if err != nil {
		return nil, token, false, fmt.Errorf("schedule cache: get %s: %w", key, err)
	}

	var records []cachedDelivery
	if err := json.Unmarshal(raw, &records); err != nil {
		// A corrupt entry is a miss; the caller will overwrite it.
		return nil, token, false, nil
	}

	out := make([]*domain.Delivery, 0, len(records))
	for _, r := range records {
		out = append(out, &domain.Delivery{
			DelivID:       r.DelivID,
			UserID:        r.UserID,
			CustID:        r.CustID,
			Address:       r.Address,
			City:          r.City,
			Zip:           r.Zip,
			ScheduledTime: r.ScheduledTime,
			DurationMin:   r.DurationMin,
			Status:        domain.Status(r.Status),
			Notes:         r.Notes,
			CompletedAt:   r.CompletedAt,
		})
	}

	return out, token, true, nil
}

func (c *RedisScheduleCache) PutWeek(ctx context.Context, token string, deliveries []*domain.Delivery) (err error) {
	defer obs.Time(ctx, "schedule.cache.PutWeek")(&err)

	if c.Client == nil {
		return errors.New("schedule cache: client is nil")
	}
	if token == "" {
		return errors.New("schedule cache: empty token")
	}

	records := make([]cachedDelivery, 0, len(deliveries))
	for _, d := range deliveries {
		records = append(records, cachedDelivery{
			DelivID:       d.DelivID,
			UserID:        d.UserID,
			CustID:        d.CustID,
			Address:       d.Address,
			City:          d.City,
			Zip:           d.Zip,
			ScheduledTime: d.ScheduledTime,
			DurationMin:   d.DurationMin,
			Status:        string(d.Status),
			Notes:         d.Notes,
			CompletedAt:   d.CompletedAt,
		})
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("schedule cache: marshal: %w", err)
	}

	if err := c.Client.Set(ctx, token, raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("schedule cache: set: %w", err)
	}

	return nil
}

func (c *RedisScheduleCache) Invalidate(ctx context.Context) (err error) {
	defer obs.Time(ctx, "schedule.cache.Invalidate")(&err)

	if c.Client == nil {
		return errors.New("schedule cache: client is nil")
	}

	if err := c.Client.Incr(ctx, c.versionKey()).Err(); err != nil {
		return fmt.Errorf("schedule cache: bump version: %w", err)
	}

	return nil
}
