package cache

import (
	"context"
	"delivery-schedule-service/internal/domain"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisScheduleCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisScheduleCache(client, time.Minute), mr
}

func TestRedisScheduleCacheMissThenHit(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, token, ok, err := c.GetWeek(ctx, "week:all:2025-06-01")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NotEmpty(t, token)

	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	done := start.Add(time.Hour)
	in := []*domain.Delivery{
		{DelivID: 1, UserID: 42, CustID: 5, Address: "1 Main", City: "Phoenix", Zip: "85001",
			ScheduledTime: start, DurationMin: 60, Status: domain.StatusCompleted, CompletedAt: &done},
	}
	require.NoError(t, c.PutWeek(ctx, token, in))

	got, _, ok, err := c.GetWeek(ctx, "week:all:2025-06-01")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, int64(42), got[0].UserID)
	assert.True(t, got[0].ScheduledTime.Equal(start))
	assert.Equal(t, domain.StatusCompleted, got[0].Status)
	require.NotNil(t, got[0].CompletedAt)
	assert.True(t, got[0].CompletedAt.Equal(done))
}

func TestRedisScheduleCacheInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, token, _, err := c.GetWeek(ctx, "k")
	require.NoError(t, err)
	require.NoError(t, c.PutWeek(ctx, token, []*domain.Delivery{}))

	_, _, ok, err := c.GetWeek(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, c.Invalidate(ctx))

	_, _, ok, err = c.GetWeek(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisScheduleCacheStaleTokenIsNeverRead(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, stale, _, err := c.GetWeek(ctx, "k")
	require.NoError(t, err)

	// A write commits between the lookup and the fill.
	require.NoError(t, c.Invalidate(ctx))
	require.NoError(t, c.PutWeek(ctx, stale, []*domain.Delivery{{DelivID: 9}}))

	_, fresh, ok, err := c.GetWeek(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NotEqual(t, stale, fresh)
}

func TestRedisScheduleCacheEntriesExpire(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	_, token, _, err := c.GetWeek(ctx, "k")
	require.NoError(t, err)
	require.NoError(t, c.PutWeek(ctx, token, nil))

	mr.FastForward(2 * time.Minute)

	_, _, ok, err := c.GetWeek(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisScheduleCacheUnavailable(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	_, _, _, err := c.GetWeek(context.Background(), "k")
	assert.Error(t, err)
	assert.Error(t, c.Invalidate(context.Background()))
}
