package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/barbera-app/barbera-api/internal/models"
)

// ScheduleCache keeps weekly schedules in redis so the calendar endpoint
// (hit once per picker render) does not round-trip to Postgres every
// time. Misses and redis failures both fall through to the store: the
// cache is never allowed to turn into an availability error.
type ScheduleCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewScheduleCache(rdb *redis.Client) *ScheduleCache {
	return &ScheduleCache{
		rdb: rdb,
		ttl: 5 * time.Minute,
	}
}

func key(barberID uint) string {
	return fmt.Sprintf("schedule:%d", barberID)
}

func (c *ScheduleCache) Get(ctx context.Context, barberID uint) ([]models.WeeklyAvailability, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key(barberID)).Bytes()
	if err != nil {
		return nil, false
	}

	var entries []models.WeeklyAvailability
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (c *ScheduleCache) Set(ctx context.Context, barberID uint, entries []models.WeeklyAvailability, ttl time.Duration) {
	if c == nil || c.rdb == nil {
		return
	}
	if ttl <= 0 {
		ttl = c.ttl
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key(barberID), raw, ttl)
}

func (c *ScheduleCache) Invalidate(ctx context.Context, barberID uint) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, key(barberID))
}
