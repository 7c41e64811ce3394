package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"seaferry/internal/domain/models"
)

// CapacityCache memoizes capacity query results per unique
// (vessel, route, date, time, passengers) key for a short freshness window.
// Keying by the full tuple means a stale value for an outdated key can never
// be served for the current one. A nil client disables caching entirely.
type CapacityCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// CapacityKey builds the cache key for one query tuple.
func CapacityKey(vesselID, routeID int64, date, departure string, passengers int) string {
	return fmt.Sprintf("capacity:%d:%d:%s:%s:%d", vesselID, routeID, date, departure, passengers)
}

// Get returns a cached result and whether it was present.
func (c CapacityCache) Get(ctx context.Context, key string) (models.CapacityResult, bool) {
	var out models.CapacityResult
	if c.Client == nil {
		return out, false
	}
	raw, err := c.Client.Get(ctx, key).Bytes()
	if err != nil {
		return out, false
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false
	}
	return out, true
}

// Set stores a result under key for the freshness window.
func (c CapacityCache) Set(ctx context.Context, key string, result models.CapacityResult) {
	if c.Client == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	ttl := c.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	_ = c.Client.Set(ctx, key, raw, ttl).Err()
}

// InvalidateSlot drops all cached passenger-count variants for a slot after a
// booking mutates it. Uses a SCAN-free prefix delete via key enumeration of
// the small per-slot passenger range.
func (c CapacityCache) InvalidateSlot(ctx context.Context, vesselID, routeID int64, date, departure string, maxPassengers int) {
	if c.Client == nil {
		return
	}
	keys := make([]string, 0, maxPassengers)
	for n := 1; n <= maxPassengers; n++ {
		keys = append(keys, CapacityKey(vesselID, routeID, date, departure, n))
	}
	if len(keys) > 0 {
		_ = c.Client.Del(ctx, keys...).Err()
	}
}
