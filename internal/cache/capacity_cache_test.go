package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"seaferry/internal/domain/models"
)

func TestCapacityKey(t *testing.T) {
	got := CapacityKey(3, 7, "2026-09-10", "08:30", 2)
	want := "capacity:3:7:2026-09-10:08:30:2"
	if got != want {
		t.Fatalf("CapacityKey = %q, want %q", got, want)
	}
}

func TestCapacityCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := CapacityCache{
		Client: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		TTL:    30 * time.Second,
	}
	ctx := context.Background()

	key := CapacityKey(3, 7, "2026-09-10", "08:30", 2)
	_, ok := cache.Get(ctx, key)
	require.False(t, ok)

	result := models.CapacityResult{
		VesselCapacity: 40,
		BookedSeats:    38,
		AvailableSeats: 2,
		Available:      true,
	}
	cache.Set(ctx, key, result)

	got, ok := cache.Get(ctx, key)
	require.True(t, ok)
	require.Equal(t, result, got)

	// A different passenger count is a different key.
	_, ok = cache.Get(ctx, CapacityKey(3, 7, "2026-09-10", "08:30", 3))
	require.False(t, ok)

	// Entries age out after the freshness window.
	mr.FastForward(31 * time.Second)
	_, ok = cache.Get(ctx, key)
	require.False(t, ok)
}

func TestCapacityCacheInvalidateSlot(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := CapacityCache{
		Client: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		TTL:    30 * time.Second,
	}
	ctx := context.Background()

	result := models.CapacityResult{VesselCapacity: 40, AvailableSeats: 40, Available: true}
	for n := 1; n <= 4; n++ {
		cache.Set(ctx, CapacityKey(3, 7, "2026-09-10", "08:30", n), result)
	}
	// Same route, different departure: must survive the invalidation.
	other := CapacityKey(3, 7, "2026-09-10", "14:00", 2)
	cache.Set(ctx, other, result)

	cache.InvalidateSlot(ctx, 3, 7, "2026-09-10", "08:30", 40)

	for n := 1; n <= 4; n++ {
		if _, ok := cache.Get(ctx, CapacityKey(3, 7, "2026-09-10", "08:30", n)); ok {
			t.Fatalf("key for %d passengers survived invalidation", n)
		}
	}
	if _, ok := cache.Get(ctx, other); !ok {
		t.Fatalf("unrelated departure slot was invalidated")
	}
}

func TestCapacityCacheNilClient(t *testing.T) {
	var cache CapacityCache
	ctx := context.Background()

	if _, ok := cache.Get(ctx, "capacity:1:1:2026-09-10:08:30:1"); ok {
		t.Fatalf("nil client must always miss")
	}
	// Set and invalidate must be harmless no-ops.
	cache.Set(ctx, "capacity:1:1:2026-09-10:08:30:1", models.CapacityResult{})
	cache.InvalidateSlot(ctx, 1, 1, "2026-09-10", "08:30", 10)
}
