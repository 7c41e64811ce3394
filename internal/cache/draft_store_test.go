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

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func sampleDraft() models.PendingBookingDraft {
	return models.PendingBookingDraft{
		RouteID:        7,
		TravelDate:     "2026-09-10",
		DepartureTime:  "08:30",
		Passengers:     2,
		SpecialRequest: "window seat",
		PaymentMethod:  "card",
		SavedAt:        time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

func runDraftStoreContract(t *testing.T, store DraftStore) {
	ctx := context.Background()

	// Absent before save.
	_, ok, err := store.Get(ctx, 1)
	require.NoError(t, err)
	require.False(t, ok)

	exists, err := store.Exists(ctx, 1)
	require.NoError(t, err)
	require.False(t, exists)

	// Save then get returns a deep-equal draft.
	draft := sampleDraft()
	require.NoError(t, store.Save(ctx, 1, draft))

	got, ok, err := store.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, draft, got)

	exists, err = store.Exists(ctx, 1)
	require.NoError(t, err)
	require.True(t, exists)

	// One slot per user: saving overwrites.
	second := draft
	second.Passengers = 4
	require.NoError(t, store.Save(ctx, 1, second))
	got, ok, err = store.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 4, got.Passengers)

	// Slots are per user.
	_, ok, err = store.Get(ctx, 2)
	require.NoError(t, err)
	require.False(t, ok)

	// Clear then get returns absence; clearing again is harmless.
	require.NoError(t, store.Clear(ctx, 1))
	_, ok, err = store.Get(ctx, 1)
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, store.Clear(ctx, 1))
}

func TestRedisDraftStore(t *testing.T) {
	runDraftStoreContract(t, RedisDraftStore{Client: newTestRedis(t)})
}

func TestMemoryDraftStore(t *testing.T) {
	runDraftStoreContract(t, NewMemoryDraftStore())
}

func TestRedisDraftStoreCorruptPayload(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := RedisDraftStore{Client: client}

	// Foreign data in the slot is treated as absence, not an error.
	require.NoError(t, mr.Set(draftKey(9), "{not json"))

	_, ok, err := store.Get(context.Background(), 9)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestNewDraftStoreFallback(t *testing.T) {
	if _, ok := NewDraftStore(nil).(*MemoryDraftStore); !ok {
		t.Fatalf("nil client should yield the memory store")
	}
	if _, ok := NewDraftStore(newTestRedis(t)).(RedisDraftStore); !ok {
		t.Fatalf("live client should yield the redis store")
	}
}
