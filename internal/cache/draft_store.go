package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"seaferry/internal/domain/models"
)

// DraftStore keeps one pending booking draft per user. Save overwrites, Get
// treats missing or corrupt payloads as absence, Clear is unconditional and
// Exists checks presence without deserializing.
type DraftStore interface {
	Save(ctx context.Context, userID int64, draft models.PendingBookingDraft) error
	Get(ctx context.Context, userID int64) (models.PendingBookingDraft, bool, error)
	Clear(ctx context.Context, userID int64) error
	Exists(ctx context.Context, userID int64) (bool, error)
}

const draftTTL = 24 * time.Hour

func draftKey(userID int64) string {
	return fmt.Sprintf("draft:%d", userID)
}

// RedisDraftStore persists drafts in Redis with a day-long TTL; abandoned
// drafts age out on their own.
type RedisDraftStore struct {
	Client *redis.Client
}

func (s RedisDraftStore) Save(ctx context.Context, userID int64, draft models.PendingBookingDraft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, draftKey(userID), raw, draftTTL).Err()
}

func (s RedisDraftStore) Get(ctx context.Context, userID int64) (models.PendingBookingDraft, bool, error) {
	var draft models.PendingBookingDraft
	raw, err := s.Client.Get(ctx, draftKey(userID)).Bytes()
	if err == redis.Nil {
		return draft, false, nil
	}
	if err != nil {
		return draft, false, err
	}
	if err := json.Unmarshal(raw, &draft); err != nil {
		// Corrupt or foreign data is treated as absence, not an error.
		return models.PendingBookingDraft{}, false, nil
	}
	return draft, true, nil
}

func (s RedisDraftStore) Clear(ctx context.Context, userID int64) error {
	return s.Client.Del(ctx, draftKey(userID)).Err()
}

func (s RedisDraftStore) Exists(ctx context.Context, userID int64) (bool, error) {
	n, err := s.Client.Exists(ctx, draftKey(userID)).Result()
	return n > 0, err
}

// MemoryDraftStore is the fallback when Redis is unreachable, and doubles as
// the test store.
type MemoryDraftStore struct {
	mu     sync.RWMutex
	drafts map[int64][]byte
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{drafts: make(map[int64][]byte)}
}

func (s *MemoryDraftStore) Save(_ context.Context, userID int64, draft models.PendingBookingDraft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.drafts[userID] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryDraftStore) Get(_ context.Context, userID int64) (models.PendingBookingDraft, bool, error) {
	s.mu.RLock()
	raw, ok := s.drafts[userID]
	s.mu.RUnlock()

	var draft models.PendingBookingDraft
	if !ok {
		return draft, false, nil
	}
	if err := json.Unmarshal(raw, &draft); err != nil {
		return models.PendingBookingDraft{}, false, nil
	}
	return draft, true, nil
}

func (s *MemoryDraftStore) Clear(_ context.Context, userID int64) error {
	s.mu.Lock()
	delete(s.drafts, userID)
	s.mu.Unlock()
	return nil
}

func (s *MemoryDraftStore) Exists(_ context.Context, userID int64) (bool, error) {
	s.mu.RLock()
	_, ok := s.drafts[userID]
	s.mu.RUnlock()
	return ok, nil
}

// NewDraftStore picks the Redis store when a client is available.
func NewDraftStore(client *redis.Client) DraftStore {
	if client != nil {
		return RedisDraftStore{Client: client}
	}
	return NewMemoryDraftStore()
}
