package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// CounterStore increments a windowed counter and returns the new count.
// Implementations expire counters after the window elapses.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisStore counts in Redis so the limit holds across replicas.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// MemoryStore is the single-process fallback used when Redis is not
// configured, and the store unit tests run against.
type MemoryStore struct {
	mu     sync.Mutex
	counts map[string]*memoryCounter
}

type memoryCounter struct {
	count    int64
	expireAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counts: make(map[string]*memoryCounter)}
}

func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.counts[key]
	if !ok || now.After(c.expireAt) {
		c = &memoryCounter{expireAt: now.Add(window)}
		s.counts[key] = c
	}
	c.count++
	return c.count, nil
}
