// Package cache provides a best-effort Redis read-through cache for the
// active question catalog. The catalog is read on every questionnaire render
// but changes rarely, so a short TTL plus explicit invalidation on writes
// keeps it fresh without hammering the database.
//
// Every method is safe on a nil receiver or nil client: the cache degrades to
// a pass-through and callers never need to branch on whether Redis is
// configured. Redis failures are treated as misses, never as errors.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/meetlog/go-matching-backend/internal/domain"
)

// activeQuestionsKey holds the JSON-encoded active catalog.
const activeQuestionsKey = "questions:active"

// QuestionCache caches the active question catalog in Redis.
type QuestionCache struct {
	// Client is the Redis connection; nil disables the cache.
	Client *redis.Client
	// TTL bounds staleness when an invalidation is lost.
	TTL time.Duration
}

// New returns a QuestionCache. A nil client yields a disabled cache that is
// still safe to call.
func New(client *redis.Client, ttl time.Duration) *QuestionCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &QuestionCache{Client: client, TTL: ttl}
}

// GetActive returns the cached catalog and whether it was present.
func (c *QuestionCache) GetActive(ctx context.Context) ([]domain.Question, bool) {
	if c == nil || c.Client == nil {
		return nil, false
	}
	raw, err := c.Client.Get(ctx, activeQuestionsKey).Bytes()
	if err != nil {
		// redis.Nil (miss) and transport errors are both treated as misses.
		return nil, false
	}
	var out []domain.Question
	if err := json.Unmarshal(raw, &out); err != nil {
		// Corrupt entry: drop it so the next write repopulates cleanly.
		_ = c.Client.Del(ctx, activeQuestionsKey).Err()
		return nil, false
	}
	return out, true
}

// SetActive stores the catalog with the configured TTL.
func (c *QuestionCache) SetActive(ctx context.Context, questions []domain.Question) {
	if c == nil || c.Client == nil {
		return
	}
	raw, err := json.Marshal(questions)
	if err != nil {
		return
	}
	_ = c.Client.Set(ctx, activeQuestionsKey, raw, c.TTL).Err()
}

// Invalidate drops the cached catalog. Call after any catalog write.
func (c *QuestionCache) Invalidate(ctx context.Context) {
	if c == nil || c.Client == nil {
		return
	}
	_ = c.Client.Del(ctx, activeQuestionsKey).Err()
}
