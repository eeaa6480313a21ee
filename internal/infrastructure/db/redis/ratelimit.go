package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FixedWindowLimiter throttles requests per key using fixed windows
// backed by Redis. Counter keys carry the window number, so a new window
// starts from zero and old counters expire on their own.
// Key format: ratelimit:<key>:<window_number>
type FixedWindowLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

func NewFixedWindowLimiter(client *redis.Client, limit int64, window time.Duration) *FixedWindowLimiter {
	if limit <= 0 {
		limit = 100
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &FixedWindowLimiter{client: client, limit: limit, window: window}
}

// Allow counts one request against key's current window and reports
// whether it stayed within the limit.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.key(key, time.Now())

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("ratelimit incr: %w", err)
	}

	return incr.Val() <= l.limit, nil
}

func (l *FixedWindowLimiter) key(key string, now time.Time) string {
	return fmt.Sprintf("ratelimit:%s:%d", key, now.UnixNano()/int64(l.window))
}
