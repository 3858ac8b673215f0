package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultThrottleLimit  = 3
	defaultThrottleWindow = time.Hour
)

// ResetThrottle bounds reset-code issuance per email using a Redis counter.
// Key format: reset_throttle:<normalized_email>
type ResetThrottle struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewResetThrottle creates a ResetThrottle wrapping the given Redis client.
// Non-positive limit or window fall back to the defaults.
func NewResetThrottle(client *redis.Client, limit int, window time.Duration) *ResetThrottle {
	if limit <= 0 {
		limit = defaultThrottleLimit
	}
	if window <= 0 {
		window = defaultThrottleWindow
	}
	return &ResetThrottle{client: client, limit: limit, window: window}
}

// Allow reports whether another code may be issued for this email inside the
// current window.
func (t *ResetThrottle) Allow(ctx context.Context, email string) (bool, error) {
	key := fmt.Sprintf("reset_throttle:%s", email)

	n, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("reset throttle incr: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
			return false, fmt.Errorf("reset throttle expire: %w", err)
		}
	}
	return n <= int64(t.limit), nil
}
