package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newTestThrottle(t *testing.T, limit int, window time.Duration) (*ResetThrottle, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewResetThrottle(client, limit, window), mr
}

func TestResetThrottle_AllowsUpToLimit(t *testing.T) {
	throttle, _ := newTestThrottle(t, 3, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := throttle.Allow(ctx, "a@x.com")
		if err != nil {
			t.Fatalf("allow failed: %v", err)
		}
		if !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	ok, err := throttle.Allow(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("allow failed: %v", err)
	}
	if ok {
		t.Fatalf("request over limit should be denied")
	}
}

func TestResetThrottle_PerEmailIsolation(t *testing.T) {
	throttle, _ := newTestThrottle(t, 1, time.Hour)
	ctx := context.Background()

	if ok, _ := throttle.Allow(ctx, "a@x.com"); !ok {
		t.Fatalf("first request should be allowed")
	}
	if ok, _ := throttle.Allow(ctx, "a@x.com"); ok {
		t.Fatalf("second request should be denied")
	}
	if ok, _ := throttle.Allow(ctx, "b@x.com"); !ok {
		t.Fatalf("other email must not be throttled")
	}
}

func TestResetThrottle_WindowExpires(t *testing.T) {
	throttle, mr := newTestThrottle(t, 1, time.Minute)
	ctx := context.Background()

	if ok, _ := throttle.Allow(ctx, "a@x.com"); !ok {
		t.Fatalf("first request should be allowed")
	}
	if ok, _ := throttle.Allow(ctx, "a@x.com"); ok {
		t.Fatalf("second request should be denied")
	}

	mr.FastForward(2 * time.Minute)

	if ok, _ := throttle.Allow(ctx, "a@x.com"); !ok {
		t.Fatalf("request after window should be allowed")
	}
}
