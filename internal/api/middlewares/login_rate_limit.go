package middlewares

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// fixedWindow counts attempts per key and resets when the key expires.
type fixedWindow struct {
	rdb    *redis.Client
	max    int
	window time.Duration
}

func (fw fixedWindow) allow(ctx context.Context, key string) (decision, error) {
	n, err := fw.rdb.Incr(ctx, key).Result()
	if err != nil {
		return decision{}, err
	}
	if n == 1 {
		if err := fw.rdb.Expire(ctx, key, fw.window).Err(); err != nil {
			return decision{}, err
		}
	}
	d := decision{limit: fw.max, remaining: fw.max - int(n), allowed: n <= int64(fw.max)}
	if !d.allowed {
		d.retryAfter = fw.window
		if ttl, err := fw.rdb.PTTL(ctx, key).Result(); err == nil && ttl > 0 {
			d.retryAfter = ttl
		}
	}
	return d, nil
}

// LoginRateLimit allows max login attempts per client IP within window. It
// fails open when Redis is absent or erroring.
func LoginRateLimit(rdb *redis.Client, max int, window time.Duration) Middleware {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = 5 * time.Minute
	}
	if rdb == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return limitWith("login", fixedWindow{rdb: rdb, max: max, window: window}, PerIPKey("login"),
		"Too many login attempts", "Please try again later.")
}
