package middlewares

import (
	"context"
	"log"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/5w1tchy/library-admin/internal/api/apperr"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type KeyFunc func(r *http.Request) string

// PerIPKey buckets requests by client address under prefix.
func PerIPKey(prefix string) KeyFunc {
	return func(r *http.Request) string {
		ip := clientIP(r)
		if ip == "" {
			ip = "unknown"
		}
		return "rl:" + prefix + ":" + ip
	}
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

// decision is one limiter verdict for one request.
type decision struct {
	policy     string
	limit      int
	remaining  int
	allowed    bool
	retryAfter time.Duration
}

// limiter is a Redis-backed admission check. Errors make the middleware fail open.
type limiter interface {
	allow(ctx context.Context, key string) (decision, error)
}

func limitWith(name string, l limiter, keyFn KeyFunc, title, detail string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFn(r)
			d, err := l.allow(r.Context(), key)
			if err != nil {
				log.Printf("[ratelimit] %s: redis error: %v (allowing request)", name, err)
				next.ServeHTTP(w, r)
				return
			}
			if !writeDecision(w, r, d, title, detail) {
				log.Printf("[ratelimit] %s: blocked %s, retry after %s", name, key, d.retryAfter)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeDecision sets the rate limit headers and answers 429 when d denies the
// request. It reports whether the request may continue.
func writeDecision(w http.ResponseWriter, r *http.Request, d decision, title, detail string) bool {
	h := w.Header()
	if d.policy != "" {
		h.Set("X-RateLimit-Policy", d.policy)
	}
	h.Set("X-RateLimit-Limit", strconv.Itoa(d.limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, d.remaining)))
	if d.allowed {
		return true
	}
	secs := max(1, int(math.Ceil(d.retryAfter.Seconds())))
	h.Set("Retry-After", strconv.Itoa(secs))
	if title == "" {
		title = "Too Many Requests"
	}
	apperr.WriteStatus(w, r, http.StatusTooManyRequests, title, detail)
	return false
}

// tokenBucketLua refills HMSET{tokens,ts} at ARGV[1] tokens/s up to ARGV[2] and
// takes one token. Returns {allowed, floor(tokens), retry_after_ms}.
var tokenBucketLua = redis.NewScript(`
local key  = KEYS[1]
local rate = tonumber(ARGV[1])
local cap  = tonumber(ARGV[2])

local t = redis.call('TIME')
local now = tonumber(t[1]) * 1000 + math.floor(tonumber(t[2]) / 1000)

local cur = redis.call('HMGET', key, 'tokens', 'ts')
local tokens = tonumber(cur[1]) or cap
local ts = tonumber(cur[2]) or now
if now > ts then
  tokens = math.min(cap, tokens + (now - ts) / 1000.0 * rate)
end

local allowed, wait = 0, 0
if tokens >= 1 then
  tokens = tokens - 1
  allowed = 1
else
  wait = math.ceil((1 - tokens) * 1000 / rate)
end

redis.call('HSET', key, 'tokens', tokens, 'ts', now)
redis.call('PEXPIRE', key, math.ceil(cap / rate * 1000))
return {allowed, math.floor(tokens), wait}
`)

// RedisTokenBucket smooths bursts: ratePerS refill, burst capacity.
type RedisTokenBucket struct {
	rdb      *redis.Client
	ratePerS float64
	burst    int
}

func NewRedisTokenBucket(rdb *redis.Client, ratePerSecond float64, burst int) *RedisTokenBucket {
	return &RedisTokenBucket{rdb: rdb, ratePerS: ratePerSecond, burst: burst}
}

func (tb *RedisTokenBucket) allow(ctx context.Context, key string) (decision, error) {
	res, err := tokenBucketLua.Run(ctx, tb.rdb, []string{key},
		strconv.FormatFloat(tb.ratePerS, 'f', -1, 64), tb.burst).Int64Slice()
	if err != nil {
		return decision{}, err
	}
	return decision{
		policy:     "token-bucket",
		limit:      tb.burst,
		remaining:  int(res[1]),
		allowed:    res[0] == 1,
		retryAfter: time.Duration(res[2]) * time.Millisecond,
	}, nil
}

func (tb *RedisTokenBucket) Middleware(keyFn KeyFunc) Middleware {
	return limitWith("token-bucket", tb, keyFn, "", "")
}

// RedisSlidingWindow caps requests per rolling window using a ZSET of arrival times.
type RedisSlidingWindow struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func NewRedisSlidingWindow(rdb *redis.Client, limit int, window time.Duration) *RedisSlidingWindow {
	return &RedisSlidingWindow{rdb: rdb, limit: limit, window: window}
}

func (sw *RedisSlidingWindow) allow(ctx context.Context, key string) (decision, error) {
	now := time.Now()
	cutoff := now.Add(-sw.window).UnixMilli()

	pipe := sw.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(cutoff, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixMilli()), Member: uuid.NewString()})
	count := pipe.ZCard(ctx, key)
	oldest := pipe.ZRangeWithScores(ctx, key, 0, 0)
	pipe.PExpire(ctx, key, sw.window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return decision{}, err
	}

	d := decision{
		policy:    "sliding-window",
		limit:     sw.limit,
		remaining: sw.limit - int(count.Val()),
		allowed:   int(count.Val()) <= sw.limit,
	}
	if !d.allowed {
		d.retryAfter = time.Second
		if z := oldest.Val(); len(z) == 1 {
			expires := time.UnixMilli(int64(z[0].Score)).Add(sw.window)
			d.retryAfter = max(time.Second, expires.Sub(now))
		}
	}
	return d, nil
}

func (sw *RedisSlidingWindow) Middleware(keyFn KeyFunc) Middleware {
	return limitWith("sliding-window", sw, keyFn, "", "")
}
