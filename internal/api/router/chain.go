package router

import (
	"cmp"
	"net/http"
	"time"

	mw "github.com/5w1tchy/library-admin/internal/api/middlewares"
	"github.com/redis/go-redis/v9"
)

type SecurityOptions struct {
	Origins     []string
	Strict      bool
	MaxBodySize int64

	// Per client IP: a token bucket (RatePerSecond refill, RateBurst capacity)
	// in front of a sliding window of WindowLimit requests per Window.
	RatePerSecond float64
	RateBurst     int
	WindowLimit   int
	Window        time.Duration
}

// Secure wraps h in the standard middleware stack. Redis-backed limiters
// are skipped when rdb is nil.
func Secure(h http.Handler, rdb *redis.Client, o SecurityOptions) http.Handler {
	mws := []mw.Middleware{
		mw.RequestID,
		mw.Recovery,
		mw.Cors(o.Origins),
		mw.ResponseTime,
		mw.HPP(mw.DefaultHPPWhitelist()),
	}
	if rdb != nil {
		tb := mw.NewRedisTokenBucket(rdb, cmp.Or(o.RatePerSecond, 5), cmp.Or(o.RateBurst, 20))
		sw := mw.NewRedisSlidingWindow(rdb, cmp.Or(o.WindowLimit, 3000), cmp.Or(o.Window, 60*time.Minute))
		mws = append(mws, tb.Middleware(mw.PerIPKey("tb")), sw.Middleware(mw.PerIPKey("sw")))
	}
	mws = append(mws,
		mw.BodySizeLimit(o.MaxBodySize),
		mw.Compression,
		mw.SecurityHeaders(o.Strict),
	)
	return mw.Chain(h, mws...)
}
