package redisconnect

import (
	"crypto/tls"
	"fmt"
	"time"

	"github.com/5w1tchy/library-admin/internal/config"
	"github.com/redis/go-redis/v9"
)

// Connect builds a client from cfg. It returns nil, nil when Redis is not
// configured; callers treat a nil client as "feature off".
func Connect(cfg config.Redis) (*redis.Client, error) {
	if cfg.URL != "" {
		// rediss://default:<token>@host:port
		opt, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid UPSTASH_REDIS_URL: %w", err)
		}
		opt.DialTimeout = 5 * time.Second
		opt.ReadTimeout = 1 * time.Second
		opt.WriteTimeout = 1 * time.Second
		return redis.NewClient(opt), nil
	}
	if cfg.Addr == "" {
		return nil, nil
	}

	opt := &redis.Options{
		Addr:         cfg.Addr,
		Username:     cfg.User,
		Password:     cfg.Password,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	}
	if cfg.Password != "" {
		opt.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return redis.NewClient(opt), nil
}
