package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	versionKey = "rp:ver"
	// CacheTTL bounds how stale a cached report can get between mutations.
	CacheTTL = 30 * time.Second
	shortTO  = 150 * time.Millisecond
)

// Cache stores computed reports under a versioned prefix. Every recorded
// mutation bumps the version, so stale blocks are simply never read again.
// A nil *Cache or nil client disables caching.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = CacheTTL
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) enabled() bool { return c != nil && c.rdb != nil }

func (c *Cache) prefix(ctx context.Context) string {
	ver, err := c.rdb.Get(ctx, versionKey).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[reports][cache] read version failed: %v", err)
		}
		ver = 1
	}
	return fmt.Sprintf("rp:v%d:", ver)
}

func (c *Cache) get(ctx context.Context, block string, dst any) bool {
	if !c.enabled() {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, shortTO)
	defer cancel()
	raw, err := c.rdb.Get(ctx, c.prefix(ctx)+block).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[reports][cache] get %s failed: %v", block, err)
		}
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func (c *Cache) set(ctx context.Context, block string, v any) {
	if !c.enabled() {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, shortTO)
	defer cancel()
	if err := c.rdb.SetEx(ctx, c.prefix(ctx)+block, b, c.ttl).Err(); err != nil {
		log.Printf("[reports][cache] set %s failed: %v", block, err)
	}
}

// Record bumps the cache version; it lets the cache sit in an audit.Multi.
func (c *Cache) Record(ctx context.Context, action, _ string) {
	if !c.enabled() {
		return
	}
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shortTO)
	defer cancel()
	if err := c.rdb.Incr(cctx, versionKey).Err(); err != nil {
		log.Printf("[reports][cache] bump after %s failed: %v", action, err)
	}
}
