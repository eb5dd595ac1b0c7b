package validate

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/redis/go-redis/v9"
)

// Env validates the environment before anything is wired. Fail-fast on bad
// config; unset keys are fine wherever a default exists.
func Env() error {
	switch store := strings.ToLower(os.Getenv("STORE")); store {
	case "", "memory":
	case "postgres":
		if os.Getenv("DATABASE_URL") == "" {
			return errors.New("STORE=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("STORE must be memory or postgres, got %q", store)
	}

	if (os.Getenv("TLS_CERT") == "") != (os.Getenv("TLS_KEY") == "") {
		return errors.New("TLS_CERT and TLS_KEY must be set together")
	}

	if u := os.Getenv("UPSTASH_REDIS_URL"); u != "" {
		if _, err := redis.ParseURL(u); err != nil {
			return fmt.Errorf("UPSTASH_REDIS_URL: %w", err)
		}
	}

	if phc := os.Getenv("ADMIN_PASSWORD_HASH"); phc != "" {
		if _, _, _, err := argon2id.DecodeHash(phc); err != nil {
			return fmt.Errorf("ADMIN_PASSWORD_HASH: %w", err)
		}
	}

	for _, k := range []string{"LOGIN_WINDOW", "REPORTS_CACHE_TTL", "RATE_LIMIT_WINDOW"} {
		if _, err := envDuration(k, "1m"); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
	}
	for k, min := range map[string]uint64{
		"LOGIN_MAX_ATTEMPTS":    1,
		"RATE_LIMIT_BURST":      1,
		"RATE_LIMIT_WINDOW_MAX": 1,
		"AUDIT_RETENTION_DAYS":  1,
		"MAX_BODY_SIZE":         1024,
		"ARGON2_MEMORY":         65536, // >= 64MiB
		"ARGON2_ITER":           2,
		"ARGON2_PAR":            1,
	} {
		if err := envMinUint(k, min); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
	}

	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err != nil || f <= 0 {
			return fmt.Errorf("RATE_LIMIT_RPS must be a positive number, got %q", v)
		}
	}

	if at := os.Getenv("AUDIT_PRUNE_AT"); at != "" {
		if _, err := time.Parse("15:04", at); err != nil {
			return fmt.Errorf("AUDIT_PRUNE_AT must be HH:MM: %w", err)
		}
	}
	if tz := os.Getenv("AUDIT_PRUNE_TZ"); tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			return fmt.Errorf("AUDIT_PRUNE_TZ: %w", err)
		}
	}
	if ep := os.Getenv("AWS_ENDPOINT"); ep != "" {
		if u, err := url.Parse(ep); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("AWS_ENDPOINT must be an absolute URL, got %q", ep)
		}
	}
	return nil
}

// HardeningWarnings returns non-fatal warnings to log on startup.
func HardeningWarnings(appEnv string) []string {
	var warns []string

	if os.Getenv("ADMIN_EMAIL") == "" {
		warns = append(warns, "ADMIN_EMAIL is not set; every login will answer 503")
	}
	if os.Getenv("UPSTASH_REDIS_URL") == "" && os.Getenv("REDIS_ADDR") == "" {
		warns = append(warns, "no Redis configured; rate limiting and the reports cache are disabled")
	}

	if strings.EqualFold(appEnv, "production") {
		if os.Getenv("ADMIN_PASSWORD") != "" && os.Getenv("ADMIN_PASSWORD_HASH") == "" {
			warns = append(warns, "ADMIN_PASSWORD is stored in plain text; use `libctl hash-password` and set ADMIN_PASSWORD_HASH")
		}
		if os.Getenv("ARGON2_MEMORY") == "" || os.Getenv("ARGON2_ITER") == "" {
			warns = append(warns, "ARGON2_* not explicitly set; using code defaults. Set strong values in production")
		}
		if u := os.Getenv("UPSTASH_REDIS_URL"); u != "" && strings.HasPrefix(u, "redis://") {
			warns = append(warns, "UPSTASH_REDIS_URL uses redis:// (no TLS). Prefer rediss:// for TLS")
		}
		if os.Getenv("UPSTASH_REDIS_URL") == "" && os.Getenv("REDIS_ADDR") != "" {
			if os.Getenv("REDIS_PASSWORD") == "" || os.Getenv("REDIS_USER") == "" {
				warns = append(warns, "REDIS_ADDR provided without REDIS_USER/REDIS_PASSWORD; require auth in production")
			}
		}
		if os.Getenv("TLS_CERT") == "" {
			warns = append(warns, "TLS_CERT/TLS_KEY unset; serving plain HTTP")
		}
	}
	return warns
}

// PingRedis checks connectivity with a short timeout.
func PingRedis(rdb *redis.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	_, err := rdb.Ping(ctx).Result()
	return err
}

func envDuration(key, def string) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		s = def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}

func envMinUint(key string, min uint64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fmt.Errorf("not a number: %v", err)
	}
	if n < min {
		return fmt.Errorf("must be >= %d", min)
	}
	return nil
}
