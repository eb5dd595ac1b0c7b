// Package config reads the service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/5w1tchy/library-admin/internal/auth"
	"github.com/5w1tchy/library-admin/internal/security/password"
	"github.com/5w1tchy/library-admin/internal/storage/s3"
	"github.com/5w1tchy/library-admin/internal/validate"
	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Redis struct {
	URL      string
	Addr     string
	User     string
	Password string
}

func (r Redis) Enabled() bool { return r.URL != "" || r.Addr != "" }

// RateLimit bounds requests per client IP when Redis is configured.
type RateLimit struct {
	PerSecond   float64
	Burst       int
	WindowLimit int
	Window      time.Duration
}

type Config struct {
	AppEnv  string
	Port    string
	TLSCert string
	TLSKey  string

	Store       string
	DatabaseURL string
	SeedDemo    bool

	Redis  Redis
	Admin  auth.Credentials
	Argon2 password.Params
	S3     s3.Config

	MaxBodySize    int64
	CorsOrigins    []string
	StrictSecurity bool

	RateLimit        RateLimit
	LoginMaxAttempts int
	LoginWindow      time.Duration
	ReportsCacheTTL  time.Duration

	AuditRetentionDays int
	AuditPruneAt       string
	AuditPruneTZ       string
}

// Load reads .env files when present, validates the environment and
// returns the resolved configuration.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}
	if err := validate.Env(); err != nil {
		return Config{}, err
	}

	store := strings.ToLower(getenv("STORE", StoreMemory))
	return Config{
		AppEnv:  getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "3000"),
		TLSCert: os.Getenv("TLS_CERT"),
		TLSKey:  os.Getenv("TLS_KEY"),

		Store:       store,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SeedDemo:    envBool("SEED_DEMO", true),

		Redis: Redis{
			URL:      os.Getenv("UPSTASH_REDIS_URL"),
			Addr:     os.Getenv("REDIS_ADDR"),
			User:     os.Getenv("REDIS_USER"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Admin: auth.Credentials{
			Email:        os.Getenv("ADMIN_EMAIL"),
			Password:     os.Getenv("ADMIN_PASSWORD"),
			PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		},
		Argon2: password.LoadParamsFromEnv(),
		S3: s3.Config{
			Endpoint:        os.Getenv("AWS_ENDPOINT"),
			Region:          os.Getenv("AWS_REGION"),
			Bucket:          os.Getenv("AWS_BUCKET"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},

		MaxBodySize:    int64(envInt("MAX_BODY_SIZE", 10<<20)),
		CorsOrigins:    envList("CORS_ORIGINS"),
		StrictSecurity: envBool("STRICT_SECURITY", false),

		RateLimit: RateLimit{
			PerSecond:   envFloat("RATE_LIMIT_RPS", 5),
			Burst:       envInt("RATE_LIMIT_BURST", 20),
			WindowLimit: envInt("RATE_LIMIT_WINDOW_MAX", 3000),
			Window:      envDur("RATE_LIMIT_WINDOW", 60*time.Minute),
		},
		LoginMaxAttempts: envInt("LOGIN_MAX_ATTEMPTS", 10),
		LoginWindow:      envDur("LOGIN_WINDOW", 5*time.Minute),
		ReportsCacheTTL:  envDur("REPORTS_CACHE_TTL", 30*time.Second),

		AuditRetentionDays: envInt("AUDIT_RETENTION_DAYS", 90),
		AuditPruneAt:       getenv("AUDIT_PRUNE_AT", "03:30"),
		AuditPruneTZ:       getenv("AUDIT_PRUNE_TZ", "UTC"),
	}, nil
}

// Addr is the listen address for Port.
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func (c Config) TLS() bool { return c.TLSCert != "" && c.TLSKey != "" }

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return def
}

func envBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envDur(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func envList(k string) []string {
	var out []string
	for _, s := range strings.Split(os.Getenv(k), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
