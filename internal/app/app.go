// Package app wires configuration, storage and services into an HTTP handler.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/5w1tchy/library-admin/internal/api/handlers/admin"
	"github.com/5w1tchy/library-admin/internal/api/handlers/books"
	mw "github.com/5w1tchy/library-admin/internal/api/middlewares"
	"github.com/5w1tchy/library-admin/internal/api/router"
	"github.com/5w1tchy/library-admin/internal/audit"
	"github.com/5w1tchy/library-admin/internal/auth"
	"github.com/5w1tchy/library-admin/internal/catalog"
	"github.com/5w1tchy/library-admin/internal/circulation"
	"github.com/5w1tchy/library-admin/internal/config"
	"github.com/5w1tchy/library-admin/internal/export"
	"github.com/5w1tchy/library-admin/internal/reports"
	"github.com/5w1tchy/library-admin/internal/repository/redisconnect"
	"github.com/5w1tchy/library-admin/internal/repository/sqlconnect"
	"github.com/5w1tchy/library-admin/internal/search"
	"github.com/5w1tchy/library-admin/internal/security/password"
	"github.com/5w1tchy/library-admin/internal/settings"
	"github.com/5w1tchy/library-admin/internal/storage/s3"
	"github.com/5w1tchy/library-admin/internal/store"
	"github.com/5w1tchy/library-admin/internal/store/memory"
	"github.com/5w1tchy/library-admin/internal/store/pg"
	"github.com/redis/go-redis/v9"
)

type App struct {
	Config config.Config
	DB     *sql.DB
	Redis  *redis.Client
	Stores store.Stores
	Queue  *audit.Queue

	Catalog     *catalog.Service
	Circulation *circulation.Service
	Reports     *reports.Service
	Settings    *settings.Service
	Export      *export.Exporter
	Search      *search.Service

	handler http.Handler
}

// OpenStores returns the backend named by cfg.Store. For postgres it
// applies the schema and seeds demo data into an empty database when
// cfg.SeedDemo is set.
func OpenStores(ctx context.Context, cfg config.Config) (store.Stores, *sql.DB, error) {
	if cfg.Store != config.StorePostgres {
		return memory.New(cfg.SeedDemo), nil, nil
	}
	db, err := sqlconnect.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return store.Stores{}, nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pg.Migrate(ctx, db); err != nil {
		db.Close()
		return store.Stores{}, nil, fmt.Errorf("migrate: %w", err)
	}
	if cfg.SeedDemo {
		seeded, err := pg.SeedDemo(ctx, db)
		if err != nil {
			db.Close()
			return store.Stores{}, nil, fmt.Errorf("seed: %w", err)
		}
		if seeded {
			log.Println("[store] seeded demo data")
		}
	}
	return pg.New(db), db, nil
}

// Services builds the domain services over st. rec receives audit events.
func Services(st store.Stores, rec audit.Recorder, cache *reports.Cache, now func() time.Time) (*catalog.Service, *circulation.Service, *reports.Service, *settings.Service) {
	cat := catalog.New(st, rec)
	circ := circulation.New(st, rec, now)
	rp := reports.New(cat, circ, st.Settings, cache)
	set := settings.New(st.Settings, st.Audit, rec)
	return cat, circ, rp, set
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	a := &App{Config: cfg}

	st, db, err := OpenStores(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.Stores, a.DB = st, db
	log.Printf("[store] using %s backend", cfg.Store)

	rdb, err := redisconnect.Connect(cfg.Redis)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Redis = rdb

	a.Queue = audit.NewQueue(st.Audit, 1024, 1)
	cache := reports.NewCache(rdb, cfg.ReportsCacheTTL)
	rec := audit.Multi{a.Queue, cache}

	a.Catalog, a.Circulation, a.Reports, a.Settings = Services(st, rec, cache, time.Now)
	a.Export = export.New(a.Catalog, a.Circulation)
	a.Search = search.New(a.Catalog)

	var covers books.ObjectStore
	if cfg.S3.Enabled() {
		c, err := s3.NewClient(ctx, cfg.S3)
		if err != nil {
			a.Close()
			return nil, err
		}
		covers = c
	}

	checker := auth.NewChecker(cfg.Admin, password.NewHasher(cfg.Argon2))
	deps := router.Deps{
		Name:    "library-admin",
		Catalog: a.Catalog,
		Search:  a.Search,
		Auth:    auth.NewHandler(checker, rec),
		Covers:  covers,
		Admin: router.AdminDeps{
			Circulation: a.Circulation,
			Handler:     admin.NewHandler(a.Reports, a.Settings, a.Export, a.Circulation, rec),
		},
		LoginLimit: mw.LoginRateLimit(rdb, cfg.LoginMaxAttempts, cfg.LoginWindow),
	}
	a.handler = router.Secure(router.Router(deps), rdb, router.SecurityOptions{
		Origins:     cfg.CorsOrigins,
		Strict:      cfg.StrictSecurity,
		MaxBodySize: cfg.MaxBodySize,

		RatePerSecond: cfg.RateLimit.PerSecond,
		RateBurst:     cfg.RateLimit.Burst,
		WindowLimit:   cfg.RateLimit.WindowLimit,
		Window:        cfg.RateLimit.Window,
	})
	return a, nil
}

func (a *App) Handler() http.Handler { return a.handler }

// StartBackground launches the audit retention job; it stops with ctx.
func (a *App) StartBackground(ctx context.Context) {
	audit.StartRetention(ctx, a.Stores.Audit, a.Config.AuditRetentionDays, a.Config.AuditPruneAt, a.Config.AuditPruneTZ)
}

// Close flushes the audit queue and releases connections.
func (a *App) Close() {
	if a.Queue != nil {
		a.Queue.Shutdown()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}
