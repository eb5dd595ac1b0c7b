package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/5w1tchy/library-admin/internal/app"
	"github.com/5w1tchy/library-admin/internal/audit"
	"github.com/5w1tchy/library-admin/internal/catalog"
	"github.com/5w1tchy/library-admin/internal/circulation"
	"github.com/5w1tchy/library-admin/internal/config"
	"github.com/5w1tchy/library-admin/internal/reports"
	"github.com/5w1tchy/library-admin/internal/store"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	storeKind  string
	dbURL      string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "libctl",
	Short: "Operator tooling for the library admin service",
	Long: `libctl works directly against the library store, without the HTTP server.

Commands:
  export         - Write the books or readers CSV backup
  report         - Print overdue loans or the most borrowed books
  hash-password  - Produce an ADMIN_PASSWORD_HASH value
  migrate        - Apply the PostgreSQL schema`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		if storeKind == "" {
			storeKind = envOr("STORE", config.StoreMemory)
		}
		if dbURL == "" {
			dbURL = os.Getenv("DATABASE_URL")
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", "", "Store backend: memory or postgres (default $STORE or memory)")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (default $DATABASE_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// session is an opened store with the services built over it.
type session struct {
	st          store.Stores
	catalog     *catalog.Service
	circulation *circulation.Service
	reports     *reports.Service
	close       func()
}

func open(ctx context.Context) (*session, error) {
	cfg := config.Config{Store: storeKind, DatabaseURL: dbURL, SeedDemo: storeKind != config.StorePostgres}
	st, db, err := app.OpenStores(ctx, cfg)
	if err != nil {
		return nil, err
	}
	cat, circ, rp, _ := app.Services(st, audit.Nop{}, nil, time.Now)
	s := &session{st: st, catalog: cat, circulation: circ, reports: rp, close: func() {}}
	if db != nil {
		s.close = func() { db.Close() }
	}
	return s, nil
}
