package commands

import (
	"errors"
	"fmt"

	"github.com/5w1tchy/library-admin/internal/repository/sqlconnect"
	"github.com/5w1tchy/library-admin/internal/store/pg"
	"github.com/spf13/cobra"
)

var seedDemo bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the PostgreSQL schema",
	Long: `Create the library tables if they do not exist. The schema is idempotent.

Examples:
  libctl migrate --db postgres://localhost/library
  libctl migrate --seed                # also load demo data into an empty database`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if dbURL == "" {
			return errors.New("migrate needs --db or DATABASE_URL")
		}
		ctx := cmd.Context()
		db, err := sqlconnect.ConnectDB(ctx, dbURL)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := pg.Migrate(ctx, db); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "schema applied")

		if seedDemo {
			seeded, err := pg.SeedDemo(ctx, db)
			if err != nil {
				return err
			}
			if seeded {
				fmt.Fprintln(cmd.OutOrStdout(), "demo data loaded")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "database not empty; demo data skipped")
			}
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&seedDemo, "seed", false, "Load demo data when the database is empty")
	rootCmd.AddCommand(migrateCmd)
}
