package commands

import (
	"fmt"
	"os"

	"github.com/5w1tchy/library-admin/internal/export"
	"github.com/5w1tchy/library-admin/internal/models"
	"github.com/spf13/cobra"
)

var outFile string

var exportCmd = &cobra.Command{
	Use:   "export books|readers",
	Short: "Write a CSV backup",
	Long: `Write the same CSV the admin export page produces.

Examples:
  libctl export books                  # CSV to stdout
  libctl export readers -o readers.csv # CSV to a file
  libctl export books -o auto          # books_backup_<date>.csv`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{export.Books, export.Readers},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := args[0]
		if kind != export.Books && kind != export.Readers {
			return fmt.Errorf("unknown export type %q; use books or readers", kind)
		}
		ctx := cmd.Context()
		s, err := open(ctx)
		if err != nil {
			return err
		}
		defer s.close()

		out := cmd.OutOrStdout()
		name := outFile
		if name == "auto" {
			name = export.Filename(kind, s.circulation.Today())
		}
		if name != "" {
			f, err := os.Create(name)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		n, err := export.New(s.catalog, s.circulation).Write(ctx, kind, out)
		if err != nil {
			return err
		}
		entry := models.AuditEntry{
			Action:  models.ActionExport,
			User:    "libctl",
			Details: fmt.Sprintf("Exported %d %s", n, kind),
		}
		if err := s.st.Audit.AppendAudit(ctx, []models.AuditEntry{entry}); err != nil {
			return err
		}
		if name != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d %s to %s\n", n, kind, name)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&outFile, "output", "o", "", `Output file ("auto" for the dated backup name)`)
	rootCmd.AddCommand(exportCmd)
}
