package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var topN int

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print circulation reports",
	Long: `Print circulation reports.

Subcommands:
  overdue  - Open loans past their due date, with the fine owed so far
  top      - Most borrowed books`,
}

var reportOverdueCmd = &cobra.Command{
	Use:   "overdue",
	Short: "List overdue loans",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := open(cmd.Context())
		if err != nil {
			return err
		}
		defer s.close()

		rows, err := s.reports.Overdue(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(rows)
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "LOAN\tREADER\tBOOK\tDUE\tDAYS\tFINE")
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n", r.LoanID, r.ReaderName, r.BookTitle, r.DueDate, r.DaysOverdue, r.Fine)
		}
		return w.Flush()
	},
}

var reportTopCmd = &cobra.Command{
	Use:   "top",
	Short: "List the most borrowed books",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := open(cmd.Context())
		if err != nil {
			return err
		}
		defer s.close()

		rows, err := s.reports.TopBooks(cmd.Context(), topN)
		if err != nil {
			return err
		}
		if jsonOutput {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(rows)
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "BOOK\tTITLE\tAUTHOR\tLOANS")
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", r.BookID, r.Title, r.AuthorName, r.Loans)
		}
		return w.Flush()
	},
}

func init() {
	reportTopCmd.Flags().IntVarP(&topN, "limit", "n", 5, "Number of books to list")
	reportCmd.AddCommand(reportOverdueCmd, reportTopCmd)
	rootCmd.AddCommand(reportCmd)
}
