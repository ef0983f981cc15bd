package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded generation runs",
		Long: `List the generation runs recorded in the SQLite run ledger, newest first.
With a run ID, list the scripts that run embedded.

The ledger is enabled by setting 'ledger' in .scriptembed.yaml or passing --ledger.

Examples:
  scriptembed history
  scriptembed history --limit 3
  scriptembed history 12`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			out := cmd.OutOrStdout()

			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			services, err := s.services()
			if err != nil {
				return err
			}
			defer services.Close()

			history, err := services.History()
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			if len(args) == 1 {
				runID, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid run id %q: %w", args[0], err)
				}
				scripts, err := history.GetRunScripts(ctx, runID)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tCHUNKS\tBYTES\tHASH\tPATH")
				fmt.Fprintln(w, "----\t------\t-----\t----\t----")
				for _, sc := range scripts {
					fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n", sc.Name, sc.NumChunks, sc.Bytes, sc.ContentHash, sc.RelPath)
				}
				return w.Flush()
			}

			runs, err := history.ListRuns(ctx, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded.")
				return nil
			}

			idColor := color.New(color.FgCyan)
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "RUN\tCREATED\tSCRIPTS\tCHUNKS\tSOURCE HASH\tROOT")
			fmt.Fprintln(w, "---\t-------\t-------\t------\t-----------\t----")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
					idColor.Sprint(r.ID),
					r.CreatedAt,
					r.ScriptCount,
					r.ChunkCount,
					r.SourceHash,
					r.RootDir,
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().Int("limit", 10, "Maximum number of runs to show (0 for all)")

	return cmd
}
