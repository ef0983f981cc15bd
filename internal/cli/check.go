package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// CheckCmd returns the check command
func CheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the generated sources are up to date",
		Long: `Render the artifacts in memory and compare them with the files on disk.
Nothing is written. Exits non-zero if any artifact is missing or differs,
which makes it suitable for CI.

Examples:
  scriptembed check
  scriptembed check --root ../webserver`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			// The ledger is not needed to check.
			s.ledger = ""
			services, err := s.services()
			if err != nil {
				return err
			}
			defer services.Close()

			ctx := cmd.Context()
			resp, err := services.Generate.Check(ctx, s.request())
			if err != nil {
				return err
			}

			stale := make(map[string]bool, len(resp.Stale))
			for _, p := range resp.Stale {
				stale[p] = true
			}

			ok := color.New(color.FgGreen).Sprint("✓")
			bad := color.New(color.FgRed).Sprint("✗")
			for _, a := range resp.Artifacts {
				if stale[a.Path] {
					fmt.Fprintf(out, "%s %s is out of date\n", bad, s.rel(a.Path))
				} else {
					fmt.Fprintf(out, "%s %s is up to date\n", ok, s.rel(a.Path))
				}
			}

			if !resp.UpToDate() {
				return fmt.Errorf("%d generated file(s) out of date; run 'scriptembed' to regenerate", len(resp.Stale))
			}
			return nil
		},
	}
}
