package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func runGenerate(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
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

	req := s.request()
	req.DryRun = dryRun

	ctx := cmd.Context()
	resp, err := services.Generate.Generate(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Embedding %d script(s) from %s\n", len(resp.Scripts), s.rel(req.ScriptsDir))
	if len(resp.Scripts) > 0 {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, sc := range resp.Scripts {
			fmt.Fprintf(w, "  %s\t%s\t%d bytes\t%s\n", sc.Name, pluralChunks(sc.NumChunks), sc.Bytes, sc.RelPath)
		}
		w.Flush()
	}
	fmt.Fprintln(out)

	if dryRun {
		fmt.Fprintln(out, "(dry-run mode - no files written)")
		fmt.Fprintln(out)
		for _, a := range resp.Artifacts {
			fmt.Fprintf(out, "--- %s ---\n", s.rel(a.Path))
			fmt.Fprintln(out, a.Content)
		}
		return nil
	}

	ok := color.New(color.FgGreen).Sprint("✓")
	for _, a := range resp.Artifacts {
		fmt.Fprintf(out, "%s Wrote %s\n", ok, s.rel(a.Path))
	}
	if resp.RunID != 0 {
		fmt.Fprintf(out, "  recorded as run %d\n", resp.RunID)
	}

	return nil
}

func pluralChunks(n int) string {
	if n == 1 {
		return "1 chunk"
	}
	return fmt.Sprintf("%d chunks", n)
}
