// Package cli provides the CLI commands for scriptembed.
package cli

import (
	"github.com/spf13/cobra"
)

// RootCmd returns the scriptembed root command. Run without a subcommand it
// generates the embedded-script sources for the project root.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scriptembed",
		Short: "Embed script files into generated C sources",
		Long: `scriptembed reads the scripts under <root>/scripts, splits each into
bounded string literals and writes <root>/src/server/generated_scripts.{h,c}
with an EMBEDDED_SCRIPTS lookup table.

Paths, extension, chunk size and the optional run ledger can be set in
<root>/.scriptembed.yaml.

Examples:
  scriptembed                      # generate for the current directory
  scriptembed --root ../webserver  # generate for another project
  scriptembed --dry-run            # print the artifacts without writing
  scriptembed check                # fail if the artifacts are out of date`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			setupLogging(cmd, verbose)
		},
		RunE: runGenerate,
	}

	cmd.PersistentFlags().String("root", "", "Project root (defaults to the current directory)")
	cmd.PersistentFlags().String("config", "", "Config file (defaults to <root>/.scriptembed.yaml)")
	cmd.PersistentFlags().String("ledger", "", "SQLite run ledger path, relative to the root (overrides the config)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.Flags().Bool("dry-run", false, "Preview without writing files")

	cmd.AddCommand(CheckCmd())
	cmd.AddCommand(HistoryCmd())
	cmd.AddCommand(InitCmd())

	return cmd
}
