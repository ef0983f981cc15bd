package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/scriptembed/internal/config"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default .scriptembed.yaml",
		Long: `Write a .scriptembed.yaml with the default settings into the project root,
so they can be adjusted. Refuses to overwrite an existing file unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			root, _ := cmd.Flags().GetString("root")
			if root == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("failed to get working directory: %w", err)
				}
				root = wd
			}

			path := filepath.Join(root, config.FileName)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			if err := config.SaveConfig(root, config.DefaultConfig()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Created %s\n", color.New(color.FgGreen).Sprint("✓"), path)
			return nil
		},
	}

	cmd.Flags().Bool("force", false, "Overwrite an existing config file")

	return cmd
}
