package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/taskr/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage taskr configuration",
	}
	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var global, force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a taskr configuration file",
		Long: `Create a taskr configuration file with the default settings.

By default, creates taskr.yml in the current directory.
Use --global to create ~/.config/taskr/taskr.yml instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			targetPath := config.ProjectPath()
			if global {
				targetPath = config.GlobalPath()
			}

			if !force && fileExists(targetPath) {
				return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
			}

			var err error
			if global {
				err = config.WriteGlobal(config.Default())
			} else {
				err = config.WriteProject(config.Default())
			}
			if err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Config written to: %s\n", targetPath)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&global, "global", "g", false, "Write the global config instead of the project one")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")
	return cmd
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
