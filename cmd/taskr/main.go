package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/mark3labs/taskr/internal/config"
	"github.com/mark3labs/taskr/internal/logger"
	"github.com/mark3labs/taskr/internal/tui"
	"github.com/mark3labs/taskr/internal/tui/theme"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "▀█▀ ▄▀█ █▀ █▄▀ █▀█"
	logoText2 = " █  █▀█ ▄█ █ █ █▀▄"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), newRootCmd(), fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "taskr",
		Short: "A small task list with a terminal UI, CLI and MCP server",
		Long: renderLogo() + `

taskr keeps a flat list of tasks: add them, tick them off, hide the
completed ones, delete what you no longer need. The list is saved after
every change, by default in an embedded NATS JetStream key-value bucket.

Run without a subcommand to open the full-screen interface.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
				return err
			}
			logger.Debug("Config loaded: storage=%s data_dir=%s list=%q", cfg.Storage, cfg.DataDir, cfg.List)
			cmd.SetContext(withConfig(cmd.Context(), cfg))
			return nil
		},
		RunE: runTUI,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("data-dir", "", "Data directory (default: from TASKR_DATA_DIR or .taskr)")
	flags.String("storage", "", "Storage backend: nats, file or memory")
	flags.StringP("list", "l", "", "Named task list (default list when empty)")

	rootCmd.AddCommand(
		newAddCmd(),
		newDoneCmd(),
		newRmCmd(),
		newListCmd(),
		newMCPCmd(),
		newConfigCmd(),
	)

	return rootCmd
}

func runTUI(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	title := "taskr"
	if sess.cfg.List != "" {
		title += " · " + sess.cfg.List
	}
	return tui.Run(cmd.Context(), sess.store, title)
}
