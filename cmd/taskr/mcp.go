package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/taskr/internal/mcpserver"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the task list as MCP tools",
		Long: `Serve task-add, task-toggle, task-delete and task-list as MCP tools.

Speaks MCP over stdin/stdout by default. With --http, serves the streamable
HTTP transport on the given address instead and prints the endpoint URL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := mcpserver.New(sess.store)
			if addr == "" {
				return srv.ServeStdio(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
			}
			return serveHTTP(ctx, cmd, srv, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "http", "", "Serve streamable HTTP on this address (e.g. 127.0.0.1:8080)")
	return cmd
}

func serveHTTP(ctx context.Context, cmd *cobra.Command, srv *mcpserver.Server, addr string) error {
	if _, err := srv.Start(ctx, addr); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "MCP endpoint: %s\n", srv.URL())

	<-ctx.Done()
	return srv.Stop()
}
