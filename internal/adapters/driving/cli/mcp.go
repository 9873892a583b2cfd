package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio-cli/internal/adapters/driving/mcp"
	"github.com/custodia-labs/folio-cli/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC. Use
--port to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  folio mcp serve

  # HTTP mode
  folio mcp serve --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Content: contentService,
		Warmer:  warmerService,
		Cache:   cacheAdmin,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	// Serving is long-running, so the background warming loop runs
	// alongside it. One-shot commands never start the loop.
	if warmerService != nil {
		warmCtx, warmCancel := context.WithCancel(cmd.Context())
		defer warmCancel()

		go func() {
			if err := warmerService.Start(warmCtx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("warmer stopped: %v", err)
			}
		}()
		defer func() {
			if err := warmerService.Stop(); err != nil {
				logger.Warn("warmer stop: %v", err)
			}
		}()
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
