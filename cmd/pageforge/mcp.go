package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/aretw0/pageforge/internal/cli"
	"github.com/aretw0/pageforge/pkg/adapters/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts Pageforge as an MCP server so AI agents can edit sites through tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		// Logs go to stderr as JSON so they never corrupt JSON-RPC on stdout.
		rt, err := setup(cmd, true)
		if err != nil {
			return err
		}
		defer rt.build.Close()

		opts := []mcp.Option{mcp.WithLogger(rt.logger)}
		for name, exp := range cli.Exporters() {
			opts = append(opts, mcp.WithExporter(name, exp))
		}
		srv := mcp.NewServer(rt.build.Engine.Sessions(), opts...)

		switch transport {
		case "stdio":
			rt.logger.Info("Starting Pageforge MCP server (stdio)")
			return srv.ServeStdio()
		case "sse":
			ctx := cli.NewSignalContext(cmd.Context())
			defer ctx.Cancel()

			rt.logger.Info("Starting Pageforge MCP server (SSE)", "port", port)
			if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			rt.logger.Info("MCP server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8081, "Port to listen on (only for SSE)")
}
