package cli

import (
	mcpadapter "github.com/checkdk/checkdk/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the checkdk MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start checkdk MCP server (stdio)",
		Long:  "Start the checkdk MCP server using stdio transport. This lets AI coding assistants analyze compose files and manifests before suggesting deploy commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := mcpadapter.NewCheckDKMCPServer()
			return server.ServeStdio(s)
		},
	}
}
