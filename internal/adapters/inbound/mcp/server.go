package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewCheckDKMCPServer creates a new MCP server with the checkdk analysis
// tools and resources registered. Each tool call runs a fresh, independent
// analysis.
func NewCheckDKMCPServer() *server.MCPServer {
	s := server.NewMCPServer(
		"checkdk",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s)
	registerResources(s)

	return s
}
