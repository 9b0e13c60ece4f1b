package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/checkdk/checkdk/internal/adapters/outbound/config"
	"github.com/checkdk/checkdk/internal/domain"
)

// registerResources registers all checkdk MCP resources on the given server.
func registerResources(s *server.MCPServer) {
	// checkdk://settings - effective configuration
	s.AddResource(
		mcplib.NewResource(
			"checkdk://settings",
			"Settings",
			mcplib.WithResourceDescription("Effective checkdk configuration (persisted settings or defaults)"),
			mcplib.WithMIMEType("application/json"),
		),
		handleSettingsResource(),
	)
}

func handleSettingsResource() server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		settings, err := config.New().Load()
		if err != nil {
			settings = domain.DefaultSettings()
		}
		// The API key stays out of resource reads.
		settings.AI.APIKey = ""

		data, err := json.MarshalIndent(settings, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling settings: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "checkdk://settings",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
