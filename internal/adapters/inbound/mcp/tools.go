package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/checkdk/checkdk/internal/adapters/outbound/ai"
	"github.com/checkdk/checkdk/internal/adapters/outbound/composefile"
	"github.com/checkdk/checkdk/internal/adapters/outbound/config"
	"github.com/checkdk/checkdk/internal/adapters/outbound/gitinfo"
	"github.com/checkdk/checkdk/internal/adapters/outbound/k8sfile"
	"github.com/checkdk/checkdk/internal/adapters/outbound/portprobe"
	"github.com/checkdk/checkdk/internal/application"
	"github.com/checkdk/checkdk/internal/domain"
)

// registerTools registers all checkdk MCP tools on the given server.
func registerTools(s *server.MCPServer) {
	// 1. checkdk_analyze_compose
	s.AddTool(
		mcplib.NewTool("checkdk_analyze_compose",
			mcplib.WithDescription("Analyze a Docker Compose file and return issues and suggested fixes as JSON"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path to the Docker Compose file to analyze"),
			),
		),
		handleAnalyzeCompose(),
	)

	// 2. checkdk_analyze_kubernetes
	s.AddTool(
		mcplib.NewTool("checkdk_analyze_kubernetes",
			mcplib.WithDescription("Analyze a Kubernetes manifest and return issues and suggested fixes as JSON"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path to the Kubernetes manifest to analyze"),
			),
		),
		handleAnalyzeKubernetes(),
	)
}

// newServices assembles the analysis pipeline from the outbound adapters
// and the persisted settings.
func newServices() (*application.AnalyzeService, domain.Settings) {
	settings, err := config.New().Load()
	if err != nil {
		settings = domain.DefaultSettings()
	}
	svc := application.NewAnalyzeService(
		composefile.New(),
		k8sfile.New(),
		portprobe.New(),
		ai.Chain(settings),
		settings,
		gitinfo.New(),
	)
	return svc, settings
}

func handleAnalyzeCompose() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := request.RequireString("file")
		if err != nil {
			return errorResult("missing required parameter: file"), nil
		}

		svc, settings := newServices()
		ctx, cancel := analysisContext(ctx, settings)
		defer cancel()

		result := svc.AnalyzeCompose(ctx, path)
		return jsonResult(result)
	}
}

func handleAnalyzeKubernetes() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := request.RequireString("file")
		if err != nil {
			return errorResult("missing required parameter: file"), nil
		}

		svc, settings := newServices()
		ctx, cancel := analysisContext(ctx, settings)
		defer cancel()

		result := svc.AnalyzeKubernetes(ctx, path)
		return jsonResult(result)
	}
}

// analysisContext bounds AI latency with the user's configured timeout.
func analysisContext(parent context.Context, settings domain.Settings) (context.Context, context.CancelFunc) {
	if settings.TimeoutSeconds <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, time.Duration(settings.TimeoutSeconds)*time.Second)
}

// jsonResult marshals v to indented JSON and wraps it as a text result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a result marked as an error with the given message.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
