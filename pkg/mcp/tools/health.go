package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type healthResult struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
}

// RegisterHealthTool adds a health check tool reporting server status,
// version and database connectivity.
func RegisterHealthTool(s *server.MCPServer, version string, dbConnected func() bool) {
	tool := mcp.NewTool(
		"health",
		mcp.WithDescription("Returns server health status, version and database connectivity"),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		db := "disconnected"
		if dbConnected != nil && dbConnected() {
			db = "connected"
		}

		result, err := json.Marshal(healthResult{Status: "ok", Version: version, Database: db})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal health result: %w", err)
		}
		return mcp.NewToolResultText(string(result)), nil
	})
}
