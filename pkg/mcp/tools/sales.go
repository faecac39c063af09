package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/vendabot/vendabot-engine/pkg/agent"
	"github.com/vendabot/vendabot-engine/pkg/apperrors"
	"github.com/vendabot/vendabot-engine/pkg/catalog"
	"github.com/vendabot/vendabot-engine/pkg/formatter"
)

// SalesToolDeps contains dependencies for the sales analytics tools.
type SalesToolDeps struct {
	Executor   agent.QueryExecutor
	ReportYear int
	Logger     *zap.Logger
}

// RegisterSalesTools registers one MCP tool per catalog operation. The
// tool schemas are the same JSON-schema definitions the decision service
// sees, so the catalog stays the single source of truth.
func RegisterSalesTools(s *server.MCPServer, deps *SalesToolDeps) {
	for _, def := range catalog.ToolDefinitions() {
		schema, err := json.Marshal(def.Parameters)
		if err != nil {
			// Parameters come from static descriptors; this cannot
			// happen outside a programming error.
			deps.Logger.Error("failed to marshal tool schema",
				zap.String("tool", def.Name),
				zap.Error(err))
			continue
		}

		tool := mcp.NewToolWithRawSchema(def.Name, def.Description, schema)
		s.AddTool(tool, salesToolHandler(def.Name, deps))
	}
}

// salesToolHandler normalizes the caller's arguments against the catalog
// and runs the operation, returning the formatted prose answer.
func salesToolHandler(name string, deps *SalesToolDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		desc, ok := catalog.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrToolNotFound, name)
		}

		raw, _ := req.Params.Arguments.(map[string]any)
		if raw == nil {
			raw = map[string]any{}
		}

		args, err := catalog.NormalizeArgs(desc, raw, deps.ReportYear)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		deps.Logger.Debug("executing MCP tool",
			zap.String("tool", name),
			zap.Any("arguments", args))

		rows := deps.Executor.Execute(ctx, desc.Operation, args)
		return mcp.NewToolResultText(formatter.Format(desc.Operation, rows)), nil
	}
}
